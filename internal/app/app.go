// Package app wires the collaborators shared by the server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"github.com/questcycle/backend/internal/domain/history"
	practicesession "github.com/questcycle/backend/internal/domain/practice_session"
	"github.com/questcycle/backend/internal/infrastructure/config"
	"github.com/questcycle/backend/internal/service"
	"github.com/questcycle/backend/internal/source"
	"github.com/questcycle/backend/internal/store"
)

type App struct {
	Config   *config.Config
	Catalog  *config.Catalog
	DB       *store.SQLiteStore
	History  *history.Store
	Source   source.Source
	Sessions *service.SessionController

	redis redis.UniversalClient
}

// New opens storage and builds the session controller. A malformed catalog
// is returned as an error wrapping dependency.ErrMalformedCatalog.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}

	a := &App{Config: cfg, Catalog: catalog, DB: db}

	backend, err := a.historyBackend()
	if err != nil {
		db.Close()
		return nil, err
	}

	a.History = history.Open(ctx, backend, history.Options{
		Limit:   cfg.HistoryLimit,
		Timeout: cfg.StoreTimeout,
	}, logger)

	a.Source = source.WithMedia(newSource(cfg), catalog.Media)

	a.Sessions = service.NewSessionController(service.Options{
		Source:  a.Source,
		History: a.History,
		Sampler: practicesession.NewSampler(catalog.Dependencies, nil),
		Archive: db,
		Config:  practicesession.SessionConfig{Size: cfg.SessionSize},
	}, logger)

	logger.Info("application ready",
		"history_backend", cfg.HistoryBackend,
		"history_entries", a.History.Len(),
		"dependency_groups", catalog.Dependencies.Len(),
		"media_overlays", len(catalog.Media),
	)
	return a, nil
}

func (a *App) historyBackend() (history.Backend, error) {
	switch a.Config.HistoryBackend {
	case config.HistoryBackendRedis:
		client, err := store.NewRedisClient(store.RedisConfig{
			Addr:     a.Config.RedisAddr,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		a.redis = client
		return store.NewRedisHistory(client, a.Config.RedisKey)
	case config.HistoryBackendMemory:
		return store.NewMemoryHistory(), nil
	default:
		return a.DB.History(), nil
	}
}

func newSource(cfg *config.Config) source.Source {
	if cfg.QuestionFile != "" {
		return source.NewFileSource(cfg.QuestionFile)
	}
	return source.NewHTTPSource(cfg.QuestionSourceURL, cfg.FetchTimeout)
}

// Close drains history writes and closes storage.
func (a *App) Close() error {
	a.History.Close()
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, a.DB.Close())
	return errors.Join(errs...)
}
