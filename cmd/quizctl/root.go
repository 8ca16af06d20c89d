package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/questcycle/backend/internal/app"
	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/infrastructure/config"
)

var rootCmd = &cobra.Command{
	Use:          "quizctl",
	Short:        "Operator tool for the questcycle backend",
	Long:         "quizctl inspects and resets the answer history, checks the dependency catalog and runs sample sessions against the configured question source.",
	SilenceUsage: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH env var)")
	rootCmd.PersistentFlags().String("backend", "", "History backend: sqlite, redis or memory (overrides HISTORY_BACKEND env var)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log at debug level")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		switch b {
		case config.HistoryBackendSQLite, config.HistoryBackendRedis, config.HistoryBackendMemory:
			cfg.HistoryBackend = b
		default:
			return nil, fmt.Errorf("unknown history backend %q", b)
		}
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func openApp(ctx context.Context, cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, newLogger(cmd))
}

// addFilterFlags registers the category predicate flags on cmd.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("cargo", "", "Role filter")
	cmd.Flags().String("nivel", "", "Level filter")
	cmd.Flags().String("banca", "", "Examining board filter")
}

func filterFromFlags(cmd *cobra.Command) category.Predicates {
	role, _ := cmd.Flags().GetString("cargo")
	level, _ := cmd.Flags().GetString("nivel")
	src, _ := cmd.Flags().GetString("banca")
	return category.Predicates{Role: role, Level: level, Source: src}
}
