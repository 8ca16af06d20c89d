package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/questcycle/backend/internal/domain/history"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

const DefaultRedisKey = "questcycle:history"

// RedisConfig holds connection settings for the history backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient builds a client without dialing. Connectivity problems
// surface on first use, where the history store degrades to memory.
func NewRedisClient(cfg RedisConfig) (redis.UniversalClient, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis configuration error: Addr must be provided")
	}
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Addr},
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

// RedisHistory keeps history in a sorted set scored by answer time.
type RedisHistory struct {
	client redis.UniversalClient
	key    string
}

func NewRedisHistory(client redis.UniversalClient, key string) (*RedisHistory, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for RedisHistory")
	}
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisHistory{client: client, key: key}, nil
}

func (r *RedisHistory) LoadAll(ctx context.Context) ([]history.Entry, error) {
	members, err := r.client.ZRangeWithScores(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]history.Entry, 0, len(members))
	for _, m := range members {
		id, ok := m.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, history.Entry{
			QuestionID: questionbank.ID(id),
			AnsweredAt: time.UnixMicro(int64(m.Score)).UTC(),
		})
	}
	return entries, nil
}

func (r *RedisHistory) Upsert(ctx context.Context, e history.Entry) error {
	return r.client.ZAdd(ctx, r.key, &redis.Z{
		Score:  float64(e.AnsweredAt.UnixMicro()),
		Member: string(e.QuestionID),
	}).Err()
}

func (r *RedisHistory) Remove(ctx context.Context, id questionbank.ID) error {
	return r.client.ZRem(ctx, r.key, string(id)).Err()
}

func (r *RedisHistory) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
