package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	HistoryBackendSQLite = "sqlite"
	HistoryBackendRedis  = "redis"
	HistoryBackendMemory = "memory"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Persistence
	DBPath         string
	HistoryBackend string // sqlite, redis or memory
	HistoryLimit   int
	StoreTimeout   time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	// Sessions
	SessionSize int

	// Question source
	QuestionSourceURL string // remote API, empty means source.DefaultURL
	QuestionFile      string
	FetchTimeout      time.Duration
	KeepAliveInterval time.Duration // 0 disables

	CatalogPath string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: getDurationDefault("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBPath:         getenvDefault("DB_PATH", "questcycle.db"),
		HistoryBackend: getenvDefault("HISTORY_BACKEND", HistoryBackendSQLite),
		HistoryLimit:   getIntDefault("HISTORY_LIMIT", 20),
		StoreTimeout:   getDurationDefault("STORE_TIMEOUT", 2*time.Second),

		RedisAddr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getIntDefault("REDIS_DB", 0),
		RedisKey:      getenvDefault("REDIS_KEY", "questcycle:history"),

		SessionSize: getIntDefault("SESSION_SIZE", 10),

		QuestionSourceURL: os.Getenv("QUESTION_SOURCE_URL"),
		QuestionFile:      os.Getenv("QUESTION_FILE"),
		FetchTimeout:      getDurationDefault("FETCH_TIMEOUT", 30*time.Second),
		KeepAliveInterval: getDurationDefault("KEEPALIVE_INTERVAL", 10*time.Minute),

		CatalogPath: os.Getenv("CATALOG_PATH"),
	}

	switch cfg.HistoryBackend {
	case HistoryBackendSQLite, HistoryBackendRedis, HistoryBackendMemory:
	default:
		log.Fatalf("config: HISTORY_BACKEND=%q must be one of sqlite, redis, memory", cfg.HistoryBackend)
	}

	return cfg
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}
