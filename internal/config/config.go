package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config centralizes every timeout and retry constant. The historical
// pattern of per-deployment literals scattered across the codebase is
// exactly what this package exists to prevent: components receive these
// values injected, never read the environment themselves.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Classifier ClassifierConfig
	Client     ClientConfig
}

type ServerConfig struct {
	Address string
}

type DatabaseConfig struct {
	// PostgresURL is optional; when empty the server runs on the in-memory
	// store.
	PostgresURL string
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

type ClassifierConfig struct {
	URL string
	// Token is optional; the call proceeds unauthenticated without it.
	Token   string
	Timeout time.Duration
}

// ClientConfig drives the consumer-side retry behavior (chatcli and any
// embedder of internal/client).
type ClientConfig struct {
	Origin          string
	WakeMaxAttempts int
	WakeBackoffBase time.Duration
	ListMaxAttempts int
	ListBackoffBase time.Duration
	SendMaxAttempts int
	SendBackoffBase time.Duration
	PollInterval    time.Duration
}

func LoadAll() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Address: getEnv("SERVER_ADDRESS", ":8080"),
		},
		Database: DatabaseConfig{
			PostgresURL: os.Getenv("POSTGRES_URL"),
		},
		Classifier: ClassifierConfig{
			URL:     mustEnv("CLASSIFIER_URL"),
			Token:   os.Getenv("CLASSIFIER_TOKEN"),
			Timeout: time.Duration(getEnvInt("CLASSIFIER_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Client:  loadClientConfig(),
		Redis:   loadRedisConfig(),
	}

	validate(cfg)
	return cfg, nil
}

// LoadClient loads only the consumer-side block, for processes that never
// touch the database or the classifier.
func LoadClient() ClientConfig {
	return loadClientConfig()
}

func loadClientConfig() ClientConfig {
	return ClientConfig{
		Origin:          getEnv("CHAT_ORIGIN", "http://localhost:8080"),
		WakeMaxAttempts: getEnvInt("WAKE_MAX_ATTEMPTS", 6),
		WakeBackoffBase: time.Duration(getEnvInt("WAKE_BACKOFF_MS", 800)) * time.Millisecond,
		ListMaxAttempts: getEnvInt("LIST_MAX_ATTEMPTS", 3),
		ListBackoffBase: time.Duration(getEnvInt("LIST_BACKOFF_MS", 700)) * time.Millisecond,
		SendMaxAttempts: getEnvInt("SEND_MAX_ATTEMPTS", 5),
		SendBackoffBase: time.Duration(getEnvInt("SEND_BACKOFF_MS", 700)) * time.Millisecond,
		PollInterval:    time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 5)) * time.Second,
	}
}

func loadRedisConfig() RedisConfig {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return RedisConfig{Enabled: false}
	}

	return RedisConfig{
		Enabled:  true,
		Address:  addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
		TTL:      time.Duration(getEnvInt("REDIS_TTL_SECONDS", 86400)) * time.Second,
	}
}

func validate(cfg *Config) {
	if cfg.Classifier.Timeout <= 0 {
		panic("CLASSIFIER_TIMEOUT_SECONDS must be > 0")
	}
	if cfg.Client.SendMaxAttempts <= 0 {
		panic("SEND_MAX_ATTEMPTS must be > 0")
	}
	if cfg.Client.ListMaxAttempts <= 0 {
		panic("LIST_MAX_ATTEMPTS must be > 0")
	}
	if cfg.Client.PollInterval <= 0 {
		panic("POLL_INTERVAL_SECONDS must be > 0")
	}
}

func mustEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("missing required env var: %s", key))
	}
	return val
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("invalid int for env %s: %s", key, v))
	}
	return i
}
