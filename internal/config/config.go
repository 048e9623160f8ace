package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Phonemizer PhonemizerConfig
	Redis      RedisConfig
	Queue      QueueConfig
	Auth       AuthConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
	LogLevel   slog.Level
}

type ServerConfig struct {
	Host string
	Port int
}

type PhonemizerConfig struct {
	BinPath string        // default: "espeak"
	Voice   string        // optional espeak voice, passed as -v
	Timeout time.Duration // 0 disables the per-call deadline
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type QueueConfig struct {
	Enabled     bool
	Concurrency int
	Retention   time.Duration
}

type AuthConfig struct {
	JWTSecret string // empty disables bearer auth
}

type RateLimitConfig struct {
	RPS   float64 // 0 disables rate limiting
	Burst int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	timeout, err := getEnvDuration("PHONEMIZER_TIMEOUT", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid PHONEMIZER_TIMEOUT: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	queueEnabled, err := getEnvBool("QUEUE_ENABLED", false)
	if err != nil {
		return nil, fmt.Errorf("invalid QUEUE_ENABLED: %w", err)
	}

	concurrency, err := getEnvInt("WORKER_CONCURRENCY", 4)
	if err != nil {
		return nil, fmt.Errorf("invalid WORKER_CONCURRENCY: %w", err)
	}

	retention, err := getEnvDuration("JOB_RETENTION", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_RETENTION: %w", err)
	}

	rps, err := getEnvFloat("RATE_LIMIT_RPS", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burst, err := getEnvInt("RATE_LIMIT_BURST", 40)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Phonemizer: PhonemizerConfig{
			BinPath: getEnv("PHONEMIZER_BIN", "espeak"),
			Voice:   getEnv("PHONEMIZER_VOICE", ""),
			Timeout: timeout,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Queue: QueueConfig{
			Enabled:     queueEnabled,
			Concurrency: concurrency,
			Retention:   retention,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		},
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: burst,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		LogLevel: level,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var problems []string
	if c.Phonemizer.BinPath == "" {
		problems = append(problems, "PHONEMIZER_BIN must not be empty")
	}
	if c.Phonemizer.Timeout < 0 {
		problems = append(problems, "PHONEMIZER_TIMEOUT must not be negative")
	}
	if c.Queue.Concurrency < 1 {
		problems = append(problems, "WORKER_CONCURRENCY must be at least 1")
	}
	if c.Queue.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "REDIS_ADDR is required when QUEUE_ENABLED is set")
	}
	if c.Queue.Enabled && c.Queue.Retention <= 0 {
		problems = append(problems, "JOB_RETENTION must be positive when QUEUE_ENABLED is set")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		problems = append(problems, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseBool(v)
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
