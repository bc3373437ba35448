package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type HTTPConfig struct {
	Addr string
}

type SirqulConfig struct {
	BaseURL           string
	AppKey            string
	AppSecret         string
	FallbackAccountID string
}

type SearchConfig struct {
	BaseURL string
	APIKey  string
}

type AppConfig struct {
	ServiceName string
	LogLevel    string
	HTTP        HTTPConfig

	DatabaseURL string
	NATSURL     string
	RedisURL    string

	JWTSecret string
	CacheTTL  time.Duration

	Sirqul SirqulConfig
	Search SearchConfig
}

func Load() (AppConfig, error) {
	cfg := AppConfig{
		ServiceName: env("SERVICE_NAME"),
		LogLevel:    env("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Addr: env("HTTP_ADDR"),
		},
		DatabaseURL: env("DATABASE_URL"),
		NATSURL:     env("NATS_URL"),
		RedisURL:    env("REDIS_URL"),
		JWTSecret:   env("JWT_SECRET"),
		Sirqul: SirqulConfig{
			BaseURL:           env("SIRQUL_BASE_URL"),
			AppKey:            env("SIRQUL_APP_KEY"),
			AppSecret:         env("SIRQUL_APP_SECRET"),
			FallbackAccountID: env("SIRQUL_FALLBACK_ACCOUNT_ID"),
		},
		Search: SearchConfig{
			BaseURL: env("SEARCH_BASE_URL"),
			APIKey:  env("SEARCH_API_KEY"),
		},
	}
	if cfg.ServiceName == "" {
		return AppConfig{}, errors.New("SERVICE_NAME is required")
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	ttl := env("CACHE_TTL_SECONDS")
	if ttl == "" {
		cfg.CacheTTL = 5 * time.Minute
	} else {
		secs, err := strconv.Atoi(ttl)
		if err != nil || secs < 0 {
			return AppConfig{}, errors.New("CACHE_TTL_SECONDS must be a non-negative integer")
		}
		cfg.CacheTTL = time.Duration(secs) * time.Second
	}
	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
