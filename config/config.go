package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort       int
	ProxyURL      string
	SourcesPath   string
	CacheBackend  string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	HistoryPath   string
}

func Load() (*Config, error) {
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return nil, err
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, err
	}

	return &Config{
		AppPort:       appPort,
		ProxyURL:      os.Getenv("PROXY_URL"),
		SourcesPath:   getEnv("SOURCES_PATH", "configs/sources.yaml"),
		CacheBackend:  getEnv("CACHE_BACKEND", "memory"),
		CacheTTL:      cacheTTL,
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		HistoryPath:   getEnv("HISTORY_PATH", "data/history.db"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
