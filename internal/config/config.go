package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// 新闻源：默认 Google News 印度英文版
	FeedHost          string
	FeedAllowedDomain string
	FeedTimeout       time.Duration
	FeedUserAgent     string

	// 为空时使用进程内缓存与会话
	RedisAddr  string
	CacheTTL   time.Duration
	SessionTTL time.Duration

	JanitorSpec string

	BasicAuthUser string
	BasicAuthPass string

	LogLevel string
	GinMode  string
}

// Load 先读取 .env（不存在则忽略），再读取环境变量
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warn: load .env failed: %v", err)
	}

	cfg := &Config{
		AppPort:           getEnv("APP_PORT", "9000"),
		FeedHost:          strings.TrimRight(getEnv("FEED_HOST", "https://news.google.com"), "/"),
		FeedAllowedDomain: getEnv("FEED_ALLOWED_DOMAIN", ""),
		FeedTimeout:       getDuration("FEED_TIMEOUT", 10*time.Second),
		FeedUserAgent:     getEnv("FEED_USER_AGENT", "NewsHorizonBot/1.0"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		CacheTTL:          getDuration("CACHE_TTL", 5*time.Minute),
		SessionTTL:        getDuration("SESSION_TTL", 24*time.Hour),
		JanitorSpec:       getEnv("JANITOR_SPEC", "*/5 * * * *"),
		BasicAuthUser:     getEnv("APP_BASIC_USER", ""),
		BasicAuthPass:     getEnv("APP_BASIC_PASS", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		GinMode:           getEnv("GIN_MODE", "release"),
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getDuration 解析 time.ParseDuration 格式，非法值回退默认值
func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("warn: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
