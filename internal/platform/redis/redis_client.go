package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheOpTimeout bounds a single cache round trip so a slow Redis degrades to a miss.
const cacheOpTimeout = 500 * time.Millisecond

// Config holds the Redis connection settings. An empty Host disables Redis.
type Config struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Addr returns host:port.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Enabled reports whether a Redis host is configured.
func (c Config) Enabled() bool {
	return c.Host != ""
}

// NewRedisClient はキャッシュ用クライアントを作成し、ctx の期限内に疎通を確認します。
// 失敗時はクライアントを閉じてエラーを返すため、呼び出し側はキャッシュなしで起動を続けられます。
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  cacheOpTimeout,
		WriteTimeout: cacheOpTimeout,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		slog.Warn("redis unreachable, post cache disabled", "addr", cfg.Addr(), "error", err)
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr(), err)
	}

	slog.Info("redis connected", "addr", cfg.Addr(), "db", cfg.DB)
	return rdb, nil
}
