// Package cache holds the Redis-backed snapshot cache and settings store.
package cache

import (
	"context"
	"log/slog"
	"time"

	"fuelflow/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const pingTimeout = 5 * time.Second

// ClientParams defines the parameters required for the Redis client
type ClientParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// NewClient connects to Redis. It returns a nil client when Redis is not
// configured or unreachable; every consumer treats nil as pass-through.
func NewClient(params ClientParams) *redis.Client {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured, caching disabled")

		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		params.Logger.Warn("Redis unreachable, caching disabled",
			slog.String("addr", cfg.Addr),
			slog.Any("error", err),
		)
		_ = client.Close()

		return nil
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	params.Logger.Info("Redis connected", slog.String("addr", cfg.Addr))

	return client
}
