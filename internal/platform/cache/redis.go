package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/stockbrief/membership/pkg/config"
)

// NewRedis opens the shared redis client used for caches. The connection is
// probed once at startup so a bad address fails fast instead of on first use.
func NewRedis(lc fx.Lifecycle, l *zap.SugaredLogger, cfg *cfgpkg.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				l.Errorf("redis ping failed: %v", err)
				return err
			}
			l.Infow("connected to redis", "addr", cfg.Redis.Addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Infow("closing redis client")
			return client.Close()
		},
	})

	return client, nil
}

var Module = fx.Options(
	fx.Provide(NewRedis),
)
