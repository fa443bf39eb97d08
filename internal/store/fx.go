package store

import (
	"fmt"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/riasku/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("store",
	fx.Provide(NewRedisClient),
	fx.Provide(NewKV),
	fx.Provide(NewSnapshots),
)

// NewRedisClient returns a redis client, or nil when no address is
// configured. Consumers tolerate the nil client.
func NewRedisClient(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

type KVParams struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	DB     *gorm.DB      `optional:"true"`
	Redis  *redis.Client `optional:"true"`
}

// NewKV selects the snapshot store backend from configuration.
func NewKV(p KVParams) (KV, error) {
	switch p.Config.StoreBackend {
	case "db":
		if p.DB == nil {
			return nil, fmt.Errorf("store backend db requires a database connection")
		}
		return NewGormKV(p.DB), nil
	case "redis":
		if p.Redis == nil {
			return nil, fmt.Errorf("store backend redis requires REDIS_ADDR")
		}
		return NewRedisKV(p.Redis), nil
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", p.Config.StoreBackend)
	}
}
