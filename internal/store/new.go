package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"

	"github.com/BALASANKARP/Edurecap/internal/config"
	"github.com/BALASANKARP/Edurecap/internal/logger"
)

// New opens the backend selected by cfg.Storage.Backend.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (Store, error) {
	key := cfg.Storage.Key

	switch cfg.Storage.Backend {
	case "", "file":
		path := filepath.Join(cfg.Storage.DataDir, key+".json")
		log.Debug(ctx, "Using file store at %s", path)
		return NewFile(path), nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		log.Debug(ctx, "Using redis store at %s", cfg.Redis.Addr)
		return NewRedis(client, key), nil

	case "mysql":
		log.Debug(ctx, "Using mysql store")
		return OpenSQL(mysql.Open(cfg.Database.DSN))

	case "sqlite":
		log.Debug(ctx, "Using sqlite store at %s", cfg.Database.SQLitePath)
		return OpenSQL(sqlite.Open(cfg.Database.SQLitePath))
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
