package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/calorix/backend/config"
	"github.com/pageza/calorix/backend/internal/database"
)

// Connect opens the database, migrates it and connects the optional Redis
// and S3 resources. The returned func releases everything.
func Connect(ctx context.Context, cfg *config.Config, log *zap.Logger) (Deps, func(), error) {
	db, err := database.New(cfg, log)
	if err != nil {
		return Deps{}, nil, err
	}
	if err := database.RunMigrations(db.Gorm); err != nil {
		db.Close()
		return Deps{}, nil, fmt.Errorf("migrate: %w", err)
	}

	deps := Deps{DB: db.Gorm, Health: db.HealthCheck}
	closers := []func(){func() { db.Close() }}

	// Redis only backs caches, pub/sub and rate limits.
	if rdb, err := database.NewRedisClient(cfg, log); err != nil {
		log.Warn("redis unavailable, running without cache and rate limits", zap.Error(err))
	} else {
		deps.Redis = rdb
		closers = append(closers, func() { rdb.Close() })
	}

	if cfg.ExportBucket != "" {
		store, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Warn("export bucket unavailable, exports are returned inline", zap.Error(err))
		} else {
			deps.Store = store
		}
	}

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return deps, closeAll, nil
}
