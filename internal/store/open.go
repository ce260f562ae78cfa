package store

import (
	"context"

	"github.com/rs/zerolog"

	"institute-site-backend/config"
	"institute-site-backend/internal/db"
)

// Open returns the store backend selected by cfg.Driver.
func Open(ctx context.Context, cfg *config.DatabaseConfig, lgr zerolog.Logger) (Store, error) {
	if cfg.Driver == config.DriverMongo {
		lgr.Info().Str("database", cfg.Name).Msg("connecting to mongo")
		return NewMongoStore(ctx, cfg.DSN, cfg.Name)
	}

	gormDB, err := db.Init(cfg, lgr)
	if err != nil {
		return nil, err
	}
	return NewGormStore(gormDB), nil
}
