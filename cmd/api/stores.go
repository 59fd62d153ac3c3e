// AngelaMos | 2026
// stores.go

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/insight-dashboard/internal/auth"
	"github.com/carterperez-dev/insight-dashboard/internal/config"
	"github.com/carterperez-dev/insight-dashboard/internal/core"
	"github.com/carterperez-dev/insight-dashboard/internal/health"
	"github.com/carterperez-dev/insight-dashboard/internal/record"
	"github.com/carterperez-dev/insight-dashboard/internal/user"
)

// stores holds the persistence chosen by database.driver. db and redis are
// nil when the process runs on in-memory state.
type stores struct {
	records   record.Repository
	users     user.Repository
	blacklist auth.Blacklist
	db        *core.Database
	redis     *core.Redis
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (st *stores, err error) {
	st = &stores{}
	defer func() {
		if err != nil {
			st.close(logger)
		}
	}()

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if st.db, err = core.OpenDatabase(ctx, cfg.Database); err != nil {
			return nil, err
		}
		st.records = record.NewRepository(st.db.DB)
		st.users = user.NewRepository(st.db.DB)
		logger.Info("database connected",
			"max_open_conns", cfg.Database.MaxOpenConns,
			"auto_migrate", cfg.Database.AutoMigrate,
		)

	case config.DriverMemory:
		st.records = record.NewMemoryRepository()
		st.users = user.NewMemoryRepository()
		logger.Warn("using in-memory storage; data is lost on exit")

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if st.redis, err = core.OpenRedis(ctx, cfg.Redis); err != nil {
		return nil, err
	}

	if st.redis == nil {
		st.blacklist = auth.NewMemoryBlacklist()
		logger.Warn("redis not configured; token blacklist and rate limits are per process")
		return st, nil
	}

	st.blacklist = auth.NewRedisBlacklist(st.redis.Client)
	logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	return st, nil
}

// probes lists the backing services readiness should check.
func (st *stores) probes(h *health.Handler) {
	if st.db != nil {
		h.Register("database", st.db)
	}
	if st.redis != nil {
		h.Register("redis", st.redis)
	}
}

func (st *stores) close(logger *slog.Logger) {
	if err := st.redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}
	if err := st.db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}
}
