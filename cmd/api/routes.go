// AngelaMos | 2026
// routes.go

package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/insight-dashboard/internal/admin"
	"github.com/carterperez-dev/insight-dashboard/internal/auth"
	"github.com/carterperez-dev/insight-dashboard/internal/config"
	"github.com/carterperez-dev/insight-dashboard/internal/core"
	"github.com/carterperez-dev/insight-dashboard/internal/dashboard"
	"github.com/carterperez-dev/insight-dashboard/internal/health"
	"github.com/carterperez-dev/insight-dashboard/internal/middleware"
	"github.com/carterperez-dev/insight-dashboard/internal/record"
	"github.com/carterperez-dev/insight-dashboard/internal/user"
)

const (
	uploadRequestsPerMinute = 10
	uploadBurst             = 2
)

type limiters []*middleware.RateLimiter

func (l limiters) close() {
	for _, rl := range l {
		rl.Close()
	}
}

func mountRoutes(
	router chi.Router,
	cfg *config.Config,
	st *stores,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
) limiters {
	global := middleware.NewRateLimiter(st.redis.ClientOrNil(), middleware.RateLimitConfig{
		Limit: middleware.PerPeriod(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Window,
		),
		FailOpen:   true,
		BypassFunc: isProbe,
	})
	upload := middleware.NewRateLimiter(st.redis.ClientOrNil(), middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(uploadRequestsPerMinute, uploadBurst),
		KeyFunc:  middleware.KeyByUserAndEndpoint,
		FailOpen: true,
	})

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(global.Handler)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	router.Get("/.well-known/jwks.json", jwtManager.JWKSHandler())

	recordSvc := record.NewService(
		st.records,
		record.NewDecoder(core.NewValidator()),
		cfg.Paginate.RecordsNumber,
	)
	record.NewHandler(recordSvc, cfg.Ingest.MaxUploadBytes).
		RegisterRoutes(router, upload.Handler)

	dashboardSvc := dashboard.NewService(st.records, cfg.Paginate.RecordsNumber)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(router)

	authenticator := middleware.Authenticator(jwtManager)

	userSvc := user.NewService(st.users, cfg.Paginate.RecordsNumber)
	user.NewHandler(userSvc).RegisterRoutes(router, authenticator)

	authSvc := auth.NewService(jwtManager, userSvc, st.blacklist)
	auth.NewHandler(authSvc).RegisterRoutes(router, authenticator)

	adminCfg := admin.HandlerConfig{
		Counters: map[string]admin.Counter{
			"records": func(ctx context.Context) (int, error) {
				return st.records.Count(ctx, record.NewFilter())
			},
			"users": func(ctx context.Context) (int, error) {
				return st.users.Count(ctx, user.ListFilter{})
			},
		},
	}
	if st.db != nil {
		adminCfg.DBStats = st.db.Stats
		adminCfg.DBPing = st.db.Ping
	}
	if st.redis != nil {
		adminCfg.RedisStats = st.redis.PoolStats
		adminCfg.RedisPing = st.redis.Ping
	}
	admin.NewHandler(adminCfg).RegisterRoutes(router, authenticator, middleware.RequireStaff)

	return limiters{global, upload}
}

func isProbe(r *http.Request) bool {
	switch strings.TrimSuffix(r.URL.Path, "/") {
	case "/healthz", "/livez", "/readyz":
		return true
	}
	return false
}
