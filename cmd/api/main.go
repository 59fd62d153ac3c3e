// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carterperez-dev/insight-dashboard/internal/auth"
	"github.com/carterperez-dev/insight-dashboard/internal/config"
	"github.com/carterperez-dev/insight-dashboard/internal/core"
	"github.com/carterperez-dev/insight-dashboard/internal/health"
	"github.com/carterperez-dev/insight-dashboard/internal/server"
)

// drainDelay is how long readiness reports draining before the listener
// stops accepting connections.
const drainDelay = 5 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("insight api exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)
	logger.Info("insight api starting",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"driver", cfg.Database.Driver,
	)

	tracing, err := core.StartTracing(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	} else if tracing.Enabled() {
		logger.Info("tracing enabled", "endpoint", cfg.Otel.Endpoint)
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close(logger)

	tokens, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("signing key loaded", "key_id", tokens.KeyID())

	probes := health.NewHandler()
	st.probes(probes)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: probes,
		Logger:        logger,
	})

	limiters := mountRoutes(srv.Router(), cfg, st, tokens, probes, logger)
	defer limiters.close()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Start() }()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+2*drainDelay,
	)
	defer cancel()

	err = errors.Join(
		srv.Shutdown(shutdownCtx, drainDelay),
		tracing.Shutdown(shutdownCtx),
	)
	if err != nil {
		logger.Error("unclean shutdown", "error", err)
	}

	logger.Info("insight api stopped")
	return nil
}
