// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/carterperez-dev/insight-dashboard/internal/config"
	"github.com/carterperez-dev/insight-dashboard/internal/core"
	"github.com/carterperez-dev/insight-dashboard/internal/user"
)

const passwordEnv = "SUPERUSER_PASSWORD"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	req := user.CreateUserRequest{}
	flag.StringVar(&req.FirstName, "first-name", "", "first name")
	flag.StringVar(&req.LastName, "last-name", "", "last name")
	flag.StringVar(&req.Email, "email", "", "email address")
	flag.StringVar(&req.Phone, "phone", "", "phone number used to log in")
	flag.Parse()

	if err := run(*configPath, req, os.Getenv(passwordEnv)); err != nil {
		slog.Error("createsuperuser failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, req user.CreateUserRequest, password string) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("createsuperuser needs the %s driver", config.DriverPostgres)
	}

	if password == "" {
		return fmt.Errorf("%s is not set", passwordEnv)
	}

	cfg.Database.AutoMigrate = true
	db, err := core.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	svc := user.NewService(user.NewRepository(db.DB), cfg.Paginate.RecordsNumber)

	u, err := svc.CreateSuperuser(ctx, req, password)
	if err != nil {
		return err
	}

	slog.Info("superuser created", "id", u.ID, "phone", u.Phone)
	return nil
}
