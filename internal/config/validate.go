// AngelaMos | 2026
// validate.go

package config

import (
	"errors"
	"fmt"
	"slices"
)

// validate reports every problem at once rather than stopping at the
// first.
func validate(c *Config) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	switch c.Database.Driver {
	case DriverPostgres:
		check(c.Database.URL != "", "DATABASE_URL is required for the postgres driver")
		check(c.Redis.URL != "", "REDIS_URL is required for the postgres driver")
	case DriverMemory:
	default:
		check(false, "unsupported database driver %q", c.Database.Driver)
	}

	check(c.JWT.PrivateKeyPath != "", "JWT_PRIVATE_KEY_PATH is required")
	check(c.JWT.PublicKeyPath != "", "JWT_PUBLIC_KEY_PATH is required")

	check(
		!c.CORS.AllowCredentials || !slices.Contains(c.CORS.AllowedOrigins, "*"),
		"CORS wildcard origin cannot be combined with allow_credentials",
	)

	check(
		!c.IsProduction() || !c.Otel.Enabled || !c.Otel.Insecure,
		"OTEL_INSECURE must be false in production",
	)

	check(c.Server.ReadTimeout > 0, "server.read_timeout must be positive")
	check(c.Server.WriteTimeout > 0, "server.write_timeout must be positive")
	check(c.Ingest.MaxUploadBytes > 0, "ingest.max_upload_bytes must be positive")
	check(c.Paginate.RecordsNumber > 0, "pagination.records_number must be positive")

	return errors.Join(errs...)
}
