// AngelaMos | 2026
// defaults.go

package config

var defaultSections = []func() map[string]any{
	appDefaults,
	serverDefaults,
	storageDefaults,
	jwtDefaults,
	httpDefaults,
	observabilityDefaults,
	dataDefaults,
}

func appDefaults() map[string]any {
	return map[string]any{
		"app.name":        "Insight Dashboard",
		"app.version":     "1.0.0",
		"app.environment": "development",
	}
}

func serverDefaults() map[string]any {
	return map[string]any{
		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "2m",
		"server.shutdown_timeout": "15s",
	}
}

func storageDefaults() map[string]any {
	return map[string]any{
		"database.driver":             DriverPostgres,
		"database.auto_migrate":       true,
		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"redis.pool_size":             10,
		"redis.min_idle_conns":        2,
	}
}

func jwtDefaults() map[string]any {
	return map[string]any{
		"jwt.private_key_path":     "keys/private.pem",
		"jwt.public_key_path":      "keys/public.pem",
		"jwt.access_token_expire":  "15m",
		"jwt.refresh_token_expire": "168h",
		"jwt.issuer":               "insight-dashboard",
		"jwt.audience":             "insight-dashboard-api",
	}
}

func httpDefaults() map[string]any {
	return map[string]any{
		"rate_limit.requests": 100,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    20,

		"cors.allowed_origins":   []string{"http://localhost:3000"},
		"cors.allowed_methods":   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		"cors.allowed_headers":   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		"cors.allow_credentials": true,
		"cors.max_age":           300,
	}
}

func observabilityDefaults() map[string]any {
	return map[string]any{
		"log.level":         "info",
		"log.format":        "json",
		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "insight-dashboard",
	}
}

func dataDefaults() map[string]any {
	return map[string]any{
		"ingest.max_upload_bytes":   32 << 20,
		"pagination.records_number": 10,
	}
}

// envKeys maps the supported environment variables onto config paths.
// Anything else in the environment is ignored.
var envKeys = map[string]string{
	"ENVIRONMENT":                 "app.environment",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"DATABASE_URL":                "database.url",
	"DATABASE_DRIVER":             "database.driver",
	"DATABASE_AUTO_MIGRATE":       "database.auto_migrate",
	"REDIS_URL":                   "redis.url",
	"JWT_PRIVATE_KEY_PATH":        "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":         "jwt.public_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE":     "jwt.access_token_expire",
	"JWT_REFRESH_TOKEN_EXPIRE":    "jwt.refresh_token_expire",
	"JWT_ISSUER":                  "jwt.issuer",
	"JWT_AUDIENCE":                "jwt.audience",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
	"INGEST_MAX_UPLOAD_BYTES":     "ingest.max_upload_bytes",
	"PAGINATION_RECORDS_NUMBER":   "pagination.records_number",
}

func envKey(name string) string {
	return envKeys[name]
}
