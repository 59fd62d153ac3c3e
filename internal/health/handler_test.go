// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h *Handler, path string) (int, map[string]any) {
	t.Helper()

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func ok(context.Context) error { return nil }

func TestReadinessAllHealthy(t *testing.T) {
	h := NewHandler().
		Register("database", CheckerFunc(ok)).
		Register("redis", CheckerFunc(ok))

	code, body := serve(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Len(t, body["checks"], 2)
}

func TestReadinessDegraded(t *testing.T) {
	h := NewHandler().
		Register("database", CheckerFunc(ok)).
		Register("redis", CheckerFunc(func(context.Context) error {
			return errors.New("connection refused")
		}))

	code, body := serve(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body["status"])

	checks := body["checks"].([]any)
	redis := checks[1].(map[string]any)
	assert.Equal(t, "redis", redis["name"])
	assert.Equal(t, false, redis["healthy"])
	assert.Equal(t, "ping failed", redis["message"])
}

func TestReadinessWithoutDependencies(t *testing.T) {
	code, body := serve(t, NewHandler(), "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestDrainingFlipsProbes(t *testing.T) {
	h := NewHandler()

	code, _ := serve(t, h, "/livez")
	assert.Equal(t, http.StatusOK, code)

	h.SetDraining(true)

	for _, path := range []string{"/healthz", "/livez", "/readyz"} {
		code, body := serve(t, h, path)
		assert.Equal(t, http.StatusServiceUnavailable, code, path)
		assert.Equal(t, "shutting_down", body["status"], path)
	}
}

func TestNotReady(t *testing.T) {
	h := NewHandler()
	h.SetReady(false)

	code, body := serve(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", body["status"])
}
