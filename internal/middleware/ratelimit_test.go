// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterLocalFallback(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Limit: PerMinute(60, 2)})
	t.Cleanup(rl.Close)

	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/data", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Limit"))
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "other clients keep their own budget")
}

func TestRateLimiterBypass(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{
		Limit:      PerMinute(1, 1),
		BypassFunc: func(r *http.Request) bool { return r.URL.Path == "/healthz" },
	})
	t.Cleanup(rl.Close)

	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for range 5 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitKeys(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/users/42/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	assert.Equal(t, "ratelimit:ip:192.0.2.10", KeyByIP(req))
	assert.Equal(t, "ratelimit:ip:192.0.2.10:endpoint:/users/{id}", KeyByUserAndEndpoint(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.1, 198.51.100.2")
	assert.Equal(t, "ratelimit:ip:198.51.100.2", KeyByIP(req))

	authed := req.WithContext(WithClaims(req.Context(), &AccessTokenClaims{UserID: 9}))
	assert.Equal(t, "ratelimit:user:9", KeyByUser(authed))
}

func TestBucketStoreRefills(t *testing.T) {
	s := newBucketStore()
	t.Cleanup(s.close)

	limit := PerPeriod(1, 1, time.Second)
	start := time.Unix(1_700_000_000, 0)

	res, err := s.take("k", limit, start)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Allowed)

	res, err = s.take("k", limit, start)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Allowed)
	assert.Equal(t, time.Second, res.RetryAfter)

	res, err = s.take("k", limit, start.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Allowed)

	s.evictIdle(start.Add(time.Hour))
	s.mu.Lock()
	assert.Empty(t, s.buckets)
	s.mu.Unlock()
}

func TestPerPeriodDefaultsToMinute(t *testing.T) {
	assert.Equal(t, time.Minute, PerPeriod(5, 1, 0).Period)
	assert.Equal(t, time.Hour, PerPeriod(5, 1, time.Hour).Period)
}
