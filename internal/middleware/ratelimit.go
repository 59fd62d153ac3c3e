// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

type RateLimitConfig struct {
	Limit      redis_rate.Limit
	KeyFunc    func(*http.Request) string
	FailOpen   bool
	BypassFunc func(*http.Request) bool
}

// RateLimiter enforces a request budget per key. Budgets live in redis
// when a client is given and in process otherwise; a failing redis also
// degrades to the in-process buckets.
type RateLimiter struct {
	shared  *redis_rate.Limiter
	buckets *bucketStore
	cfg     RateLimitConfig
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}

	rl := &RateLimiter{buckets: newBucketStore(), cfg: cfg}
	if rdb != nil {
		rl.shared = redis_rate.NewLimiter(rdb)
	}
	return rl
}

// Close stops the idle bucket sweeper.
func (rl *RateLimiter) Close() {
	rl.buckets.close()
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.cfg.BypassFunc != nil && rl.cfg.BypassFunc(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := rl.cfg.KeyFunc(r)
		res, err := rl.take(r.Context(), key)
		if err != nil {
			if !rl.cfg.FailOpen {
				core.JSON(w, http.StatusServiceUnavailable, map[string]string{
					"message": "Service Unavailable",
				})
				return
			}
			slog.WarnContext(r.Context(), "rate limit check failed, allowing", "key", key, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		writeBudget(w.Header(), rl.cfg.Limit, res)
		if res.Allowed == 0 {
			writeLimited(w, res.RetryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) take(ctx context.Context, key string) (*redis_rate.Result, error) {
	if rl.shared != nil {
		res, err := rl.shared.Allow(ctx, key, rl.cfg.Limit)
		if err == nil {
			return res, nil
		}
		slog.DebugContext(ctx, "redis rate limit unavailable", "error", err)
	}
	return rl.buckets.take(key, rl.cfg.Limit, time.Now())
}

func writeBudget(h http.Header, limit redis_rate.Limit, res *redis_rate.Result) {
	reset := res.ResetAfter
	if reset < 0 {
		reset = 0
	}

	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(reset).Unix(), 10))
	h.Set("RateLimit-Policy", fmt.Sprintf("%d;w=%d", limit.Rate, int(limit.Period.Seconds())))
	h.Set("RateLimit", fmt.Sprintf("%d;t=%d", res.Remaining, int(reset.Seconds())))
}

func writeLimited(w http.ResponseWriter, retryAfter time.Duration) {
	secs := max(int(retryAfter.Seconds()), 1)

	w.Header().Set("Retry-After", strconv.Itoa(secs))
	core.JSON(w, http.StatusTooManyRequests, map[string]string{
		"message": fmt.Sprintf("Rate limit exceeded. Retry after %d seconds.", secs),
		"code":    "RATE_LIMITED",
	})
}

func PerMinute(requests, burst int) redis_rate.Limit {
	return PerPeriod(requests, burst, time.Minute)
}

// PerPeriod allows requests per period. A non-positive period means one
// minute.
func PerPeriod(requests, burst int, period time.Duration) redis_rate.Limit {
	if period <= 0 {
		period = time.Minute
	}
	return redis_rate.Limit{Rate: requests, Burst: burst, Period: period}
}
