// AngelaMos | 2026
// buckets.go

package middleware

import (
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"golang.org/x/time/rate"
)

const (
	bucketSweepEvery = 5 * time.Minute
	bucketIdleAfter  = 10 * time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// bucketStore holds one token bucket per key for the in-process limiter.
type bucketStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	stopped sync.Once
}

func newBucketStore() *bucketStore {
	s := &bucketStore{
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

func (s *bucketStore) close() {
	s.stopped.Do(func() { close(s.stop) })
}

func (s *bucketStore) sweepLoop() {
	ticker := time.NewTicker(bucketSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.evictIdle(now.Add(-bucketIdleAfter))
		}
	}
}

func (s *bucketStore) evictIdle(before time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, b := range s.buckets {
		if b.lastSeen.Before(before) {
			delete(s.buckets, key)
		}
	}
}

// take spends one token from key's bucket and reports the outcome in the
// same shape redis_rate does.
func (s *bucketStore) take(
	key string,
	limit redis_rate.Limit,
	now time.Time,
) (*redis_rate.Result, error) {
	interval := limit.Period / time.Duration(max(limit.Rate, 1))

	s.mu.Lock()
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(interval), limit.Burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	s.mu.Unlock()

	res := &redis_rate.Result{
		Limit:      limit,
		Remaining:  max(int(tokens), 0),
		RetryAfter: -1,
		ResetAfter: interval,
	}
	if allowed {
		res.Allowed = 1
	} else {
		res.RetryAfter = interval
	}
	return res, nil
}
