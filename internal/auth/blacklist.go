// AngelaMos | 2026
// blacklist.go

package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistSweepEvery = time.Minute

// Blacklist records revoked token ids until the token would have expired
// on its own. Revoke is a check-and-set: it reports false when jti was
// already revoked, so a token can be redeemed once.
type Blacklist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisBlacklist struct {
	client *redis.Client
}

func NewRedisBlacklist(client *redis.Client) Blacklist {
	return &redisBlacklist{client: client}
}

func blacklistKey(jti string) string {
	return "blacklist:" + jti
}

func (b *redisBlacklist) Revoke(
	ctx context.Context,
	jti string,
	expiresAt time.Time,
) (bool, error) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return true, nil
	}

	set, err := b.client.SetNX(ctx, blacklistKey(jti), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("blacklist token: %w", err)
	}
	return set, nil
}

func (b *redisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}

	return exists > 0, nil
}

// MemoryBlacklist is the in-process Blacklist used when no redis is
// configured. Expired entries are dropped by Revoke at most once per
// blacklistSweepEvery.
type MemoryBlacklist struct {
	mu        sync.Mutex
	entries   map[string]time.Time
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, jti string, expiresAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if now.Sub(b.lastSweep) >= blacklistSweepEvery {
		b.sweep(now)
	}

	if !expiresAt.After(now) {
		return true, nil
	}
	if held, ok := b.entries[jti]; ok && held.After(now) {
		return false, nil
	}
	b.entries[jti] = expiresAt
	return true, nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiresAt, ok := b.entries[jti]
	if !ok {
		return false, nil
	}
	if !expiresAt.After(b.now()) {
		delete(b.entries, jti)
		return false, nil
	}
	return true, nil
}

func (b *MemoryBlacklist) sweep(now time.Time) {
	for jti, expiresAt := range b.entries {
		if !expiresAt.After(now) {
			delete(b.entries, jti)
		}
	}
	b.lastSweep = now
}

func (b *MemoryBlacklist) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
