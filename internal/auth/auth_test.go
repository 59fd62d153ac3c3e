// AngelaMos | 2026
// auth_test.go

package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insight-dashboard/internal/config"
	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 7 * 24 * time.Hour,
		Issuer:             "insight-dashboard",
		Audience:           "insight-dashboard-api",
	}
}

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()

	key, err := generateKey()
	require.NoError(t, err)

	m, err := newJWTManager(key, testJWTConfig())
	require.NoError(t, err)
	return m
}

type fakeUsers struct {
	mu     sync.Mutex
	users  map[int64]*UserInfo
	nextID int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]*UserInfo{}, nextID: 1}
}

func (f *fakeUsers) add(t *testing.T, phone, password string, active bool) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	u, err := f.Create(context.Background(), NewUser{
		FirstName:    "Test",
		LastName:     "User",
		Email:        phone + "@example.com",
		Phone:        phone,
		PasswordHash: hash,
	})
	require.NoError(t, err)

	f.mu.Lock()
	f.users[u.ID].IsActive = active
	f.mu.Unlock()
	return u
}

func (f *fakeUsers) GetByPhone(_ context.Context, phone string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Phone == phone {
			c := *u
			return &c, nil
		}
	}
	return nil, fmt.Errorf("get user by phone: %w", core.ErrNotFound)
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) PhoneExists(ctx context.Context, phone string) (bool, error) {
	_, err := f.GetByPhone(ctx, phone)
	return err == nil, nil
}

func (f *fakeUsers) Create(_ context.Context, nu NewUser) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	u := &UserInfo{
		ID:           f.nextID,
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		Email:        nu.Email,
		Phone:        nu.Phone,
		PasswordHash: nu.PasswordHash,
		IsActive:     true,
		DateCreated:  now,
		DateUpdated:  now,
	}
	f.users[u.ID] = u
	f.nextID++

	c := *u
	return &c, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsers) remove(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}
