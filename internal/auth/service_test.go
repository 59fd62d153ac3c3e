// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

func newTestService(t *testing.T) (*Service, *fakeUsers) {
	t.Helper()
	users := newFakeUsers()
	return NewService(newTestJWTManager(t), users, NewMemoryBlacklist()), users
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Phone:           "5550001",
		Password:        "analytical-engine",
		ConfirmPassword: "analytical-engine",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)

	resp, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "5550001", resp.Phone)
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)

	stored, err := users.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "analytical-engine", stored.PasswordHash)

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		want   error
	}{
		{"missing field", func(r *RegisterRequest) { r.LastName = "" }, ErrMissingFields},
		{"password mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "other" }, ErrPasswordMismatch},
		{"email taken", func(r *RegisterRequest) { r.Phone = "5550002" }, ErrEmailExists},
		{"phone taken", func(r *RegisterRequest) { r.Email = "other@example.com" }, ErrPhoneExists},
		{"phone too long", func(r *RegisterRequest) {
			r.Email = "long@example.com"
			r.Phone = "1234567890123456"
		}, core.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.mutate(&req)
			_, err := svc.Register(ctx, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)

	active := users.add(t, "5550001", "correct-horse", true)
	users.add(t, "5550002", "correct-horse", false)

	pair, err := svc.Login(ctx, LoginRequest{Phone: "5550001", Password: "correct-horse"})
	require.NoError(t, err)

	claims, err := svc.jwt.VerifyAccessToken(ctx, pair.Access)
	require.NoError(t, err)
	assert.Equal(t, active.ID, claims.UserID)

	tests := []struct {
		name string
		req  LoginRequest
		want error
	}{
		{"missing password", LoginRequest{Phone: "5550001"}, ErrMissingCredentials},
		{"missing phone", LoginRequest{Password: "x"}, ErrMissingCredentials},
		{"unknown phone", LoginRequest{Phone: "0000000", Password: "correct-horse"}, ErrInvalidCredentials},
		{"wrong password", LoginRequest{Phone: "5550001", Password: "battery-staple"}, ErrInvalidCredentials},
		{"inactive account", LoginRequest{Phone: "5550002", Password: "correct-horse"}, ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoginWithoutUsablePassword(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)

	_, err := users.Create(ctx, NewUser{Phone: "5550009", Email: "nopass@example.com"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Phone: "5550009", Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesAndBlacklists(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)
	u := users.add(t, "5550001", "correct-horse", true)

	first, err := svc.Login(ctx, LoginRequest{Phone: "5550001", Password: "correct-horse"})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, first.Refresh, second.Refresh)

	_, err = svc.Refresh(ctx, first.Refresh)
	assert.ErrorIs(t, err, core.ErrTokenRevoked, "a refresh token works once")

	_, err = svc.Refresh(ctx, second.Access)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	_, err = svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	users.remove(u.ID)
	_, err = svc.Refresh(ctx, second.Refresh)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestConcurrentRefreshRedeemsOnce(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)
	users.add(t, "5550001", "correct-horse", true)

	pair, err := svc.Login(ctx, LoginRequest{Phone: "5550001", Password: "correct-horse"})
	require.NoError(t, err)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Refresh(ctx, pair.Refresh); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, core.ErrTokenRevoked)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)
	u := users.add(t, "5550001", "correct-horse", true)
	other := users.add(t, "5550002", "correct-horse", true)

	pair, err := svc.Login(ctx, LoginRequest{Phone: "5550001", Password: "correct-horse"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Logout(ctx, other.ID, pair.Refresh), core.ErrForbidden)

	require.NoError(t, svc.Logout(ctx, u.ID, pair.Refresh))

	_, err = svc.Refresh(ctx, pair.Refresh)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}
