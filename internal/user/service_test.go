// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insight-dashboard/internal/auth"
	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

func TestProviderCreateTranslatesCollisions(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(), 10)

	info, err := svc.Create(ctx, auth.NewUser{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Phone:        "5550001",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.True(t, info.IsActive)
	assert.False(t, info.IsStaff)

	_, err = svc.Create(ctx, auth.NewUser{Email: "ada@example.com", Phone: "5550002"})
	assert.ErrorIs(t, err, auth.ErrEmailExists)

	_, err = svc.Create(ctx, auth.NewUser{Email: "other@example.com", Phone: "5550001"})
	assert.ErrorIs(t, err, auth.ErrPhoneExists)

	byPhone, err := svc.GetByPhone(ctx, "5550001")
	require.NoError(t, err)
	assert.Equal(t, info.ID, byPhone.ID)
	assert.Equal(t, "hash", byPhone.PasswordHash)

	_, err = svc.GetByPhone(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateSuperuser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(), 10)

	req := CreateUserRequest{
		FirstName: "Root",
		LastName:  "Admin",
		Email:     "root@example.com",
		Phone:     "5550000",
	}

	_, err := svc.CreateSuperuser(ctx, req, "")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	u, err := svc.CreateSuperuser(ctx, req, "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, u.IsStaff)
	assert.True(t, u.IsSuperuser)

	ok, err := core.VerifyPassword("s3cret-pass", u.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateUserValidates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	svc := NewService(repo, 10)

	u := &User{FirstName: "A", LastName: "B", Email: "a@example.com", Phone: "1"}
	require.NoError(t, repo.Create(ctx, u))

	_, err := svc.UpdateUser(ctx, u.ID, UpdateUserRequest{Email: "not-an-email"})
	require.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Contains(t, core.ValidationFieldErrors(err), "email")

	_, err = svc.UpdateUser(ctx, 999, UpdateUserRequest{FirstName: "X"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}
