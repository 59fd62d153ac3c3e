// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/insight-dashboard/internal/auth"
	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

type Service struct {
	repo          Repository
	validator     *validator.Validate
	recordsNumber int
}

func NewService(repo Repository, recordsNumber int) *Service {
	if recordsNumber <= 0 {
		recordsNumber = core.DefaultRecordsNumber
	}
	return &Service{
		repo:          repo,
		validator:     core.NewValidator(),
		recordsNumber: recordsNumber,
	}
}

// ListUsers returns one page of the directory narrowed by the id and email
// query parameters, plus the total number of matches.
func (s *Service) ListUsers(
	ctx context.Context,
	params url.Values,
) ([]User, int, error) {
	filter, err := listFilterFromQuery(params)
	if err != nil {
		return nil, 0, err
	}

	page, err := core.ParsePagination(params, s.recordsNumber)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	offset, limit, err := page.Window(total)
	if err != nil {
		return nil, 0, err
	}

	users, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func listFilterFromQuery(params url.Values) (ListFilter, error) {
	filter := ListFilter{EmailPrefix: params.Get("email")}

	if raw := params.Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("id %q is not an integer: %w", raw, core.ErrInvalidInput)
		}
		filter.ID = &id
	}

	return filter, nil
}

// CreateUser adds a directory entry without a usable password.
func (s *Service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("create user: %w: %w", core.ErrInvalidInput, err)
	}

	user := &User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser overwrites only the fields given as non-empty strings.
func (s *Service) UpdateUser(
	ctx context.Context,
	id int64,
	req UpdateUserRequest,
) (*User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("update user: %w: %w", core.ErrInvalidInput, err)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByPhone(
	ctx context.Context,
	phone string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, email)
}

func (s *Service) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return s.repo.ExistsByPhone(ctx, phone)
}

func (s *Service) Create(
	ctx context.Context,
	u auth.NewUser,
) (*auth.UserInfo, error) {
	user := &User{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			return nil, auth.ErrEmailExists
		case errors.Is(err, ErrPhoneTaken):
			return nil, auth.ErrPhoneExists
		}
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

// CreateSuperuser provisions a staff superuser with a password, as used by
// the createsuperuser command.
func (s *Service) CreateSuperuser(
	ctx context.Context,
	req CreateUserRequest,
	password string,
) (*User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("create superuser: %w: %w", core.ErrInvalidInput, err)
	}

	if password == "" {
		return nil, fmt.Errorf("create superuser: password required: %w", core.ErrInvalidInput)
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsStaff:      u.IsStaff,
		IsSuperuser:  u.IsSuperuser,
		DateCreated:  u.DateCreated,
		DateUpdated:  u.DateUpdated,
	}
}

var _ auth.UserProvider = (*Service)(nil)
