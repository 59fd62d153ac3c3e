// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailExists        = errors.New("email already exists")
	ErrPhoneExists        = errors.New("phone number already exists")
	ErrMissingCredentials = errors.New("missing phone or password")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserInfo struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	DateCreated  time.Time
	DateUpdated  time.Time
}

func (u *UserInfo) subject() Subject {
	return Subject{UserID: u.ID, IsStaff: u.IsStaff, IsSuperuser: u.IsSuperuser}
}

type NewUser struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
}

type UserProvider interface {
	GetByPhone(ctx context.Context, phone string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	Create(ctx context.Context, u NewUser) (*UserInfo, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
	blacklist    Blacklist
	validator    *validator.Validate
}

func NewService(
	jwt *JWTManager,
	userProvider UserProvider,
	blacklist Blacklist,
) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
		blacklist:    blacklist,
		validator:    core.NewValidator(),
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*RegisterResponse, error) {
	if !req.complete() {
		return nil, ErrMissingFields
	}

	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("register: %w: %w", core.ErrInvalidInput, err)
	}

	exists, err := s.userProvider.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	exists, err = s.userProvider.PhoneExists(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("check phone: %w", err)
	}
	if exists {
		return nil, ErrPhoneExists
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, NewUser{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) || errors.Is(err, ErrPhoneExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	tokens, err := s.jwt.CreateTokenPair(user.subject())
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)

	return &RegisterResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		DateCreated: user.DateCreated,
		DateUpdated: user.DateUpdated,
		Access:      tokens.Access,
		Refresh:     tokens.Refresh,
	}, nil
}

// Login authenticates by phone and password. Unknown phones, wrong
// passwords and inactive accounts are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	if req.Phone == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.userProvider.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // keeps unknown phones as slow as known ones
			_, _, _ = core.CheckPassword(req.Password, "")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.CheckPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.userProvider.UpdatePassword(ctx, user.ID, newHash)
	}

	return s.jwt.CreateTokenPair(user.subject())
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.verifyRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userProvider.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("refresh: inactive user: %w", core.ErrTokenInvalid)
	}

	if err := s.redeem(ctx, claims); err != nil {
		return nil, err
	}

	return s.jwt.CreateTokenPair(user.subject())
}

func (s *Service) Logout(ctx context.Context, userID int64, refreshToken string) error {
	claims, err := s.verifyRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}

	if claims.UserID != userID {
		return fmt.Errorf("logout: %w", core.ErrForbidden)
	}

	return s.redeem(ctx, claims)
}

func (s *Service) redeem(ctx context.Context, claims *RefreshClaims) error {
	revoked, err := s.blacklist.Revoke(ctx, claims.JTI, claims.ExpiresAt)
	if err != nil {
		return err
	}
	if !revoked {
		return fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
	}
	return nil
}

func (s *Service) verifyRefresh(
	ctx context.Context,
	refreshToken string,
) (*RefreshClaims, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token required: %w", core.ErrInvalidInput)
	}

	claims, err := s.jwt.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}
