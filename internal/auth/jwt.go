// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/insight-dashboard/internal/config"
	"github.com/carterperez-dev/insight-dashboard/internal/core"
	"github.com/carterperez-dev/insight-dashboard/internal/middleware"
)

type tokenKind string

const (
	kindAccess  tokenKind = "access"
	kindRefresh tokenKind = "refresh"

	claimType        = "type"
	claimIsStaff     = "is_staff"
	claimIsSuperuser = "is_superuser"
)

type Subject struct {
	UserID      int64
	IsStaff     bool
	IsSuperuser bool
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RefreshClaims struct {
	Subject
	JTI       string
	ExpiresAt time.Time
}

type JWTManager struct {
	keys *signingKeys
	cfg  config.JWTConfig
	now  func() time.Time
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	keys, err := readSigningKeys(cfg.PrivateKeyPath)
	if err != nil {
		return nil, err
	}
	return &JWTManager{keys: keys, cfg: cfg, now: time.Now}, nil
}

func newJWTManager(private jwk.Key, cfg config.JWTConfig) (*JWTManager, error) {
	keys, err := newSigningKeys(private)
	if err != nil {
		return nil, err
	}
	return &JWTManager{keys: keys, cfg: cfg, now: time.Now}, nil
}

func (m *JWTManager) CreateTokenPair(s Subject) (*TokenPair, error) {
	access, err := m.issue(kindAccess, s, m.cfg.AccessTokenExpire)
	if err != nil {
		return nil, err
	}

	refresh, err := m.issue(kindRefresh, s, m.cfg.RefreshTokenExpire)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (m *JWTManager) issue(kind tokenKind, s Subject, ttl time.Duration) (string, error) {
	now := m.now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.NewString()).
		Issuer(m.cfg.Issuer).
		Audience([]string{m.cfg.Audience}).
		Subject(strconv.FormatInt(s.UserID, 10)).
		IssuedAt(now).
		NotBefore(now).
		Expiration(now.Add(ttl)).
		Claim(claimType, string(kind)).
		Claim(claimIsStaff, s.IsStaff).
		Claim(claimIsSuperuser, s.IsSuperuser).
		Build()
	if err != nil {
		return "", fmt.Errorf("build %s token: %w", kind, err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.keys.private))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return string(signed), nil
}

func (m *JWTManager) VerifyAccessToken(
	_ context.Context,
	raw string,
) (*middleware.AccessTokenClaims, error) {
	token, s, err := m.parse(raw, kindAccess)
	if err != nil {
		return nil, err
	}

	jti, _ := token.JwtID()
	return &middleware.AccessTokenClaims{
		UserID:      s.UserID,
		IsStaff:     s.IsStaff,
		IsSuperuser: s.IsSuperuser,
		JTI:         jti,
	}, nil
}

func (m *JWTManager) VerifyRefreshToken(raw string) (*RefreshClaims, error) {
	token, s, err := m.parse(raw, kindRefresh)
	if err != nil {
		return nil, err
	}

	jti, ok := token.JwtID()
	if !ok || jti == "" {
		return nil, invalidToken("no jti")
	}
	exp, _ := token.Expiration()

	return &RefreshClaims{Subject: s, JTI: jti, ExpiresAt: exp}, nil
}

// parse checks signature, issuer, audience and time bounds, then that the
// token is of the wanted kind and carries every subject claim.
func (m *JWTManager) parse(raw string, want tokenKind) (jwt.Token, Subject, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.ES256(), m.keys.public),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithAudience(m.cfg.Audience),
	)
	if err != nil {
		if expired(err) {
			return nil, Subject{}, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, Subject{}, invalidToken(err.Error())
	}

	var kind string
	if err := token.Get(claimType, &kind); err != nil || tokenKind(kind) != want {
		return nil, Subject{}, invalidToken("want " + string(want) + " token")
	}

	sub, _ := token.Subject()
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, Subject{}, invalidToken("bad subject")
	}

	s := Subject{UserID: id}
	if token.Get(claimIsStaff, &s.IsStaff) != nil || token.Get(claimIsSuperuser, &s.IsSuperuser) != nil {
		return nil, Subject{}, invalidToken("missing role claims")
	}

	return token, s, nil
}

func invalidToken(reason string) error {
	return fmt.Errorf("verify token: %s: %w", reason, core.ErrTokenInvalid)
}

func expired(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "exp") && strings.Contains(msg, "not satisfied")
}
