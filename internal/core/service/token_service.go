package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

const defaultTokenMinutes = 120

// TokenConfig captures the signing settings for session tokens.
type TokenConfig struct {
	Secret         string
	Issuer         string
	Audience       string
	ExpiresMinutes int
}

// sessionClaims is the wire shape of a session token: the registered claims
// plus the role, which downstream authorization reads directly from the
// verified token instead of re-checking the store on every request.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenService issues and verifies HS256 session tokens.
type JWTTokenService struct {
	key      []byte
	issuer   string
	audience string
	lifetime time.Duration
	now      func() time.Time // injectable for tests
}

var _ ports.TokenService = (*JWTTokenService)(nil)

// NewJWTTokenService builds the issuer. A signing key shorter than 32 bytes
// is a configuration error and fails construction, never a per-request error.
func NewJWTTokenService(cfg TokenConfig) (*JWTTokenService, error) {
	if len(cfg.Secret) < 32 {
		return nil, fmt.Errorf("token service: signing key must be at least 32 bytes")
	}
	minutes := cfg.ExpiresMinutes
	if minutes <= 0 {
		minutes = defaultTokenMinutes
	}
	return &JWTTokenService{
		key:      []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		lifetime: time.Duration(minutes) * time.Minute,
		now:      time.Now,
	}, nil
}

// Issue signs a token carrying the user id as subject and the role claim.
func (s *JWTTokenService) Issue(user *domain.User) (string, error) {
	now := s.now().UTC()
	claims := sessionClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer and expiry, and returns the
// principal. The audience claim is written on issue but not validated here,
// matching the existing clients; tightening it would invalidate none of them
// but is tracked as a deliberate follow-up, not slipped in silently.
func (s *JWTTokenService) Verify(tokenString string) (*ports.Principal, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token missing subject", domain.ErrUnauthorized)
	}
	return &ports.Principal{UserID: claims.Subject, Role: claims.Role}, nil
}
