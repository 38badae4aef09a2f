package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis). A nil throttle
// disables throttling entirely.
type LoginThrottle interface {
	// TooMany reports whether the account has exceeded the failure budget
	// within the current window.
	TooMany(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration, login with credential migration,
// single-session enforcement, and logout.
type AuthService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	tokens   ports.TokenService
	throttle LoginThrottle
	log      zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	tokens ports.TokenService,
	throttle LoginThrottle,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, profiles: profiles, tokens: tokens, throttle: throttle, log: log}
}

// Register creates an account with a bcrypt-hashed credential, optionally a
// linked profile, and returns a session token with the user view.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := strings.ToLower(strings.TrimSpace(in.Role))

	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if role == "" {
		return nil, fmt.Errorf("%w: role is required", domain.ErrValidation)
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be owner or guardian", domain.ErrValidation)
	}

	// The unique index on lower(email) still catches a concurrent
	// registration that slips past this check.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:      email,
		Password:   string(hash),
		Role:       role,
		IsLoggedIn: false,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}

	var profile *domain.Profile
	if in.Profile != nil {
		displayName := strings.TrimSpace(in.Profile.DisplayName)
		if displayName == "" {
			displayName = email
		}
		profile, err = s.profiles.Create(ctx, &domain.Profile{
			UserID:      user.ID,
			DisplayName: displayName,
			Phone:       in.Profile.Phone,
			Location:    in.Profile.Location,
			Bio:         in.Profile.Bio,
			AvatarURL:   in.Profile.AvatarURL,
		})
		if err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		if err := s.users.SetProfileID(ctx, user.ID, profile.ID); err != nil {
			return nil, fmt.Errorf("link profile: %w", err)
		}
		user.ProfileID = &profile.ID
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("user registered")

	return &ports.AuthResult{Token: token, User: authenticatedUser(user, profile)}, nil
}

// Login verifies credentials, migrates legacy plaintext passwords to bcrypt
// on first success, and acquires the single per-account session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, proceeding")
		} else if blocked {
			return nil, domain.ErrTooManyLogins
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Same answer as a bad password so probes cannot enumerate accounts.
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if !s.verifyPassword(ctx, user, password) {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	// Single conditional write: the flag flips only if it was false, so two
	// concurrent logins cannot both win the race.
	acquired, err := s.users.AcquireSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("acquire session: %w", err)
	}
	if !acquired {
		return nil, domain.ErrActiveSession
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		// Do not strand the account behind the session flag we just set.
		if relErr := s.users.ReleaseSession(ctx, user.ID); relErr != nil {
			s.log.Error().Err(relErr).Int64("user_id", user.ID).Msg("failed to release session after token error")
		}
		return nil, err
	}

	user.IsLoggedIn = true
	s.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("user logged in")

	var profile *domain.Profile
	if user.ProfileID != nil {
		if p, err := s.profiles.FindByID(ctx, *user.ProfileID); err == nil {
			profile = p
		}
	}

	return &ports.AuthResult{Token: token, User: authenticatedUser(user, profile)}, nil
}

// Logout clears the session flag for the token subject. Idempotent: a second
// logout still reports success.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: unresolvable token subject", domain.ErrUnauthorized)
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: no user for token subject", domain.ErrUnauthorized)
	}

	if err := s.users.ReleaseSession(ctx, id); err != nil {
		return fmt.Errorf("release session: %w", err)
	}

	s.log.Info().Int64("user_id", id).Msg("user logged out")
	return nil
}

// verifyPassword checks the supplied password against the stored credential.
// Hashed credentials take the bcrypt path. Legacy plaintext credentials are
// compared directly and, on match, re-hashed and persisted: a one-way,
// one-time migration per account. A failed migration write is logged and
// ignored: it must never block the login itself.
func (s *AuthService) verifyPassword(ctx context.Context, user *domain.User, password string) bool {
	if isBcryptHash(user.Password) {
		return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("password re-hash failed, keeping legacy credential")
		return true
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to persist migrated password hash")
		return true
	}
	user.Password = string(hash)
	s.log.Info().Int64("user_id", user.ID).Msg("legacy password migrated to bcrypt")
	return true
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

// isBcryptHash reports whether the stored credential is in bcrypt format.
func isBcryptHash(credential string) bool {
	return strings.HasPrefix(credential, "$2a$") ||
		strings.HasPrefix(credential, "$2b$") ||
		strings.HasPrefix(credential, "$2y$")
}

func authenticatedUser(u *domain.User, p *domain.Profile) ports.AuthenticatedUser {
	return ports.AuthenticatedUser{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		ProfileID: u.ProfileID,
		Profile:   p,
	}
}
