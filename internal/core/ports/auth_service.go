package ports

import (
	"context"

	"github.com/pethero/pethero-api/internal/core/domain"
)

// RegisterProfileInput is the optional profile payload accepted at
// registration. DisplayName defaults to the email when blank.
type RegisterProfileInput struct {
	DisplayName string
	Phone       string
	Location    string
	Bio         string
	AvatarURL   string
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Email    string
	Password string
	Role     string
	Profile  *RegisterProfileInput
}

// AuthenticatedUser is the principal view returned alongside a token.
type AuthenticatedUser struct {
	ID        int64
	Email     string
	Role      string
	ProfileID *int64
	Profile   *domain.Profile
}

// AuthResult pairs a freshly issued session token with the user view.
type AuthResult struct {
	Token string
	User  AuthenticatedUser
}

// AuthService defines registration, login and logout use-cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Logout clears the session flag for the user named by the token
	// subject. Idempotent: logging out an already logged-out user succeeds.
	Logout(ctx context.Context, userID string) error
}
