package ports

import (
	"context"

	"github.com/pethero/pethero-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts and their session
// flag. Email lookups are case-insensitive.
type UserRepository interface {
	// Create inserts the user and assigns its id.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// List supports the directory surface: optional equality filters on
	// email and on the stored credential (json-server parity).
	List(ctx context.Context, email, password string) ([]domain.User, error)
	// UpdatePassword overwrites the stored credential (used by the one-time
	// plaintext-to-hash migration on login).
	UpdatePassword(ctx context.Context, id int64, credential string) error
	SetProfileID(ctx context.Context, userID, profileID int64) error
	// AcquireSession flips isLoggedIn to true only when it is currently
	// false, as a single conditional write. Returns false when the user
	// already holds an active session. This is the single-session gate; it
	// must never be implemented as a separate check followed by a save.
	AcquireSession(ctx context.Context, id int64) (bool, error)
	// ReleaseSession sets isLoggedIn to false. Idempotent.
	ReleaseSession(ctx context.Context, id int64) error
}
