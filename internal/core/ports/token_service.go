package ports

import "github.com/pethero/pethero-api/internal/core/domain"

// TokenService issues and verifies signed session tokens. Tokens are
// stateless bearer credentials: they stay cryptographically valid until
// expiry regardless of the isLoggedIn flag, which only gates new logins.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	// Verify checks signature, issuer and expiry and returns the principal
	// encoded in the token. Audience is not validated (see package doc of
	// the implementation).
	Verify(token string) (*Principal, error)
}
