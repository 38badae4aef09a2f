package domain

import "errors"

// Sentinel errors. Handlers never map these themselves; the central HTTP
// error handler translates each one to its status code.
var (
	// ErrValidation covers missing or malformed input (400). Wrap it with
	// fmt.Errorf("%w: detail", ...) to carry a message to the client.
	ErrValidation = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")

	ErrEmailTaken = errors.New("email already registered")
	// ErrActiveSession rejects a login while a previous session is still open.
	ErrActiveSession = errors.New("user already has an active session")
	ErrDuplicateID   = errors.New("resource already exists")
	ErrTooManyLogins = errors.New("too many login attempts")

	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrPetNotFound     = errors.New("pet not found")
	ErrVoucherNotFound = errors.New("payment voucher not found")
	// ErrNotFound is the generic lookup failure for catalog entities
	// (profiles, guardians, availability, favorites, reviews, messages).
	ErrNotFound = errors.New("resource not found")
)
