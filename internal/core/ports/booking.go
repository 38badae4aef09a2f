package ports

import (
	"context"

	"github.com/pethero/pethero-api/internal/core/domain"
)

// CreateBookingInput carries a booking creation request. ID and CreatedAt may
// be supplied by the client (json-server parity); blank values are generated
// server-side. Status defaults to REQUESTED.
type CreateBookingInput struct {
	ID          string
	OwnerID     string
	GuardianID  string
	PetID       string
	Start       string
	End         string
	Status      string
	DepositPaid *bool
	TotalPrice  *float64
	CreatedAt   string
}

// UpdateBookingInput is a partial update: zero values leave the stored field
// untouched. OwnerID and GuardianID are accepted only when they match the
// stored values; bookings never change parties.
type UpdateBookingInput struct {
	OwnerID     string
	GuardianID  string
	PetID       string
	Start       string
	End         string
	Status      string
	DepositPaid *bool
	TotalPrice  *float64
	CreatedAt   string
}

// ListBookingsInput carries the caller's requested filters before the
// authorization scope is applied.
type ListBookingsInput struct {
	OwnerID    string
	GuardianID string
	Statuses   []string
}

// BookingService defines booking use-cases, all gated by the authorization
// guard for the given principal.
type BookingService interface {
	Create(ctx context.Context, p Principal, in CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, p Principal, id string) (*domain.Booking, error)
	Update(ctx context.Context, p Principal, id string, in UpdateBookingInput) (*domain.Booking, error)
	List(ctx context.Context, p Principal, in ListBookingsInput) ([]domain.Booking, error)
}

// BookingFilter is the effective, authorization-scoped repository filter.
type BookingFilter struct {
	OwnerID    string
	GuardianID string
	Statuses   []string // case-insensitive status match
}

// BookingRepository defines persistence for bookings.
type BookingRepository interface {
	// Create inserts the booking. Returns domain.ErrDuplicateID when the id
	// is already taken.
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	// List returns matches newest first.
	List(ctx context.Context, f BookingFilter) ([]domain.Booking, error)
	// ExistsForPet reports whether any booking references the pet with the
	// given guardian, regardless of status.
	ExistsForPet(ctx context.Context, petID, guardianID string) (bool, error)
}
