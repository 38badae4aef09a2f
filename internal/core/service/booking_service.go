package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pethero/pethero-api/internal/core/authz"
	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// BookingService implements booking use-cases behind the authorization guard.
type BookingService struct {
	repo ports.BookingRepository
	log  zerolog.Logger
}

var _ ports.BookingService = (*BookingService)(nil)

func NewBookingService(repo ports.BookingRepository, log zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, log: log}
}

// Create inserts a new booking. The caller must act as themselves: an owner
// creating a booking must be its ownerId, a guardian its guardianId.
func (s *BookingService) Create(ctx context.Context, p ports.Principal, in ports.CreateBookingInput) (*domain.Booking, error) {
	if in.OwnerID == "" || in.GuardianID == "" || in.PetID == "" || in.Start == "" || in.End == "" {
		return nil, fmt.Errorf("%w: ownerId, guardianId, petId, start and end are required", domain.ErrValidation)
	}

	booking := &domain.Booking{
		ID:         in.ID,
		OwnerID:    in.OwnerID,
		GuardianID: in.GuardianID,
		PetID:      in.PetID,
		Start:      in.Start,
		End:        in.End,
		Status:     in.Status,
		CreatedAt:  in.CreatedAt,
	}
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.Status == "" {
		booking.Status = domain.StatusRequested
	}
	if booking.CreatedAt == "" {
		booking.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	if in.DepositPaid != nil {
		booking.DepositPaid = *in.DepositPaid
	}
	booking.TotalPrice = in.TotalPrice

	if !authz.CanAccessBooking(booking, p.UserID, p.Role) {
		return nil, fmt.Errorf("create booking: %w", domain.ErrForbidden)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("booking_id", booking.ID).
		Str("owner_id", booking.OwnerID).
		Str("guardian_id", booking.GuardianID).
		Str("status", booking.Status).
		Msg("booking created")

	return booking, nil
}

// Get returns a single booking if the principal is one of its parties.
func (s *BookingService) Get(ctx context.Context, p ports.Principal, id string) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessBooking(booking, p.UserID, p.Role) {
		return nil, fmt.Errorf("get booking: %w", domain.ErrForbidden)
	}
	return booking, nil
}

// Update patches a booking. Either accessible party may change any field
// except ownerId and guardianId, which are immutable once set.
func (s *BookingService) Update(ctx context.Context, p ports.Principal, id string, in ports.UpdateBookingInput) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessBooking(booking, p.UserID, p.Role) {
		return nil, fmt.Errorf("update booking: %w", domain.ErrForbidden)
	}

	if in.OwnerID != "" && in.OwnerID != booking.OwnerID {
		return nil, fmt.Errorf("%w: ownerId cannot be changed", domain.ErrValidation)
	}
	if in.GuardianID != "" && in.GuardianID != booking.GuardianID {
		return nil, fmt.Errorf("%w: guardianId cannot be changed", domain.ErrValidation)
	}

	if in.PetID != "" {
		booking.PetID = in.PetID
	}
	if in.Start != "" {
		booking.Start = in.Start
	}
	if in.End != "" {
		booking.End = in.End
	}
	if in.Status != "" {
		booking.Status = in.Status
	}
	if in.DepositPaid != nil {
		booking.DepositPaid = *in.DepositPaid
	}
	if in.TotalPrice != nil {
		booking.TotalPrice = in.TotalPrice
	}
	if in.CreatedAt != "" {
		booking.CreatedAt = in.CreatedAt
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info().Str("booking_id", booking.ID).Str("status", booking.Status).Msg("booking updated")
	return booking, nil
}

// List returns the principal's bookings, newest first. The filter is forced
// to the caller's own id for their role; asking for somebody else's bookings
// is forbidden rather than silently narrowed.
func (s *BookingService) List(ctx context.Context, p ports.Principal, in ports.ListBookingsInput) ([]domain.Booking, error) {
	ownerID, guardianID, err := authz.BookingListScope(p.UserID, p.Role, in.OwnerID, in.GuardianID)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, ports.BookingFilter{
		OwnerID:    ownerID,
		GuardianID: guardianID,
		Statuses:   in.Statuses,
	})
}
