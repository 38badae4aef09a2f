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

// VoucherService implements payment voucher use-cases. Access is always
// resolved in two steps (voucher, then its parent booking) and the booking
// guard decides; voucher fields alone never grant access.
type VoucherService struct {
	vouchers ports.VoucherRepository
	bookings ports.BookingRepository
	log      zerolog.Logger
}

var _ ports.VoucherService = (*VoucherService)(nil)

func NewVoucherService(vouchers ports.VoucherRepository, bookings ports.BookingRepository, log zerolog.Logger) *VoucherService {
	return &VoucherService{vouchers: vouchers, bookings: bookings, log: log}
}

func (s *VoucherService) Create(ctx context.Context, p ports.Principal, in ports.CreateVoucherInput) (*domain.PaymentVoucher, error) {
	if in.BookingID == "" || in.Amount == nil || in.DueDate == "" || in.Status == "" {
		return nil, fmt.Errorf("%w: bookingId, amount, dueDate and status are required", domain.ErrValidation)
	}

	if err := s.requireBookingAccess(ctx, p, in.BookingID, "create voucher"); err != nil {
		return nil, err
	}

	voucher := &domain.PaymentVoucher{
		ID:        in.ID,
		BookingID: in.BookingID,
		Amount:    *in.Amount,
		DueDate:   in.DueDate,
		Status:    in.Status,
		CreatedAt: in.CreatedAt,
	}
	if voucher.ID == "" {
		voucher.ID = uuid.NewString()
	}
	if voucher.CreatedAt == "" {
		voucher.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	if err := s.vouchers.Create(ctx, voucher); err != nil {
		return nil, err
	}

	s.log.Info().Str("voucher_id", voucher.ID).Str("booking_id", voucher.BookingID).Msg("payment voucher created")
	return voucher, nil
}

func (s *VoucherService) Get(ctx context.Context, p ports.Principal, id string) (*domain.PaymentVoucher, error) {
	voucher, err := s.vouchers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireBookingAccess(ctx, p, voucher.BookingID, "get voucher"); err != nil {
		return nil, err
	}
	return voucher, nil
}

func (s *VoucherService) Update(ctx context.Context, p ports.Principal, id string, in ports.UpdateVoucherInput) (*domain.PaymentVoucher, error) {
	voucher, err := s.vouchers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireBookingAccess(ctx, p, voucher.BookingID, "update voucher"); err != nil {
		return nil, err
	}

	if in.BookingID != "" && in.BookingID != voucher.BookingID {
		// Re-parenting a voucher needs access to the target booking too.
		if err := s.requireBookingAccess(ctx, p, in.BookingID, "update voucher"); err != nil {
			return nil, err
		}
		voucher.BookingID = in.BookingID
	}
	if in.Amount != nil {
		voucher.Amount = *in.Amount
	}
	if in.DueDate != "" {
		voucher.DueDate = in.DueDate
	}
	if in.Status != "" {
		voucher.Status = in.Status
	}
	if in.CreatedAt != "" {
		voucher.CreatedAt = in.CreatedAt
	}

	if err := s.vouchers.Update(ctx, voucher); err != nil {
		return nil, err
	}

	s.log.Info().Str("voucher_id", voucher.ID).Str("status", voucher.Status).Msg("payment voucher updated")
	return voucher, nil
}

func (s *VoucherService) ListByBooking(ctx context.Context, p ports.Principal, bookingID string) ([]domain.PaymentVoucher, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: bookingId query parameter is required", domain.ErrValidation)
	}
	if err := s.requireBookingAccess(ctx, p, bookingID, "list vouchers"); err != nil {
		return nil, err
	}
	return s.vouchers.ListByBooking(ctx, bookingID)
}

// requireBookingAccess fetches the parent booking and applies the booking
// guard for the principal.
func (s *VoucherService) requireBookingAccess(ctx context.Context, p ports.Principal, bookingID, op string) error {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !authz.CanAccessBooking(booking, p.UserID, p.Role) {
		return fmt.Errorf("%s: %w", op, domain.ErrForbidden)
	}
	return nil
}
