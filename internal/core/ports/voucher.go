package ports

import (
	"context"

	"github.com/pethero/pethero-api/internal/core/domain"
)

// CreateVoucherInput carries a payment voucher creation request. Amount is a
// pointer so presence can be told apart from an explicit zero, which is a
// valid amount.
type CreateVoucherInput struct {
	ID        string
	BookingID string
	Amount    *float64
	DueDate   string
	Status    string
	CreatedAt string
}

// UpdateVoucherInput is a partial update; zero values keep stored fields.
type UpdateVoucherInput struct {
	BookingID string
	Amount    *float64
	DueDate   string
	Status    string
	CreatedAt string
}

// VoucherService defines payment voucher use-cases. A voucher has no access
// rules of its own: every operation resolves the parent booking and applies
// the booking guard to it.
type VoucherService interface {
	Create(ctx context.Context, p Principal, in CreateVoucherInput) (*domain.PaymentVoucher, error)
	Get(ctx context.Context, p Principal, id string) (*domain.PaymentVoucher, error)
	Update(ctx context.Context, p Principal, id string, in UpdateVoucherInput) (*domain.PaymentVoucher, error)
	ListByBooking(ctx context.Context, p Principal, bookingID string) ([]domain.PaymentVoucher, error)
}

// VoucherRepository defines persistence for payment vouchers.
type VoucherRepository interface {
	Create(ctx context.Context, v *domain.PaymentVoucher) error
	FindByID(ctx context.Context, id string) (*domain.PaymentVoucher, error)
	Update(ctx context.Context, v *domain.PaymentVoucher) error
	ListByBooking(ctx context.Context, bookingID string) ([]domain.PaymentVoucher, error)
}
