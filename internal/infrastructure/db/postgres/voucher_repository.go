package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pethero/pethero-api/internal/core/domain"
)

// VoucherRepository persists payment vouchers in Postgres.
type VoucherRepository struct {
	pool *pgxpool.Pool
}

func NewVoucherRepository(pool *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{pool: pool}
}

const voucherColumns = "id, booking_id, amount, due_date, status, created_at"

func scanVoucher(row pgx.Row) (*domain.PaymentVoucher, error) {
	var v domain.PaymentVoucher
	err := row.Scan(&v.ID, &v.BookingID, &v.Amount, &v.DueDate, &v.Status, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVoucherNotFound
		}
		return nil, fmt.Errorf("scan voucher: %w", err)
	}
	return &v, nil
}

func (r *VoucherRepository) Create(ctx context.Context, v *domain.PaymentVoucher) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payment_vouchers (`+voucherColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.BookingID, v.Amount, v.DueDate, v.Status, v.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("insert voucher: %w", err)
	}
	return nil
}

func (r *VoucherRepository) FindByID(ctx context.Context, id string) (*domain.PaymentVoucher, error) {
	return scanVoucher(r.pool.QueryRow(ctx,
		`SELECT `+voucherColumns+` FROM payment_vouchers WHERE id = $1`, id))
}

func (r *VoucherRepository) Update(ctx context.Context, v *domain.PaymentVoucher) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payment_vouchers
		 SET booking_id = $2, amount = $3, due_date = $4, status = $5, created_at = $6
		 WHERE id = $1`,
		v.ID, v.BookingID, v.Amount, v.DueDate, v.Status, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("update voucher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVoucherNotFound
	}
	return nil
}

func (r *VoucherRepository) ListByBooking(ctx context.Context, bookingID string) ([]domain.PaymentVoucher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+voucherColumns+` FROM payment_vouchers
		 WHERE booking_id = $1 ORDER BY created_at, id`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []domain.PaymentVoucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, *v)
	}
	return vouchers, rows.Err()
}
