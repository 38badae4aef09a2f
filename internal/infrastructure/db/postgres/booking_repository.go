package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// BookingRepository persists bookings in Postgres.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = "id, owner_id, guardian_id, pet_id, start_date, end_date, status, deposit_paid, total_price, created_at"

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.ID, &b.OwnerID, &b.GuardianID, &b.PetID, &b.Start, &b.End,
		&b.Status, &b.DepositPaid, &b.TotalPrice, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO bookings (`+bookingColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.OwnerID, b.GuardianID, b.PetID, b.Start, b.End,
		b.Status, b.DepositPaid, b.TotalPrice, b.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	return scanBooking(r.pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings
		 SET pet_id = $2, start_date = $3, end_date = $4, status = $5,
		     deposit_paid = $6, total_price = $7, created_at = $8
		 WHERE id = $1`,
		b.ID, b.PetID, b.Start, b.End, b.Status, b.DepositPaid, b.TotalPrice, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context, f ports.BookingFilter) ([]domain.Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE ($1 = '' OR owner_id = $1)
		   AND ($2 = '' OR guardian_id = $2)
		   AND (cardinality($3::text[]) = 0 OR lower(status) = ANY ($3::text[]))
		 ORDER BY created_at DESC, id DESC`,
		f.OwnerID, f.GuardianID, lowered(f.Statuses),
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) ExistsForPet(ctx context.Context, petID, guardianID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE pet_id = $1 AND guardian_id = $2)`,
		petID, guardianID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("booking exists for pet: %w", err)
	}
	return exists, nil
}

// lowered folds the status filter so matching stays case-insensitive.
// Always non-nil: cardinality() distinguishes "no filter" from "no match".
func lowered(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}
