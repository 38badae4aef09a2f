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

// The smaller catalog collections share one file: straight CRUD with no
// branching beyond their filters.

func asDuplicate(err error, wrap string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateID
	}
	return fmt.Errorf("%s: %w", wrap, err)
}

// AvailabilityRepository persists guardian availability slots.
type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

const slotColumns = "id, guardian_id, start_date, end_date, created_at, updated_at"

func scanSlot(row pgx.Row) (*domain.AvailabilitySlot, error) {
	var s domain.AvailabilitySlot
	err := row.Scan(&s.ID, &s.GuardianID, &s.Start, &s.End, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan slot: %w", err)
	}
	return &s, nil
}

func (r *AvailabilityRepository) Create(ctx context.Context, s *domain.AvailabilitySlot) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO availability (`+slotColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.GuardianID, s.Start, s.End, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return asDuplicate(err, "insert slot")
	}
	return nil
}

func (r *AvailabilityRepository) FindByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error) {
	return scanSlot(r.pool.QueryRow(ctx,
		`SELECT `+slotColumns+` FROM availability WHERE id = $1`, id))
}

func (r *AvailabilityRepository) ListByGuardian(ctx context.Context, guardianID string) ([]domain.AvailabilitySlot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+slotColumns+` FROM availability
		 WHERE guardian_id = $1 ORDER BY start_date, id`, guardianID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.AvailabilitySlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *s)
	}
	return slots, rows.Err()
}

func (r *AvailabilityRepository) Update(ctx context.Context, s *domain.AvailabilitySlot) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE availability SET start_date = $2, end_date = $3, updated_at = $4 WHERE id = $1`,
		s.ID, s.Start, s.End, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM availability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FavoriteRepository persists owner bookmarks.
type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

const favoriteColumns = "id, owner_id, guardian_id, created_at"

func scanFavorite(row pgx.Row) (*domain.Favorite, error) {
	var f domain.Favorite
	err := row.Scan(&f.ID, &f.OwnerID, &f.GuardianID, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan favorite: %w", err)
	}
	return &f, nil
}

func (r *FavoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO favorites (`+favoriteColumns+`) VALUES ($1, $2, $3, $4)`,
		f.ID, f.OwnerID, f.GuardianID, f.CreatedAt,
	)
	if err != nil {
		return asDuplicate(err, "insert favorite")
	}
	return nil
}

func (r *FavoriteRepository) FindByID(ctx context.Context, id string) (*domain.Favorite, error) {
	return scanFavorite(r.pool.QueryRow(ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE id = $1`, id))
}

func (r *FavoriteRepository) List(ctx context.Context, ownerID, guardianID string) ([]domain.Favorite, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+favoriteColumns+` FROM favorites
		 WHERE ($1 = '' OR owner_id = $1)
		   AND ($2 = '' OR guardian_id = $2)
		 ORDER BY created_at, id`,
		ownerID, guardianID,
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, *f)
	}
	return favorites, rows.Err()
}

func (r *FavoriteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReviewRepository persists guardian reviews.
type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewColumns = "id, booking_id, owner_id, guardian_id, rating, comment, created_at"

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(&rv.ID, &rv.BookingID, &rv.OwnerID, &rv.GuardianID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	return &rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO reviews (`+reviewColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rv.ID, rv.BookingID, rv.OwnerID, rv.GuardianID, rv.Rating, rv.Comment, rv.CreatedAt,
	)
	if err != nil {
		return asDuplicate(err, "insert review")
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	return scanReview(r.pool.QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
}

func (r *ReviewRepository) ListByGuardian(ctx context.Context, guardianID string) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews
		 WHERE guardian_id = $1 ORDER BY created_at DESC, id DESC`, guardianID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE reviews SET rating = $2, comment = $3 WHERE id = $1`,
		rv.ID, rv.Rating, rv.Comment,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MessageRepository persists user-to-user messages.
type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

const messageColumns = "id, from_user_id, to_user_id, body, booking_id, status, created_at"

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var m domain.Message
	err := row.Scan(&m.ID, &m.FromUserID, &m.ToUserID, &m.Body, &m.BookingID, &m.Status, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan message: %w", err)
	}
	return &m, nil
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO messages (`+messageColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.FromUserID, m.ToUserID, m.Body, m.BookingID, m.Status, m.CreatedAt,
	)
	if err != nil {
		return asDuplicate(err, "insert message")
	}
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	return scanMessage(r.pool.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
}

func (r *MessageRepository) List(ctx context.Context, fromUserID, toUserID string) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE ($1 = '' OR from_user_id = $1)
		   AND ($2 = '' OR to_user_id = $2)
		 ORDER BY created_at, id`,
		fromUserID, toUserID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

// PaymentRepository records inert payment log entries.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payments (id, booking_id, amount, type, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.BookingID, p.Amount, p.Type, p.Status, p.CreatedAt,
	)
	if err != nil {
		return asDuplicate(err, "insert payment")
	}
	return nil
}
