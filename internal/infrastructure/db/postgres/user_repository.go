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

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

// UserRepository persists user accounts in Postgres.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = "id, email, password, role, is_logged_in, profile_id, created_at"

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.IsLoggedIn, &u.ProfileID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password, role, is_logged_in, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		u.Email, u.Password, u.Role, u.IsLoggedIn, u.CreatedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) List(ctx context.Context, email, password string) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE ($1 = '' OR lower(email) = lower($1))
		   AND ($2 = '' OR password = $2)
		 ORDER BY id`,
		email, password,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, credential string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password = $2 WHERE id = $1`, id, credential)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetProfileID(ctx context.Context, userID, profileID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET profile_id = $2 WHERE id = $1`, userID, profileID)
	if err != nil {
		return fmt.Errorf("set profile id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AcquireSession flips the login flag with a single conditional write so two
// concurrent logins can never both win.
func (r *UserRepository) AcquireSession(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET is_logged_in = TRUE WHERE id = $1 AND is_logged_in = FALSE`, id)
	if err != nil {
		return false, fmt.Errorf("acquire session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepository) ReleaseSession(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx,
		`UPDATE users SET is_logged_in = FALSE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("release session: %w", err)
	}
	return nil
}
