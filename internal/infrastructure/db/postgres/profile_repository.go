package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pethero/pethero-api/internal/core/domain"
)

// ProfileRepository persists user display profiles in Postgres.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = "id, user_id, display_name, phone, location, bio, avatar_url"

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.DisplayName, &p.Phone, &p.Location, &p.Bio, &p.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, display_name, phone, location, bio, avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+profileColumns,
		p.UserID, p.DisplayName, p.Phone, p.Location, p.Bio, p.AvatarURL,
	)
	created, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return created, nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id int64) (*domain.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

func (r *ProfileRepository) List(ctx context.Context, userID *int64) ([]domain.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE ($1::bigint IS NULL OR user_id = $1)
		 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles
		 SET display_name = $2, phone = $3, location = $4, bio = $5, avatar_url = $6
		 WHERE id = $1`,
		p.ID, p.DisplayName, p.Phone, p.Location, p.Bio, p.AvatarURL,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
