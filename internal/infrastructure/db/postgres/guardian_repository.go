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

// GuardianRepository persists guardian catalog entries in Postgres.
type GuardianRepository struct {
	pool *pgxpool.Pool
}

func NewGuardianRepository(pool *pgxpool.Pool) *GuardianRepository {
	return &GuardianRepository{pool: pool}
}

const guardianColumns = "id, name, bio, price_per_night, accepted_types, accepted_sizes, photos, avatar_url, rating_avg, rating_count, city"

func scanGuardian(row pgx.Row) (*domain.Guardian, error) {
	var g domain.Guardian
	err := row.Scan(&g.ID, &g.Name, &g.Bio, &g.PricePerNight, &g.AcceptedTypes,
		&g.AcceptedSizes, &g.Photos, &g.AvatarURL, &g.RatingAvg, &g.RatingCount, &g.City)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan guardian: %w", err)
	}
	return &g, nil
}

func (r *GuardianRepository) Create(ctx context.Context, g *domain.Guardian) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO guardians (`+guardianColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		g.ID, g.Name, g.Bio, g.PricePerNight, g.AcceptedTypes, g.AcceptedSizes,
		g.Photos, g.AvatarURL, g.RatingAvg, g.RatingCount, g.City,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("insert guardian: %w", err)
	}
	return nil
}

func (r *GuardianRepository) FindByID(ctx context.Context, id string) (*domain.Guardian, error) {
	return scanGuardian(r.pool.QueryRow(ctx,
		`SELECT `+guardianColumns+` FROM guardians WHERE id = $1`, id))
}

func (r *GuardianRepository) List(ctx context.Context, id string) ([]domain.Guardian, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+guardianColumns+` FROM guardians
		 WHERE ($1 = '' OR id = $1)
		 ORDER BY name, id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("list guardians: %w", err)
	}
	defer rows.Close()

	var guardians []domain.Guardian
	for rows.Next() {
		g, err := scanGuardian(rows)
		if err != nil {
			return nil, err
		}
		guardians = append(guardians, *g)
	}
	return guardians, rows.Err()
}

func (r *GuardianRepository) Update(ctx context.Context, g *domain.Guardian) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE guardians
		 SET name = $2, bio = $3, price_per_night = $4, accepted_types = $5,
		     accepted_sizes = $6, photos = $7, avatar_url = $8, rating_avg = $9,
		     rating_count = $10, city = $11
		 WHERE id = $1`,
		g.ID, g.Name, g.Bio, g.PricePerNight, g.AcceptedTypes, g.AcceptedSizes,
		g.Photos, g.AvatarURL, g.RatingAvg, g.RatingCount, g.City,
	)
	if err != nil {
		return fmt.Errorf("update guardian: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
