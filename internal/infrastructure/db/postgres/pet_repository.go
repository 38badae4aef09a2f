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

// PetRepository persists pets in Postgres.
type PetRepository struct {
	pool *pgxpool.Pool
}

func NewPetRepository(pool *pgxpool.Pool) *PetRepository {
	return &PetRepository{pool: pool}
}

const petColumns = "id, owner_id, name, type, breed, size, photo_url, vaccine_calendar_url, notes"

func scanPet(row pgx.Row) (*domain.Pet, error) {
	var p domain.Pet
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Type, &p.Breed, &p.Size,
		&p.PhotoURL, &p.VaccineCalendarURL, &p.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPetNotFound
		}
		return nil, fmt.Errorf("scan pet: %w", err)
	}
	return &p, nil
}

func (r *PetRepository) Create(ctx context.Context, pet *domain.Pet) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO pets (`+petColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		pet.ID, pet.OwnerID, pet.Name, pet.Type, pet.Breed, pet.Size,
		pet.PhotoURL, pet.VaccineCalendarURL, pet.Notes,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

func (r *PetRepository) FindByID(ctx context.Context, id string) (*domain.Pet, error) {
	return scanPet(r.pool.QueryRow(ctx,
		`SELECT `+petColumns+` FROM pets WHERE id = $1`, id))
}

func (r *PetRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+petColumns+` FROM pets WHERE owner_id = $1 ORDER BY name, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()

	var pets []domain.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, *p)
	}
	return pets, rows.Err()
}

func (r *PetRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPetNotFound
	}
	return nil
}
