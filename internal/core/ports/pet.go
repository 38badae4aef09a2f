package ports

import (
	"context"

	"github.com/pethero/pethero-api/internal/core/domain"
)

// CreatePetInput carries a pet creation request. The ownerId is always the
// caller; supplying another owner's id is rejected.
type CreatePetInput struct {
	ID                 string
	OwnerID            string
	Name               string
	Type               string
	Breed              string
	Size               string
	PhotoURL           string
	VaccineCalendarURL string
	Notes              string
}

// PetService defines pet use-cases gated by the authorization guard.
type PetService interface {
	Create(ctx context.Context, p Principal, in CreatePetInput) (*domain.Pet, error)
	Get(ctx context.Context, p Principal, id string) (*domain.Pet, error)
	// List returns the caller's own pets; a guardian's list is always empty.
	List(ctx context.Context, p Principal) ([]domain.Pet, error)
	Delete(ctx context.Context, p Principal, id string) error
}

// PetRepository defines persistence for pets.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	FindByID(ctx context.Context, id string) (*domain.Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error)
	Delete(ctx context.Context, id string) error
}
