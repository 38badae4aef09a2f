package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pethero/pethero-api/internal/core/authz"
	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// PetService implements pet use-cases. Mutation is owner-only; guardians get
// read access to a pet only through a booking referencing it.
type PetService struct {
	pets     ports.PetRepository
	bookings ports.BookingRepository
	log      zerolog.Logger
}

var _ ports.PetService = (*PetService)(nil)

func NewPetService(pets ports.PetRepository, bookings ports.BookingRepository, log zerolog.Logger) *PetService {
	return &PetService{pets: pets, bookings: bookings, log: log}
}

func (s *PetService) Create(ctx context.Context, p ports.Principal, in ports.CreatePetInput) (*domain.Pet, error) {
	if in.Name == "" || in.Type == "" || in.Size == "" {
		return nil, fmt.Errorf("%w: name, type and size are required", domain.ErrValidation)
	}

	ownerID := in.OwnerID
	if ownerID == "" {
		ownerID = p.UserID
	}
	if !authz.CanManagePet(ownerID, p.UserID, p.Role) {
		return nil, fmt.Errorf("create pet: %w", domain.ErrForbidden)
	}

	pet := &domain.Pet{
		ID:                 in.ID,
		OwnerID:            ownerID,
		Name:               in.Name,
		Type:               in.Type,
		Breed:              in.Breed,
		Size:               in.Size,
		PhotoURL:           in.PhotoURL,
		VaccineCalendarURL: in.VaccineCalendarURL,
		Notes:              in.Notes,
	}
	if pet.ID == "" {
		pet.ID = uuid.NewString()
	}

	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, err
	}

	s.log.Info().Str("pet_id", pet.ID).Str("owner_id", pet.OwnerID).Msg("pet created")
	return pet, nil
}

func (s *PetService) Get(ctx context.Context, p ports.Principal, id string) (*domain.Pet, error) {
	pet, err := s.pets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hasBooking := false
	if p.Role == domain.RoleGuardian {
		hasBooking, err = s.bookings.ExistsForPet(ctx, pet.ID, p.UserID)
		if err != nil {
			return nil, fmt.Errorf("check pet bookings: %w", err)
		}
	}

	if !authz.CanViewPet(pet, p.UserID, p.Role, hasBooking) {
		return nil, fmt.Errorf("get pet: %w", domain.ErrForbidden)
	}
	return pet, nil
}

// List returns the caller's own pets. Guardians own no pets, so their list is
// empty by policy, not by accident of the store.
func (s *PetService) List(ctx context.Context, p ports.Principal) ([]domain.Pet, error) {
	if p.Role != domain.RoleOwner {
		return []domain.Pet{}, nil
	}
	return s.pets.ListByOwner(ctx, p.UserID)
}

func (s *PetService) Delete(ctx context.Context, p ports.Principal, id string) error {
	pet, err := s.pets.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanManagePet(pet.OwnerID, p.UserID, p.Role) {
		return fmt.Errorf("delete pet: %w", domain.ErrForbidden)
	}
	if err := s.pets.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("pet_id", id).Msg("pet deleted")
	return nil
}
