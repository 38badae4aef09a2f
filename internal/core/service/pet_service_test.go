package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

type stubPetRepo struct {
	pets map[string]*domain.Pet
}

func newStubPetRepo() *stubPetRepo {
	return &stubPetRepo{pets: make(map[string]*domain.Pet)}
}

func (r *stubPetRepo) Create(_ context.Context, p *domain.Pet) error {
	if _, ok := r.pets[p.ID]; ok {
		return domain.ErrDuplicateID
	}
	clone := *p
	r.pets[p.ID] = &clone
	return nil
}

func (r *stubPetRepo) FindByID(_ context.Context, id string) (*domain.Pet, error) {
	p, ok := r.pets[id]
	if !ok {
		return nil, domain.ErrPetNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPetRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Pet, error) {
	var out []domain.Pet
	for _, p := range r.pets {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.pets[id]; !ok {
		return domain.ErrPetNotFound
	}
	delete(r.pets, id)
	return nil
}

func newTestPetService(pets *stubPetRepo, bookings *stubBookingRepo) *PetService {
	return NewPetService(pets, bookings, zerolog.Nop())
}

func TestPetService_Create_OwnerOnly(t *testing.T) {
	pets := newStubPetRepo()
	svc := newTestPetService(pets, newStubBookingRepo())

	created, err := svc.Create(context.Background(), ownerA, ports.CreatePetInput{
		Name: "Luna", Type: "DOG", Size: "MEDIUM",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.OwnerID != "1" {
		t.Fatalf("ownerId = %q, want caller id", created.OwnerID)
	}

	// Guardians cannot create pets.
	if _, err := svc.Create(context.Background(), guardianB, ports.CreatePetInput{
		Name: "Max", Type: "DOG", Size: "SMALL",
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Owners cannot create pets for another owner.
	if _, err := svc.Create(context.Background(), ownerA, ports.CreatePetInput{
		OwnerID: "3", Name: "Max", Type: "DOG", Size: "SMALL",
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPetService_Create_Validation(t *testing.T) {
	svc := newTestPetService(newStubPetRepo(), newStubBookingRepo())

	if _, err := svc.Create(context.Background(), ownerA, ports.CreatePetInput{Name: "Luna"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPetService_Get_GuardianNeedsBooking(t *testing.T) {
	pets := newStubPetRepo()
	bookings := newStubBookingRepo()
	svc := newTestPetService(pets, bookings)

	_ = pets.Create(context.Background(), &domain.Pet{ID: "pet-1", OwnerID: "1", Name: "Luna", Type: "DOG", Size: "MEDIUM"})

	if _, err := svc.Get(context.Background(), ownerA, "pet-1"); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	// Guardian with no booking referencing the pet is rejected.
	if _, err := svc.Get(context.Background(), guardianB, "pet-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Any booking referencing the pet grants read, whatever its status.
	_ = bookings.Create(context.Background(), &domain.Booking{
		ID: "b1", OwnerID: "1", GuardianID: "2", PetID: "pet-1", Status: "REJECTED",
	})
	if _, err := svc.Get(context.Background(), guardianB, "pet-1"); err != nil {
		t.Fatalf("guardian with booking should read pet: %v", err)
	}

	// Another owner never sees it.
	if _, err := svc.Get(context.Background(), ownerC, "pet-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPetService_List(t *testing.T) {
	pets := newStubPetRepo()
	svc := newTestPetService(pets, newStubBookingRepo())

	_ = pets.Create(context.Background(), &domain.Pet{ID: "pet-1", OwnerID: "1", Name: "Luna", Type: "DOG", Size: "MEDIUM"})
	_ = pets.Create(context.Background(), &domain.Pet{ID: "pet-2", OwnerID: "3", Name: "Max", Type: "CAT", Size: "SMALL"})

	got, err := svc.List(context.Background(), ownerA)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "pet-1" {
		t.Fatalf("owner list = %+v, want [pet-1]", got)
	}

	// Guardians have no pets: always an empty list, not an error.
	got, err = svc.List(context.Background(), guardianB)
	if err != nil {
		t.Fatalf("guardian list failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("guardian list = %+v, want empty", got)
	}
}

func TestPetService_Delete(t *testing.T) {
	pets := newStubPetRepo()
	svc := newTestPetService(pets, newStubBookingRepo())

	_ = pets.Create(context.Background(), &domain.Pet{ID: "pet-1", OwnerID: "1", Name: "Luna", Type: "DOG", Size: "MEDIUM"})

	if err := svc.Delete(context.Background(), ownerC, "pet-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), ownerA, "pet-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), ownerA, "pet-1"); !errors.Is(err, domain.ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
}
