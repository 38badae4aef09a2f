package ports

import (
	"context"

	"github.com/pethero/pethero-api/internal/core/domain"
)

// Repositories for the collaborator catalog surface: plain CRUD with
// filter-by-field lookups and no role logic. Handlers use these directly;
// there is nothing for a service layer to decide here.

// ProfileRepository persists user display profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	FindByID(ctx context.Context, id int64) (*domain.Profile, error)
	// List filters by userID when non-nil.
	List(ctx context.Context, userID *int64) ([]domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
}

// GuardianRepository persists marketplace catalog entries.
type GuardianRepository interface {
	Create(ctx context.Context, g *domain.Guardian) error
	FindByID(ctx context.Context, id string) (*domain.Guardian, error)
	// List filters by id when non-empty (json-server parity).
	List(ctx context.Context, id string) ([]domain.Guardian, error)
	Update(ctx context.Context, g *domain.Guardian) error
}

// AvailabilityRepository persists guardian availability slots.
type AvailabilityRepository interface {
	Create(ctx context.Context, s *domain.AvailabilitySlot) error
	FindByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error)
	// ListByGuardian returns slots ordered by start ascending.
	ListByGuardian(ctx context.Context, guardianID string) ([]domain.AvailabilitySlot, error)
	Update(ctx context.Context, s *domain.AvailabilitySlot) error
	Delete(ctx context.Context, id string) error
}

// FavoriteRepository persists owner bookmarks.
type FavoriteRepository interface {
	Create(ctx context.Context, f *domain.Favorite) error
	FindByID(ctx context.Context, id string) (*domain.Favorite, error)
	List(ctx context.Context, ownerID, guardianID string) ([]domain.Favorite, error)
	Delete(ctx context.Context, id string) error
}

// ReviewRepository persists guardian reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	// ListByGuardian returns reviews newest first.
	ListByGuardian(ctx context.Context, guardianID string) ([]domain.Review, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id string) error
}

// MessageRepository persists user-to-user messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// List filters by either side when non-empty, ordered oldest first.
	List(ctx context.Context, fromUserID, toUserID string) ([]domain.Message, error)
}

// PaymentRepository records inert payment log entries.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
}
