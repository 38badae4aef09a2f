// Package authz holds the pure authorization predicates for role-scoped
// resources. Nothing here touches the store: callers fetch the records and
// pass them in, so the rules stay trivially testable.
package authz

import (
	"fmt"

	"github.com/pethero/pethero-api/internal/core/domain"
)

// CanAccessBooking reports whether the principal may read or mutate the
// booking. Owners reach bookings naming them as owner, guardians those naming
// them as guardian. Any other role yields false.
func CanAccessBooking(b *domain.Booking, userID, role string) bool {
	if b == nil || userID == "" {
		return false
	}
	switch role {
	case domain.RoleOwner:
		return b.OwnerID == userID
	case domain.RoleGuardian:
		return b.GuardianID == userID
	default:
		return false
	}
}

// CanViewPet reports whether the principal may read the pet. Owners see their
// own pets; a guardian sees a pet only when at least one booking references
// it with that guardian, regardless of booking status. The caller resolves
// guardianHasBooking against the store before asking.
func CanViewPet(p *domain.Pet, userID, role string, guardianHasBooking bool) bool {
	if p == nil || userID == "" {
		return false
	}
	switch role {
	case domain.RoleOwner:
		return p.OwnerID == userID
	case domain.RoleGuardian:
		return guardianHasBooking
	default:
		return false
	}
}

// CanManagePet reports whether the principal may create or delete the pet.
// Mutation is owner-only and restricted to the caller's own pets.
func CanManagePet(ownerID, userID, role string) bool {
	return role == domain.RoleOwner && userID != "" && ownerID == userID
}

// BookingListScope narrows list filters to the principal's own bookings. The
// returned ownerID/guardianID replace whatever the request asked for; an
// explicit filter naming somebody else is rejected with ErrForbidden rather
// than silently overridden.
func BookingListScope(userID, role, requestedOwnerID, requestedGuardianID string) (ownerID, guardianID string, err error) {
	switch role {
	case domain.RoleOwner:
		if requestedOwnerID != "" && requestedOwnerID != userID {
			return "", "", fmt.Errorf("list bookings: %w", domain.ErrForbidden)
		}
		return userID, requestedGuardianID, nil
	case domain.RoleGuardian:
		if requestedGuardianID != "" && requestedGuardianID != userID {
			return "", "", fmt.Errorf("list bookings: %w", domain.ErrForbidden)
		}
		return requestedOwnerID, userID, nil
	default:
		return "", "", fmt.Errorf("list bookings: %w", domain.ErrForbidden)
	}
}
