package authz

import (
	"errors"
	"testing"

	"github.com/pethero/pethero-api/internal/core/domain"
)

func TestCanAccessBooking(t *testing.T) {
	booking := &domain.Booking{ID: "b1", OwnerID: "1", GuardianID: "2"}

	cases := []struct {
		name   string
		userID string
		role   string
		want   bool
	}{
		{"owner on own booking", "1", domain.RoleOwner, true},
		{"guardian on own booking", "2", domain.RoleGuardian, true},
		{"owner id as guardian role", "1", domain.RoleGuardian, false},
		{"guardian id as owner role", "2", domain.RoleOwner, false},
		{"unrelated user", "3", domain.RoleOwner, false},
		{"unrelated guardian", "3", domain.RoleGuardian, false},
		{"unknown role", "1", "admin", false},
		{"empty role", "1", "", false},
		{"empty user", "", domain.RoleOwner, false},
	}
	for _, tc := range cases {
		if got := CanAccessBooking(booking, tc.userID, tc.role); got != tc.want {
			t.Errorf("%s: CanAccessBooking = %v, want %v", tc.name, got, tc.want)
		}
	}

	if CanAccessBooking(nil, "1", domain.RoleOwner) {
		t.Errorf("nil booking must never be accessible")
	}
}

func TestCanViewPet(t *testing.T) {
	pet := &domain.Pet{ID: "p1", OwnerID: "1"}

	if !CanViewPet(pet, "1", domain.RoleOwner, false) {
		t.Errorf("owner must see own pet")
	}
	if CanViewPet(pet, "2", domain.RoleOwner, false) {
		t.Errorf("other owner must not see pet")
	}
	if !CanViewPet(pet, "2", domain.RoleGuardian, true) {
		t.Errorf("guardian with a booking for the pet must see it")
	}
	if CanViewPet(pet, "2", domain.RoleGuardian, false) {
		t.Errorf("guardian without a booking must not see pet")
	}
	if CanViewPet(pet, "1", "admin", true) {
		t.Errorf("unknown role must not see pet")
	}
}

func TestCanManagePet(t *testing.T) {
	if !CanManagePet("1", "1", domain.RoleOwner) {
		t.Errorf("owner must manage own pet")
	}
	if CanManagePet("1", "2", domain.RoleOwner) {
		t.Errorf("owner must not manage another owner's pet")
	}
	if CanManagePet("1", "1", domain.RoleGuardian) {
		t.Errorf("guardians never manage pets")
	}
}

func TestBookingListScope_Owner(t *testing.T) {
	ownerID, guardianID, err := BookingListScope("1", domain.RoleOwner, "", "9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ownerID != "1" || guardianID != "9" {
		t.Fatalf("scope = (%q, %q), want (1, 9)", ownerID, guardianID)
	}

	// Explicit self filter is allowed.
	if _, _, err := BookingListScope("1", domain.RoleOwner, "1", ""); err != nil {
		t.Fatalf("self filter rejected: %v", err)
	}

	// Filter naming somebody else is rejected, not overridden.
	if _, _, err := BookingListScope("1", domain.RoleOwner, "2", ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBookingListScope_Guardian(t *testing.T) {
	ownerID, guardianID, err := BookingListScope("2", domain.RoleGuardian, "5", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ownerID != "5" || guardianID != "2" {
		t.Fatalf("scope = (%q, %q), want (5, 2)", ownerID, guardianID)
	}

	if _, _, err := BookingListScope("2", domain.RoleGuardian, "", "7"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBookingListScope_UnknownRole(t *testing.T) {
	if _, _, err := BookingListScope("1", "", "", ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for empty role, got %v", err)
	}
}
