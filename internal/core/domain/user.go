package domain

const (
	RoleOwner    = "owner"
	RoleGuardian = "guardian"
)

// ValidRole reports whether role is one of the two marketplace roles.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleGuardian
}

// User models an authenticated account. Password holds the stored credential:
// a bcrypt hash for accounts created through registration, or a legacy
// plaintext value for accounts imported before hashing existed. Legacy
// credentials are migrated to bcrypt on first successful login.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Password   string `json:"-"`
	Role       string `json:"role"`
	IsLoggedIn bool   `json:"isLoggedIn"`
	ProfileID  *int64 `json:"profileId,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// Profile is the optional display profile linked to a user.
type Profile struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone,omitempty"`
	Location    string `json:"location,omitempty"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}
