package domain

// Guardian is the marketplace catalog entry for a pet sitter. Its id is the
// string form of the guardian user's id so bookings can reference either.
type Guardian struct {
	ID            string   `json:"id"`
	Name          string   `json:"name,omitempty"`
	Bio           string   `json:"bio,omitempty"`
	PricePerNight float64  `json:"pricePerNight"`
	AcceptedTypes []string `json:"acceptedTypes"`
	AcceptedSizes []string `json:"acceptedSizes"`
	Photos        []string `json:"photos,omitempty"`
	AvatarURL     string   `json:"avatarUrl,omitempty"`
	RatingAvg     *float64 `json:"ratingAvg,omitempty"`
	RatingCount   *int     `json:"ratingCount,omitempty"`
	City          string   `json:"city,omitempty"`
}

// AvailabilitySlot is a date range a guardian has marked as bookable.
type AvailabilitySlot struct {
	ID         string `json:"id"`
	GuardianID string `json:"guardianId"`
	Start      string `json:"start"`
	End        string `json:"end"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Review is an owner's rating of a guardian after a booking.
type Review struct {
	ID         string `json:"id"`
	BookingID  string `json:"bookingId"`
	OwnerID    string `json:"ownerId"`
	GuardianID string `json:"guardianId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// Message is a chat message between two users, optionally tied to a booking.
type Message struct {
	ID         string `json:"id"`
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	Body       string `json:"body"`
	BookingID  string `json:"bookingId,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

// Favorite bookmarks a guardian for an owner.
type Favorite struct {
	ID         string `json:"id"`
	OwnerID    string `json:"ownerId"`
	GuardianID string `json:"guardianId"`
	CreatedAt  string `json:"createdAt"`
}
