package domain

// StatusRequested is the default status assigned to a new booking. Status is
// an open string: clients exchange values such as REQUESTED, ACCEPTED,
// REJECTED, PAID or FINISHED, and the API does not constrain transitions.
const StatusRequested = "REQUESTED"

// Booking ties an owner's pet to a guardian for a date range. OwnerID and
// GuardianID reference users (string form of the numeric user id) and are
// immutable once the booking exists. Timestamps are opaque ISO-8601 strings
// carried through from clients.
type Booking struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId"`
	GuardianID  string   `json:"guardianId"`
	PetID       string   `json:"petId"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Status      string   `json:"status"`
	DepositPaid bool     `json:"depositPaid"`
	TotalPrice  *float64 `json:"totalPrice,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

// PaymentVoucher is a payable record attached to exactly one booking. It has
// no access rules of its own: visibility always follows the parent booking.
type PaymentVoucher struct {
	ID        string  `json:"id"`
	BookingID string  `json:"bookingId"`
	Amount    float64 `json:"amount"`
	DueDate   string  `json:"dueDate"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// Payment is an inert log entry recorded when a client reports a payment.
type Payment struct {
	ID        string  `json:"id"`
	BookingID string  `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}
