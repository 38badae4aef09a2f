package domain

// Pet belongs to exactly one owner user. Guardians never own pets; they gain
// read access to a pet only through a booking that references it.
type Pet struct {
	ID                 string `json:"id"`
	OwnerID            string `json:"ownerId"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	Breed              string `json:"breed,omitempty"`
	Size               string `json:"size"`
	PhotoURL           string `json:"photoUrl,omitempty"`
	VaccineCalendarURL string `json:"vaccineCalendarUrl,omitempty"`
	Notes              string `json:"notes,omitempty"`
}
