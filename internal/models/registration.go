package models

import "time"

// Registration is a prospective attendee's submitted contact details.
// Records are stored verbatim and never updated or deleted.
type Registration struct {
	ID        string    `json:"id"`        // Unique identifier (UUID)
	Name      string    `json:"name"`      // Full name
	Email     string    `json:"email"`     // Contact email
	College   string    `json:"college"`   // College or university
	Year      string    `json:"year"`      // Year of study, as entered
	Phone     string    `json:"phone"`     // Contact phone number
	CreatedAt time.Time `json:"createdAt"` // Set by the server when the record is created
}
