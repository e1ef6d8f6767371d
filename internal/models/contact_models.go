package models

import "time"

// ContactStatus defines the type for contact message statuses.
type ContactStatus string

const (
	ContactStatusNouveau ContactStatus = "nouveau"
	ContactStatusEnCours ContactStatus = "en_cours"
	ContactStatusResolu  ContactStatus = "resolu"
	ContactStatusFerme   ContactStatus = "ferme"
)

// IsValidContactStatus checks if the provided status string is a valid ContactStatus.
// Any status may follow any other; the model is deliberately permissive.
func IsValidContactStatus(status string) bool {
	switch ContactStatus(status) {
	case ContactStatusNouveau, ContactStatusEnCours, ContactStatusResolu, ContactStatusFerme:
		return true
	default:
		return false
	}
}

// Contact represents a message submitted through the contact form. UserID is
// the nullable owner reference: set when the submitter was authenticated,
// nulled when that account is later deleted.
type Contact struct {
	ID            int64     `json:"id" db:"id"`
	UserID        *string   `json:"user_id,omitempty" db:"user_id"`
	Nom           string    `json:"nom" db:"nom"`
	Discord       string    `json:"discord" db:"discord"`
	Subject       string    `json:"subject" db:"subject"`
	Message       string    `json:"message" db:"message"`
	Status        string    `json:"status" db:"status"`
	AdminResponse *string   `json:"admin_response,omitempty" db:"admin_response"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// UserEmail is joined in for admin listings.
	UserEmail *string `json:"user_email,omitempty"`
}
