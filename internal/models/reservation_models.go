package models

import "time"

// ReservationStatus defines the type for reservation statuses.
type ReservationStatus string

const (
	ReservationStatusEnAttente ReservationStatus = "en_attente"
	ReservationStatusConfirmee ReservationStatus = "confirmee"
	ReservationStatusAnnulee   ReservationStatus = "annulee"
	ReservationStatusTerminee  ReservationStatus = "terminee"
)

// IsValidReservationStatus checks if the provided status string is a valid
// ReservationStatus. Any status may follow any other; the model is
// deliberately permissive.
func IsValidReservationStatus(status string) bool {
	switch ReservationStatus(status) {
	case ReservationStatusEnAttente, ReservationStatusConfirmee,
		ReservationStatusAnnulee, ReservationStatusTerminee:
		return true
	default:
		return false
	}
}

// Reservation represents a table reservation request. UserID is the nullable
// owner reference, same lifecycle as Contact.UserID.
type Reservation struct {
	ID              int64     `json:"id" db:"id"`
	UserID          *string   `json:"user_id,omitempty" db:"user_id"`
	Nom             string    `json:"nom" db:"nom"`
	Discord         string    `json:"discord" db:"discord"`
	PeopleCount     int       `json:"people_count" db:"people_count"`
	ReservationDate string    `json:"reservation_date" db:"reservation_date"` // YYYY-MM-DD
	ReservationTime string    `json:"reservation_time" db:"reservation_time"` // HH:MM
	Message         *string   `json:"message,omitempty" db:"message"`
	Status          string    `json:"status" db:"status"`
	AdminNotes      *string   `json:"admin_notes,omitempty" db:"admin_notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	// UserEmail is joined in for admin listings.
	UserEmail *string `json:"user_email,omitempty"`
}
