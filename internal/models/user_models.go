package models

import "time"

// User roles. Exactly one role per user.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// IsValidRole checks if the provided role string is a known role.
func IsValidRole(role string) bool {
	return role == RoleClient || role == RoleAdmin
}

// User represents an account. The ID is the human-typable code handed to
// customers (e.g. USER00042), unique across all rows along with the email.
type User struct {
	ID            string     `json:"id" db:"id"`
	Nom           string     `json:"nom" db:"nom"`
	Prenom        string     `json:"prenom" db:"prenom"`
	Email         string     `json:"email" db:"email"`
	Discord       *string    `json:"discord,omitempty" db:"discord"`
	Phone         *string    `json:"phone,omitempty" db:"phone"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	Role          string     `json:"role" db:"role"`
	Newsletter    bool       `json:"newsletter" db:"newsletter"`
	MemberSince   int        `json:"member_since" db:"member_since"`
	OrdersCount   int        `json:"orders_count" db:"orders_count"`
	TotalSpent    float64    `json:"total_spent" db:"total_spent"`
	LoyaltyPoints int        `json:"loyalty_points" db:"loyalty_points"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	LastLogin     *time.Time `json:"last_login,omitempty" db:"last_login"`

	// Token is only populated on login/register responses.
	Token string `json:"token,omitempty"`
	// Stats is only populated on the profile endpoint.
	Stats *UserStats `json:"stats,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserStats aggregates a user's submission counts for the profile view.
type UserStats struct {
	Contacts     int `json:"contacts"`
	Reservations int `json:"reservations"`
}

// UserUpdate is the typed field set applied by update operations. Only
// non-nil fields reach the store; every field is validated before merge.
type UserUpdate struct {
	Nom           *string
	Prenom        *string
	Email         *string
	Discord       *string
	Phone         *string
	Role          *string
	Newsletter    *bool
	OrdersCount   *int
	TotalSpent    *float64
	LoyaltyPoints *int
	PasswordHash  *string
}

// IsEmpty reports whether no field is set.
func (u *UserUpdate) IsEmpty() bool {
	return u.Nom == nil && u.Prenom == nil && u.Email == nil && u.Discord == nil &&
		u.Phone == nil && u.Role == nil && u.Newsletter == nil && u.OrdersCount == nil &&
		u.TotalSpent == nil && u.LoyaltyPoints == nil && u.PasswordHash == nil
}
