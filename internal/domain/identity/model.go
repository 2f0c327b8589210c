package identity

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user account may hold. A user has exactly one role; the role
// decides which dashboard and route group the account can reach.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
	RoleLab     = "lab"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDoctor, RolePatient, RoleLab:
		return true
	}
	return false
}

// User maps to the users table.
type User struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Email       string     `db:"email" json:"email"`
	FullName    string     `db:"full_name" json:"full_name"`
	Role        string     `db:"role" json:"role"`
	Active      bool       `db:"active" json:"active"`
	Gender      *string    `db:"gender" json:"gender,omitempty"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
