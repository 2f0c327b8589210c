package patient

import (
	"time"

	"github.com/google/uuid"
)

// Marital statuses accepted on a patient profile.
const (
	MaritalSingle   = "single"
	MaritalMarried  = "married"
	MaritalDivorced = "divorced"
	MaritalWidowed  = "widowed"
)

// ValidMaritalStatus reports whether s is a known marital status.
func ValidMaritalStatus(s string) bool {
	switch s {
	case MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed:
		return true
	}
	return false
}

// ValidBloodGroups lists the ABO/Rh groups a profile may carry. Profiles
// created before blood typing keep an empty string; distribution reports
// skip those rows.
var ValidBloodGroups = map[string]bool{
	"A+": true, "A-": true, "B+": true, "B-": true,
	"AB+": true, "AB-": true, "O+": true, "O-": true,
}

// Patient maps to the patient_profile table. Each profile belongs to a
// user account with the patient role.
type Patient struct {
	ID               uuid.UUID `db:"id" json:"id"`
	UserID           uuid.UUID `db:"user_id" json:"user_id"`
	BloodGroup       string    `db:"blood_group" json:"blood_group,omitempty"`
	MaritalStatus    string    `db:"marital_status" json:"marital_status,omitempty"`
	Address          *string   `db:"address" json:"address,omitempty"`
	Phone            *string   `db:"phone" json:"phone,omitempty"`
	EmergencyName    *string   `db:"emergency_name" json:"emergency_name,omitempty"`
	EmergencyPhone   *string   `db:"emergency_phone" json:"emergency_phone,omitempty"`
	MedicalHistory   *string   `db:"medical_history" json:"medical_history,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
