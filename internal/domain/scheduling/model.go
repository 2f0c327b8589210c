package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment lifecycle statuses. The set mirrors the booking flow:
// patient-created requests move through approval, the visit itself, and
// any lab or follow-up work it spawns.
const (
	StatusCreated             = "created"
	StatusPending             = "pending"
	StatusApproved            = "approved"
	StatusConfirmed           = "confirmed"
	StatusAccepted            = "accepted"
	StatusInProgress          = "in-progress"
	StatusPrescriptionPending = "prescription-pending"
	StatusLabRequested        = "lab-requested"
	StatusLabCompleted        = "lab-completed"
	StatusCompleted           = "completed"
	StatusRejected            = "rejected"
	StatusCancelled           = "cancelled"
	StatusNoShow              = "no-show"
	StatusFollowUpRequired    = "follow-up-required"
)

var validStatuses = map[string]bool{
	StatusCreated: true, StatusPending: true, StatusApproved: true,
	StatusConfirmed: true, StatusAccepted: true, StatusInProgress: true,
	StatusPrescriptionPending: true, StatusLabRequested: true,
	StatusLabCompleted: true, StatusCompleted: true, StatusRejected: true,
	StatusCancelled: true, StatusNoShow: true, StatusFollowUpRequired: true,
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s string) bool { return validStatuses[s] }

// Terminal statuses admit no further transitions.
var terminalStatuses = map[string]bool{
	StatusCompleted: true, StatusRejected: true,
	StatusCancelled: true, StatusNoShow: true,
}

// TerminalStatus reports whether s ends the appointment lifecycle.
func TerminalStatus(s string) bool { return terminalStatuses[s] }

// Appointment maps to the appointment table.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	ScheduledAt time.Time `db:"scheduled_at" json:"scheduled_at"`
	Status      string    `db:"status" json:"status"`
	Reason      *string   `db:"reason" json:"reason,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
