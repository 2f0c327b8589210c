package staff

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor_profile table. Each profile belongs to a user
// account with the doctor role.
//
// AvailableDays, StartTime and EndTime are free-text fields carried over
// from profile forms; they are parsed into a WeeklySchedule at the point
// of use and never validated on write.
type Doctor struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	Specialization  *string   `db:"specialization" json:"specialization,omitempty"`
	Qualification   *string   `db:"qualification" json:"qualification,omitempty"`
	AvailableDays   string    `db:"available_days" json:"available_days,omitempty"`
	StartTime       string    `db:"start_time" json:"start_time,omitempty"`
	EndTime         string    `db:"end_time" json:"end_time,omitempty"`
	ExperienceYears int       `db:"experience_years" json:"experience_years"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Schedule parses the profile's free-text schedule fields.
func (d *Doctor) Schedule() WeeklySchedule {
	return ParseWeeklySchedule(d.AvailableDays, d.StartTime, d.EndTime)
}
