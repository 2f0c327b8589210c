package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// StatCard is a single summary metric: a count plus its percentage
// change against the previous calendar month.
type StatCard struct {
	Count     int     `json:"count"`
	ChangePct float64 `json:"change_pct"`
}

// TrendPoint is one month of a trend chart.
type TrendPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AvailabilitySummary counts doctors per availability label at the
// reference instant. OnBreak is carried for the profile UI but the
// resolver never produces it, so it stays zero.
type AvailabilitySummary struct {
	Available int `json:"available"`
	InSession int `json:"in_session"`
	OnBreak   int `json:"on_break"`
	Off       int `json:"off"`
}

// TopDoctor is one row of the top-doctors list, ranked by distinct
// patients seen. Rating and ReviewCount come from PlaceholderMetrics.
type TopDoctor struct {
	DoctorID       uuid.UUID `json:"doctor_id"`
	FullName       string    `json:"full_name,omitempty"`
	Specialization string    `json:"specialization"`
	PatientCount   int       `json:"patient_count"`
	Rating         float64   `json:"rating"`
	ReviewCount    int       `json:"review_count"`
}

// LabStats summarizes the lab module for the admin dashboard.
type LabStats struct {
	FacilityCount    int     `json:"facility_count"`
	ActiveFacilities int     `json:"active_facilities"`
	ServiceCount     int     `json:"service_count"`
	AveragePrice     float64 `json:"average_price"`
}

// AdminDashboard is the clinic-wide view model.
type AdminDashboard struct {
	GeneratedAt       time.Time           `json:"generated_at"`
	Patients          StatCard            `json:"patients"`
	Doctors           StatCard            `json:"doctors"`
	Appointments      StatCard            `json:"appointments"`
	AppointmentStatus []NamedBucket       `json:"appointment_status"`
	Specializations   []NamedBucket       `json:"specializations"`
	BloodGroups       []NamedBucket       `json:"blood_groups"`
	Genders           []NamedBucket       `json:"genders"`
	MaritalStatuses   []NamedBucket       `json:"marital_statuses"`
	AppointmentTrend  []TrendPoint        `json:"appointment_trend"`
	Availability      AvailabilitySummary `json:"availability"`
	TopDoctors        []TopDoctor         `json:"top_doctors"`
	Lab               LabStats            `json:"lab"`
}

// DoctorDashboard is the per-doctor view model.
type DoctorDashboard struct {
	GeneratedAt        time.Time     `json:"generated_at"`
	DoctorID           uuid.UUID     `json:"doctor_id"`
	Status             string        `json:"status"`
	TodaysAppointments int           `json:"todays_appointments"`
	Appointments       StatCard      `json:"appointments"`
	PatientsSeen       int           `json:"patients_seen"`
	StatusBreakdown    []NamedBucket `json:"status_breakdown"`
	AppointmentTrend   []TrendPoint  `json:"appointment_trend"`
	Rating             float64       `json:"rating"`
	ReviewCount        int           `json:"review_count"`
}
