package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AppointmentRepository defines the persistence interface for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	CountByDoctorOnDay(ctx context.Context, doctorID uuid.UUID, day time.Time) (int, error)
	ListAll(ctx context.Context) ([]*Appointment, error)
}
