package scheduling

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	appointments AppointmentRepository
}

func NewService(appointments AppointmentRepository) *Service {
	return &Service{appointments: appointments}
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled_at is required")
	}
	if a.Status == "" {
		a.Status = StatusCreated
	}
	if !ValidStatus(a.Status) {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.appointments.Create(ctx, a)
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	if a.Status != "" && !ValidStatus(a.Status) {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.appointments.Update(ctx, a)
}

// ChangeStatus moves an appointment to a new lifecycle status. Terminal
// statuses (completed, rejected, cancelled, no-show) admit no further
// transitions.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if TerminalStatus(a.Status) {
		return nil, fmt.Errorf("appointment is %s and cannot change status", a.Status)
	}
	a.Status = status
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByDoctor(ctx, doctorID, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}
