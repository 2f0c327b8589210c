package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/clock"
)

type Service struct {
	doctors DoctorRepository
	clk     clock.Clock
}

func NewService(doctors DoctorRepository, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{doctors: doctors, clk: clk}
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if d.ExperienceYears < 0 {
		return fmt.Errorf("experience_years cannot be negative")
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) GetDoctorByUser(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByUserID(ctx, userID)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if d.ExperienceYears < 0 {
		return fmt.Errorf("experience_years cannot be negative")
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, specialization string, limit, offset int) ([]*Doctor, int, error) {
	if specialization != "" {
		return s.doctors.ListBySpecialization(ctx, specialization, limit, offset)
	}
	return s.doctors.List(ctx, limit, offset)
}

// DoctorStatus resolves the doctor's current availability label.
// todaysAppointments is the number of appointments scheduled for the
// doctor on the reference day.
func (s *Service) DoctorStatus(ctx context.Context, id uuid.UUID, todaysAppointments int) (string, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return ResolveStatus(d.Schedule(), s.clk.Now(), todaysAppointments), nil
}
