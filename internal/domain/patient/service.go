package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	patients PatientRepository
}

func NewService(patients PatientRepository) *Service {
	return &Service{patients: patients}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	p.BloodGroup = strings.ToUpper(strings.TrimSpace(p.BloodGroup))
	if p.BloodGroup != "" && !ValidBloodGroups[p.BloodGroup] {
		return fmt.Errorf("invalid blood_group: %s", p.BloodGroup)
	}
	if p.MaritalStatus != "" && !ValidMaritalStatus(p.MaritalStatus) {
		return fmt.Errorf("invalid marital_status: %s", p.MaritalStatus)
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetPatientByUser(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	return s.patients.GetByUserID(ctx, userID)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	p.BloodGroup = strings.ToUpper(strings.TrimSpace(p.BloodGroup))
	if p.BloodGroup != "" && !ValidBloodGroups[p.BloodGroup] {
		return fmt.Errorf("invalid blood_group: %s", p.BloodGroup)
	}
	if p.MaritalStatus != "" && !ValidMaritalStatus(p.MaritalStatus) {
		return fmt.Errorf("invalid marital_status: %s", p.MaritalStatus)
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}
