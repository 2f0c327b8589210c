package lab

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Manager holds the lab module's business operations over facilities and
// the services they offer.
type Manager struct {
	facilities FacilityRepository
	services   ServiceRepository
}

func NewManager(facilities FacilityRepository, services ServiceRepository) *Manager {
	return &Manager{facilities: facilities, services: services}
}

// -- Facility --

func (m *Manager) CreateFacility(ctx context.Context, f *Facility) error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	f.Active = true
	return m.facilities.Create(ctx, f)
}

func (m *Manager) GetFacility(ctx context.Context, id uuid.UUID) (*Facility, error) {
	return m.facilities.GetByID(ctx, id)
}

func (m *Manager) UpdateFacility(ctx context.Context, f *Facility) error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	return m.facilities.Update(ctx, f)
}

func (m *Manager) DeleteFacility(ctx context.Context, id uuid.UUID) error {
	return m.facilities.Delete(ctx, id)
}

func (m *Manager) ListFacilities(ctx context.Context, limit, offset int) ([]*Facility, int, error) {
	return m.facilities.List(ctx, limit, offset)
}

// -- Service --

func (m *Manager) CreateService(ctx context.Context, s *Service) error {
	if s.FacilityID == uuid.Nil {
		return fmt.Errorf("facility_id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	s.Active = true
	return m.services.Create(ctx, s)
}

func (m *Manager) GetService(ctx context.Context, id uuid.UUID) (*Service, error) {
	return m.services.GetByID(ctx, id)
}

func (m *Manager) UpdateService(ctx context.Context, s *Service) error {
	if s.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return m.services.Update(ctx, s)
}

func (m *Manager) DeleteService(ctx context.Context, id uuid.UUID) error {
	return m.services.Delete(ctx, id)
}

func (m *Manager) ListServices(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Service, int, error) {
	if facilityID != uuid.Nil {
		return m.services.ListByFacility(ctx, facilityID, limit, offset)
	}
	return m.services.List(ctx, limit, offset)
}
