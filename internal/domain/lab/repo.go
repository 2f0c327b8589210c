package lab

import (
	"context"

	"github.com/google/uuid"
)

// FacilityRepository defines the persistence interface for lab facilities.
type FacilityRepository interface {
	Create(ctx context.Context, f *Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	Update(ctx context.Context, f *Facility) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Facility, int, error)
	ListAll(ctx context.Context) ([]*Facility, error)
}

// ServiceRepository defines the persistence interface for lab services.
type ServiceRepository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Service, int, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Service, int, error)
	ListAll(ctx context.Context) ([]*Service, error)
}
