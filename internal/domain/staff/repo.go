package staff

import (
	"context"

	"github.com/google/uuid"
)

// DoctorRepository defines the persistence interface for doctor profiles.
type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
	ListBySpecialization(ctx context.Context, specialization string, limit, offset int) ([]*Doctor, int, error)
	ListAll(ctx context.Context) ([]*Doctor, error)
}
