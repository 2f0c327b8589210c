package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
	ListByRole(ctx context.Context, role string, limit, offset int) ([]*User, int, error)
	ListAll(ctx context.Context) ([]*User, error)
}
