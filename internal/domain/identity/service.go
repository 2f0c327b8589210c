package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) CreateUser(ctx context.Context, u *User) error {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid email: %s", u.Email)
	}
	if u.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if u.Role == "" {
		u.Role = RolePatient
	}
	if !ValidRole(u.Role) {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	u.Active = true
	return s.users.Create(ctx, u)
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}

func (s *Service) UpdateUser(ctx context.Context, u *User) error {
	if u.Role != "" && !ValidRole(u.Role) {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	return s.users.Update(ctx, u)
}

// DeactivateUser marks an account inactive without removing its rows.
func (s *Service) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.Active = false
	return s.users.Update(ctx, u)
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, role string, limit, offset int) ([]*User, int, error) {
	if role != "" {
		if !ValidRole(role) {
			return nil, 0, fmt.Errorf("invalid role: %s", role)
		}
		return s.users.ListByRole(ctx, role, limit, offset)
	}
	return s.users.List(ctx, limit, offset)
}
