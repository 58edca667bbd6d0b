// Package admin implements account management operations reserved for
// administrators: listing users and changing their email or password.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kmazurek/saldo/internal/platform/user"
)

// Service handles admin account operations
type Service struct {
	users user.Repository
}

// NewService creates a new admin service
func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

// ListUsers retrieves a page of all user accounts with total count
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*user.User, int, error) {
	users, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// UpdateEmail changes a user's email address
func (s *Service) UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != u.Email {
		taken, err := s.users.Exists(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}

		if taken {
			return nil, user.ErrUserAlreadyExists
		}
	}

	u.Email = email
	u.UpdatedAt = time.Now()

	if err := u.ValidateEmail(); err != nil {
		return nil, err
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

// UpdatePassword hashes and sets a new password for a user
func (s *Service) UpdatePassword(ctx context.Context, id uuid.UUID, plainPassword string) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.SetPassword(plainPassword); err != nil {
		return err
	}

	u.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}
