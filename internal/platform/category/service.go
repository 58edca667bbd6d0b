package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service provides business logic for category operations
type Service struct {
	repo         Repository
	transactions TransactionChecker
}

// NewService creates a new category service
func NewService(repo Repository, transactions TransactionChecker) *Service {
	return &Service{repo: repo, transactions: transactions}
}

// Create creates a new category
func (s *Service) Create(ctx context.Context, title string) (*Category, error) {
	c := &Category{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return c, nil
}

// GetByID retrieves a category by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves categories ordered by title, with total count
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Category, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update renames an existing category
func (s *Service) Update(ctx context.Context, id uuid.UUID, title string) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Title = title
	c.UpdatedAt = time.Now()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return c, nil
}

// Delete deletes a category. The delete is refused while any transaction
// still references the category.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	used, err := s.transactions.ExistsByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}

	if used {
		return ErrCategoryInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
