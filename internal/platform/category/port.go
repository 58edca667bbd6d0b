package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for category data access
type Repository interface {
	// Create creates a new category
	Create(ctx context.Context, category *Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// List retrieves categories ordered by title, with total count
	List(ctx context.Context, limit, offset int) ([]*Category, int, error)

	// Update updates an existing category
	Update(ctx context.Context, category *Category) error

	// Delete deletes a category by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionChecker reports whether transactions reference a category.
// Implemented by the transaction repository; declared here so the category
// service doesn't depend on the ledger package.
type TransactionChecker interface {
	ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)
}
