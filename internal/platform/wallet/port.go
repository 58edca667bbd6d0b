package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SortField names a wallet list ordering
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByName      SortField = "name"
)

// IsValid checks if the sort field is a known value
func (f SortField) IsValid() bool {
	return f == SortByCreatedAt || f == SortByName
}

// Repository defines the interface for wallet data access
type Repository interface {
	// Create creates a new wallet
	Create(ctx context.Context, wallet *Wallet) error

	// GetByID retrieves a wallet by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Wallet, error)

	// GetByIDForUpdate retrieves a wallet by ID, acquiring a row lock.
	// Only meaningful inside a repository-managed database transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Wallet, error)

	// ListByUser retrieves a page of the user's wallets with total count
	ListByUser(ctx context.Context, userID uuid.UUID, sort SortField, desc bool, limit, offset int) ([]*Wallet, int, error)

	// Update updates wallet name and timestamps
	Update(ctx context.Context, wallet *Wallet) error

	// UpdateBalance sets the wallet's balance
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	// Delete deletes a wallet by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByUserAndName checks if a wallet with the given name exists for the user
	ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}

// TransactionChecker reports whether transactions reference a wallet.
// Implemented by the transaction repository; declared here so the wallet
// service doesn't depend on the ledger package.
type TransactionChecker interface {
	ExistsByWallet(ctx context.Context, walletID uuid.UUID) (bool, error)
}
