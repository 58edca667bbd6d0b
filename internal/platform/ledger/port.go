package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kmazurek/saldo/internal/platform/wallet"
)

// Repository defines the interface for transaction data access.
//
// BeginTx returns a context carrying a database transaction; repository and
// WalletStore calls made with that context run inside it. The service wraps
// every balance mutation in such a transaction so the wallet row lock
// serializes concurrent edits.
type Repository interface {
	// BeginTx starts a database transaction and stores it in the context
	BeginTx(ctx context.Context) (context.Context, error)

	// CommitTx commits the database transaction from the context
	CommitTx(ctx context.Context) error

	// RollbackTx rolls back the database transaction from the context
	RollbackTx(ctx context.Context) error

	// Create inserts a transaction
	Create(ctx context.Context, t *Transaction) error

	// GetByID retrieves a transaction by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// GetByIDForUpdate retrieves a transaction by ID, acquiring a row lock
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// Update updates a transaction row
	Update(ctx context.Context, t *Transaction) error

	// Delete removes a transaction by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByUser retrieves a page of the user's transactions, newest first,
	// restricted to wallets owned by the user and narrowed by the filter.
	// Returns the total count of matching transactions.
	ListByUser(ctx context.Context, userID uuid.UUID, f Filter, limit, offset int) ([]*Transaction, int, error)

	// ListAllByUser retrieves every matching transaction for the user,
	// used by summary aggregation.
	ListAllByUser(ctx context.Context, userID uuid.UUID, f Filter) ([]*Transaction, error)

	// ListByWallet retrieves a wallet's transactions, oldest first
	ListByWallet(ctx context.Context, walletID uuid.UUID) ([]*Transaction, error)

	// ExistsByWallet checks whether any transaction references the wallet
	ExistsByWallet(ctx context.Context, walletID uuid.UUID) (bool, error)

	// ExistsByCategory checks whether any transaction references the category
	ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)
}

// WalletStore is the slice of wallet persistence the ledger needs to keep
// balances synchronized with transaction history.
type WalletStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// CategoryStore is the slice of category persistence the ledger needs to
// validate transaction input.
type CategoryStore interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// SummaryCache caches per-user dashboard summaries. Implementations must
// tolerate unavailability: a cache error never fails the operation.
type SummaryCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*Summary, bool, error)
	Set(ctx context.Context, userID uuid.UUID, s Summary) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
