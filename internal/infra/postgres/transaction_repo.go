package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kmazurek/saldo/internal/platform/ledger"
)

// TransactionRepository implements the ledger repository using PostgreSQL.
// It also owns the database-transaction lifecycle the ledger service wraps
// its balance mutations in.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// BeginTx starts a database transaction and stores it in the context
func (r *TransactionRepository) BeginTx(ctx context.Context) (context.Context, error) {
	return beginTx(ctx, r.pool)
}

// CommitTx commits the database transaction from the context
func (r *TransactionRepository) CommitTx(ctx context.Context) error {
	return commitTx(ctx)
}

// RollbackTx rolls back the database transaction from the context
func (r *TransactionRepository) RollbackTx(ctx context.Context) error {
	return rollbackTx(ctx)
}

// Create inserts a transaction
func (r *TransactionRepository) Create(ctx context.Context, t *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (id, wallet_id, category_id, amount, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := queryerFor(ctx, r.pool).Exec(ctx, query,
		t.ID,
		t.WalletID,
		t.CategoryID,
		t.Amount,
		t.Type,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `
		SELECT id, wallet_id, category_id, amount, type, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`

	return r.getTransaction(ctx, query, id)
}

// GetByIDForUpdate retrieves a transaction by ID with a row lock, so the
// pre-update snapshot cannot change under a concurrent edit.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `
		SELECT id, wallet_id, category_id, amount, type, created_at, updated_at
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`

	return r.getTransaction(ctx, query, id)
}

// Update updates a transaction row
func (r *TransactionRepository) Update(ctx context.Context, t *ledger.Transaction) error {
	query := `
		UPDATE transactions
		SET wallet_id = $1, category_id = $2, amount = $3, type = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := queryerFor(ctx, r.pool).Exec(ctx, query,
		t.WalletID,
		t.CategoryID,
		t.Amount,
		t.Type,
		t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ledger.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction by ID
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1`

	result, err := queryerFor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ledger.ErrTransactionNotFound
	}

	return nil
}

// ListByUser retrieves a page of the user's transactions, newest first,
// restricted to wallets owned by the user and narrowed by the filter
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, f ledger.Filter, limit, offset int) ([]*ledger.Transaction, int, error) {
	q := queryerFor(ctx, r.pool)
	where, args := buildFilterWhere(userID, f)

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM transactions t
		JOIN wallets w ON w.id = t.wallet_id
	` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT t.id, t.wallet_id, t.category_id, t.amount, t.type, t.created_at, t.updated_at
		FROM transactions t
		JOIN wallets w ON w.id = t.wallet_id
		%s
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	rows, err := q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// ListAllByUser retrieves every matching transaction for the user
func (r *TransactionRepository) ListAllByUser(ctx context.Context, userID uuid.UUID, f ledger.Filter) ([]*ledger.Transaction, error) {
	where, args := buildFilterWhere(userID, f)

	query := `
		SELECT t.id, t.wallet_id, t.category_id, t.amount, t.type, t.created_at, t.updated_at
		FROM transactions t
		JOIN wallets w ON w.id = t.wallet_id
	` + where + `
		ORDER BY t.created_at DESC
	`

	rows, err := queryerFor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByWallet retrieves a wallet's transactions, oldest first
func (r *TransactionRepository) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]*ledger.Transaction, error) {
	query := `
		SELECT id, wallet_id, category_id, amount, type, created_at, updated_at
		FROM transactions
		WHERE wallet_id = $1
		ORDER BY created_at ASC
	`

	rows, err := queryerFor(ctx, r.pool).Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ExistsByWallet checks whether any transaction references the wallet
func (r *TransactionRepository) ExistsByWallet(ctx context.Context, walletID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM transactions WHERE wallet_id = $1)`

	var exists bool
	err := queryerFor(ctx, r.pool).QueryRow(ctx, query, walletID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check wallet transactions: %w", err)
	}

	return exists, nil
}

// ExistsByCategory checks whether any transaction references the category
func (r *TransactionRepository) ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM transactions WHERE category_id = $1)`

	var exists bool
	err := queryerFor(ctx, r.pool).QueryRow(ctx, query, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category transactions: %w", err)
	}

	return exists, nil
}

// buildFilterWhere renders the filter as a WHERE clause. The user scope is
// always the first predicate; filter fields only narrow it. The date_to
// bound comes from Filter.DateToBound so SQL and the in-memory
// Filter.Matches agree on end-of-day semantics.
func buildFilterWhere(userID uuid.UUID, f ledger.Filter) (string, []any) {
	conditions := []string{"w.user_id = $1"}
	args := []any{userID}

	if f.WalletID != nil {
		args = append(args, *f.WalletID)
		conditions = append(conditions, fmt.Sprintf("t.wallet_id = $%d", len(args)))
	}

	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conditions = append(conditions, fmt.Sprintf("t.category_id = $%d", len(args)))
	}

	if f.Type != nil {
		args = append(args, *f.Type)
		conditions = append(conditions, fmt.Sprintf("t.type = $%d", len(args)))
	}

	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		conditions = append(conditions, fmt.Sprintf("t.created_at >= $%d", len(args)))
	}

	if bound := f.DateToBound(); bound != nil {
		args = append(args, *bound)
		conditions = append(conditions, fmt.Sprintf("t.created_at <= $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *TransactionRepository) getTransaction(ctx context.Context, query string, id uuid.UUID) (*ledger.Transaction, error) {
	t := &ledger.Transaction{}
	err := queryerFor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.WalletID,
		&t.CategoryID,
		&t.Amount,
		&t.Type,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return t, nil
}

func scanTransactions(rows pgx.Rows) ([]*ledger.Transaction, error) {
	var transactions []*ledger.Transaction
	for rows.Next() {
		t := &ledger.Transaction{}
		err := rows.Scan(
			&t.ID,
			&t.WalletID,
			&t.CategoryID,
			&t.Amount,
			&t.Type,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
