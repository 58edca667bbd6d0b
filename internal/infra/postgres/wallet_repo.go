package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kmazurek/saldo/internal/platform/wallet"
)

// WalletRepository implements the wallet repository using PostgreSQL
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new PostgreSQL wallet repository
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// Create creates a new wallet
func (r *WalletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	query := `
		INSERT INTO wallets (id, user_id, name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := queryerFor(ctx, r.pool).Exec(ctx, query,
		w.ID,
		w.UserID,
		w.Name,
		w.Balance,
		w.CreatedAt,
		w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return wallet.ErrDuplicateWalletName
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	return nil
}

// GetByID retrieves a wallet by ID
func (r *WalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	query := `
		SELECT id, user_id, name, balance, created_at, updated_at
		FROM wallets
		WHERE id = $1
	`

	return r.getWallet(ctx, query, id)
}

// GetByIDForUpdate retrieves a wallet by ID with a row lock. Inside a
// repository-managed transaction this serializes concurrent balance edits
// on the same wallet.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	query := `
		SELECT id, user_id, name, balance, created_at, updated_at
		FROM wallets
		WHERE id = $1
		FOR UPDATE
	`

	return r.getWallet(ctx, query, id)
}

// ListByUser retrieves a page of the user's wallets with total count
func (r *WalletRepository) ListByUser(ctx context.Context, userID uuid.UUID, sort wallet.SortField, desc bool, limit, offset int) ([]*wallet.Wallet, int, error) {
	q := queryerFor(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM wallets WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count wallets: %w", err)
	}

	// sort comes from a closed enum, never from raw request input
	column := "created_at"
	if sort == wallet.SortByName {
		column = "name"
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, name, balance, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
		ORDER BY %s %s
		LIMIT $2 OFFSET $3
	`, column, direction)

	rows, err := q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*wallet.Wallet
	for rows.Next() {
		w := &wallet.Wallet{}
		err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating wallets: %w", err)
	}

	return wallets, total, nil
}

// Update updates wallet name and timestamps
func (r *WalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	query := `
		UPDATE wallets
		SET name = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := queryerFor(ctx, r.pool).Exec(ctx, query, w.Name, w.UpdatedAt, w.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return wallet.ErrDuplicateWalletName
		}
		return fmt.Errorf("failed to update wallet: %w", err)
	}

	if result.RowsAffected() == 0 {
		return wallet.ErrWalletNotFound
	}

	return nil
}

// UpdateBalance sets the wallet's balance
func (r *WalletRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := `
		UPDATE wallets
		SET balance = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := queryerFor(ctx, r.pool).Exec(ctx, query, balance, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return wallet.ErrWalletNotFound
	}

	return nil
}

// Delete deletes a wallet by ID
func (r *WalletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM wallets WHERE id = $1`

	result, err := queryerFor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}

	if result.RowsAffected() == 0 {
		return wallet.ErrWalletNotFound
	}

	return nil
}

// ExistsByUserAndName checks if a wallet with the given name exists for the user
func (r *WalletRepository) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM wallets WHERE user_id = $1 AND name = $2)`

	var exists bool
	err := queryerFor(ctx, r.pool).QueryRow(ctx, query, userID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check wallet existence: %w", err)
	}

	return exists, nil
}

func (r *WalletRepository) getWallet(ctx context.Context, query string, id uuid.UUID) (*wallet.Wallet, error) {
	w := &wallet.Wallet{}
	err := queryerFor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&w.ID,
		&w.UserID,
		&w.Name,
		&w.Balance,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wallet.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return w, nil
}
