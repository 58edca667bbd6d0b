package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kmazurek/saldo/internal/platform/authz"
)

// Service provides business logic for wallet operations
type Service struct {
	repo         Repository
	transactions TransactionChecker
}

// NewService creates a new wallet service
func NewService(repo Repository, transactions TransactionChecker) *Service {
	return &Service{repo: repo, transactions: transactions}
}

// Create creates a new wallet for a user. New wallets start at zero balance;
// only recorded transactions move it from there.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, name string) (*Wallet, error) {
	w := &Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Balance:   decimal.Zero,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := w.ValidateCreate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUserAndName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check wallet existence: %w", err)
	}

	if exists {
		return nil, ErrDuplicateWalletName
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	return w, nil
}

// GetByID retrieves a wallet by ID and validates user ownership
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*Wallet, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanAccessWallet(authz.ActionView, w.UserID, userID) {
		return nil, ErrUnauthorizedAccess
	}

	return w, nil
}

// List retrieves a page of the user's wallets with total count
func (s *Service) List(ctx context.Context, userID uuid.UUID, sort SortField, desc bool, limit, offset int) ([]*Wallet, int, error) {
	if !sort.IsValid() {
		sort = SortByCreatedAt
	}

	wallets, total, err := s.repo.ListByUser(ctx, userID, sort, desc, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list wallets: %w", err)
	}

	return wallets, total, nil
}

// Update renames an existing wallet
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, name string) (*Wallet, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanAccessWallet(authz.ActionEdit, w.UserID, userID) {
		return nil, ErrUnauthorizedAccess
	}

	if name != w.Name {
		exists, err := s.repo.ExistsByUserAndName(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check wallet name: %w", err)
		}

		if exists {
			return nil, ErrDuplicateWalletName
		}
	}

	w.Name = name
	w.UpdatedAt = time.Now()

	if err := w.ValidateUpdate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to update wallet: %w", err)
	}

	return w, nil
}

// Delete deletes a wallet. The delete is refused while any transaction
// still references the wallet.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanAccessWallet(authz.ActionDelete, w.UserID, userID) {
		return ErrUnauthorizedAccess
	}

	used, err := s.transactions.ExistsByWallet(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check wallet usage: %w", err)
	}

	if used {
		return ErrWalletInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}

	return nil
}
