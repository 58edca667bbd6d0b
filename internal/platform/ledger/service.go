package ledger

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kmazurek/saldo/internal/platform/authz"
	"github.com/kmazurek/saldo/internal/platform/category"
	"github.com/kmazurek/saldo/internal/platform/wallet"
)

// Service keeps wallet balances consistent with transaction history. Every
// mutation runs inside one database transaction with the affected wallet
// rows locked, so concurrent edits against the same wallet serialize and
// the no-overdraft check cannot be raced past.
type Service struct {
	repo       Repository
	wallets    WalletStore
	categories CategoryStore
	cache      SummaryCache
}

// NewService creates a new ledger service. cache may be nil to disable
// summary caching.
func NewService(repo Repository, wallets WalletStore, categories CategoryStore, cache SummaryCache) *Service {
	return &Service{
		repo:       repo,
		wallets:    wallets,
		categories: categories,
		cache:      cache,
	}
}

// RecordInput describes a transaction to record or the new state of an
// existing one.
type RecordInput struct {
	WalletID   uuid.UUID
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Type       Type
}

// Validate validates the input fields
func (in RecordInput) Validate() error {
	if in.WalletID == uuid.Nil {
		return wallet.ErrInvalidWalletID
	}

	if in.CategoryID == uuid.Nil {
		return category.ErrCategoryNotFound
	}

	if !in.Type.IsValid() {
		return ErrInvalidType
	}

	if !in.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	if in.Amount.Exponent() < -2 {
		return ErrInvalidAmount
	}

	return nil
}

// Record creates a transaction and applies its effect to the wallet's
// balance. An expense exceeding the current balance fails with
// ErrInsufficientFunds and leaves wallet and transaction set unchanged.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, in RecordInput) (*Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	txCtx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = s.repo.RollbackTx(txCtx)
		}
	}()

	w, err := s.wallets.GetByIDForUpdate(txCtx, in.WalletID)
	if err != nil {
		return nil, err
	}

	if !authz.CanAccessWallet(authz.ActionEdit, w.UserID, userID) {
		return nil, wallet.ErrUnauthorizedAccess
	}

	newBalance, err := apply(w.Balance, in.Amount, in.Type)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	t := &Transaction{
		ID:         uuid.New(),
		WalletID:   in.WalletID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Type:       in.Type,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(txCtx, t); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := s.wallets.UpdateBalance(txCtx, w.ID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to update wallet balance: %w", err)
	}

	if err := s.repo.CommitTx(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	s.invalidateSummary(ctx, userID)
	return t, nil
}

// Update rewrites an existing transaction. The original effect is reversed
// on the original wallet before the new effect is applied: on the reverted
// balance when the wallet is unchanged, or on the target wallet's own
// balance when the transaction moves between wallets. All balance reads use
// row locks and all writes commit as one unit, so a failed overdraft check
// leaves no partial mutation.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, in RecordInput) (*Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	txCtx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = s.repo.RollbackTx(txCtx)
		}
	}()

	// Snapshot of the pre-update state, locked before any write
	orig, err := s.repo.GetByIDForUpdate(txCtx, id)
	if err != nil {
		return nil, err
	}

	if orig.WalletID == in.WalletID {
		w, err := s.wallets.GetByIDForUpdate(txCtx, orig.WalletID)
		if err != nil {
			return nil, err
		}

		if !authz.CanAccessTransaction(authz.ActionEdit, w.UserID, userID) {
			return nil, wallet.ErrUnauthorizedAccess
		}

		reverted := reverse(w.Balance, orig.Amount, orig.Type)
		newBalance, err := apply(reverted, in.Amount, in.Type)
		if err != nil {
			return nil, err
		}

		if err := s.wallets.UpdateBalance(txCtx, w.ID, newBalance); err != nil {
			return nil, fmt.Errorf("failed to update wallet balance: %w", err)
		}
	} else {
		src, dst, err := s.lockWalletPair(txCtx, orig.WalletID, in.WalletID)
		if err != nil {
			return nil, err
		}

		if !authz.CanAccessTransaction(authz.ActionEdit, src.UserID, userID) ||
			!authz.CanAccessWallet(authz.ActionEdit, dst.UserID, userID) {
			return nil, wallet.ErrUnauthorizedAccess
		}

		// The transaction had no prior effect on the target wallet, so its
		// current balance is the base for the new effect.
		newDstBalance, err := apply(dst.Balance, in.Amount, in.Type)
		if err != nil {
			return nil, err
		}

		if err := s.wallets.UpdateBalance(txCtx, src.ID, reverse(src.Balance, orig.Amount, orig.Type)); err != nil {
			return nil, fmt.Errorf("failed to update source wallet balance: %w", err)
		}

		if err := s.wallets.UpdateBalance(txCtx, dst.ID, newDstBalance); err != nil {
			return nil, fmt.Errorf("failed to update target wallet balance: %w", err)
		}
	}

	orig.WalletID = in.WalletID
	orig.CategoryID = in.CategoryID
	orig.Amount = in.Amount
	orig.Type = in.Type
	orig.UpdatedAt = time.Now()

	if err := s.repo.Update(txCtx, orig); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := s.repo.CommitTx(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	s.invalidateSummary(ctx, userID)
	return orig, nil
}

// Delete removes a transaction and reverses its effect on the wallet's
// balance. Reversal never fails on insufficient funds.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	txCtx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = s.repo.RollbackTx(txCtx)
		}
	}()

	orig, err := s.repo.GetByIDForUpdate(txCtx, id)
	if err != nil {
		return err
	}

	w, err := s.wallets.GetByIDForUpdate(txCtx, orig.WalletID)
	if err != nil {
		return err
	}

	if !authz.CanAccessTransaction(authz.ActionDelete, w.UserID, userID) {
		return wallet.ErrUnauthorizedAccess
	}

	if err := s.wallets.UpdateBalance(txCtx, w.ID, reverse(w.Balance, orig.Amount, orig.Type)); err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}

	if err := s.repo.Delete(txCtx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if err := s.repo.CommitTx(txCtx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	s.invalidateSummary(ctx, userID)
	return nil
}

// GetByID retrieves a transaction, checking ownership through its wallet
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	w, err := s.wallets.GetByID(ctx, t.WalletID)
	if err != nil {
		return nil, err
	}

	if !authz.CanAccessTransaction(authz.ActionView, w.UserID, userID) {
		return nil, wallet.ErrUnauthorizedAccess
	}

	return t, nil
}

// List retrieves a page of the user's transactions, newest first, narrowed
// by the filter. The result is always scoped to wallets the user owns.
func (s *Service) List(ctx context.Context, userID uuid.UUID, f Filter, limit, offset int) ([]*Transaction, int, error) {
	if err := f.Validate(); err != nil {
		return nil, 0, err
	}

	return s.repo.ListByUser(ctx, userID, f, limit, offset)
}

// ListByWallet retrieves a wallet's transactions oldest first, for the
// wallet detail view.
func (s *Service) ListByWallet(ctx context.Context, userID, walletID uuid.UUID) ([]*Transaction, error) {
	w, err := s.wallets.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	if !authz.CanAccessWallet(authz.ActionView, w.UserID, userID) {
		return nil, wallet.ErrUnauthorizedAccess
	}

	return s.repo.ListByWallet(ctx, walletID)
}

// CalculateSummary computes income/expense/net totals over the user's
// transactions matching the filter. The unfiltered dashboard summary is
// served from cache when present.
func (s *Service) CalculateSummary(ctx context.Context, userID uuid.UUID, f Filter) (Summary, error) {
	if err := f.Validate(); err != nil {
		return Summary{}, err
	}

	cacheable := f.IsEmpty() && s.cache != nil

	if cacheable {
		if cached, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
			return *cached, nil
		}
	}

	transactions, err := s.repo.ListAllByUser(ctx, userID, f)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary := Summarize(transactions)

	if cacheable {
		_ = s.cache.Set(ctx, userID, summary)
	}

	return summary, nil
}

func (s *Service) checkCategory(ctx context.Context, id uuid.UUID) error {
	exists, err := s.categories.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}

	if !exists {
		return category.ErrCategoryNotFound
	}

	return nil
}

// lockWalletPair locks two wallets in ID order so concurrent cross-wallet
// moves cannot deadlock, then returns them as (src, dst).
func (s *Service) lockWalletPair(ctx context.Context, srcID, dstID uuid.UUID) (*wallet.Wallet, *wallet.Wallet, error) {
	firstID, secondID := srcID, dstID
	if bytes.Compare(firstID[:], secondID[:]) > 0 {
		firstID, secondID = secondID, firstID
	}

	first, err := s.wallets.GetByIDForUpdate(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}

	second, err := s.wallets.GetByIDForUpdate(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == srcID {
		return first, second, nil
	}
	return second, first, nil
}

func (s *Service) invalidateSummary(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}
