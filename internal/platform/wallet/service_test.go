package wallet_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kmazurek/saldo/internal/platform/wallet"
)

// MockWalletRepository is a mock implementation of wallet.Repository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListByUser(ctx context.Context, userID uuid.UUID, sort wallet.SortField, desc bool, limit, offset int) ([]*wallet.Wallet, int, error) {
	args := m.Called(ctx, userID, sort, desc, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*wallet.Wallet), args.Int(1), args.Error(2)
}

func (m *MockWalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

func (m *MockWalletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWalletRepository) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

// MockTransactionChecker is a mock implementation of wallet.TransactionChecker
type MockTransactionChecker struct {
	mock.Mock
}

func (m *MockTransactionChecker) ExistsByWallet(ctx context.Context, walletID uuid.UUID) (bool, error) {
	args := m.Called(ctx, walletID)
	return args.Bool(0), args.Error(1)
}

func TestWalletServiceCreate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("new wallet starts at zero balance", func(t *testing.T) {
		repo := new(MockWalletRepository)
		checker := new(MockTransactionChecker)
		svc := wallet.NewService(repo, checker)

		repo.On("ExistsByUserAndName", ctx, userID, "Checking").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*wallet.Wallet")).Return(nil)

		created, err := svc.Create(ctx, userID, "Checking")

		require.NoError(t, err)
		assert.Equal(t, userID, created.UserID)
		assert.True(t, created.Balance.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name for the same user is rejected", func(t *testing.T) {
		repo := new(MockWalletRepository)
		checker := new(MockTransactionChecker)
		svc := wallet.NewService(repo, checker)

		repo.On("ExistsByUserAndName", ctx, userID, "Checking").Return(true, nil)

		_, err := svc.Create(ctx, userID, "Checking")

		assert.ErrorIs(t, err, wallet.ErrDuplicateWalletName)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		repo := new(MockWalletRepository)
		checker := new(MockTransactionChecker)
		svc := wallet.NewService(repo, checker)

		_, err := svc.Create(ctx, userID, "")

		assert.ErrorIs(t, err, wallet.ErrMissingWalletName)
	})
}

func TestWalletServiceGetByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()

	t.Run("owner can read", func(t *testing.T) {
		repo := new(MockWalletRepository)
		svc := wallet.NewService(repo, new(MockTransactionChecker))

		repo.On("GetByID", ctx, walletID).Return(&wallet.Wallet{
			ID:     walletID,
			UserID: userID,
			Name:   "Checking",
		}, nil)

		got, err := svc.GetByID(ctx, walletID, userID)

		require.NoError(t, err)
		assert.Equal(t, walletID, got.ID)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := new(MockWalletRepository)
		svc := wallet.NewService(repo, new(MockTransactionChecker))

		repo.On("GetByID", ctx, walletID).Return(&wallet.Wallet{
			ID:     walletID,
			UserID: uuid.New(),
		}, nil)

		_, err := svc.GetByID(ctx, walletID, userID)

		assert.ErrorIs(t, err, wallet.ErrUnauthorizedAccess)
	})
}

func TestWalletServiceUpdate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()

	t.Run("rename checks for a duplicate", func(t *testing.T) {
		repo := new(MockWalletRepository)
		svc := wallet.NewService(repo, new(MockTransactionChecker))

		repo.On("GetByID", ctx, walletID).Return(&wallet.Wallet{
			ID:     walletID,
			UserID: userID,
			Name:   "Checking",
		}, nil)
		repo.On("ExistsByUserAndName", ctx, userID, "Savings").Return(false, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*wallet.Wallet")).Return(nil)

		updated, err := svc.Update(ctx, walletID, userID, "Savings")

		require.NoError(t, err)
		assert.Equal(t, "Savings", updated.Name)
	})

	t.Run("keeping the same name skips the duplicate check", func(t *testing.T) {
		repo := new(MockWalletRepository)
		svc := wallet.NewService(repo, new(MockTransactionChecker))

		repo.On("GetByID", ctx, walletID).Return(&wallet.Wallet{
			ID:     walletID,
			UserID: userID,
			Name:   "Checking",
		}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*wallet.Wallet")).Return(nil)

		_, err := svc.Update(ctx, walletID, userID, "Checking")

		require.NoError(t, err)
		repo.AssertNotCalled(t, "ExistsByUserAndName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := new(MockWalletRepository)
		svc := wallet.NewService(repo, new(MockTransactionChecker))

		repo.On("GetByID", ctx, walletID).Return(&wallet.Wallet{
			ID:     walletID,
			UserID: uuid.New(),
			Name:   "Checking",
		}, nil)

		_, err := svc.Update(ctx, walletID, userID, "Savings")

		assert.ErrorIs(t, err, wallet.ErrUnauthorizedAccess)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestWalletServiceDelete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()

	t.Run("unused wallet is deleted", func(t *testing.T) {
		repo := new(MockWalletRepository)
		checker := new(MockTransactionChecker)
		svc := wallet.NewService(repo, checker)

		repo.On("GetByID", ctx, walletID).Return(&wallet.Wallet{
			ID:     walletID,
			UserID: userID,
		}, nil)
		checker.On("ExistsByWallet", ctx, walletID).Return(false, nil)
		repo.On("Delete", ctx, walletID).Return(nil)

		require.NoError(t, svc.Delete(ctx, walletID, userID))
		repo.AssertExpectations(t)
	})

	t.Run("wallet with transactions is refused", func(t *testing.T) {
		repo := new(MockWalletRepository)
		checker := new(MockTransactionChecker)
		svc := wallet.NewService(repo, checker)

		repo.On("GetByID", ctx, walletID).Return(&wallet.Wallet{
			ID:     walletID,
			UserID: userID,
		}, nil)
		checker.On("ExistsByWallet", ctx, walletID).Return(true, nil)

		err := svc.Delete(ctx, walletID, userID)

		assert.ErrorIs(t, err, wallet.ErrWalletInUse)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("non-owner is rejected before the usage check", func(t *testing.T) {
		repo := new(MockWalletRepository)
		checker := new(MockTransactionChecker)
		svc := wallet.NewService(repo, checker)

		repo.On("GetByID", ctx, walletID).Return(&wallet.Wallet{
			ID:     walletID,
			UserID: uuid.New(),
		}, nil)

		err := svc.Delete(ctx, walletID, userID)

		assert.ErrorIs(t, err, wallet.ErrUnauthorizedAccess)
		checker.AssertNotCalled(t, "ExistsByWallet", mock.Anything, mock.Anything)
	})
}
