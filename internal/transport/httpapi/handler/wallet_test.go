package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kmazurek/saldo/internal/platform/ledger"
	"github.com/kmazurek/saldo/internal/platform/wallet"
	"github.com/kmazurek/saldo/internal/transport/httpapi/handler"
)

// MockWalletService is a mock implementation of handler.WalletServiceInterface
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Create(ctx context.Context, userID uuid.UUID, name string) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) GetByID(ctx context.Context, id, userID uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) List(ctx context.Context, userID uuid.UUID, sort wallet.SortField, desc bool, limit, offset int) ([]*wallet.Wallet, int, error) {
	args := m.Called(ctx, userID, sort, desc, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*wallet.Wallet), args.Int(1), args.Error(2)
}

func (m *MockWalletService) Update(ctx context.Context, id, userID uuid.UUID, name string) (*wallet.Wallet, error) {
	args := m.Called(ctx, id, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockWalletLedger is a mock implementation of handler.WalletLedgerInterface
type MockWalletLedger struct {
	mock.Mock
}

func (m *MockWalletLedger) ListByWallet(ctx context.Context, userID, walletID uuid.UUID) ([]*ledger.Transaction, error) {
	args := m.Called(ctx, userID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Transaction), args.Error(1)
}

func newWalletRouter(h *handler.WalletHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/wallets", h.CreateWallet)
	r.Get("/wallets", h.GetWallets)
	r.Get("/wallets/{id}", h.GetWallet)
	r.Put("/wallets/{id}", h.UpdateWallet)
	r.Delete("/wallets/{id}", h.DeleteWallet)
	return r
}

func TestCreateWallet(t *testing.T) {
	userID := uuid.New()

	t.Run("created", func(t *testing.T) {
		svc := new(MockWalletService)
		router := newWalletRouter(handler.NewWalletHandler(svc, new(MockWalletLedger)))

		svc.On("Create", mock.Anything, userID, "Checking").Return(&wallet.Wallet{
			ID:        uuid.New(),
			UserID:    userID,
			Name:      "Checking",
			Balance:   decimal.Zero,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}, nil)

		req := withUser(httptest.NewRequest(http.MethodPost, "/wallets",
			strings.NewReader(`{"name":"Checking"}`)), userID)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp handler.WalletResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Checking", resp.Name)
		assert.Equal(t, "0.00", resp.Balance)
	})

	t.Run("duplicate name maps to 409", func(t *testing.T) {
		svc := new(MockWalletService)
		router := newWalletRouter(handler.NewWalletHandler(svc, new(MockWalletLedger)))

		svc.On("Create", mock.Anything, userID, "Checking").
			Return(nil, wallet.ErrDuplicateWalletName)

		req := withUser(httptest.NewRequest(http.MethodPost, "/wallets",
			strings.NewReader(`{"name":"Checking"}`)), userID)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestGetWalletsSorting(t *testing.T) {
	userID := uuid.New()

	t.Run("sort and order params reach the service", func(t *testing.T) {
		svc := new(MockWalletService)
		router := newWalletRouter(handler.NewWalletHandler(svc, new(MockWalletLedger)))

		svc.On("List", mock.Anything, userID, wallet.SortByName, true, 10, 0).
			Return([]*wallet.Wallet{}, 0, nil)

		req := withUser(httptest.NewRequest(http.MethodGet, "/wallets?sort=name&order=desc", nil), userID)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown sort falls back to created_at", func(t *testing.T) {
		svc := new(MockWalletService)
		router := newWalletRouter(handler.NewWalletHandler(svc, new(MockWalletLedger)))

		svc.On("List", mock.Anything, userID, wallet.SortByCreatedAt, false, 10, 0).
			Return([]*wallet.Wallet{}, 0, nil)

		req := withUser(httptest.NewRequest(http.MethodGet, "/wallets?sort=balance", nil), userID)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestGetWalletDetail(t *testing.T) {
	userID := uuid.New()
	walletID := uuid.New()
	categoryID := uuid.New()

	svc := new(MockWalletService)
	ledgerSvc := new(MockWalletLedger)
	router := newWalletRouter(handler.NewWalletHandler(svc, ledgerSvc))

	svc.On("GetByID", mock.Anything, walletID, userID).Return(&wallet.Wallet{
		ID:        walletID,
		UserID:    userID,
		Name:      "Checking",
		Balance:   decimal.RequireFromString("70.00"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil)
	ledgerSvc.On("ListByWallet", mock.Anything, userID, walletID).Return([]*ledger.Transaction{
		{
			ID:         uuid.New(),
			WalletID:   walletID,
			CategoryID: categoryID,
			Amount:     decimal.RequireFromString("100.00"),
			Type:       ledger.TypeIncome,
		},
		{
			ID:         uuid.New(),
			WalletID:   walletID,
			CategoryID: categoryID,
			Amount:     decimal.RequireFromString("30.00"),
			Type:       ledger.TypeExpense,
		},
	}, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallets/"+walletID.String(), nil), userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.WalletDetailResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "70.00", resp.Wallet.Balance)
	assert.Len(t, resp.Transactions, 2)
}

func TestDeleteWallet(t *testing.T) {
	userID := uuid.New()
	walletID := uuid.New()

	t.Run("no content on success", func(t *testing.T) {
		svc := new(MockWalletService)
		router := newWalletRouter(handler.NewWalletHandler(svc, new(MockWalletLedger)))

		svc.On("Delete", mock.Anything, walletID, userID).Return(nil)

		req := withUser(httptest.NewRequest(http.MethodDelete, "/wallets/"+walletID.String(), nil), userID)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("wallet with transactions maps to 409", func(t *testing.T) {
		svc := new(MockWalletService)
		router := newWalletRouter(handler.NewWalletHandler(svc, new(MockWalletLedger)))

		svc.On("Delete", mock.Anything, walletID, userID).Return(wallet.ErrWalletInUse)

		req := withUser(httptest.NewRequest(http.MethodDelete, "/wallets/"+walletID.String(), nil), userID)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("someone else's wallet maps to 403", func(t *testing.T) {
		svc := new(MockWalletService)
		router := newWalletRouter(handler.NewWalletHandler(svc, new(MockWalletLedger)))

		svc.On("Delete", mock.Anything, walletID, userID).Return(wallet.ErrUnauthorizedAccess)

		req := withUser(httptest.NewRequest(http.MethodDelete, "/wallets/"+walletID.String(), nil), userID)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
