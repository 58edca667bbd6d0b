package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kmazurek/saldo/internal/platform/ledger"
	"github.com/kmazurek/saldo/internal/platform/wallet"
	"github.com/kmazurek/saldo/internal/transport/httpapi/middleware"
	"github.com/kmazurek/saldo/pkg/pagination"
)

// WalletServiceInterface defines the interface for wallet operations
type WalletServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*wallet.Wallet, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*wallet.Wallet, error)
	List(ctx context.Context, userID uuid.UUID, sort wallet.SortField, desc bool, limit, offset int) ([]*wallet.Wallet, int, error)
	Update(ctx context.Context, id, userID uuid.UUID, name string) (*wallet.Wallet, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// WalletLedgerInterface exposes the ledger operations the wallet detail view needs
type WalletLedgerInterface interface {
	ListByWallet(ctx context.Context, userID, walletID uuid.UUID) ([]*ledger.Transaction, error)
}

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	walletService WalletServiceInterface
	ledgerService WalletLedgerInterface
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService WalletServiceInterface, ledgerService WalletLedgerInterface) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		ledgerService: ledgerService,
	}
}

// CreateWalletRequest represents the wallet creation request
type CreateWalletRequest struct {
	Name string `json:"name"`
}

// UpdateWalletRequest represents the wallet update request
type UpdateWalletRequest struct {
	Name string `json:"name"`
}

// WalletResponse represents a wallet response
type WalletResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// WalletDetailResponse is a wallet along with its transaction history
type WalletDetailResponse struct {
	Wallet       WalletResponse        `json:"wallet"`
	Transactions []TransactionResponse `json:"transactions"`
}

// CreateWallet handles POST /wallets
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	createdWallet, err := h.walletService.Create(r.Context(), userID, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, toWalletResponse(createdWallet), http.StatusCreated)
}

// GetWallets handles GET /wallets
// Supports ?sort=name|created_at and ?order=asc|desc alongside pagination.
func (h *WalletHandler) GetWallets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	page := pagination.ParseQuery(query)

	sort := wallet.SortField(query.Get("sort"))
	if !sort.IsValid() {
		sort = wallet.SortByCreatedAt
	}
	desc := query.Get("order") == "desc"

	wallets, total, err := h.walletService.List(r.Context(), userID, sort, desc, page.Limit(), page.Offset())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	items := make([]WalletResponse, 0, len(wallets))
	for _, wlt := range wallets {
		items = append(items, toWalletResponse(wlt))
	}

	respondJSON(w, ListResponse{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}, http.StatusOK)
}

// GetWallet handles GET /wallets/{id}
// The detail view includes the wallet's transactions in chronological order.
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	walletID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid wallet ID", http.StatusBadRequest)
		return
	}

	wlt, err := h.walletService.GetByID(r.Context(), walletID, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	transactions, err := h.ledgerService.ListByWallet(r.Context(), userID, walletID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	items := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, toTransactionResponse(t))
	}

	respondJSON(w, WalletDetailResponse{
		Wallet:       toWalletResponse(wlt),
		Transactions: items,
	}, http.StatusOK)
}

// UpdateWallet handles PUT /wallets/{id}
func (h *WalletHandler) UpdateWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	walletID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid wallet ID", http.StatusBadRequest)
		return
	}

	var req UpdateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updatedWallet, err := h.walletService.Update(r.Context(), walletID, userID, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, toWalletResponse(updatedWallet), http.StatusOK)
}

// DeleteWallet handles DELETE /wallets/{id}
func (h *WalletHandler) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	walletID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid wallet ID", http.StatusBadRequest)
		return
	}

	if err := h.walletService.Delete(r.Context(), walletID, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toWalletResponse(wlt *wallet.Wallet) WalletResponse {
	return WalletResponse{
		ID:        wlt.ID.String(),
		UserID:    wlt.UserID.String(),
		Name:      wlt.Name,
		Balance:   wlt.Balance.StringFixed(2),
		CreatedAt: wlt.CreatedAt.Format(time.RFC3339),
		UpdatedAt: wlt.UpdatedAt.Format(time.RFC3339),
	}
}
