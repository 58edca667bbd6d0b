package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kmazurek/saldo/internal/platform/ledger"
	"github.com/kmazurek/saldo/internal/transport/httpapi/middleware"
	"github.com/kmazurek/saldo/pkg/pagination"
)

// dateLayout is the format accepted for date_from and date_to query params
const dateLayout = "2006-01-02"

var (
	errInvalidWalletID   = errors.New("invalid wallet ID")
	errInvalidCategoryID = errors.New("invalid category ID")
	errInvalidDateFrom   = errors.New("date_from must be formatted as YYYY-MM-DD")
	errInvalidDateTo     = errors.New("date_to must be formatted as YYYY-MM-DD")
)

// LedgerServiceInterface defines the interface for transaction operations
type LedgerServiceInterface interface {
	Record(ctx context.Context, userID uuid.UUID, in ledger.RecordInput) (*ledger.Transaction, error)
	Update(ctx context.Context, userID, id uuid.UUID, in ledger.RecordInput) (*ledger.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*ledger.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, f ledger.Filter, limit, offset int) ([]*ledger.Transaction, int, error)
	CalculateSummary(ctx context.Context, userID uuid.UUID, f ledger.Filter) (ledger.Summary, error)
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	ledgerService LedgerServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledgerService LedgerServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
	}
}

// TransactionRequest represents the transaction create/update request body.
// Amount is a string so values like "10.05" survive the trip exactly.
type TransactionRequest struct {
	WalletID   string `json:"wallet_id"`
	CategoryID string `json:"category_id"`
	Amount     string `json:"amount"`
	Type       string `json:"type"`
}

// TransactionResponse represents a transaction response
type TransactionResponse struct {
	ID         string `json:"id"`
	WalletID   string `json:"wallet_id"`
	CategoryID string `json:"category_id"`
	Amount     string `json:"amount"`
	Type       string `json:"type"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// SummaryResponse represents the summary response
type SummaryResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

func (req TransactionRequest) toInput() (ledger.RecordInput, error) {
	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		return ledger.RecordInput{}, errInvalidWalletID
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return ledger.RecordInput{}, errInvalidCategoryID
	}

	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		return ledger.RecordInput{}, err
	}

	return ledger.RecordInput{
		WalletID:   walletID,
		CategoryID: categoryID,
		Amount:     amount,
		Type:       ledger.Type(req.Type),
	}, nil
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.ledgerService.Record(r.Context(), userID, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, toTransactionResponse(created), http.StatusCreated)
}

// GetTransactions handles GET /transactions
// Optional filters: wallet_id, category_id, type, date_from, date_to.
// date_to is inclusive of the whole calendar day.
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	page := pagination.ParseQuery(query)

	filter, err := parseFilter(query)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	transactions, total, err := h.ledgerService.List(r.Context(), userID, filter, page.Limit(), page.Offset())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	items := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, toTransactionResponse(t))
	}

	respondJSON(w, ListResponse{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}, http.StatusOK)
}

// GetTransaction handles GET /transactions/{id}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	transactionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	t, err := h.ledgerService.GetByID(r.Context(), userID, transactionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, toTransactionResponse(t), http.StatusOK)
}

// UpdateTransaction handles PUT /transactions/{id}
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	transactionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.ledgerService.Update(r.Context(), userID, transactionID, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, toTransactionResponse(updated), http.StatusOK)
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	transactionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	if err := h.ledgerService.Delete(r.Context(), userID, transactionID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSummary handles GET /summary
// Accepts the same filters as GET /transactions.
func (h *TransactionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.ledgerService.CalculateSummary(r.Context(), userID, filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, SummaryResponse{
		Income:  summary.Income.StringFixed(2),
		Expense: summary.Expense.StringFixed(2),
		Net:     summary.Net.StringFixed(2),
	}, http.StatusOK)
}

func parseFilter(query url.Values) (ledger.Filter, error) {
	var f ledger.Filter

	if v := query.Get("wallet_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, errInvalidWalletID
		}
		f.WalletID = &id
	}

	if v := query.Get("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, errInvalidCategoryID
		}
		f.CategoryID = &id
	}

	if v := query.Get("type"); v != "" {
		typ := ledger.Type(v)
		f.Type = &typ
	}

	if v := query.Get("date_from"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, errInvalidDateFrom
		}
		f.DateFrom = &d
	}

	if v := query.Get("date_to"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, errInvalidDateTo
		}
		f.DateTo = &d
	}

	if err := f.Validate(); err != nil {
		return f, err
	}

	return f, nil
}

func toTransactionResponse(t *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID.String(),
		WalletID:   t.WalletID.String(),
		CategoryID: t.CategoryID.String(),
		Amount:     t.Amount.StringFixed(2),
		Type:       string(t.Type),
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  t.UpdatedAt.Format(time.RFC3339),
	}
}
