package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kmazurek/saldo/internal/platform/category"
	"github.com/kmazurek/saldo/internal/platform/ledger"
	"github.com/kmazurek/saldo/internal/platform/user"
	"github.com/kmazurek/saldo/internal/platform/wallet"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse is the envelope for paginated list endpoints
type ListResponse struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	Total      int         `json:"total"`
	TotalPages int         `json:"total_pages"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// respondServiceError maps domain errors onto HTTP status codes. Anything
// unrecognized is reported as a 500 without leaking internals.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		respondError(w, err.Error(), http.StatusUnprocessableEntity)

	case errors.Is(err, wallet.ErrWalletInUse),
		errors.Is(err, category.ErrCategoryInUse),
		errors.Is(err, wallet.ErrDuplicateWalletName),
		errors.Is(err, user.ErrUserAlreadyExists):
		respondError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, wallet.ErrUnauthorizedAccess):
		respondError(w, "access denied", http.StatusForbidden)

	case errors.Is(err, wallet.ErrWalletNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, user.ErrUserNotFound):
		respondError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, wallet.ErrInvalidUserID),
		errors.Is(err, wallet.ErrInvalidWalletID),
		errors.Is(err, wallet.ErrMissingWalletName),
		errors.Is(err, wallet.ErrWalletNameTooLong),
		errors.Is(err, category.ErrMissingTitle),
		errors.Is(err, category.ErrTitleTooLong),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrNonPositiveAmount),
		errors.Is(err, ledger.ErrInvalidType),
		errors.Is(err, ledger.ErrInvalidDateRange),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrPasswordTooShort),
		errors.Is(err, user.ErrInvalidRole):
		respondError(w, err.Error(), http.StatusBadRequest)

	default:
		respondError(w, "internal server error", http.StatusInternalServerError)
	}
}
