package ledger

import "errors"

var (
	// Validation errors
	ErrInvalidAmount     = errors.New("amount must be a number with at most two decimal places")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrInvalidType       = errors.New("transaction type must be income or expense")
	ErrInvalidDateRange  = errors.New("date_from must not be after date_to")

	// ErrInsufficientFunds is returned when an expense would drive the
	// wallet's balance below zero. The wallet and transaction set are left
	// untouched.
	ErrInsufficientFunds = errors.New("insufficient funds in wallet")

	// Repository errors
	ErrTransactionNotFound = errors.New("transaction not found")
)
