package wallet

import "errors"

var (
	// Validation errors
	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrInvalidWalletID     = errors.New("invalid wallet ID")
	ErrMissingWalletName   = errors.New("wallet name is required")
	ErrWalletNameTooLong   = errors.New("wallet name exceeds 255 characters")
	ErrDuplicateWalletName = errors.New("wallet name already exists for this user")

	// Repository errors
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrUnauthorizedAccess = errors.New("unauthorized wallet access")

	// ErrWalletInUse is returned when deleting a wallet that is still
	// referenced by transactions.
	ErrWalletInUse = errors.New("wallet has transactions and cannot be deleted")
)
