package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is a named running balance owned by exactly one user.
//
// Balance is maintained incrementally by the ledger: it always equals the
// sum of signed transaction amounts recorded against the wallet since its
// creation. Nothing outside the ledger writes it.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ValidateCreate validates wallet fields for creation
func (w *Wallet) ValidateCreate() error {
	if w.UserID == uuid.Nil {
		return ErrInvalidUserID
	}

	return w.validateName()
}

// ValidateUpdate validates wallet fields for updates
func (w *Wallet) ValidateUpdate() error {
	if w.ID == uuid.Nil {
		return ErrInvalidWalletID
	}

	return w.validateName()
}

func (w *Wallet) validateName() error {
	if w.Name == "" {
		return ErrMissingWalletName
	}

	if len(w.Name) > 255 {
		return ErrWalletNameTooLong
	}

	return nil
}
