package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the direction of a transaction's effect on its wallet
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// IsValid checks if the type is a known value
func (t Type) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense event applied to one wallet.
//
// It references its wallet and category by ID only; ownership for
// authorization purposes is transitive through the wallet's owner.
type Transaction struct {
	ID         uuid.UUID       `json:"id"`
	WalletID   uuid.UUID       `json:"wallet_id"`
	CategoryID uuid.UUID       `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Type       Type            `json:"type"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SignedAmount returns the transaction's effect on its wallet's balance:
// +amount for income, -amount for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ParseAmount parses a monetary amount for a transaction. Amounts are
// fixed-point with at most two fractional digits and must be positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	if d.Exponent() < -2 {
		return decimal.Zero, ErrInvalidAmount
	}

	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}

	return d, nil
}
