package ledger

import "github.com/shopspring/decimal"

// apply computes the wallet balance after recording a transaction effect.
// An expense exceeding the current balance fails with ErrInsufficientFunds
// and leaves the decision to the caller; no state is touched here.
func apply(balance, amount decimal.Decimal, typ Type) (decimal.Decimal, error) {
	if typ == TypeExpense {
		if amount.GreaterThan(balance) {
			return decimal.Zero, ErrInsufficientFunds
		}
		return balance.Sub(amount), nil
	}
	return balance.Add(amount), nil
}

// reverse undoes a previously applied transaction effect on a balance.
// Reversal can never fail: an expense reversal adds back an amount that was
// validly subtracted, an income reversal subtracts an amount that was
// validly added on top of a non-negative balance.
func reverse(balance, amount decimal.Decimal, typ Type) decimal.Decimal {
	if typ == TypeExpense {
		return balance.Add(amount)
	}
	return balance.Sub(amount)
}
