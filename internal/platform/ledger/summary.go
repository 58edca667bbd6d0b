package ledger

import "github.com/shopspring/decimal"

// Summary holds income/expense totals over a set of transactions.
// Both totals are always reported even when a type filter zeroes one of
// them; Net is income minus expense.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// Summarize computes totals over transactions with a single linear scan.
// The sum is order-independent, so callers may pass transactions in any
// order.
func Summarize(transactions []*Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero

	for _, t := range transactions {
		switch t.Type {
		case TypeIncome:
			income = income.Add(t.Amount)
		case TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}

	return Summary{
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
	}
}
