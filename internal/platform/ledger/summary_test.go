package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kmazurek/saldo/internal/platform/ledger"
)

func TestSummarize(t *testing.T) {
	walletID := uuid.New()
	categoryID := uuid.New()
	now := time.Now()

	tests := []struct {
		name         string
		transactions []*ledger.Transaction
		wantIncome   string
		wantExpense  string
		wantNet      string
	}{
		{
			name:         "empty set",
			transactions: nil,
			wantIncome:   "0",
			wantExpense:  "0",
			wantNet:      "0",
		},
		{
			name: "income and expense totals",
			transactions: []*ledger.Transaction{
				tx(walletID, categoryID, "1000.00", ledger.TypeIncome, now),
				tx(walletID, categoryID, "250.50", ledger.TypeExpense, now),
				tx(walletID, categoryID, "49.50", ledger.TypeExpense, now),
				tx(walletID, categoryID, "200.00", ledger.TypeIncome, now),
			},
			wantIncome:  "1200.00",
			wantExpense: "300.00",
			wantNet:     "900.00",
		},
		{
			name: "expenses can exceed income",
			transactions: []*ledger.Transaction{
				tx(walletID, categoryID, "100.00", ledger.TypeIncome, now),
				tx(walletID, categoryID, "180.00", ledger.TypeExpense, now),
			},
			wantIncome:  "100.00",
			wantExpense: "180.00",
			wantNet:     "-80.00",
		},
		{
			name: "cent amounts stay exact",
			transactions: []*ledger.Transaction{
				tx(walletID, categoryID, "0.10", ledger.TypeIncome, now),
				tx(walletID, categoryID, "0.20", ledger.TypeIncome, now),
				tx(walletID, categoryID, "0.30", ledger.TypeExpense, now),
			},
			wantIncome:  "0.30",
			wantExpense: "0.30",
			wantNet:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.Summarize(tt.transactions)

			assert.True(t, got.Income.Equal(decimal.RequireFromString(tt.wantIncome)),
				"income: got %s, want %s", got.Income, tt.wantIncome)
			assert.True(t, got.Expense.Equal(decimal.RequireFromString(tt.wantExpense)),
				"expense: got %s, want %s", got.Expense, tt.wantExpense)
			assert.True(t, got.Net.Equal(decimal.RequireFromString(tt.wantNet)),
				"net: got %s, want %s", got.Net, tt.wantNet)
		})
	}
}

// Summarizing a filtered subset equals filtering first and summarizing the
// remainder, which is what lets the repository push filters into SQL.
func TestSummarizeAfterFilter(t *testing.T) {
	walletA := uuid.New()
	walletB := uuid.New()
	categoryID := uuid.New()
	now := time.Now()

	transactions := []*ledger.Transaction{
		tx(walletA, categoryID, "500.00", ledger.TypeIncome, now),
		tx(walletB, categoryID, "400.00", ledger.TypeIncome, now),
		tx(walletA, categoryID, "120.00", ledger.TypeExpense, now),
	}

	got := ledger.Summarize(ledger.Filter{WalletID: &walletA}.Apply(transactions))

	assert.True(t, got.Income.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, got.Expense.Equal(decimal.RequireFromString("120.00")))
	assert.True(t, got.Net.Equal(decimal.RequireFromString("380.00")))
}
