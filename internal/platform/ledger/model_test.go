package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmazurek/saldo/internal/platform/ledger"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"whole number", "100", "100", nil},
		{"two decimal places", "10.05", "10.05", nil},
		{"one decimal place", "9.5", "9.5", nil},
		{"three decimal places rejected", "1.005", "", ledger.ErrInvalidAmount},
		{"zero rejected", "0", "", ledger.ErrNonPositiveAmount},
		{"negative rejected", "-5.00", "", ledger.ErrNonPositiveAmount},
		{"not a number", "ten", "", ledger.ErrInvalidAmount},
		{"empty string", "", "", ledger.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.ParseAmount(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("42.50")

	income := &ledger.Transaction{Amount: amount, Type: ledger.TypeIncome}
	expense := &ledger.Transaction{Amount: amount, Type: ledger.TypeExpense}

	assert.True(t, income.SignedAmount().Equal(amount))
	assert.True(t, expense.SignedAmount().Equal(amount.Neg()))
}

func TestTypeIsValid(t *testing.T) {
	assert.True(t, ledger.TypeIncome.IsValid())
	assert.True(t, ledger.TypeExpense.IsValid())
	assert.False(t, ledger.Type("transfer").IsValid())
	assert.False(t, ledger.Type("").IsValid())
}
