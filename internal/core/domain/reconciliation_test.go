package domain_test

import (
	"testing"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBankReconciliation_Difference(t *testing.T) {
	tests := []struct {
		name             string
		statementBalance decimal.Decimal
		bookBalance      decimal.Decimal
		want             decimal.Decimal
	}{
		{
			name:             "statement above book",
			statementBalance: decimal.NewFromInt(5000),
			bookBalance:      decimal.NewFromInt(4950),
			want:             decimal.NewFromInt(50),
		},
		{
			name:             "statement below book",
			statementBalance: decimal.NewFromFloat(1200.25),
			bookBalance:      decimal.NewFromFloat(1300.75),
			want:             decimal.NewFromFloat(-100.50),
		},
		{
			name:             "fully reconciled",
			statementBalance: decimal.NewFromInt(750),
			bookBalance:      decimal.NewFromInt(750),
			want:             decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := domain.BankReconciliation{
				StatementBalance: tt.statementBalance,
				BookBalance:      tt.bookBalance,
			}
			assert.True(t, tt.want.Equal(rec.Difference()),
				"expected %s, got %s", tt.want.String(), rec.Difference().String())
		})
	}
}
