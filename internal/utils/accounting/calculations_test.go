package accounting

import (
	"testing"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDirectedBalance(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		debits      decimal.Decimal
		credits     decimal.Decimal
		want        decimal.Decimal
		wantErr     bool
	}{
		{
			name:        "asset account grows with debits",
			accountType: domain.Asset,
			debits:      decimal.NewFromInt(500),
			credits:     decimal.NewFromInt(200),
			want:        decimal.NewFromInt(300),
		},
		{
			name:        "expense account grows with debits",
			accountType: domain.Expense,
			debits:      decimal.NewFromInt(120),
			credits:     decimal.NewFromInt(20),
			want:        decimal.NewFromInt(100),
		},
		{
			name:        "revenue account grows with credits",
			accountType: domain.Revenue,
			debits:      decimal.NewFromInt(50),
			credits:     decimal.NewFromInt(300),
			want:        decimal.NewFromInt(250),
		},
		{
			name:        "liability account grows with credits",
			accountType: domain.Liability,
			debits:      decimal.NewFromInt(100),
			credits:     decimal.NewFromInt(400),
			want:        decimal.NewFromInt(300),
		},
		{
			name:        "equity account grows with credits",
			accountType: domain.Equity,
			debits:      decimal.Zero,
			credits:     decimal.NewFromInt(1000),
			want:        decimal.NewFromInt(1000),
		},
		{
			name:        "asset account can go negative",
			accountType: domain.Asset,
			debits:      decimal.NewFromInt(100),
			credits:     decimal.NewFromInt(150),
			want:        decimal.NewFromInt(-50),
		},
		{
			name:        "unknown account type",
			accountType: domain.AccountType("BOGUS"),
			debits:      decimal.NewFromInt(10),
			credits:     decimal.NewFromInt(10),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DirectedBalance(tt.accountType, tt.debits, tt.credits)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want.String(), got.String())
		})
	}
}

func TestBankBalance(t *testing.T) {
	tests := []struct {
		name    string
		opening decimal.Decimal
		debits  decimal.Decimal
		credits decimal.Decimal
		want    decimal.Decimal
	}{
		{
			name:    "debits increase and credits decrease the balance",
			opening: decimal.NewFromInt(1000),
			debits:  decimal.NewFromInt(200),
			credits: decimal.NewFromInt(50),
			want:    decimal.NewFromInt(1150),
		},
		{
			name:    "no posted activity keeps the opening balance",
			opening: decimal.NewFromFloat(2500.75),
			debits:  decimal.Zero,
			credits: decimal.Zero,
			want:    decimal.NewFromFloat(2500.75),
		},
		{
			name:    "credits can overdraw the account",
			opening: decimal.NewFromInt(100),
			debits:  decimal.NewFromInt(10),
			credits: decimal.NewFromInt(250),
			want:    decimal.NewFromInt(-140),
		},
		{
			name:    "cent precision is preserved",
			opening: decimal.NewFromFloat(99.99),
			debits:  decimal.NewFromFloat(0.02),
			credits: decimal.NewFromFloat(0.01),
			want:    decimal.NewFromInt(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BankBalance(tt.opening, tt.debits, tt.credits)
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want.String(), got.String())
		})
	}
}

func TestLinesBalance(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalEntryLine
		wantErr bool
	}{
		{
			name: "balanced two line entry",
			lines: []domain.JournalEntryLine{
				{DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.Zero},
				{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(100)},
			},
		},
		{
			name: "balanced split entry",
			lines: []domain.JournalEntryLine{
				{DebitAmount: decimal.NewFromFloat(75.25), CreditAmount: decimal.Zero},
				{DebitAmount: decimal.NewFromFloat(24.75), CreditAmount: decimal.Zero},
				{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(100)},
			},
		},
		{
			name: "rounding residue below tolerance",
			lines: []domain.JournalEntryLine{
				{DebitAmount: decimal.NewFromFloat(100.005), CreditAmount: decimal.Zero},
				{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(100)},
			},
		},
		{
			name: "unbalanced entry",
			lines: []domain.JournalEntryLine{
				{DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.Zero},
				{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(99)},
			},
			wantErr: true,
		},
		{
			name: "difference exactly at tolerance",
			lines: []domain.JournalEntryLine{
				{DebitAmount: decimal.NewFromFloat(100.01), CreditAmount: decimal.Zero},
				{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(100)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := LinesBalance(tt.lines)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "not balanced")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
