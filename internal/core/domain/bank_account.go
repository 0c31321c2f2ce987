package domain

import "github.com/shopspring/decimal"

// BankAccount wraps one chart-of-accounts ledger account with bank metadata and a
// cached running balance. CurrentBalance is recomputed on demand from posted lines
// and can go stale between recomputations; callers must trigger a recompute rather
// than trust it blindly.
type BankAccount struct {
	BankAccountID string `json:"bankAccountID"` // Primary key (UUID)
	AccountID     string `json:"accountID"`     // Linked chart of accounts entry (1:1)
	BankName      string `json:"bankName"`
	BranchName    string `json:"branchName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	IBAN          string `json:"iban"`
	SwiftCode     string `json:"swiftCode"`
	Currency      string `json:"currency"`

	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"` // Cached; opening + posted debits - posted credits as of last recompute
	IsActive       bool            `json:"isActive"`
	AuditFields
}
