package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is the DB representation of a bank account row.
type BankAccount struct {
	BankAccountID string
	AccountID     string
	BankName      string
	BranchName    string
	AccountName   string
	AccountNumber string
	IBAN          string
	SwiftCode     string
	Currency      string

	OpeningBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	IsActive       bool
	AuditFields
}

// ReconciliationStatus mirrors domain.ReconciliationStatus at the storage layer.
type ReconciliationStatus string

const (
	ReconciliationDraft      ReconciliationStatus = "DRAFT"
	ReconciliationReconciled ReconciliationStatus = "RECONCILED"
	ReconciliationCancelled  ReconciliationStatus = "CANCELLED"
)

// BankReconciliation is the DB representation of a reconciliation snapshot.
// Difference is a generated column (statement_balance - book_balance) and is
// read-only from the application's point of view.
type BankReconciliation struct {
	ReconciliationID string
	BankAccountID    string
	StatementDate    time.Time
	StatementBalance decimal.Decimal
	BookBalance      decimal.Decimal
	Difference       decimal.Decimal

	Status       ReconciliationStatus
	ReconciledBy *string
	ReconciledAt *time.Time
	Notes        string
	AuditFields
}

// ReconciliationEntry is the DB representation of a matched journal entry.
type ReconciliationEntry struct {
	ReconciliationEntryID string
	ReconciliationID      string
	EntryID               string
	IsCleared             bool
	ClearedDate           *time.Time
	AuditFields
}
