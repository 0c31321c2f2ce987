package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus indicates the lifecycle state of a bank reconciliation.
type ReconciliationStatus string

const (
	ReconciliationDraft      ReconciliationStatus = "DRAFT"
	ReconciliationReconciled ReconciliationStatus = "RECONCILED"
	ReconciliationCancelled  ReconciliationStatus = "CANCELLED"
)

// BankReconciliation is a snapshot comparing a bank statement balance against the
// book balance of a bank account at a statement date. Journal entries are matched
// against it and individually cleared while the reconciliation is in draft.
type BankReconciliation struct {
	ReconciliationID string    `json:"reconciliationID"` // Primary key (UUID)
	BankAccountID    string    `json:"bankAccountID"`
	StatementDate    time.Time `json:"statementDate"`

	StatementBalance decimal.Decimal `json:"statementBalance"`
	BookBalance      decimal.Decimal `json:"bookBalance"` // Snapshotted at creation

	Status       ReconciliationStatus `json:"status"`
	ReconciledBy *string              `json:"reconciledBy,omitempty"`
	ReconciledAt *time.Time           `json:"reconciledAt,omitempty"`
	Notes        string               `json:"notes"`

	Entries []ReconciliationEntry `json:"entries,omitempty"`
	AuditFields
}

// Difference returns statement balance minus book balance. Persisted as a
// generated column in storage; computed here for in-memory use.
func (r *BankReconciliation) Difference() decimal.Decimal {
	return r.StatementBalance.Sub(r.BookBalance)
}

// ReconciliationEntry links one journal entry to a reconciliation session with a
// cleared flag and the date the bank cleared it.
type ReconciliationEntry struct {
	ReconciliationEntryID string     `json:"reconciliationEntryID"` // Primary key (UUID)
	ReconciliationID      string     `json:"reconciliationID"`
	EntryID               string     `json:"entryID"` // Journal entry being matched
	IsCleared             bool       `json:"isCleared"`
	ClearedDate           *time.Time `json:"clearedDate,omitempty"`
	AuditFields
}
