package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// JournalEntryLine is a single debit-or-credit movement against one account,
// belonging to exactly one journal entry.
type JournalEntryLine struct {
	LineID       string          `json:"lineID"`  // Primary key (UUID)
	EntryID      string          `json:"entryID"` // Owning journal entry
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	Reference    *Reference      `json:"reference,omitempty"`
	AuditFields
}

// Validate checks the per-line amount invariants: both sides nonnegative and at
// least one side nonzero. A line carrying both a debit and a credit is accepted;
// nothing in the schema prevents it and historical data contains such lines.
func (l *JournalEntryLine) Validate() error {
	if l.AccountID == "" {
		return fmt.Errorf("line account ID is required")
	}
	if l.DebitAmount.IsNegative() {
		return fmt.Errorf("debit amount must not be negative for account %s", l.AccountID)
	}
	if l.CreditAmount.IsNegative() {
		return fmt.Errorf("credit amount must not be negative for account %s", l.AccountID)
	}
	if l.DebitAmount.IsZero() && l.CreditAmount.IsZero() {
		return fmt.Errorf("line for account %s must carry a debit or a credit", l.AccountID)
	}
	if l.Reference != nil && !l.Reference.Type.IsValid() {
		return fmt.Errorf("unknown reference type %q on line for account %s", l.Reference.Type, l.AccountID)
	}
	return nil
}
