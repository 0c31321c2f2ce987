package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Reversed  EntryStatus = "REVERSED"
	Cancelled EntryStatus = "CANCELLED"
)

// BalanceTolerance is the maximum allowed difference between total debits and
// total credits for an entry to count as balanced.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// JournalEntry is an atomic, dated accounting record composed of debit/credit lines.
// It is created as a draft; posting makes it count toward account balances, and a
// posted entry can only be corrected through a full offsetting reversal.
type JournalEntry struct {
	EntryID     string    `json:"entryID"`     // Primary key (UUID)
	EntryNumber string    `json:"entryNumber"` // Unique human-facing number, e.g. "JE-202608-1A2B"
	Description string    `json:"description"`
	EntryDate   time.Time `json:"entryDate"`
	PeriodYear  int       `json:"periodYear"`  // Denormalized from EntryDate for period queries
	PeriodMonth int       `json:"periodMonth"` // Denormalized from EntryDate for period queries

	Reference *Reference `json:"reference,omitempty"` // Business event that generated this entry

	IsReversal       bool       `json:"isReversal"`
	OriginalEntryID  *string    `json:"originalEntryID,omitempty"`  // Set on the reversal, points at the entry it offsets
	ReversingEntryID *string    `json:"reversingEntryID,omitempty"` // Set on the original once reversed
	ReversedBy       *string    `json:"reversedBy,omitempty"`       // Actor who performed the reversal
	ReversalDate     *time.Time `json:"reversalDate,omitempty"`

	ApprovedBy *string     `json:"approvedBy,omitempty"` // Actor who posted the entry
	ApprovedAt *time.Time  `json:"approvedAt,omitempty"`
	Status     EntryStatus `json:"status"`

	Lines []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

// TotalDebits sums the debit side of the entry's lines.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.DebitAmount)
	}
	return total
}

// TotalCredits sums the credit side of the entry's lines.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.CreditAmount)
	}
	return total
}

// IsBalanced reports whether total debits equal total credits within BalanceTolerance.
// Pure predicate over the loaded line set, no side effects.
func (e *JournalEntry) IsBalanced() bool {
	diff := e.TotalDebits().Sub(e.TotalCredits()).Abs()
	return diff.LessThan(BalanceTolerance)
}
