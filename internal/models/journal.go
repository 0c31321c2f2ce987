package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the storage layer.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Reversed  EntryStatus = "REVERSED"
	Cancelled EntryStatus = "CANCELLED"
)

// JournalEntry is the DB representation of a journal entry row.
type JournalEntry struct {
	EntryID     string
	EntryNumber string
	Description string
	EntryDate   time.Time
	PeriodYear  int
	PeriodMonth int

	ReferenceType *string
	ReferenceID   *string

	IsReversal       bool
	OriginalEntryID  *string
	ReversingEntryID *string
	ReversedBy       *string
	ReversalDate     *time.Time

	ApprovedBy *string
	ApprovedAt *time.Time
	Status     EntryStatus
	AuditFields
}

// JournalEntryLine is the DB representation of a single debit/credit line.
type JournalEntryLine struct {
	LineID       string
	EntryID      string
	AccountID    string
	DebitAmount  decimal.Decimal
	CreditAmount decimal.Decimal
	Description  string

	ReferenceType *string
	ReferenceID   *string
	AuditFields
}
