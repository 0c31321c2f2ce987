package repositories

import (
	"context"
	"time"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
)

// ListEntriesFilter narrows journal entry listing.
type ListEntriesFilter struct {
	Status      *domain.EntryStatus
	PeriodYear  *int
	PeriodMonth *int
}

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindEntryByID retrieves a journal entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines belonging to one entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntries retrieves a page of entry headers matching the filter using
	// token-based pagination over (entry_date, created_at).
	ListEntries(ctx context.Context, filter ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListLinesByAccountID retrieves a page of lines hitting one account, most recent first.
	ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error)
}

// JournalEntryWriter defines write operations for journal entry data. Multi-row
// methods run inside a single database transaction.
type JournalEntryWriter interface {
	// SaveEntry inserts an entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error

	// MarkEntryPosted transitions an entry to POSTED, stamping approver and time.
	MarkEntryPosted(ctx context.Context, entryID string, approvedBy string, approvedAt time.Time) error

	// MarkEntryCancelled transitions an entry to CANCELLED.
	MarkEntryCancelled(ctx context.Context, entryID string, updatedBy string, updatedAt time.Time) error

	// SaveReversal inserts the reversal entry with its lines and flips the original
	// entry to REVERSED with its reversing link, all in one transaction. The
	// reversal's OriginalEntryID must point at the entry being reversed.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalEntryLine) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
