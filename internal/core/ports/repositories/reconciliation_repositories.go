package repositories

import (
	"context"
	"time"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
)

// ReconciliationReader defines read operations for bank reconciliation data.
type ReconciliationReader interface {
	// FindReconciliationByID retrieves a reconciliation header by its identifier.
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.BankReconciliation, error)

	// FindEntriesByReconciliationID retrieves all matched entries of one reconciliation.
	FindEntriesByReconciliationID(ctx context.Context, reconciliationID string) ([]domain.ReconciliationEntry, error)

	// FindReconciliationEntryByID retrieves a single matched entry row.
	FindReconciliationEntryByID(ctx context.Context, reconciliationEntryID string) (*domain.ReconciliationEntry, error)

	// ListReconciliations retrieves a page of reconciliations for a bank account,
	// newest statement first, with token-based pagination over statement_date.
	ListReconciliations(ctx context.Context, bankAccountID string, limit int, nextToken *string) ([]domain.BankReconciliation, *string, error)
}

// ReconciliationWriter defines write operations for bank reconciliation data.
type ReconciliationWriter interface {
	// SaveReconciliation inserts a new reconciliation snapshot.
	SaveReconciliation(ctx context.Context, reconciliation domain.BankReconciliation) error

	// AddEntry appends a matched journal entry row to a reconciliation.
	AddEntry(ctx context.Context, entry domain.ReconciliationEntry) error

	// MarkEntryCleared flags a matched entry as cleared on the given date.
	MarkEntryCleared(ctx context.Context, reconciliationEntryID string, clearedDate time.Time, updatedBy string, updatedAt time.Time) error

	// UpdateReconciliationStatus transitions a reconciliation's status, stamping the
	// reconciler when completing.
	UpdateReconciliationStatus(ctx context.Context, reconciliationID string, status domain.ReconciliationStatus, reconciledBy *string, reconciledAt *time.Time, updatedBy string, updatedAt time.Time) error
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces.
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
