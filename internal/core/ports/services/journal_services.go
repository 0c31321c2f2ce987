package services

import (
	"context"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/hms-suite/hms_accounting/internal/dto"
)

// JournalSvcFacade exposes journal entry lifecycle operations.
type JournalSvcFacade interface {
	// CreateEntry persists a draft journal entry with its lines. Per-line amount
	// invariants and account existence/activity are validated; overall balance is
	// only checked at posting.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntryByID returns the entry with its lines populated.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	ListLinesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) (*dto.ListEntryLinesResponse, error)

	// PostEntry transitions a balanced draft to POSTED, stamping the approver.
	// Unbalanced entries are rejected and stay in draft; re-posting is a conflict.
	PostEntry(ctx context.Context, entryID string, actorUserID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts a full offsetting copy of a posted entry and
	// flips the original to REVERSED. Returns the reversal.
	ReverseEntry(ctx context.Context, entryID string, actorUserID string, reason string) (*domain.JournalEntry, error)

	// CancelEntry transitions a draft to CANCELLED.
	CancelEntry(ctx context.Context, entryID string, actorUserID string) error
}
