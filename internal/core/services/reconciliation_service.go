package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hms-suite/hms_accounting/internal/apperrors"
	"github.com/hms-suite/hms_accounting/internal/core/domain"
	portsrepo "github.com/hms-suite/hms_accounting/internal/core/ports/repositories"
	portssvc "github.com/hms-suite/hms_accounting/internal/core/ports/services"
	"github.com/hms-suite/hms_accounting/internal/dto"
	"github.com/hms-suite/hms_accounting/internal/middleware"
)

var (
	ErrReconciliationNotDraft = errors.New("reconciliation is not in draft status")
	ErrEntryAlreadyMatched    = errors.New("journal entry is already matched in this reconciliation")
)

// reconciliationService provides bank reconciliation operations.
type reconciliationService struct {
	reconciliationRepo portsrepo.ReconciliationRepositoryFacade
	bankRepo           portsrepo.BankAccountRepositoryFacade
	journalRepo        portsrepo.JournalRepositoryFacade
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(
	reconciliationRepo portsrepo.ReconciliationRepositoryFacade,
	bankRepo portsrepo.BankAccountRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		reconciliationRepo: reconciliationRepo,
		bankRepo:           bankRepo,
		journalRepo:        journalRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// CreateReconciliation opens a reconciliation session against a bank account.
// The book balance is snapshotted from a fresh recompute at creation so later
// postings do not silently shift it.
func (s *reconciliationService) CreateReconciliation(ctx context.Context, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.BankReconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, req.BankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: bank account %s not found", apperrors.ErrValidation, req.BankAccountID)
		}
		return nil, fmt.Errorf("failed to fetch bank account %s: %w", req.BankAccountID, err)
	}
	if !bankAccount.IsActive {
		return nil, fmt.Errorf("%w: bank account %s is inactive", apperrors.ErrValidation, req.BankAccountID)
	}

	bookBalance, err := s.bankRepo.RecomputeBalance(ctx, req.BankAccountID, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot book balance for bank account %s: %w", req.BankAccountID, err)
	}

	now := time.Now().UTC()
	reconciliation := domain.BankReconciliation{
		ReconciliationID: uuid.NewString(),
		BankAccountID:    req.BankAccountID,
		StatementDate:    req.StatementDate.UTC(),
		StatementBalance: req.StatementBalance,
		BookBalance:      bookBalance,
		Status:           domain.ReconciliationDraft,
		Notes:            req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.reconciliationRepo.SaveReconciliation(ctx, reconciliation); err != nil {
		logger.Error("Failed to save reconciliation", slog.String("error", err.Error()), slog.String("bank_account_id", req.BankAccountID))
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	logger.Info("Reconciliation created",
		slog.String("reconciliation_id", reconciliation.ReconciliationID),
		slog.String("bank_account_id", req.BankAccountID),
		slog.String("difference", reconciliation.Difference().String()))
	return &reconciliation, nil
}

// GetReconciliationByID retrieves a reconciliation with its matched entries.
func (s *reconciliationService) GetReconciliationByID(ctx context.Context, reconciliationID string) (*domain.BankReconciliation, error) {
	reconciliation, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}

	entries, err := s.reconciliationRepo.FindEntriesByReconciliationID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for reconciliation %s: %w", reconciliationID, err)
	}
	reconciliation.Entries = entries
	return reconciliation, nil
}

// ListReconciliations retrieves a page of reconciliations for one bank account.
func (s *reconciliationService) ListReconciliations(ctx context.Context, bankAccountID string, params dto.ListReconciliationsParams) (*dto.ListReconciliationsResponse, error) {
	if _, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID); err != nil {
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	reconciliations, nextToken, err := s.reconciliationRepo.ListReconciliations(ctx, bankAccountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations for bank account %s: %w", bankAccountID, err)
	}

	return &dto.ListReconciliationsResponse{
		Reconciliations: dto.ToReconciliationResponses(reconciliations),
		NextToken:       nextToken,
	}, nil
}

// AddEntry matches a journal entry into a draft reconciliation. The entry must
// exist; it is not required to touch the bank's ledger account, since statement
// lines often aggregate several book entries.
func (s *reconciliationService) AddEntry(ctx context.Context, reconciliationID string, req dto.AddReconciliationEntryRequest, actorUserID string) (*domain.ReconciliationEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reconciliation, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}
	if reconciliation.Status != domain.ReconciliationDraft {
		return nil, fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrReconciliationNotDraft, reconciliation.Status)
	}

	journalEntry, err := s.journalRepo.FindEntryByID(ctx, req.EntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal entry %s not found", apperrors.ErrValidation, req.EntryID)
		}
		return nil, fmt.Errorf("failed to fetch journal entry %s: %w", req.EntryID, err)
	}
	if journalEntry.Status != domain.Posted {
		logger.Warn("Matching non-posted journal entry into reconciliation",
			slog.String("entry_id", req.EntryID), slog.String("entry_status", string(journalEntry.Status)))
	}

	existing, err := s.reconciliationRepo.FindEntriesByReconciliationID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for reconciliation %s: %w", reconciliationID, err)
	}
	for _, e := range existing {
		if e.EntryID == req.EntryID {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, ErrEntryAlreadyMatched)
		}
	}

	now := time.Now().UTC()
	entry := domain.ReconciliationEntry{
		ReconciliationEntryID: uuid.NewString(),
		ReconciliationID:      reconciliationID,
		EntryID:               req.EntryID,
		IsCleared:             req.IsCleared,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if req.IsCleared {
		clearedDate := now
		if req.ClearedDate != nil {
			clearedDate = req.ClearedDate.UTC()
		}
		entry.ClearedDate = &clearedDate
	}

	if err := s.reconciliationRepo.AddEntry(ctx, entry); err != nil {
		logger.Error("Failed to add reconciliation entry", slog.String("error", err.Error()), slog.String("reconciliation_id", reconciliationID))
		return nil, fmt.Errorf("failed to add entry to reconciliation %s: %w", reconciliationID, err)
	}

	logger.Info("Reconciliation entry added",
		slog.String("reconciliation_id", reconciliationID),
		slog.String("entry_id", req.EntryID))
	return &entry, nil
}

// ClearEntry marks a matched entry as cleared against the bank statement.
func (s *reconciliationService) ClearEntry(ctx context.Context, reconciliationID string, reconciliationEntryID string, req dto.ClearReconciliationEntryRequest, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	reconciliation, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}
	if reconciliation.Status != domain.ReconciliationDraft {
		return fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrReconciliationNotDraft, reconciliation.Status)
	}

	entry, err := s.reconciliationRepo.FindReconciliationEntryByID(ctx, reconciliationEntryID)
	if err != nil {
		return fmt.Errorf("failed to find reconciliation entry %s: %w", reconciliationEntryID, err)
	}
	if entry.ReconciliationID != reconciliationID {
		return fmt.Errorf("%w: entry %s does not belong to reconciliation %s", apperrors.ErrValidation, reconciliationEntryID, reconciliationID)
	}

	now := time.Now().UTC()
	clearedDate := now
	if req.ClearedDate != nil {
		clearedDate = req.ClearedDate.UTC()
	}

	if err := s.reconciliationRepo.MarkEntryCleared(ctx, reconciliationEntryID, clearedDate, actorUserID, now); err != nil {
		logger.Error("Failed to clear reconciliation entry", slog.String("error", err.Error()), slog.String("reconciliation_entry_id", reconciliationEntryID))
		return fmt.Errorf("failed to clear reconciliation entry %s: %w", reconciliationEntryID, err)
	}

	logger.Info("Reconciliation entry cleared", slog.String("reconciliation_entry_id", reconciliationEntryID))
	return nil
}

// Complete transitions a draft reconciliation to RECONCILED. A nonzero residual
// difference or uncleared entries do not block completion; the accountant owns
// that judgement, so both conditions are only logged.
func (s *reconciliationService) Complete(ctx context.Context, reconciliationID string, actorUserID string) (*domain.BankReconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reconciliation, err := s.GetReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}
	if reconciliation.Status != domain.ReconciliationDraft {
		return nil, fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrReconciliationNotDraft, reconciliation.Status)
	}

	if !reconciliation.Difference().IsZero() {
		logger.Warn("Completing reconciliation with nonzero difference",
			slog.String("reconciliation_id", reconciliationID),
			slog.String("difference", reconciliation.Difference().String()))
	}
	uncleared := 0
	for _, e := range reconciliation.Entries {
		if !e.IsCleared {
			uncleared++
		}
	}
	if uncleared > 0 {
		logger.Warn("Completing reconciliation with uncleared entries",
			slog.String("reconciliation_id", reconciliationID),
			slog.Int("uncleared_count", uncleared))
	}

	now := time.Now().UTC()
	if err := s.reconciliationRepo.UpdateReconciliationStatus(ctx, reconciliationID, domain.ReconciliationReconciled, &actorUserID, &now, actorUserID, now); err != nil {
		logger.Error("Failed to complete reconciliation", slog.String("error", err.Error()), slog.String("reconciliation_id", reconciliationID))
		return nil, fmt.Errorf("failed to complete reconciliation %s: %w", reconciliationID, err)
	}

	reconciliation.Status = domain.ReconciliationReconciled
	reconciliation.ReconciledBy = &actorUserID
	reconciliation.ReconciledAt = &now
	reconciliation.LastUpdatedAt = now
	reconciliation.LastUpdatedBy = actorUserID

	logger.Info("Reconciliation completed", slog.String("reconciliation_id", reconciliationID))
	return reconciliation, nil
}

// Cancel transitions a draft reconciliation to CANCELLED.
func (s *reconciliationService) Cancel(ctx context.Context, reconciliationID string, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	reconciliation, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}
	if reconciliation.Status != domain.ReconciliationDraft {
		return fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrReconciliationNotDraft, reconciliation.Status)
	}

	if err := s.reconciliationRepo.UpdateReconciliationStatus(ctx, reconciliationID, domain.ReconciliationCancelled, nil, nil, actorUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to cancel reconciliation", slog.String("error", err.Error()), slog.String("reconciliation_id", reconciliationID))
		return fmt.Errorf("failed to cancel reconciliation %s: %w", reconciliationID, err)
	}

	logger.Info("Reconciliation cancelled", slog.String("reconciliation_id", reconciliationID))
	return nil
}
