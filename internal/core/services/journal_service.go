package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hms-suite/hms_accounting/internal/apperrors"
	"github.com/hms-suite/hms_accounting/internal/core/domain"
	portsrepo "github.com/hms-suite/hms_accounting/internal/core/ports/repositories"
	portssvc "github.com/hms-suite/hms_accounting/internal/core/ports/services"
	"github.com/hms-suite/hms_accounting/internal/dto"
	"github.com/hms-suite/hms_accounting/internal/middleware"
	"github.com/hms-suite/hms_accounting/internal/utils/accounting"
)

var (
	ErrEntryNotDraft        = errors.New("journal entry is not in draft status")
	ErrEntryNotPosted       = errors.New("journal entry is not in posted status")
	ErrEntryAlreadyPosted   = errors.New("journal entry is already posted")
	ErrReversalOfReversal   = errors.New("reversal entries cannot be reversed")
	ErrEntryAlreadyReversed = errors.New("journal entry has already been reversed")
)

// journalService provides journal entry lifecycle operations.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: journalRepo, accountSvc: accountSvc}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry persists a draft journal entry with its lines. Line amounts and
// referenced accounts are validated here; the entry only has to balance when
// it is posted.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: entry requires at least one line", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	entryDate := req.EntryDate.UTC()

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: req.EntryNumber,
		Description: req.Description,
		EntryDate:   entryDate,
		PeriodYear:  entryDate.Year(),
		PeriodMonth: int(entryDate.Month()),
		Reference:   req.Reference.ToDomainReference(),
		Status:      domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if entry.EntryNumber == "" {
		entry.EntryNumber = generateEntryNumber(entry.PeriodYear, entry.PeriodMonth, entryID)
	}

	lines, err := s.buildLines(ctx, entryID, req.Lines, creatorUserID, now)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_number", entry.EntryNumber))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int("line_count", len(lines)))
	return &entry, nil
}

// buildLines validates and materializes request lines. The referenced accounts
// are fetched in one batch and every line must hit an existing, active account.
func (s *journalService) buildLines(ctx context.Context, entryID string, reqLines []dto.CreateEntryLineRequest, userID string, now time.Time) ([]domain.JournalEntryLine, error) {
	accountIDs := make([]string, 0, len(reqLines))
	seen := make(map[string]bool, len(reqLines))
	for _, reqLine := range reqLines {
		if !seen[reqLine.AccountID] {
			seen[reqLine.AccountID] = true
			accountIDs = append(accountIDs, reqLine.AccountID)
		}
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for entry lines: %w", err)
	}

	lines := make([]domain.JournalEntryLine, 0, len(reqLines))
	for i, reqLine := range reqLines {
		account, found := accounts[reqLine.AccountID]
		if !found {
			return nil, fmt.Errorf("%w: line %d references unknown account %s", apperrors.ErrValidation, i+1, reqLine.AccountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: line %d references inactive account %s", apperrors.ErrValidation, i+1, account.Code)
		}

		line := domain.JournalEntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    reqLine.AccountID,
			DebitAmount:  reqLine.DebitAmount,
			CreditAmount: reqLine.CreditAmount,
			Description:  reqLine.Description,
			Reference:    reqLine.Reference.ToDomainReference(),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := line.Validate(); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrValidation, i+1, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// GetEntryByID retrieves a journal entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a page of journal entries.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	filter := portsrepo.ListEntriesFilter{
		PeriodYear:  params.PeriodYear,
		PeriodMonth: params.PeriodMonth,
	}
	if params.Status != nil && *params.Status != "" {
		status := domain.EntryStatus(strings.ToUpper(*params.Status))
		switch status {
		case domain.Draft, domain.Posted, domain.Reversed, domain.Cancelled:
			filter.Status = &status
		default:
			return nil, fmt.Errorf("%w: unknown entry status %q", apperrors.ErrValidation, *params.Status)
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		if params.IncludeLines {
			lines, err := s.journalRepo.FindLinesByEntryID(ctx, entries[i].EntryID)
			if err != nil {
				return nil, fmt.Errorf("failed to load lines for entry %s: %w", entries[i].EntryID, err)
			}
			entries[i].Lines = lines
		}
		resp.Entries = append(resp.Entries, dto.ToJournalEntryResponse(&entries[i]))
	}
	return resp, nil
}

// ListLinesByAccount retrieves a page of lines hitting one account.
func (s *journalService) ListLinesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) (*dto.ListEntryLinesResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}

	lines, next, err := s.journalRepo.ListLinesByAccountID(ctx, accountID, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines for account %s: %w", accountID, err)
	}

	return &dto.ListEntryLinesResponse{
		Lines:     dto.ToEntryLineResponses(lines),
		NextToken: next,
	}, nil
}

// PostEntry transitions a balanced draft entry to POSTED. Posting an entry a
// second time is a conflict, not a no-op, so double submissions surface.
func (s *journalService) PostEntry(ctx context.Context, entryID string, actorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	switch entry.Status {
	case domain.Draft:
	case domain.Posted:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrEntryAlreadyPosted)
	default:
		return nil, fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrEntryNotDraft, entry.Status)
	}

	if err := accounting.LinesBalance(entry.Lines); err != nil {
		logger.Warn("Rejected unbalanced journal entry",
			slog.String("entry_id", entryID),
			slog.String("total_debits", entry.TotalDebits().String()),
			slog.String("total_credits", entry.TotalCredits().String()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkEntryPosted(ctx, entryID, actorUserID, now); err != nil {
		logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}

	entry.Status = domain.Posted
	entry.ApprovedBy = &actorUserID
	entry.ApprovedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorUserID

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// ReverseEntry creates and posts a mirror image of a posted entry, with every
// line's debit and credit swapped, and flips the original to REVERSED. Only
// posted, non-reversal entries can be reversed, and only once.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, actorUserID string, reason string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if original.IsReversal {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrReversalOfReversal)
	}
	switch original.Status {
	case domain.Posted:
	case domain.Reversed:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrEntryAlreadyReversed)
	default:
		return nil, fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrEntryNotPosted, original.Status)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	description := "Reversal of " + original.EntryNumber
	if reason != "" {
		description += ": " + reason
	}

	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		EntryNumber:     "REV-" + original.EntryNumber,
		Description:     description,
		EntryDate:       now,
		PeriodYear:      now.Year(),
		PeriodMonth:     int(now.Month()),
		Reference:       original.Reference,
		IsReversal:      true,
		OriginalEntryID: &original.EntryID,
		Status:          domain.Posted,
		ApprovedBy:      &actorUserID,
		ApprovedAt:      &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	lines := make([]domain.JournalEntryLine, 0, len(original.Lines))
	for _, origLine := range original.Lines {
		lines = append(lines, domain.JournalEntryLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			AccountID:    origLine.AccountID,
			DebitAmount:  origLine.CreditAmount,
			CreditAmount: origLine.DebitAmount,
			Description:  "Reversal: " + origLine.Description,
			Reference:    origLine.Reference,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		})
	}
	reversal.Lines = lines

	if err := s.journalRepo.SaveReversal(ctx, reversal, lines); err != nil {
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("original_entry_id", entryID))
		return nil, fmt.Errorf("failed to reverse journal entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversal_entry_id", reversalID),
		slog.String("reversal_entry_number", reversal.EntryNumber))
	return &reversal, nil
}

// CancelEntry transitions a draft entry to CANCELLED. Posted entries must be
// reversed instead so the audit trail stays intact.
func (s *journalService) CancelEntry(ctx context.Context, entryID string, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrEntryNotDraft, entry.Status)
	}

	if err := s.journalRepo.MarkEntryCancelled(ctx, entryID, actorUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to cancel journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to cancel journal entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry cancelled", slog.String("entry_id", entryID))
	return nil
}

// generateEntryNumber builds a human readable entry number from the accounting
// period and a short unique suffix, e.g. JE-202601-1A2B3C4D.
func generateEntryNumber(year, month int, entryID string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(entryID, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("JE-%04d%02d-%s", year, month, suffix)
}
