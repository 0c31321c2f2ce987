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
	"github.com/hms-suite/hms_accounting/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountInUse      = errors.New("account is referenced by journal entry lines")
	ErrSystemAccount     = errors.New("system accounts cannot be deleted")
	ErrTypeImmutable     = errors.New("account type cannot be changed after creation")
	ErrCircularHierarchy = errors.New("account hierarchy must not contain cycles")
)

// maxTreeDepth bounds the ancestor walk so a corrupted hierarchy cannot loop forever.
const maxTreeDepth = 64

// accountService provides chart of accounts operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new chart of accounts entry.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.ChartOfAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.Type)
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, *req.ParentID)
			}
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		if parent.Type != req.Type {
			logger.Warn("Creating account under parent of different type",
				slog.String("parent_type", string(parent.Type)), slog.String("type", string(req.Type)))
		}
	}

	now := time.Now().UTC()
	account := domain.ChartOfAccount{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		IsActive:    true,
		IsSystem:    req.IsSystem,
		ParentID:    normalizeParentID(req.ParentID),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByCode retrieves a single account by its unique code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// absent from the map; callers decide whether that is an error.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartOfAccount, error) {
	result := make(map[string]domain.ChartOfAccount, len(accountIDs))
	for _, id := range accountIDs {
		if _, seen := result[id]; seen {
			continue
		}
		account, err := s.accountRepo.FindAccountByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to fetch account %s: %w", id, err)
		}
		result[id] = *account
	}
	return result, nil
}

// ListAccounts retrieves accounts matching the given parameters.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.ChartOfAccount, error) {
	filter := portsrepo.ListAccountsFilter{ActiveOnly: params.ActiveOnly}
	if params.Type != nil && *params.Type != "" {
		accountType := domain.AccountType(*params.Type)
		if !accountType.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *params.Type)
		}
		filter.Type = &accountType
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, filter, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies mutable field edits. The account type is immutable and
// parent reassignment is checked for self-parenting and cycles.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.ChartOfAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s for update: %w", accountID, err)
	}

	updated := false
	if req.Code != nil && *req.Code != account.Code {
		account.Code = *req.Code
		updated = true
	}
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Category != nil {
		account.Category = *req.Category
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if req.ParentID != nil {
		newParent := normalizeParentID(req.ParentID)
		if err := s.validateParentAssignment(ctx, accountID, newParent); err != nil {
			return nil, err
		}
		account.ParentID = newParent
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// validateParentAssignment rejects self-parenting and cycles by walking up the
// proposed parent's ancestor chain looking for the account being reparented.
func (s *accountService) validateParentAssignment(ctx context.Context, accountID string, newParentID *string) error {
	if newParentID == nil {
		return nil
	}
	if *newParentID == accountID {
		return fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
	}

	currentID := *newParentID
	for depth := 0; depth < maxTreeDepth; depth++ {
		ancestor, err := s.accountRepo.FindAccountByID(ctx, currentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, currentID)
			}
			return fmt.Errorf("failed to walk account ancestors: %w", err)
		}
		if ancestor.ParentID == nil {
			return nil
		}
		if *ancestor.ParentID == accountID {
			return fmt.Errorf("%w: %s is a descendant of %s", apperrors.ErrValidation, *newParentID, accountID)
		}
		currentID = *ancestor.ParentID
	}
	return fmt.Errorf("%w: ancestor chain exceeds maximum depth", ErrCircularHierarchy)
}

// DeactivateAccount flags an account inactive without removing it.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	account.IsActive = false
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	return nil
}

// DeleteAccount soft-deletes an account. System accounts are protected, and
// accounts referenced by any journal line are rejected with a conflict so the
// caller sees "cannot delete: in use" rather than a constraint violation.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	if account.IsSystem {
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrSystemAccount)
	}

	lineCount, err := s.accountRepo.CountLinesForAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to count lines for account %s: %w", accountID, err)
	}
	if lineCount > 0 {
		return fmt.Errorf("%w: %s (%d lines)", apperrors.ErrConflict, ErrAccountInUse, lineCount)
	}

	if err := s.accountRepo.SoftDeleteAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

// GetAccountBalance computes the account's derived balance over posted lines,
// signed per the account type convention. The result is never cached.
func (s *accountService) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	debits, credits, err := s.accountRepo.SumPostedLineAmounts(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum posted lines for account %s: %w", accountID, err)
	}

	balance, err := accounting.DirectedBalance(account.Type, debits, credits)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	return balance, nil
}

func normalizeParentID(parentID *string) *string {
	if parentID == nil || *parentID == "" {
		return nil
	}
	return parentID
}
