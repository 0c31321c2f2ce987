package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hms-suite/hms_accounting/internal/apperrors"
	"github.com/hms-suite/hms_accounting/internal/core/domain"
	portsrepo "github.com/hms-suite/hms_accounting/internal/core/ports/repositories"
	portssvc "github.com/hms-suite/hms_accounting/internal/core/ports/services"
	"github.com/hms-suite/hms_accounting/internal/dto"
	"github.com/hms-suite/hms_accounting/internal/middleware"
)

var ErrAccountAlreadyBanked = errors.New("ledger account already has a bank account")

// bankAccountService provides bank account operations.
type bankAccountService struct {
	bankRepo    portsrepo.BankAccountRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewBankAccountService creates a new bank account service.
func NewBankAccountService(bankRepo portsrepo.BankAccountRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.BankAccountSvcFacade {
	return &bankAccountService{bankRepo: bankRepo, accountRepo: accountRepo}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

// CreateBankAccount registers bank details against an existing active ledger
// account. One ledger account can back at most one bank account.
func (s *bankAccountService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ledger account %s not found", apperrors.ErrValidation, req.AccountID)
		}
		return nil, fmt.Errorf("failed to fetch ledger account %s: %w", req.AccountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: ledger account %s is inactive", apperrors.ErrValidation, account.Code)
	}
	if account.Type != domain.Asset {
		logger.Warn("Bank account linked to non-asset ledger account",
			slog.String("account_id", account.AccountID), slog.String("account_type", string(account.Type)))
	}

	existing, err := s.bankRepo.FindBankAccountByAccountID(ctx, req.AccountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing bank account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, ErrAccountAlreadyBanked)
	}

	now := time.Now().UTC()
	bankAccount := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		AccountID:      req.AccountID,
		BankName:       req.BankName,
		BranchName:     req.BranchName,
		AccountName:    req.AccountName,
		AccountNumber:  req.AccountNumber,
		IBAN:           req.IBAN,
		SwiftCode:      req.SwiftCode,
		Currency:       strings.ToUpper(req.Currency),
		OpeningBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bankRepo.SaveBankAccount(ctx, bankAccount); err != nil {
		logger.Error("Failed to save bank account", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	logger.Info("Bank account created",
		slog.String("bank_account_id", bankAccount.BankAccountID),
		slog.String("account_id", bankAccount.AccountID))
	return &bankAccount, nil
}

// GetBankAccountByID retrieves a single bank account.
func (s *bankAccountService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}
	return bankAccount, nil
}

// ListBankAccounts retrieves bank accounts.
func (s *bankAccountService) ListBankAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.BankAccount, error) {
	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.bankRepo.ListBankAccounts(ctx, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

// UpdateBankAccount applies metadata edits. Account number, currency and the
// ledger link are immutable after creation.
func (s *bankAccountService) UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bank account %s for update: %w", bankAccountID, err)
	}

	if req.BankName != nil {
		bankAccount.BankName = *req.BankName
	}
	if req.BranchName != nil {
		bankAccount.BranchName = *req.BranchName
	}
	if req.AccountName != nil {
		bankAccount.AccountName = *req.AccountName
	}
	if req.IBAN != nil {
		bankAccount.IBAN = *req.IBAN
	}
	if req.SwiftCode != nil {
		bankAccount.SwiftCode = *req.SwiftCode
	}
	if req.IsActive != nil {
		bankAccount.IsActive = *req.IsActive
	}

	bankAccount.LastUpdatedAt = time.Now().UTC()
	bankAccount.LastUpdatedBy = userID

	if err := s.bankRepo.UpdateBankAccount(ctx, *bankAccount); err != nil {
		logger.Error("Failed to update bank account", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
		return nil, fmt.Errorf("failed to update bank account: %w", err)
	}

	logger.Info("Bank account updated", slog.String("bank_account_id", bankAccountID))
	return bankAccount, nil
}

// RecomputeBalance refreshes the cached current balance from the posted ledger
// activity on the linked account.
func (s *bankAccountService) RecomputeBalance(ctx context.Context, bankAccountID string, actorUserID string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balance, err := s.bankRepo.RecomputeBalance(ctx, bankAccountID, actorUserID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to recompute balance for bank account %s: %w", bankAccountID, err)
	}

	logger.Info("Bank balance recomputed",
		slog.String("bank_account_id", bankAccountID),
		slog.String("current_balance", balance.String()))
	return balance, nil
}
