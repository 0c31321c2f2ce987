package services

import (
	"context"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/hms-suite/hms_accounting/internal/dto"
	"github.com/shopspring/decimal"
)

// BankAccountSvcFacade exposes bank account operations.
type BankAccountSvcFacade interface {
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error)
	GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.BankAccount, error)
	UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error)

	// RecomputeBalance refreshes the cached current balance from posted lines on
	// the linked ledger account and returns the new value.
	RecomputeBalance(ctx context.Context, bankAccountID string, actorUserID string) (decimal.Decimal, error)
}

// ReconciliationSvcFacade exposes bank reconciliation operations.
type ReconciliationSvcFacade interface {
	CreateReconciliation(ctx context.Context, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.BankReconciliation, error)

	// GetReconciliationByID returns the reconciliation with its matched entries populated.
	GetReconciliationByID(ctx context.Context, reconciliationID string) (*domain.BankReconciliation, error)

	ListReconciliations(ctx context.Context, bankAccountID string, params dto.ListReconciliationsParams) (*dto.ListReconciliationsResponse, error)

	// AddEntry matches one journal entry into a draft reconciliation.
	AddEntry(ctx context.Context, reconciliationID string, req dto.AddReconciliationEntryRequest, actorUserID string) (*domain.ReconciliationEntry, error)

	// ClearEntry marks a matched entry as cleared against the statement.
	ClearEntry(ctx context.Context, reconciliationID string, reconciliationEntryID string, req dto.ClearReconciliationEntryRequest, actorUserID string) error

	// Complete transitions a draft reconciliation to RECONCILED. Completion is
	// permitted regardless of the residual difference.
	Complete(ctx context.Context, reconciliationID string, actorUserID string) (*domain.BankReconciliation, error)

	// Cancel transitions a draft reconciliation to CANCELLED.
	Cancel(ctx context.Context, reconciliationID string, actorUserID string) error
}
