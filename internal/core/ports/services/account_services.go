package services

import (
	"context"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/hms-suite/hms_accounting/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade exposes chart of accounts operations to handlers and sibling services.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.ChartOfAccount, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartOfAccount, error)
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.ChartOfAccount, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.ChartOfAccount, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
	DeleteAccount(ctx context.Context, accountID string, userID string) error

	// GetAccountBalance computes the derived balance over posted lines, signed per
	// the account's type. Never cached.
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}
