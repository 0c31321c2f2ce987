package repositories

import (
	"context"
	"time"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListAccountsFilter narrows account listing.
type ListAccountsFilter struct {
	Type       *domain.AccountType
	ActiveOnly bool
	ParentID   *string
}

// AccountReader defines read operations for chart of accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a single account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error)

	// FindAccountByCode retrieves a single account by its unique code.
	FindAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error)

	// ListAccounts retrieves accounts matching the filter, ordered by code.
	ListAccounts(ctx context.Context, filter ListAccountsFilter, limit int, offset int) ([]domain.ChartOfAccount, error)

	// SumPostedLineAmounts returns total debits and total credits across lines of
	// POSTED entries for the account. Soft-deleted rows are excluded.
	SumPostedLineAmounts(ctx context.Context, accountID string) (debits decimal.Decimal, credits decimal.Decimal, err error)

	// CountLinesForAccount counts journal lines referencing the account, posted or not.
	// Used to enforce restrict semantics on deletion.
	CountLinesForAccount(ctx context.Context, accountID string) (int64, error)
}

// AccountWriter defines write operations for chart of accounts data.
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.ChartOfAccount) error

	// UpdateAccount persists mutable fields of an existing account.
	UpdateAccount(ctx context.Context, account domain.ChartOfAccount) error

	// SoftDeleteAccount tombstones an account without removing the row.
	SoftDeleteAccount(ctx context.Context, accountID string, deletedBy string, deletedAt time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
