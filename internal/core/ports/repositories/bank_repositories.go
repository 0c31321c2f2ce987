package repositories

import (
	"context"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankAccountReader defines read operations for bank account data.
type BankAccountReader interface {
	// FindBankAccountByID retrieves a bank account by its unique identifier.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// FindBankAccountByAccountID retrieves the bank account wrapping a ledger account.
	FindBankAccountByAccountID(ctx context.Context, accountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves bank accounts, optionally active ones only.
	ListBankAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data.
type BankAccountWriter interface {
	// SaveBankAccount inserts a new bank account.
	SaveBankAccount(ctx context.Context, bankAccount domain.BankAccount) error

	// UpdateBankAccount persists mutable metadata fields of a bank account.
	UpdateBankAccount(ctx context.Context, bankAccount domain.BankAccount) error

	// RecomputeBalance recalculates current_balance as opening_balance plus the
	// posted debit/credit sums on the linked ledger account and persists it. The
	// bank account row is locked FOR UPDATE for the duration to avoid lost updates
	// under concurrent recomputations. Returns the freshly computed balance.
	RecomputeBalance(ctx context.Context, bankAccountID string, updatedBy string) (decimal.Decimal, error)
}

// BankAccountRepositoryFacade combines all bank account repository interfaces.
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
