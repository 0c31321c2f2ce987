package pgsql

import (
	"context"
	"errors"

	"github.com/hms-suite/hms_accounting/internal/apperrors"
	"github.com/hms-suite/hms_accounting/internal/core/domain"
	portsrepo "github.com/hms-suite/hms_accounting/internal/core/ports/repositories"
	"github.com/hms-suite/hms_accounting/internal/models"
	"github.com/hms-suite/hms_accounting/internal/utils/accounting"
	"github.com/hms-suite/hms_accounting/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBankAccountRepository struct {
	BaseRepository
}

// newPgxBankAccountRepository creates a new repository for bank account data.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

const bankAccountColumns = `
	bank_account_id, account_id, bank_name, branch_name, account_name, account_number,
	iban, swift_code, currency, opening_balance, current_balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveBankAccount inserts a new bank account row.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, bankAccount domain.BankAccount) error {
	m := mapping.ToModelBankAccount(bankAccount)
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankAccountID,
		m.AccountID,
		m.BankName,
		m.BranchName,
		m.AccountName,
		m.AccountNumber,
		m.IBAN,
		m.SwiftCode,
		m.Currency,
		m.OpeningBalance,
		m.CurrentBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "bank account for ledger account "+m.AccountID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert bank account "+m.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE bank_account_id = $1 AND deleted_at IS NULL;
	`
	return r.findBankAccount(ctx, query, bankAccountID)
}

// FindBankAccountByAccountID retrieves the bank account wrapping a ledger account.
func (r *PgxBankAccountRepository) FindBankAccountByAccountID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	return r.findBankAccount(ctx, query, accountID)
}

func (r *PgxBankAccountRepository) findBankAccount(ctx context.Context, query string, arg any) (*domain.BankAccount, error) {
	var m models.BankAccount
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.BankAccountID,
		&m.AccountID,
		&m.BankName,
		&m.BranchName,
		&m.AccountName,
		&m.AccountNumber,
		&m.IBAN,
		&m.SwiftCode,
		&m.Currency,
		&m.OpeningBalance,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account", err)
	}
	bankAccount := mapping.ToDomainBankAccount(m)
	return &bankAccount, nil
}

// ListBankAccounts retrieves bank accounts ordered by bank and account name.
func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.BankAccount, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE deleted_at IS NULL
	`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY bank_name, account_name LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts", err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		var m models.BankAccount
		if err := rows.Scan(
			&m.BankAccountID,
			&m.AccountID,
			&m.BankName,
			&m.BranchName,
			&m.AccountName,
			&m.AccountNumber,
			&m.IBAN,
			&m.SwiftCode,
			&m.Currency,
			&m.OpeningBalance,
			&m.CurrentBalance,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row", err)
		}
		accounts = append(accounts, mapping.ToDomainBankAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows", err)
	}
	return accounts, nil
}

// UpdateBankAccount persists mutable metadata fields of a bank account.
func (r *PgxBankAccountRepository) UpdateBankAccount(ctx context.Context, bankAccount domain.BankAccount) error {
	m := mapping.ToModelBankAccount(bankAccount)
	query := `
		UPDATE bank_accounts
		SET bank_name = $2,
		    branch_name = $3,
		    account_name = $4,
		    iban = $5,
		    swift_code = $6,
		    is_active = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE bank_account_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.BankAccountID,
		m.BankName,
		m.BranchName,
		m.AccountName,
		m.IBAN,
		m.SwiftCode,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bank account "+m.BankAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bank account " + m.BankAccountID + " not found for update")
	}
	return nil
}

// RecomputeBalance recalculates current_balance as opening_balance plus posted
// debits minus posted credits on the linked ledger account. The bank account
// row is locked FOR UPDATE so concurrent recomputations serialize.
func (r *PgxBankAccountRepository) RecomputeBalance(ctx context.Context, bankAccountID string, updatedBy string) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT account_id, opening_balance
		FROM bank_accounts
		WHERE bank_account_id = $1 AND deleted_at IS NULL
		FOR UPDATE;
	`
	var accountID string
	var openingBalance decimal.Decimal
	if err := tx.QueryRow(ctx, lockQuery, bankAccountID).Scan(&accountID, &openingBalance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to lock bank account "+bankAccountID, err)
	}

	sumQuery := `
		SELECT COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1
		  AND e.status = 'POSTED'
		  AND l.deleted_at IS NULL
		  AND e.deleted_at IS NULL;
	`
	var debits, credits decimal.Decimal
	if err := tx.QueryRow(ctx, sumQuery, accountID).Scan(&debits, &credits); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum posted lines for account "+accountID, err)
	}

	newBalance := accounting.BankBalance(openingBalance, debits, credits)

	updateQuery := `
		UPDATE bank_accounts
		SET current_balance = $2,
		    last_updated_at = NOW(),
		    last_updated_by = $3
		WHERE bank_account_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, bankAccountID, newBalance, updatedBy); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to update balance for bank account "+bankAccountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}
