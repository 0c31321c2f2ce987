package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/hms-suite/hms_accounting/internal/apperrors"
	"github.com/hms-suite/hms_accounting/internal/core/domain"
	portsrepo "github.com/hms-suite/hms_accounting/internal/core/ports/repositories"
	"github.com/hms-suite/hms_accounting/internal/models"
	"github.com/hms-suite/hms_accounting/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart of accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, code, name, account_type, category, description, is_active, is_system, parent_id,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.ChartOfAccount) error {
	m := mapping.ToModelChartOfAccount(account)
	query := `
		INSERT INTO chart_of_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.Type,
		m.Category,
		m.Description,
		m.IsActive,
		m.IsSystem,
		m.ParentID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "account code "+m.Code+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a single account by ID, excluding soft-deleted rows.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM chart_of_accounts
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	return r.findAccount(ctx, query, accountID)
}

// FindAccountByCode retrieves a single account by its unique code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM chart_of_accounts
		WHERE code = $1 AND deleted_at IS NULL;
	`
	return r.findAccount(ctx, query, code)
}

func (r *PgxAccountRepository) findAccount(ctx context.Context, query string, arg any) (*domain.ChartOfAccount, error) {
	var m models.ChartOfAccount
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.Type,
		&m.Category,
		&m.Description,
		&m.IsActive,
		&m.IsSystem,
		&m.ParentID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}
	account := mapping.ToDomainChartOfAccount(m)
	return &account, nil
}

// ListAccounts retrieves accounts matching the filter, ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.ListAccountsFilter, limit int, offset int) ([]domain.ChartOfAccount, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + accountColumns + `
		FROM chart_of_accounts
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		query += ` AND account_type = $` + strconv.Itoa(len(args))
	}
	if filter.ActiveOnly {
		query += ` AND is_active = TRUE`
	}
	if filter.ParentID != nil {
		args = append(args, *filter.ParentID)
		query += ` AND parent_id = $` + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	query += ` ORDER BY code LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.ChartOfAccount{}
	for rows.Next() {
		var m models.ChartOfAccount
		if err := rows.Scan(
			&m.AccountID,
			&m.Code,
			&m.Name,
			&m.Type,
			&m.Category,
			&m.Description,
			&m.IsActive,
			&m.IsSystem,
			&m.ParentID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainChartOfAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// UpdateAccount persists mutable fields of an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.ChartOfAccount) error {
	m := mapping.ToModelChartOfAccount(account)
	query := `
		UPDATE chart_of_accounts
		SET code = $2,
		    name = $3,
		    category = $4,
		    description = $5,
		    is_active = $6,
		    parent_id = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.Category,
		m.Description,
		m.IsActive,
		m.ParentID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "account code "+m.Code+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + m.AccountID + " not found for update")
	}
	return nil
}

// SoftDeleteAccount tombstones an account row without removing it.
func (r *PgxAccountRepository) SoftDeleteAccount(ctx context.Context, accountID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE chart_of_accounts
		SET deleted_at = $2,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + accountID + " not found for delete")
	}
	return nil
}

// SumPostedLineAmounts aggregates debit and credit totals over lines of POSTED
// entries for one account.
func (r *PgxAccountRepository) SumPostedLineAmounts(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1
		  AND e.status = 'POSTED'
		  AND l.deleted_at IS NULL
		  AND e.deleted_at IS NULL;
	`
	var debits, credits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum posted lines for account "+accountID, err)
	}
	return debits, credits, nil
}

// CountLinesForAccount counts journal lines referencing the account in any status.
func (r *PgxAccountRepository) CountLinesForAccount(ctx context.Context, accountID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entry_lines
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count lines for account "+accountID, err)
	}
	return count, nil
}
