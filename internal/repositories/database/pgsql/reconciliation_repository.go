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
	"github.com/hms-suite/hms_accounting/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for bank reconciliation data.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

const reconciliationColumns = `
	reconciliation_id, bank_account_id, statement_date, statement_balance, book_balance,
	status, reconciled_by, reconciled_at, notes,
	created_at, created_by, last_updated_at, last_updated_by
`

const reconciliationEntryColumns = `
	reconciliation_entry_id, reconciliation_id, entry_id, is_cleared, cleared_date,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveReconciliation inserts a new reconciliation snapshot. The difference
// column is generated by the database and never written here.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, reconciliation domain.BankReconciliation) error {
	m := mapping.ToModelBankReconciliation(reconciliation)
	query := `
		INSERT INTO bank_reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID,
		m.BankAccountID,
		m.StatementDate,
		m.StatementBalance,
		m.BookBalance,
		m.Status,
		m.ReconciledBy,
		m.ReconciledAt,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert reconciliation "+m.ReconciliationID, err)
	}
	return nil
}

// FindReconciliationByID retrieves a reconciliation header by its ID.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.BankReconciliation, error) {
	query := `
		SELECT ` + reconciliationColumns + `
		FROM bank_reconciliations
		WHERE reconciliation_id = $1 AND deleted_at IS NULL;
	`
	var m models.BankReconciliation
	err := r.Pool.QueryRow(ctx, query, reconciliationID).Scan(
		&m.ReconciliationID,
		&m.BankAccountID,
		&m.StatementDate,
		&m.StatementBalance,
		&m.BookBalance,
		&m.Status,
		&m.ReconciledBy,
		&m.ReconciledAt,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation "+reconciliationID, err)
	}
	reconciliation := mapping.ToDomainBankReconciliation(m)
	return &reconciliation, nil
}

// FindEntriesByReconciliationID retrieves all matched entries of one reconciliation.
func (r *PgxReconciliationRepository) FindEntriesByReconciliationID(ctx context.Context, reconciliationID string) ([]domain.ReconciliationEntry, error) {
	query := `
		SELECT ` + reconciliationEntryColumns + `
		FROM reconciliation_entries
		WHERE reconciliation_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, reconciliation_entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for reconciliation "+reconciliationID, err)
	}
	defer rows.Close()

	entries := []domain.ReconciliationEntry{}
	for rows.Next() {
		var m models.ReconciliationEntry
		if err := rows.Scan(
			&m.ReconciliationEntryID,
			&m.ReconciliationID,
			&m.EntryID,
			&m.IsCleared,
			&m.ClearedDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reconciliation entry row", err)
		}
		entries = append(entries, mapping.ToDomainReconciliationEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reconciliation entry rows", err)
	}
	return entries, nil
}

// FindReconciliationEntryByID retrieves a single matched entry row.
func (r *PgxReconciliationRepository) FindReconciliationEntryByID(ctx context.Context, reconciliationEntryID string) (*domain.ReconciliationEntry, error) {
	query := `
		SELECT ` + reconciliationEntryColumns + `
		FROM reconciliation_entries
		WHERE reconciliation_entry_id = $1 AND deleted_at IS NULL;
	`
	var m models.ReconciliationEntry
	err := r.Pool.QueryRow(ctx, query, reconciliationEntryID).Scan(
		&m.ReconciliationEntryID,
		&m.ReconciliationID,
		&m.EntryID,
		&m.IsCleared,
		&m.ClearedDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation entry "+reconciliationEntryID, err)
	}
	entry := mapping.ToDomainReconciliationEntry(m)
	return &entry, nil
}

// ListReconciliations retrieves a page of reconciliations for a bank account
// using token-based pagination over statement_date descending. A bank account
// carries one reconciliation per statement, so the date alone is a stable cursor.
func (r *PgxReconciliationRepository) ListReconciliations(ctx context.Context, bankAccountID string, limit int, nextToken *string) ([]domain.BankReconciliation, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row decides whether a next page exists.
	fetchLimit := limit + 1

	query := `
		SELECT ` + reconciliationColumns + `
		FROM bank_reconciliations
		WHERE bank_account_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{bankAccountID}

	if nextToken != nil && *nextToken != "" {
		lastStatementDate, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastStatementDate)
		query += ` AND statement_date < $2`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY statement_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query reconciliations for bank account "+bankAccountID, err)
	}
	defer rows.Close()

	modelRecs := make([]models.BankReconciliation, 0, fetchLimit)
	for rows.Next() {
		var m models.BankReconciliation
		if err := rows.Scan(
			&m.ReconciliationID,
			&m.BankAccountID,
			&m.StatementDate,
			&m.StatementBalance,
			&m.BookBalance,
			&m.Status,
			&m.ReconciledBy,
			&m.ReconciledAt,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan reconciliation row", err)
		}
		modelRecs = append(modelRecs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating reconciliation rows", err)
	}

	var nextTokenVal *string
	results := modelRecs
	if len(modelRecs) > limit {
		last := modelRecs[limit-1]
		token := pagination.EncodeDateBasedToken(last.StatementDate)
		nextTokenVal = &token
		results = modelRecs[:limit]
	}

	reconciliations := make([]domain.BankReconciliation, len(results))
	for i, m := range results {
		reconciliations[i] = mapping.ToDomainBankReconciliation(m)
	}
	return reconciliations, nextTokenVal, nil
}

// AddEntry appends a matched journal entry row to a reconciliation.
func (r *PgxReconciliationRepository) AddEntry(ctx context.Context, entry domain.ReconciliationEntry) error {
	m := mapping.ToModelReconciliationEntry(entry)
	query := `
		INSERT INTO reconciliation_entries (` + reconciliationEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReconciliationEntryID,
		m.ReconciliationID,
		m.EntryID,
		m.IsCleared,
		m.ClearedDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "entry "+m.EntryID+" already matched in reconciliation "+m.ReconciliationID, apperrors.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "reconciliation or journal entry referenced by match does not exist", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to insert reconciliation entry "+m.ReconciliationEntryID, err)
	}
	return nil
}

// MarkEntryCleared flags a matched entry as cleared on the given date.
func (r *PgxReconciliationRepository) MarkEntryCleared(ctx context.Context, reconciliationEntryID string, clearedDate time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE reconciliation_entries
		SET is_cleared = TRUE,
		    cleared_date = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE reconciliation_entry_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, reconciliationEntryID, clearedDate, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear reconciliation entry "+reconciliationEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("reconciliation entry " + reconciliationEntryID + " not found for update")
	}
	return nil
}

// UpdateReconciliationStatus transitions a reconciliation's status. The status
// guard keeps completed or cancelled sessions immutable.
func (r *PgxReconciliationRepository) UpdateReconciliationStatus(ctx context.Context, reconciliationID string, status domain.ReconciliationStatus, reconciledBy *string, reconciledAt *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE bank_reconciliations
		SET status = $2,
		    reconciled_by = $3,
		    reconciled_at = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE reconciliation_id = $1 AND status = 'DRAFT' AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		reconciliationID,
		string(status),
		reconciledBy,
		reconciledAt,
		updatedAt,
		updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for reconciliation "+reconciliationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "reconciliation "+reconciliationID+" is not in draft status", apperrors.ErrConflict)
	}
	return nil
}
