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

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `
	entry_id, entry_number, description, entry_date, period_year, period_month,
	reference_type, reference_id, is_reversal, original_entry_id, reversing_entry_id,
	reversed_by, reversal_date, approved_by, approved_at, status,
	created_at, created_by, last_updated_at, last_updated_by
`

const lineColumns = `
	line_id, entry_id, account_id, debit_amount, credit_amount, description,
	reference_type, reference_id, created_at, created_by, last_updated_at, last_updated_by
`

const insertLineQuery = `
	INSERT INTO journal_entry_lines (` + lineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

// SaveEntry inserts a journal entry and its lines within one DB transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.EntryNumber,
		m.Description,
		m.EntryDate,
		m.PeriodYear,
		m.PeriodMonth,
		m.ReferenceType,
		m.ReferenceID,
		m.IsReversal,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.ReversedBy,
		m.ReversalDate,
		m.ApprovedBy,
		m.ApprovedAt,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "entry number "+m.EntryNumber+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}
	return nil
}

func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.JournalEntryLine) error {
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelJournalEntryLine(line)
		batch.Queue(insertLineQuery,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.DebitAmount,
			m.CreditAmount,
			m.Description,
			m.ReferenceType,
			m.ReferenceID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "line references an unknown account", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to execute line insert batch", err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1 AND deleted_at IS NULL;
	`
	var m models.JournalEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.Description,
		&m.EntryDate,
		&m.PeriodYear,
		&m.PeriodMonth,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.IsReversal,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.ReversedBy,
		&m.ReversalDate,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines of one entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_entry_lines
		WHERE entry_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	modelLines, err := scanLines(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan line rows for entry "+entryID, err)
	}
	return mapping.ToDomainJournalEntryLineSlice(modelLines), nil
}

func scanLines(rows pgx.Rows) ([]models.JournalEntryLine, error) {
	lines := []models.JournalEntryLine{}
	for rows.Next() {
		var m models.JournalEntryLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.Description,
			&m.ReferenceType,
			&m.ReferenceID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, err
		}
		lines = append(lines, m)
	}
	return lines, rows.Err()
}

// ListEntries retrieves a page of entry headers using token-based pagination
// over (entry_date, created_at) descending.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row decides whether a next page exists.
	fetchLimit := limit + 1

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.PeriodYear != nil {
		args = append(args, *filter.PeriodYear)
		query += ` AND period_year = $` + strconv.Itoa(len(args))
	}
	if filter.PeriodMonth != nil {
		args = append(args, *filter.PeriodMonth)
		query += ` AND period_month = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastEntryDate, lastCreatedAt)
		query += ` AND (entry_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.EntryNumber,
			&m.Description,
			&m.EntryDate,
			&m.PeriodYear,
			&m.PeriodMonth,
			&m.ReferenceType,
			&m.ReferenceID,
			&m.IsReversal,
			&m.OriginalEntryID,
			&m.ReversingEntryID,
			&m.ReversedBy,
			&m.ReversalDate,
			&m.ApprovedBy,
			&m.ApprovedAt,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// ListLinesByAccountID retrieves a page of lines hitting one account, most
// recent entry first, using token-based pagination over (entry_date, created_at).
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit_amount, l.credit_amount, l.description,
		       l.reference_type, l.reference_id, l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       e.entry_date
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND l.deleted_at IS NULL AND e.deleted_at IS NULL
	`
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastEntryDate, lastCreatedAt)
		query += ` AND (e.entry_date, l.created_at) < ($2, $3)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY e.entry_date DESC, l.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line      models.JournalEntryLine
		entryDate time.Time
	}
	scanned := make([]lineWithDate, 0, fetchLimit)
	for rows.Next() {
		var m models.JournalEntryLine
		var entryDate time.Time
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.Description,
			&m.ReferenceType,
			&m.ReferenceID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&entryDate,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for account "+accountID, err)
		}
		scanned = append(scanned, lineWithDate{line: m, entryDate: entryDate})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := scanned
	if len(scanned) > limit {
		last := scanned[limit-1]
		token := pagination.EncodeToken(last.entryDate, last.line.CreatedAt)
		nextTokenVal = &token
		results = scanned[:limit]
	}

	lines := make([]domain.JournalEntryLine, len(results))
	for i, s := range results {
		lines[i] = mapping.ToDomainJournalEntryLine(s.line)
	}
	return lines, nextTokenVal, nil
}

// MarkEntryPosted transitions a draft entry to POSTED, stamping the approver.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, approvedBy string, approvedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'POSTED',
		    approved_by = $2,
		    approved_at = $3,
		    last_updated_at = $3,
		    last_updated_by = $2
		WHERE entry_id = $1 AND status = 'DRAFT' AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, approvedBy, approvedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "journal entry "+entryID+" is not in draft status", apperrors.ErrConflict)
	}
	return nil
}

// MarkEntryCancelled transitions a draft entry to CANCELLED.
func (r *PgxJournalRepository) MarkEntryCancelled(ctx context.Context, entryID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'CANCELLED',
		    last_updated_at = $3,
		    last_updated_by = $2
		WHERE entry_id = $1 AND status = 'DRAFT' AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, updatedBy, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "journal entry "+entryID+" is not in draft status", apperrors.ErrConflict)
	}
	return nil
}

// SaveReversal inserts the reversal entry with its lines and flips the original
// entry to REVERSED with its reversing link, all in one transaction. The status
// guard on the original keeps concurrent reversals from double-applying.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalEntryLine) error {
	if reversal.OriginalEntryID == nil {
		return apperrors.NewAppError(500, "reversal entry missing original entry link", nil)
	}
	originalEntryID := *reversal.OriginalEntryID

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntry(ctx, tx, reversal); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, lines); err != nil {
		return err
	}

	flipQuery := `
		UPDATE journal_entries
		SET status = 'REVERSED',
		    reversing_entry_id = $2,
		    reversed_by = $3,
		    reversal_date = $4,
		    last_updated_at = $4,
		    last_updated_by = $3
		WHERE entry_id = $1 AND status = 'POSTED' AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, flipQuery,
		originalEntryID,
		reversal.EntryID,
		reversal.CreatedBy,
		reversal.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to flip original entry "+originalEntryID+" to reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "journal entry "+originalEntryID+" is not in posted status", apperrors.ErrConflict)
	}

	return r.Commit(ctx, tx)
}
