package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	entryColumns = `id, entry_date, narration, posted_at, reverses_entry_id`
	lineSelect   = `
		SELECT l.id, l.entry_id, l.account_id, a.code, a.name, l.debit_cents, l.credit_cents, l.line_index
		FROM journal_lines l
		JOIN accounts a ON a.id = l.account_id`
)

type PgxJournalRepository struct {
	db       querier
	accounts portsrepo.AccountReader
}

// newPgxJournalRepository creates a new repository for journal data.
// accounts must share db so that code resolution sees the same transaction.
func newPgxJournalRepository(db querier, accounts portsrepo.AccountReader) *PgxJournalRepository {
	return &PgxJournalRepository{db: db, accounts: accounts}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(&m.EntryID, &m.EntryDate, &m.Narration, &m.PostedAt, &m.ReversesEntryID)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.AccountCode, &m.AccountName, &m.DebitCents, &m.CreditCents, &m.LineIndex)
	return m, err
}

// InsertEntry writes the entry header.
func (r *PgxJournalRepository) InsertEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (entry_date, narration, posted_at, reverses_entry_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + entryColumns + `;
	`
	saved, err := scanEntry(r.db.QueryRow(ctx, query, m.EntryDate, m.Narration, m.PostedAt, m.ReversesEntryID))
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, fmt.Errorf("%w: %d", apperrors.ErrUnknownReversedEntry, *entry.ReversesEntryID)
		}
		return nil, apperrors.NewAppError(500, "failed to insert journal entry", err)
	}
	d := mapping.ToDomainJournalEntry(saved)
	return &d, nil
}

// InsertLines resolves account codes and writes all lines in one batch.
func (r *PgxJournalRepository) InsertLines(ctx context.Context, entryID int64, lines []domain.JournalLine) ([]domain.JournalLine, error) {
	codes := make([]string, 0, len(lines))
	for _, l := range lines {
		codes = append(codes, l.AccountCode)
	}
	accounts, err := r.accounts.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	written := make([]domain.JournalLine, len(lines))
	batch := &pgx.Batch{}
	for i, l := range lines {
		account, ok := accounts[l.AccountCode]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, l.AccountCode)
		}
		l.EntryID = entryID
		l.AccountID = account.AccountID
		l.AccountName = account.Name
		written[i] = l

		m := mapping.ToModelJournalLine(l)
		batch.Queue(`
			INSERT INTO journal_lines (entry_id, account_id, debit_cents, credit_cents, line_index)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id;
		`, m.EntryID, m.AccountID, m.DebitCents, m.CreditCents, m.LineIndex)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for i := range written {
		if err := results.QueryRow().Scan(&written[i].LineID); err != nil {
			switch pgErrorCode(err) {
			case pgForeignKeyViolation:
				return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, written[i].AccountCode)
			case pgCheckViolation:
				return nil, fmt.Errorf("%w (line %d)", apperrors.ErrAmbiguousLine, written[i].LineIndex)
			}
			return nil, apperrors.NewAppError(500, "failed to insert journal line", err)
		}
	}
	return written, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE id = $1;`
	m, err := scanEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, entryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry", err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	byEntry, err := r.linesForEntries(ctx, []int64{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = byEntry[entryID]
	return &entry, nil
}

// EntryExists reports whether the entry has been committed.
func (r *PgxJournalRepository) EntryExists(ctx context.Context, entryID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE id = $1);`, entryID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check journal entry", err)
	}
	return exists, nil
}

// ListEntries retrieves a page of entries ordered by date desc, id desc.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, q portsrepo.ListEntriesQuery) ([]domain.JournalEntry, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if q.After != nil {
		rows, err = r.db.Query(ctx, `
			SELECT `+entryColumns+`
			FROM journal_entries
			WHERE (entry_date, id) < ($1::date, $2::bigint)
			ORDER BY entry_date DESC, id DESC
			LIMIT $3;
		`, domain.NormalizeDate(q.After.Date), q.After.EntryID, q.Limit)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+entryColumns+`
			FROM journal_entries
			ORDER BY entry_date DESC, id DESC
			LIMIT $1 OFFSET $2;
		`, q.Limit, q.Offset)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}

	entries := []domain.JournalEntry{}
	ids := []int64{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
		ids = append(ids, m.EntryID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	if len(ids) == 0 {
		return entries, nil
	}

	byEntry, err := r.linesForEntries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = byEntry[entries[i].EntryID]
	}
	return entries, nil
}

func (r *PgxJournalRepository) linesForEntries(ctx context.Context, entryIDs []int64) (map[int64][]domain.JournalLine, error) {
	rows, err := r.db.Query(ctx, lineSelect+`
		WHERE l.entry_id = ANY($1)
		ORDER BY l.entry_id, l.line_index;
	`, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	byEntry := make(map[int64][]domain.JournalLine, len(entryIDs))
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		byEntry[m.EntryID] = append(byEntry[m.EntryID], mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return byEntry, nil
}

// SumLinesByAccount totals the account's lines, restricted to entries dated on or before asOf.
func (r *PgxJournalRepository) SumLinesByAccount(ctx context.Context, accountID int64, asOf *time.Time) (domain.LineTotals, error) {
	var asOfDate *time.Time
	if asOf != nil {
		d := domain.NormalizeDate(*asOf)
		asOfDate = &d
	}

	query := `
		SELECT COALESCE(SUM(l.debit_cents), 0)::bigint, COALESCE(SUM(l.credit_cents), 0)::bigint
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE l.account_id = $1
		  AND ($2::date IS NULL OR e.entry_date <= $2::date);
	`
	var totals domain.LineTotals
	if err := r.db.QueryRow(ctx, query, accountID, asOfDate).Scan(&totals.TotalDebits, &totals.TotalCredits); err != nil {
		return domain.LineTotals{}, apperrors.NewAppError(500, "failed to sum journal lines", err)
	}
	return totals, nil
}
