package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/mattn/go-sqlite3"
)

const (
	entryColumns = `id, entry_date, narration, posted_at, reverses_entry_id`
	lineSelect   = `
		SELECT l.id, l.entry_id, l.account_id, a.code, a.name, l.debit_cents, l.credit_cents, l.line_index
		FROM journal_lines l
		JOIN accounts a ON a.id = l.account_id`
)

type SQLiteJournalRepository struct {
	db       querier
	accounts portsrepo.AccountReader
}

// newSQLiteJournalRepository creates a new repository for journal data.
// accounts must share db so that code resolution sees the same transaction.
func newSQLiteJournalRepository(db querier, accounts portsrepo.AccountReader) *SQLiteJournalRepository {
	return &SQLiteJournalRepository{db: db, accounts: accounts}
}

var _ portsrepo.JournalRepositoryFacade = (*SQLiteJournalRepository)(nil)

func scanEntry(row scanner) (models.JournalEntry, error) {
	var (
		m         models.JournalEntry
		entryDate string
		postedAt  string
	)
	if err := row.Scan(&m.EntryID, &entryDate, &m.Narration, &postedAt, &m.ReversesEntryID); err != nil {
		return m, err
	}
	var err error
	if m.EntryDate, err = parseDate(entryDate); err != nil {
		return m, err
	}
	if m.PostedAt, err = parseTimestamp(postedAt); err != nil {
		return m, err
	}
	return m, nil
}

func scanLine(row scanner) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.AccountCode, &m.AccountName, &m.DebitCents, &m.CreditCents, &m.LineIndex)
	return m, err
}

// InsertEntry writes the entry header.
func (r *SQLiteJournalRepository) InsertEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	m := mapping.ToModelJournalEntry(entry)
	saved, err := scanEntry(r.db.QueryRowContext(ctx, `
		INSERT INTO journal_entries (entry_date, narration, posted_at, reverses_entry_id)
		VALUES (?, ?, ?, ?)
		RETURNING `+entryColumns+`;
	`, formatDate(m.EntryDate), m.Narration, formatTimestamp(m.PostedAt), m.ReversesEntryID))
	if err != nil {
		if constraintCode(err) == sqlite3.ErrConstraintForeignKey {
			return nil, fmt.Errorf("%w: %d", apperrors.ErrUnknownReversedEntry, *entry.ReversesEntryID)
		}
		return nil, apperrors.NewAppError(500, "failed to insert journal entry", err)
	}
	d := mapping.ToDomainJournalEntry(saved)
	return &d, nil
}

// InsertLines resolves account codes and writes the lines in index order.
func (r *SQLiteJournalRepository) InsertLines(ctx context.Context, entryID int64, lines []domain.JournalLine) ([]domain.JournalLine, error) {
	codes := make([]string, 0, len(lines))
	for _, l := range lines {
		codes = append(codes, l.AccountCode)
	}
	accounts, err := r.accounts.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	written := make([]domain.JournalLine, 0, len(lines))
	for _, l := range lines {
		account, ok := accounts[l.AccountCode]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, l.AccountCode)
		}
		l.EntryID = entryID
		l.AccountID = account.AccountID
		l.AccountName = account.Name

		m := mapping.ToModelJournalLine(l)
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO journal_lines (entry_id, account_id, debit_cents, credit_cents, line_index)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id;
		`, m.EntryID, m.AccountID, m.DebitCents, m.CreditCents, m.LineIndex).Scan(&l.LineID)
		if err != nil {
			switch constraintCode(err) {
			case sqlite3.ErrConstraintForeignKey:
				return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, l.AccountCode)
			case sqlite3.ErrConstraintCheck:
				return nil, fmt.Errorf("%w (line %d)", apperrors.ErrAmbiguousLine, l.LineIndex)
			}
			return nil, apperrors.NewAppError(500, "failed to insert journal line", err)
		}
		written = append(written, l)
	}
	return written, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *SQLiteJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	m, err := scanEntry(r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE id = ?;`, entryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
func (r *SQLiteJournalRepository) EntryExists(ctx context.Context, entryID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE id = ?);`, entryID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check journal entry", err)
	}
	return exists, nil
}

// ListEntries retrieves a page of entries ordered by date desc, id desc.
func (r *SQLiteJournalRepository) ListEntries(ctx context.Context, q portsrepo.ListEntriesQuery) ([]domain.JournalEntry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if q.After != nil {
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+entryColumns+`
			FROM journal_entries
			WHERE (entry_date, id) < (?, ?)
			ORDER BY entry_date DESC, id DESC
			LIMIT ?;
		`, formatDate(q.After.Date), q.After.EntryID, q.Limit)
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+entryColumns+`
			FROM journal_entries
			ORDER BY entry_date DESC, id DESC
			LIMIT ? OFFSET ?;
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

func (r *SQLiteJournalRepository) linesForEntries(ctx context.Context, entryIDs []int64) (map[int64][]domain.JournalLine, error) {
	args := make([]any, len(entryIDs))
	for i, id := range entryIDs {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, lineSelect+`
		WHERE l.entry_id IN (`+placeholders(len(entryIDs))+`)
		ORDER BY l.entry_id, l.line_index;
	`, args...)
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
func (r *SQLiteJournalRepository) SumLinesByAccount(ctx context.Context, accountID int64, asOf *time.Time) (domain.LineTotals, error) {
	var asOfDate any
	if asOf != nil {
		asOfDate = formatDate(*asOf)
	}

	var totals domain.LineTotals
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(l.debit_cents), 0), COALESCE(SUM(l.credit_cents), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE l.account_id = ?1
		  AND (?2 IS NULL OR e.entry_date <= ?2);
	`, accountID, asOfDate).Scan(&totals.TotalDebits, &totals.TotalCredits)
	if err != nil {
		return domain.LineTotals{}, apperrors.NewAppError(500, "failed to sum journal lines", err)
	}
	return totals, nil
}
