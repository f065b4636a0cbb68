package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// EntryCursor marks the last entry of a page in (date desc, id desc) order.
type EntryCursor struct {
	Date    time.Time
	EntryID int64
}

// ListEntriesQuery selects a page of journal entries.
// When After is set it takes precedence over Offset.
type ListEntriesQuery struct {
	Limit  int
	Offset int
	After  *EntryCursor
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines ordered by line index.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// EntryExists reports whether an entry with the given ID has been committed.
	EntryExists(ctx context.Context, entryID int64) (bool, error)

	// ListEntries retrieves entries ordered by date desc, id desc, lines included.
	ListEntries(ctx context.Context, query ListEntriesQuery) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data.
// Callers must run both methods inside one UnitOfWork transaction.
type JournalWriter interface {
	// InsertEntry writes the entry header and returns it with its assigned ID.
	InsertEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// InsertLines resolves each line's account code and writes the lines.
	// It fails with apperrors.ErrUnknownAccount naming the first unresolved code.
	InsertLines(ctx context.Context, entryID int64, lines []domain.JournalLine) ([]domain.JournalLine, error)
}

// LineAggregator sums posted lines per account.
type LineAggregator interface {
	// SumLinesByAccount totals debits and credits for the account over entries
	// dated on or before asOf, or over all entries when asOf is nil.
	SumLinesByAccount(ctx context.Context, accountID int64, asOf *time.Time) (domain.LineTotals, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LineAggregator
}
