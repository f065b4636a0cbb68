package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// AfterWriteHook runs inside the posting transaction once the entry and its
// lines are written. Returning an error rolls the whole posting back.
type AfterWriteHook func(ctx context.Context, repos repositories.TxRepositories, entry *domain.JournalEntry) error

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines ordered by line index.
	GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries ordered by date desc, id desc.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResult, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// Post validates and atomically commits a balanced entry.
	Post(ctx context.Context, req dto.PostEntryRequest, afterWrite AfterWriteHook) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
