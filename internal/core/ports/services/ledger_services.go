package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// LedgerSvc is the posting entry point: idempotency plus the Posting Engine.
type LedgerSvc interface {
	// PostEntry posts req at most once per token. The boolean reports whether
	// the returned entry was produced by an earlier request.
	PostEntry(ctx context.Context, token *string, req dto.PostEntryRequest) (*domain.JournalEntry, bool, error)
}
