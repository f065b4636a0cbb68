package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// IdempotencySvc decides whether a keyed posting must run and records its outcome.
type IdempotencySvc interface {
	// Dedupe checks token against stored records. A nil token always proceeds.
	Dedupe(ctx context.Context, token *string, req dto.PostEntryRequest) (domain.DedupeDecision, error)

	// CommitRecord associates token with entryID and returns the winning entry ID.
	CommitRecord(ctx context.Context, token string, fingerprint string, entryID int64) (int64, error)

	// ClaimWithin is CommitRecord run inside a posting transaction.
	// It fails with apperrors.ErrIdempotencyRaceLost when another request owns the token.
	ClaimWithin(ctx context.Context, repos repositories.TxRepositories, token string, fingerprint string, entryID int64) error

	// Resolve re-reads the record for token after a lost race.
	Resolve(ctx context.Context, token string, fingerprint string) (int64, error)
}
