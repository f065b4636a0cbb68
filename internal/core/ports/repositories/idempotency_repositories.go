package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// IdempotencyReader defines read operations for idempotency records
type IdempotencyReader interface {
	// FindRecordByKey returns the record for key or apperrors.ErrNotFound.
	FindRecordByKey(ctx context.Context, key string) (*domain.IdempotencyRecord, error)
}

// IdempotencyWriter defines write operations for idempotency records
type IdempotencyWriter interface {
	// ClaimRecord atomically associates key with entryID. It inserts the record
	// when absent, or fills a record whose entry is still unset and whose
	// fingerprint matches. It reports false when another request already owns
	// the key; the caller must re-read to learn the winner.
	ClaimRecord(ctx context.Context, key string, fingerprint string, entryID int64) (bool, error)
}

// IdempotencyRepositoryFacade combines all idempotency repository interfaces
type IdempotencyRepositoryFacade interface {
	IdempotencyReader
	IdempotencyWriter
}
