package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxIdempotencyRepository struct {
	db querier
}

func newPgxIdempotencyRepository(db querier) *PgxIdempotencyRepository {
	return &PgxIdempotencyRepository{db: db}
}

var _ portsrepo.IdempotencyRepositoryFacade = (*PgxIdempotencyRepository)(nil)

// FindRecordByKey retrieves the record stored for key.
func (r *PgxIdempotencyRepository) FindRecordByKey(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	query := `
		SELECT key, request_fingerprint, entry_id, created_at
		FROM idempotency_records
		WHERE key = $1;
	`
	var m models.IdempotencyRecord
	err := r.db.QueryRow(ctx, query, key).Scan(&m.Key, &m.RequestFingerprint, &m.EntryID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: idempotency key", apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to read idempotency record", err)
	}
	d := mapping.ToDomainIdempotencyRecord(m)
	return &d, nil
}

// ClaimRecord inserts the record or fills a pending one with the same
// fingerprint. A concurrent insert of the same key blocks until the other
// transaction ends, so at most one claimant sees a row affected.
func (r *PgxIdempotencyRepository) ClaimRecord(ctx context.Context, key string, fingerprint string, entryID int64) (bool, error) {
	query := `
		INSERT INTO idempotency_records (key, request_fingerprint, entry_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET entry_id = EXCLUDED.entry_id
		WHERE idempotency_records.entry_id IS NULL
		  AND idempotency_records.request_fingerprint = EXCLUDED.request_fingerprint;
	`
	tag, err := r.db.Exec(ctx, query, key, fingerprint, entryID)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to claim idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}
