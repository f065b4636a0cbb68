package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

type SQLiteIdempotencyRepository struct {
	db querier
}

func newSQLiteIdempotencyRepository(db querier) *SQLiteIdempotencyRepository {
	return &SQLiteIdempotencyRepository{db: db}
}

var _ portsrepo.IdempotencyRepositoryFacade = (*SQLiteIdempotencyRepository)(nil)

// FindRecordByKey retrieves the record stored for key.
func (r *SQLiteIdempotencyRepository) FindRecordByKey(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	var (
		m         models.IdempotencyRecord
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT key, request_fingerprint, entry_id, created_at
		FROM idempotency_records
		WHERE key = ?;
	`, key).Scan(&m.Key, &m.RequestFingerprint, &m.EntryID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: idempotency key", apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to read idempotency record", err)
	}
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read idempotency record", err)
	}
	d := mapping.ToDomainIdempotencyRecord(m)
	return &d, nil
}

// ClaimRecord inserts the record or fills a pending one with the same
// fingerprint. Writers are serialized by the immediate transaction lock, so
// at most one claimant sees a row affected.
func (r *SQLiteIdempotencyRepository) ClaimRecord(ctx context.Context, key string, fingerprint string, entryID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO idempotency_records (key, request_fingerprint, entry_id)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE
		SET entry_id = excluded.entry_id
		WHERE idempotency_records.entry_id IS NULL
		  AND idempotency_records.request_fingerprint = excluded.request_fingerprint;
	`, key, fingerprint, entryID)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to claim idempotency key", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to claim idempotency key", err)
	}
	return n == 1, nil
}
