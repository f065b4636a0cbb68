package models

import "time"

// IdempotencyRecord represents a row of the idempotency_records table.
type IdempotencyRecord struct {
	Key                string    `db:"key"`
	RequestFingerprint string    `db:"request_fingerprint"`
	EntryID            *int64    `db:"entry_id"` // Nullable
	CreatedAt          time.Time `db:"created_at"`
}
