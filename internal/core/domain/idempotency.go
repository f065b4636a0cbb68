package domain

import "time"

// IdempotencyRecord associates a caller-supplied key with the fingerprint of
// the request that first used it and the entry that request produced.
type IdempotencyRecord struct {
	Key                string    `json:"key"`
	RequestFingerprint string    `json:"requestFingerprint"`
	EntryID            *int64    `json:"entryID,omitempty"` // Nil until the posting lands
	CreatedAt          time.Time `json:"createdAt"`
}

// DedupeDecision is the outcome of checking a posting request against the
// idempotency records.
type DedupeDecision struct {
	Proceed         bool
	ExistingEntryID *int64
	Fingerprint     string // Empty for requests without a key
}
