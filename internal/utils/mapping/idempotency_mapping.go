package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToDomainIdempotencyRecord converts a model IdempotencyRecord to a domain IdempotencyRecord
func ToDomainIdempotencyRecord(m models.IdempotencyRecord) domain.IdempotencyRecord {
	return domain.IdempotencyRecord{
		Key:                m.Key,
		RequestFingerprint: m.RequestFingerprint,
		EntryID:            m.EntryID,
		CreatedAt:          m.CreatedAt.UTC(),
	}
}
