package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils"
)

// MaxIdempotencyKeyLength bounds the stored key.
const MaxIdempotencyKeyLength = 255

type fingerprintLine struct {
	AccountCode string `json:"account_code"`
	Debit       int64  `json:"debit"`
	Credit      int64  `json:"credit"`
}

// fingerprintBody is the canonical form of a posting request.
type fingerprintBody struct {
	Date            string            `json:"date"`
	Narration       string            `json:"narration"`
	Lines           []fingerprintLine `json:"lines"`
	ReversesEntryID *int64            `json:"reverses_entry_id"`
}

// RequestFingerprint hashes the canonical form of req. Line order is significant.
func RequestFingerprint(req dto.PostEntryRequest) (string, error) {
	body := fingerprintBody{
		Date:            domain.NormalizeDate(req.Date).Format(domain.DateLayout),
		Narration:       req.Narration,
		Lines:           make([]fingerprintLine, len(req.Lines)),
		ReversesEntryID: req.ReversesEntryID,
	}
	for i, l := range req.Lines {
		body.Lines[i] = fingerprintLine{AccountCode: l.AccountCode, Debit: l.Debit, Credit: l.Credit}
	}
	return utils.Fingerprint(body)
}

type idempotencyService struct {
	BaseService
	repo portsrepo.IdempotencyRepositoryFacade
}

// NewIdempotencyService creates the Idempotency Controller.
func NewIdempotencyService(repo portsrepo.IdempotencyRepositoryFacade, options ...ServiceOption) portssvc.IdempotencySvc {
	return &idempotencyService{
		BaseService: newBaseService(options...),
		repo:        repo,
	}
}

var _ portssvc.IdempotencySvc = (*idempotencyService)(nil)

func (s *idempotencyService) Dedupe(ctx context.Context, token *string, req dto.PostEntryRequest) (domain.DedupeDecision, error) {
	if token == nil {
		return domain.DedupeDecision{Proceed: true}, nil
	}
	key := *token
	if key == "" || len(key) > MaxIdempotencyKeyLength {
		return domain.DedupeDecision{}, fmt.Errorf("%w: idempotency key must be 1 to %d characters", apperrors.ErrValidation, MaxIdempotencyKeyLength)
	}

	fingerprint, err := RequestFingerprint(req)
	if err != nil {
		return domain.DedupeDecision{}, err
	}

	record, err := s.repo.FindRecordByKey(ctx, key)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.DedupeDecision{Proceed: true, Fingerprint: fingerprint}, nil
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to read idempotency record")
		return domain.DedupeDecision{}, err
	}

	if record.RequestFingerprint != fingerprint {
		s.LogInfo(ctx, "Idempotency key reused with a different body", slog.String("idempotency_key", key))
		return domain.DedupeDecision{}, apperrors.ErrIdempotencyConflict
	}
	if record.EntryID != nil {
		s.LogDebug(ctx, "Replaying idempotent posting",
			slog.String("idempotency_key", key),
			slog.Int64("entry_id", *record.EntryID))
		return domain.DedupeDecision{Proceed: false, ExistingEntryID: record.EntryID, Fingerprint: fingerprint}, nil
	}
	// Same body, no entry recorded yet: allow a fresh attempt.
	return domain.DedupeDecision{Proceed: true, Fingerprint: fingerprint}, nil
}

func (s *idempotencyService) CommitRecord(ctx context.Context, token string, fingerprint string, entryID int64) (int64, error) {
	claimed, err := s.repo.ClaimRecord(ctx, token, fingerprint, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to store idempotency record", slog.String("idempotency_key", token))
		return 0, err
	}
	if claimed {
		return entryID, nil
	}
	return s.Resolve(ctx, token, fingerprint)
}

func (s *idempotencyService) ClaimWithin(ctx context.Context, repos portsrepo.TxRepositories, token string, fingerprint string, entryID int64) error {
	claimed, err := repos.Idempotency.ClaimRecord(ctx, token, fingerprint, entryID)
	if err != nil {
		return err
	}
	if !claimed {
		return apperrors.ErrIdempotencyRaceLost
	}
	return nil
}

func (s *idempotencyService) Resolve(ctx context.Context, token string, fingerprint string) (int64, error) {
	record, err := s.repo.FindRecordByKey(ctx, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to re-read idempotency record", slog.String("idempotency_key", token))
		return 0, err
	}
	if record.RequestFingerprint != fingerprint {
		return 0, apperrors.ErrIdempotencyConflict
	}
	if record.EntryID == nil {
		return 0, apperrors.NewAppError(500, "idempotency record has no entry", nil)
	}
	return *record.EntryID, nil
}
