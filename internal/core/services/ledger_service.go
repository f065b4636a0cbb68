package services

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// ledgerService combines the Idempotency Controller and the Posting Engine.
type ledgerService struct {
	BaseService
	journal     portssvc.JournalSvcFacade
	idempotency portssvc.IdempotencySvc
}

// NewLedgerService creates the posting entry point.
func NewLedgerService(journal portssvc.JournalSvcFacade, idempotency portssvc.IdempotencySvc, options ...ServiceOption) portssvc.LedgerSvc {
	return &ledgerService{
		BaseService: newBaseService(options...),
		journal:     journal,
		idempotency: idempotency,
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) PostEntry(ctx context.Context, token *string, req dto.PostEntryRequest) (entry *domain.JournalEntry, idempotent bool, err error) {
	ctx, span := tracer.Start(ctx, "ledger.PostEntry")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Bool("ledger.keyed", token != nil))

	decision, err := s.idempotency.Dedupe(ctx, token, req)
	if err != nil {
		return nil, false, err
	}
	if !decision.Proceed {
		entry, err = s.journal.GetEntry(ctx, *decision.ExistingEntryID)
		if err != nil {
			return nil, false, err
		}
		span.SetAttributes(attribute.Bool("ledger.replay", true))
		return entry, true, nil
	}

	var hook portssvc.AfterWriteHook
	if token != nil {
		key, fingerprint := *token, decision.Fingerprint
		hook = func(ctx context.Context, repos portsrepo.TxRepositories, posted *domain.JournalEntry) error {
			return s.idempotency.ClaimWithin(ctx, repos, key, fingerprint, posted.EntryID)
		}
	}

	entry, err = s.journal.Post(ctx, req, hook)
	if errors.Is(err, apperrors.ErrIdempotencyRaceLost) {
		winner, rerr := s.idempotency.Resolve(ctx, *token, decision.Fingerprint)
		if rerr != nil {
			return nil, false, rerr
		}
		s.LogInfo(ctx, "Concurrent posting won the idempotency key",
			slog.String("idempotency_key", *token),
			slog.Int64("entry_id", winner))
		entry, err = s.journal.GetEntry(ctx, winner)
		if err != nil {
			return nil, false, err
		}
		return entry, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry, false, nil
}
