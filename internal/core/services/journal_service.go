package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// journalService is the Posting Engine.
type journalService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalReader
	uow         portsrepo.UnitOfWork
}

// NewJournalService creates a new JournalService.
func NewJournalService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader, uow portsrepo.UnitOfWork, options ...ServiceOption) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: newBaseService(options...),
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		uow:         uow,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateRequest runs every check that needs no storage access.
func (s *journalService) validateRequest(req dto.PostEntryRequest) error {
	date := domain.NormalizeDate(req.Date)
	if date.After(s.Today()) {
		return fmt.Errorf("%w: %s", apperrors.ErrFutureDate, date.Format(domain.DateLayout))
	}

	proposed := make([]accounting.ProposedLine, len(req.Lines))
	for i, l := range req.Lines {
		proposed[i] = accounting.ProposedLine{AccountCode: l.AccountCode, Debit: l.Debit, Credit: l.Credit}
	}
	if _, err := accounting.ValidateLines(proposed); err != nil {
		return err
	}

	if req.ReversesEntryID != nil && *req.ReversesEntryID <= 0 {
		return fmt.Errorf("%w: reverses_entry_id must be positive", apperrors.ErrValidation)
	}
	return nil
}

// resolveAccounts fails fast on the first line whose code is not registered.
// The commit re-resolves inside its transaction.
func (s *journalService) resolveAccounts(ctx context.Context, lines []dto.PostLineRequest) error {
	codes := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountCode] {
			seen[l.AccountCode] = true
			codes = append(codes, l.AccountCode)
		}
	}

	found, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("failed to resolve account codes: %w", err)
	}
	for _, code := range codes {
		if _, ok := found[code]; !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, code)
		}
	}
	return nil
}

func (s *journalService) Post(ctx context.Context, req dto.PostEntryRequest, afterWrite portssvc.AfterWriteHook) (entry *domain.JournalEntry, err error) {
	ctx, span := tracer.Start(ctx, "journal.Post")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int("ledger.lines", len(req.Lines)))

	if err := s.validateRequest(req); err != nil {
		s.LogDebug(ctx, "Journal entry rejected", slog.String("reason", err.Error()))
		return nil, err
	}
	if err := s.resolveAccounts(ctx, req.Lines); err != nil {
		if !errors.Is(err, apperrors.ErrUnknownAccount) {
			s.LogError(ctx, err, "Failed to resolve accounts for journal entry")
		}
		return nil, err
	}

	header := domain.JournalEntry{
		Date:            domain.NormalizeDate(req.Date),
		Narration:       req.Narration,
		PostedAt:        s.Now(),
		ReversesEntryID: req.ReversesEntryID,
	}
	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			LineIndex:   i,
		}
	}

	var posted *domain.JournalEntry
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if header.ReversesEntryID != nil {
			exists, err := repos.Journals.EntryExists(ctx, *header.ReversesEntryID)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("%w: %d", apperrors.ErrUnknownReversedEntry, *header.ReversesEntryID)
			}
		}

		saved, err := repos.Journals.InsertEntry(ctx, header)
		if err != nil {
			return err
		}
		written, err := repos.Journals.InsertLines(ctx, saved.EntryID, lines)
		if err != nil {
			return err
		}
		saved.Lines = written

		if afterWrite != nil {
			if err := afterWrite(ctx, repos, saved); err != nil {
				return err
			}
		}
		posted = saved
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnknownAccount),
			errors.Is(err, apperrors.ErrUnknownReversedEntry),
			errors.Is(err, apperrors.ErrIdempotencyRaceLost):
			s.LogDebug(ctx, "Journal entry rolled back", slog.String("reason", err.Error()))
		default:
			s.LogError(ctx, err, "Failed to commit journal entry")
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int64("ledger.entry_id", posted.EntryID))
	s.LogInfo(ctx, "Journal entry posted",
		slog.Int64("entry_id", posted.EntryID),
		slog.String("date", posted.Date.Format(domain.DateLayout)),
		slog.Int("lines", len(posted.Lines)))
	return posted, nil
}

func (s *journalService) GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	if entryID <= 0 {
		return nil, fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, entryID)
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.Int64("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResult, error) {
	limit := params.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", apperrors.ErrValidation, MaxListLimit)
	}
	if params.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", apperrors.ErrValidation)
	}

	query := portsrepo.ListEntriesQuery{Limit: limit + 1, Offset: params.Offset}
	if params.NextToken != "" {
		date, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query.After = &portsrepo.EntryCursor{Date: date, EntryID: id}
		query.Offset = 0
	}

	entries, err := s.journalRepo.ListEntries(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.Int("limit", limit), slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	result := &dto.ListJournalEntriesResult{Entries: entries}
	if len(entries) > limit {
		result.Entries = entries[:limit]
		result.HasMore = true
		last := result.Entries[limit-1]
		token := pagination.EncodeToken(last.Date, last.EntryID)
		result.NextToken = &token
	}
	if result.Entries == nil {
		result.Entries = []domain.JournalEntry{}
	}
	return result, nil
}
