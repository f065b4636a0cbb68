package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockJournalService is a mock type for the JournalSvcFacade interface
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResult), args.Error(1)
}

// Post runs the hook against TxRepositories when one is set, like a real commit would.
func (m *MockJournalService) Post(ctx context.Context, req dto.PostEntryRequest, afterWrite portssvc.AfterWriteHook) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, afterWrite != nil)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	entry := args.Get(0).(*domain.JournalEntry)
	if afterWrite != nil {
		if err := afterWrite(ctx, args.Get(2).(portsrepo.TxRepositories), entry); err != nil {
			return nil, err
		}
	}
	return entry, args.Error(1)
}

type LedgerServiceTestSuite struct {
	suite.Suite
	journal     *MockJournalService
	idemRepo    *MockIdempotencyRepository
	txIdemRepo  *MockIdempotencyRepository
	txRepos     portsrepo.TxRepositories
	service     portssvc.LedgerSvc
	fingerprint string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.journal = new(MockJournalService)
	suite.idemRepo = new(MockIdempotencyRepository)
	suite.txIdemRepo = new(MockIdempotencyRepository)
	suite.txRepos = portsrepo.TxRepositories{Idempotency: suite.txIdemRepo}
	suite.service = services.NewLedgerService(suite.journal, services.NewIdempotencyService(suite.idemRepo))

	fp, err := services.RequestFingerprint(capitalInjection())
	suite.Require().NoError(err)
	suite.fingerprint = fp
}

func (suite *LedgerServiceTestSuite) TestPostEntry_WithoutToken() {
	req := capitalInjection()
	suite.journal.On("Post", mock.Anything, req, false).Return(&domain.JournalEntry{EntryID: 1}, nil, nil).Once()

	entry, idempotent, err := suite.service.PostEntry(context.Background(), nil, req)

	suite.Require().NoError(err)
	suite.False(idempotent)
	suite.Equal(int64(1), entry.EntryID)
	suite.idemRepo.AssertNotCalled(suite.T(), "FindRecordByKey", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_FirstKeyedPostClaimsInsideCommit() {
	req := capitalInjection()
	suite.idemRepo.On("FindRecordByKey", mock.Anything, "k1").Return(nil, apperrors.ErrNotFound).Once()
	suite.journal.On("Post", mock.Anything, req, true).Return(&domain.JournalEntry{EntryID: 1}, nil, suite.txRepos).Once()
	suite.txIdemRepo.On("ClaimRecord", mock.Anything, "k1", suite.fingerprint, int64(1)).Return(true, nil).Once()

	entry, idempotent, err := suite.service.PostEntry(context.Background(), ptr("k1"), req)

	suite.Require().NoError(err)
	suite.False(idempotent)
	suite.Equal(int64(1), entry.EntryID)
	suite.txIdemRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntry_Replay() {
	req := capitalInjection()
	suite.idemRepo.On("FindRecordByKey", mock.Anything, "k1").Return(&domain.IdempotencyRecord{
		Key: "k1", RequestFingerprint: suite.fingerprint, EntryID: ptr(int64(1)),
	}, nil).Once()
	suite.journal.On("GetEntry", mock.Anything, int64(1)).Return(&domain.JournalEntry{EntryID: 1}, nil).Once()

	entry, idempotent, err := suite.service.PostEntry(context.Background(), ptr("k1"), req)

	suite.Require().NoError(err)
	suite.True(idempotent)
	suite.Equal(int64(1), entry.EntryID)
	suite.journal.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_LostRaceReturnsWinner() {
	req := capitalInjection()
	suite.idemRepo.On("FindRecordByKey", mock.Anything, "k1").Return(nil, apperrors.ErrNotFound).Once()
	suite.journal.On("Post", mock.Anything, req, true).Return(&domain.JournalEntry{EntryID: 2}, nil, suite.txRepos).Once()
	suite.txIdemRepo.On("ClaimRecord", mock.Anything, "k1", suite.fingerprint, int64(2)).Return(false, nil).Once()
	suite.idemRepo.On("FindRecordByKey", mock.Anything, "k1").Return(&domain.IdempotencyRecord{
		Key: "k1", RequestFingerprint: suite.fingerprint, EntryID: ptr(int64(1)),
	}, nil).Once()
	suite.journal.On("GetEntry", mock.Anything, int64(1)).Return(&domain.JournalEntry{EntryID: 1}, nil).Once()

	entry, idempotent, err := suite.service.PostEntry(context.Background(), ptr("k1"), req)

	suite.Require().NoError(err)
	suite.True(idempotent)
	suite.Equal(int64(1), entry.EntryID)
	suite.idemRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntry_ConflictingBody() {
	req := capitalInjection()
	suite.idemRepo.On("FindRecordByKey", mock.Anything, "k1").Return(&domain.IdempotencyRecord{
		Key: "k1", RequestFingerprint: "other", EntryID: ptr(int64(1)),
	}, nil).Once()

	entry, _, err := suite.service.PostEntry(context.Background(), ptr("k1"), req)

	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrIdempotencyConflict)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_ValidationErrorPassesThrough() {
	req := capitalInjection()
	suite.idemRepo.On("FindRecordByKey", mock.Anything, "k1").Return(nil, apperrors.ErrNotFound).Once()
	suite.journal.On("Post", mock.Anything, req, true).Return(nil, apperrors.ErrUnbalancedEntry).Once()

	_, _, err := suite.service.PostEntry(context.Background(), ptr("k1"), req)

	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
