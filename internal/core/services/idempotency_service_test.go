package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type IdempotencyServiceTestSuite struct {
	suite.Suite
	repo    *MockIdempotencyRepository
	service portssvc.IdempotencySvc
}

func (suite *IdempotencyServiceTestSuite) SetupTest() {
	suite.repo = new(MockIdempotencyRepository)
	suite.service = services.NewIdempotencyService(suite.repo)
}

func ptr[T any](v T) *T { return &v }

func (suite *IdempotencyServiceTestSuite) fingerprint() string {
	fp, err := services.RequestFingerprint(capitalInjection())
	suite.Require().NoError(err)
	return fp
}

func (suite *IdempotencyServiceTestSuite) TestDedupe_NoToken() {
	decision, err := suite.service.Dedupe(context.Background(), nil, capitalInjection())

	suite.Require().NoError(err)
	suite.True(decision.Proceed)
	suite.Empty(decision.Fingerprint)
	suite.repo.AssertNotCalled(suite.T(), "FindRecordByKey", mock.Anything, mock.Anything)
}

func (suite *IdempotencyServiceTestSuite) TestDedupe_FirstUse() {
	ctx := context.Background()
	suite.repo.On("FindRecordByKey", ctx, "k1").Return(nil, apperrors.ErrNotFound).Once()

	decision, err := suite.service.Dedupe(ctx, ptr("k1"), capitalInjection())

	suite.Require().NoError(err)
	suite.True(decision.Proceed)
	suite.Equal(suite.fingerprint(), decision.Fingerprint)
	suite.Nil(decision.ExistingEntryID)
}

func (suite *IdempotencyServiceTestSuite) TestDedupe_Replay() {
	ctx := context.Background()
	suite.repo.On("FindRecordByKey", ctx, "k1").Return(&domain.IdempotencyRecord{
		Key: "k1", RequestFingerprint: suite.fingerprint(), EntryID: ptr(int64(7)),
	}, nil).Once()

	decision, err := suite.service.Dedupe(ctx, ptr("k1"), capitalInjection())

	suite.Require().NoError(err)
	suite.False(decision.Proceed)
	suite.Require().NotNil(decision.ExistingEntryID)
	suite.Equal(int64(7), *decision.ExistingEntryID)
}

func (suite *IdempotencyServiceTestSuite) TestDedupe_PendingRecordProceeds() {
	ctx := context.Background()
	suite.repo.On("FindRecordByKey", ctx, "k1").Return(&domain.IdempotencyRecord{
		Key: "k1", RequestFingerprint: suite.fingerprint(),
	}, nil).Once()

	decision, err := suite.service.Dedupe(ctx, ptr("k1"), capitalInjection())

	suite.Require().NoError(err)
	suite.True(decision.Proceed)
}

func (suite *IdempotencyServiceTestSuite) TestDedupe_Conflict() {
	ctx := context.Background()
	suite.repo.On("FindRecordByKey", ctx, "k1").Return(&domain.IdempotencyRecord{
		Key: "k1", RequestFingerprint: "something-else", EntryID: ptr(int64(7)),
	}, nil).Once()

	_, err := suite.service.Dedupe(ctx, ptr("k1"), capitalInjection())

	suite.ErrorIs(err, apperrors.ErrIdempotencyConflict)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *IdempotencyServiceTestSuite) TestDedupe_BadKey() {
	_, err := suite.service.Dedupe(context.Background(), ptr(""), capitalInjection())
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Dedupe(context.Background(), ptr(strings.Repeat("k", 256)), capitalInjection())
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *IdempotencyServiceTestSuite) TestCommitRecord_Wins() {
	ctx := context.Background()
	suite.repo.On("ClaimRecord", ctx, "k1", "fp", int64(3)).Return(true, nil).Once()

	id, err := suite.service.CommitRecord(ctx, "k1", "fp", 3)

	suite.Require().NoError(err)
	suite.Equal(int64(3), id)
}

func (suite *IdempotencyServiceTestSuite) TestCommitRecord_LosesToEarlierWriter() {
	ctx := context.Background()
	suite.repo.On("ClaimRecord", ctx, "k1", "fp", int64(3)).Return(false, nil).Once()
	suite.repo.On("FindRecordByKey", ctx, "k1").Return(&domain.IdempotencyRecord{
		Key: "k1", RequestFingerprint: "fp", EntryID: ptr(int64(2)),
	}, nil).Once()

	id, err := suite.service.CommitRecord(ctx, "k1", "fp", 3)

	suite.Require().NoError(err)
	suite.Equal(int64(2), id)
}

func (suite *IdempotencyServiceTestSuite) TestCommitRecord_LosesWithDifferentBody() {
	ctx := context.Background()
	suite.repo.On("ClaimRecord", ctx, "k1", "fp", int64(3)).Return(false, nil).Once()
	suite.repo.On("FindRecordByKey", ctx, "k1").Return(&domain.IdempotencyRecord{
		Key: "k1", RequestFingerprint: "other", EntryID: ptr(int64(2)),
	}, nil).Once()

	_, err := suite.service.CommitRecord(ctx, "k1", "fp", 3)

	suite.ErrorIs(err, apperrors.ErrIdempotencyConflict)
}

func (suite *IdempotencyServiceTestSuite) TestClaimWithin() {
	ctx := context.Background()
	txRepo := new(MockIdempotencyRepository)
	repos := portsrepo.TxRepositories{Idempotency: txRepo}

	txRepo.On("ClaimRecord", ctx, "k1", "fp", int64(3)).Return(true, nil).Once()
	suite.NoError(suite.service.ClaimWithin(ctx, repos, "k1", "fp", 3))

	txRepo.On("ClaimRecord", ctx, "k1", "fp", int64(4)).Return(false, nil).Once()
	suite.ErrorIs(suite.service.ClaimWithin(ctx, repos, "k1", "fp", 4), apperrors.ErrIdempotencyRaceLost)

	txRepo.AssertExpectations(suite.T())
	suite.repo.AssertNotCalled(suite.T(), "ClaimRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIdempotencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IdempotencyServiceTestSuite))
}

func TestRequestFingerprint(t *testing.T) {
	base := capitalInjection()
	fp, err := services.RequestFingerprint(base)
	require.NoError(t, err)

	sameDayLater := capitalInjection()
	sameDayLater.Date = sameDayLater.Date.Add(9 * time.Hour)
	fp2, err := services.RequestFingerprint(sameDayLater)
	require.NoError(t, err)
	assert.Equal(t, fp, fp2, "time of day is not part of the request")

	swapped := capitalInjection()
	swapped.Lines[0], swapped.Lines[1] = swapped.Lines[1], swapped.Lines[0]
	fp3, err := services.RequestFingerprint(swapped)
	require.NoError(t, err)
	assert.NotEqual(t, fp, fp3, "line order is significant")

	renamed := capitalInjection()
	renamed.Narration = "Capital injection"
	fp4, err := services.RequestFingerprint(renamed)
	require.NoError(t, err)
	assert.NotEqual(t, fp, fp4)
}
