package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo, services.WithClock(fixedClock))
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", Type: domain.Asset}

	suite.mockRepo.On("SaveAccount", ctx, domain.Account{
		Code:      "1000",
		Name:      "Cash",
		Type:      domain.Asset,
		CreatedAt: fixedNow,
	}).Return(&domain.Account{AccountID: 1, Code: "1000", Name: "Cash", Type: domain.Asset, CreatedAt: fixedNow}, nil).Once()

	created, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(1), created.AccountID)
	suite.Equal("1000", created.Code)
	suite.Equal(domain.Asset, created.Type)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", Type: domain.AccountType("Cash")}

	created, err := suite.service.CreateAccount(context.Background(), req)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrInvalidType)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(nil, apperrors.ErrDuplicateCode).Once()

	created, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Code: "1000", Name: "Cash", Type: domain.Asset})

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicateCode)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_BlankFields() {
	_, err := suite.service.CreateAccount(context.Background(), dto.CreateAccountRequest{Code: "  ", Name: "Cash", Type: domain.Asset})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestGetAccountByCode_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByCode", ctx, "9999").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByCode(ctx, "9999")

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_Filtered() {
	ctx := context.Background()
	revenue := domain.Revenue
	suite.mockRepo.On("ListAccounts", ctx, &revenue).
		Return([]domain.Account{{AccountID: 4, Code: "4000", Name: "Sales", Type: domain.Revenue}}, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, &revenue)

	suite.Require().NoError(err)
	suite.Len(accounts, 1)
	suite.Equal("4000", accounts[0].Code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyIsNotNil() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccounts", ctx, (*domain.AccountType)(nil)).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, nil)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func (suite *AccountServiceTestSuite) TestListAccounts_InvalidFilter() {
	bogus := domain.AccountType("Bogus")
	_, err := suite.service.ListAccounts(context.Background(), &bogus)
	suite.ErrorIs(err, apperrors.ErrInvalidType)
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccounts", ctx, (*domain.AccountType)(nil)).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListAccounts(ctx, nil)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *AccountServiceTestSuite) TestRenameAccount() {
	ctx := context.Background()
	suite.mockRepo.On("UpdateAccountName", ctx, "1000", "Petty Cash").
		Return(&domain.Account{AccountID: 1, Code: "1000", Name: "Petty Cash", Type: domain.Asset}, nil).Once()

	account, err := suite.service.RenameAccount(ctx, "1000", dto.RenameAccountRequest{Name: " Petty Cash "})

	suite.Require().NoError(err)
	suite.Equal("Petty Cash", account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
