package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/core/services"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.TransactionSvcFacade
	ctx              context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockCategoryRepo)
	suite.ctx = context.Background()
}

func (suite *TransactionServiceTestSuite) TestListTransactionsByMonth_MapsMonthToRange() {
	token := "next-page"
	txns := []domain.MappedTransaction{{TransactionID: "txn-1"}}
	suite.mockTxnRepo.On("ListTransactionsByMonth", suite.ctx, "hh-1",
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC),
		50, (*string)(nil)).
		Return(txns, &token, nil)

	listed, next, err := suite.service.ListTransactionsByMonth(suite.ctx, "hh-1", "2025-03", 50, nil)

	suite.NoError(err)
	suite.Equal(txns, listed)
	suite.Require().NotNil(next)
	suite.Equal(token, *next)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactionsByMonth_InvalidMonth() {
	listed, next, err := suite.service.ListTransactionsByMonth(suite.ctx, "hh-1", "2025/03", 50, nil)

	suite.Nil(listed)
	suite.Nil(next)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCategorizeTransaction_ValidatesCategory() {
	categoryID := "cat-gone"
	suite.mockCategoryRepo.On("FindCategoryByID", suite.ctx, "hh-1", categoryID).
		Return(nil, apperrors.ErrNotFound)

	err := suite.service.CategorizeTransaction(suite.ctx, "hh-1", "txn-1", &categoryID, "user-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SetTransactionCategory",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCategorizeTransaction_ClearWithNilSkipsLookup() {
	suite.mockTxnRepo.On("SetTransactionCategory",
		suite.ctx, "hh-1", "txn-1", (*string)(nil), "user-1", mock.Anything).Return(nil)

	err := suite.service.CategorizeTransaction(suite.ctx, "hh-1", "txn-1", nil, "user-1")

	suite.NoError(err)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "FindCategoryByID",
		mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestSetTransactionIgnored() {
	suite.mockTxnRepo.On("SetTransactionIgnored",
		suite.ctx, "hh-1", "txn-1", true, "user-1", mock.Anything).Return(nil)

	err := suite.service.SetTransactionIgnored(suite.ctx, "hh-1", "txn-1", true, "user-1")

	suite.NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
