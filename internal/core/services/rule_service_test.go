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
	"github.com/hfa-project/home_finance_app/internal/dto"
)

type RuleServiceTestSuite struct {
	suite.Suite
	mockRuleRepo     *MockRuleRepository
	mockCategoryRepo *MockCategoryRepository
	mockTxnRepo      *MockTransactionRepository
	service          portssvc.RuleSvcFacade
	ctx              context.Context
}

func (suite *RuleServiceTestSuite) SetupTest() {
	suite.mockRuleRepo = new(MockRuleRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewRuleService(suite.mockRuleRepo, suite.mockCategoryRepo, suite.mockTxnRepo)
	suite.ctx = context.Background()
}

func (suite *RuleServiceTestSuite) rule(id string, ruleType domain.RuleType, pattern, target string, priority int) domain.CategoryRule {
	return domain.CategoryRule{
		RuleID:           id,
		HouseholdID:      "hh-1",
		Type:             ruleType,
		Pattern:          pattern,
		TargetCategoryID: target,
		Priority:         priority,
		IsActive:         true,
		AuditFields:      domain.AuditFields{CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func (suite *RuleServiceTestSuite) TestEvaluate_HigherPriorityWins() {
	rules := []domain.CategoryRule{
		suite.rule("r-1", domain.RuleKeyword, "cafe", "cat-dining", 5),
		suite.rule("r-2", domain.RuleMerchant, "starbucks", "cat-coffee", 10),
	}
	txn := domain.MappedTransaction{
		Description: "Starbucks Cafe",
		Merchant:    "Starbucks Cafe",
	}

	target := suite.service.Evaluate(rules, txn)

	suite.Require().NotNil(target)
	suite.Equal("cat-coffee", *target)
}

func (suite *RuleServiceTestSuite) TestEvaluate_InactiveRuleNeverMatches() {
	inactive := suite.rule("r-1", domain.RuleKeyword, "cafe", "cat-dining", 10)
	inactive.IsActive = false
	txn := domain.MappedTransaction{Description: "Cafe Noir"}

	suite.Nil(suite.service.Evaluate([]domain.CategoryRule{inactive}, txn))
}

func (suite *RuleServiceTestSuite) TestEvaluate_BrokenRuleSkipped() {
	broken := suite.rule("r-1", domain.RuleKeyword, "cafe", "cat-gone", 10)
	broken.Broken = true
	fallback := suite.rule("r-2", domain.RuleKeyword, "cafe", "cat-dining", 1)
	txn := domain.MappedTransaction{Description: "Cafe Noir"}

	target := suite.service.Evaluate([]domain.CategoryRule{broken, fallback}, txn)

	suite.Require().NotNil(target)
	suite.Equal("cat-dining", *target)
}

func (suite *RuleServiceTestSuite) TestEvaluate_MerchantRuleNeedsMerchant() {
	rules := []domain.CategoryRule{
		suite.rule("r-1", domain.RuleMerchant, "starbucks", "cat-coffee", 10),
	}
	txn := domain.MappedTransaction{Description: "starbucks order", Merchant: ""}

	suite.Nil(suite.service.Evaluate(rules, txn))
}

func (suite *RuleServiceTestSuite) TestEvaluate_RegexMatchesDescription() {
	rules := []domain.CategoryRule{
		suite.rule("r-1", domain.RuleRegex, `^wolt\b`, "cat-delivery", 10),
	}

	target := suite.service.Evaluate(rules, domain.MappedTransaction{Description: "WOLT Tel Aviv"})
	suite.Require().NotNil(target)
	suite.Equal("cat-delivery", *target)

	suite.Nil(suite.service.Evaluate(rules, domain.MappedTransaction{Description: "revolut transfer"}))
}

func (suite *RuleServiceTestSuite) TestEvaluate_InvalidRegexSkipsRuleOnly() {
	rules := []domain.CategoryRule{
		suite.rule("r-1", domain.RuleRegex, "(", "cat-a", 10),
		suite.rule("r-2", domain.RuleKeyword, "cafe", "cat-dining", 1),
	}
	txn := domain.MappedTransaction{Description: "Cafe Noir"}

	target := suite.service.Evaluate(rules, txn)

	suite.Require().NotNil(target)
	suite.Equal("cat-dining", *target)
}

func (suite *RuleServiceTestSuite) TestEvaluate_NoMatchReturnsNil() {
	rules := []domain.CategoryRule{
		suite.rule("r-1", domain.RuleKeyword, "cafe", "cat-dining", 10),
	}

	suite.Nil(suite.service.Evaluate(rules, domain.MappedTransaction{Description: "gas station"}))
}

func (suite *RuleServiceTestSuite) TestTestRule_InvalidRegexReported() {
	resp := suite.service.TestRule(dto.RuleTestRequest{
		Type: "regex", Pattern: "(", SampleText: "anything",
	})

	suite.False(resp.Matches)
	suite.Equal("invalid pattern", resp.Error)
}

func (suite *RuleServiceTestSuite) TestTestRule_KeywordMatch() {
	resp := suite.service.TestRule(dto.RuleTestRequest{
		Type: "keyword", Pattern: "CAFE", SampleText: "cafe noir tel aviv",
	})

	suite.True(resp.Matches)
	suite.Empty(resp.Error)
}

func (suite *RuleServiceTestSuite) TestListRules_FlagsBrokenRules() {
	rules := []domain.CategoryRule{
		suite.rule("r-1", domain.RuleKeyword, "cafe", "cat-dining", 10),
		suite.rule("r-2", domain.RuleKeyword, "fuel", "cat-gone", 5),
	}
	suite.mockRuleRepo.On("ListRules", suite.ctx, "hh-1").Return(rules, nil)
	suite.mockCategoryRepo.On("ListCategoryIDs", suite.ctx, "hh-1").
		Return(map[string]bool{"cat-dining": true}, nil)

	listed, err := suite.service.ListRules(suite.ctx, "hh-1")

	suite.NoError(err)
	suite.Require().Len(listed, 2)
	suite.False(listed[0].Broken)
	suite.True(listed[1].Broken)
	suite.mockRuleRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *RuleServiceTestSuite) TestListEvaluableRules_ExcludesInactiveAndBroken() {
	inactive := suite.rule("r-2", domain.RuleKeyword, "fuel", "cat-car", 5)
	inactive.IsActive = false
	rules := []domain.CategoryRule{
		suite.rule("r-1", domain.RuleKeyword, "cafe", "cat-dining", 10),
		inactive,
		suite.rule("r-3", domain.RuleKeyword, "rent", "cat-gone", 1),
	}
	suite.mockRuleRepo.On("ListRules", suite.ctx, "hh-1").Return(rules, nil)
	suite.mockCategoryRepo.On("ListCategoryIDs", suite.ctx, "hh-1").
		Return(map[string]bool{"cat-dining": true, "cat-car": true}, nil)

	evaluable, err := suite.service.ListEvaluableRules(suite.ctx, "hh-1")

	suite.NoError(err)
	suite.Require().Len(evaluable, 1)
	suite.Equal("r-1", evaluable[0].RuleID)
}

func (suite *RuleServiceTestSuite) TestCreateRule_Success() {
	suite.mockCategoryRepo.On("FindCategoryByID", suite.ctx, "hh-1", "cat-dining").
		Return(&domain.Category{CategoryID: "cat-dining", HouseholdID: "hh-1"}, nil)
	suite.mockRuleRepo.On("SaveRule", suite.ctx, mock.MatchedBy(func(r domain.CategoryRule) bool {
		return r.HouseholdID == "hh-1" && r.Type == domain.RuleKeyword &&
			r.Pattern == "cafe" && r.IsActive && r.RuleID != ""
	})).Return(nil)

	rule, err := suite.service.CreateRule(suite.ctx, "hh-1", dto.CreateRuleRequest{
		Type: "keyword", Pattern: "cafe", TargetCategoryID: "cat-dining", Priority: 3,
	}, "user-1")

	suite.NoError(err)
	suite.Require().NotNil(rule)
	suite.Equal(3, rule.Priority)
	suite.Equal("user-1", rule.CreatedBy)
	suite.mockRuleRepo.AssertExpectations(suite.T())
}

func (suite *RuleServiceTestSuite) TestCreateRule_InvalidRegexRejected() {
	rule, err := suite.service.CreateRule(suite.ctx, "hh-1", dto.CreateRuleRequest{
		Type: "regex", Pattern: "(", TargetCategoryID: "cat-dining",
	}, "user-1")

	suite.Nil(rule)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (suite *RuleServiceTestSuite) TestCreateRule_MissingTargetCategory() {
	suite.mockCategoryRepo.On("FindCategoryByID", suite.ctx, "hh-1", "cat-gone").
		Return(nil, apperrors.ErrNotFound)

	rule, err := suite.service.CreateRule(suite.ctx, "hh-1", dto.CreateRuleRequest{
		Type: "keyword", Pattern: "cafe", TargetCategoryID: "cat-gone",
	}, "user-1")

	suite.Nil(rule)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RuleServiceTestSuite) TestCreateRuleFromTransaction_MerchantRule() {
	categoryID := "cat-coffee"
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, "hh-1", "txn-1").
		Return(&domain.MappedTransaction{
			TransactionID: "txn-1",
			Merchant:      "Starbucks",
			Description:   "CHARGE: Starbucks",
			CategoryID:    &categoryID,
		}, nil)
	suite.mockCategoryRepo.On("FindCategoryByID", suite.ctx, "hh-1", "cat-coffee").
		Return(&domain.Category{CategoryID: "cat-coffee", HouseholdID: "hh-1"}, nil)
	suite.mockRuleRepo.On("SaveRule", suite.ctx, mock.MatchedBy(func(r domain.CategoryRule) bool {
		return r.Type == domain.RuleMerchant && r.Pattern == "Starbucks" &&
			r.TargetCategoryID == "cat-coffee"
	})).Return(nil)

	rule, err := suite.service.CreateRuleFromTransaction(suite.ctx, "hh-1",
		dto.CreateRuleFromTransactionRequest{TransactionID: "txn-1", Priority: 7}, "user-1")

	suite.NoError(err)
	suite.Require().NotNil(rule)
	suite.Equal(domain.RuleMerchant, rule.Type)
	suite.mockRuleRepo.AssertExpectations(suite.T())
}

func (suite *RuleServiceTestSuite) TestCreateRuleFromTransaction_KeywordFallback() {
	categoryID := "cat-utilities"
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, "hh-1", "txn-1").
		Return(&domain.MappedTransaction{
			TransactionID: "txn-1",
			Merchant:      "",
			Description:   " electric bill ",
			CategoryID:    &categoryID,
		}, nil)
	suite.mockCategoryRepo.On("FindCategoryByID", suite.ctx, "hh-1", "cat-utilities").
		Return(&domain.Category{CategoryID: "cat-utilities", HouseholdID: "hh-1"}, nil)
	suite.mockRuleRepo.On("SaveRule", suite.ctx, mock.MatchedBy(func(r domain.CategoryRule) bool {
		return r.Type == domain.RuleKeyword && r.Pattern == "electric bill"
	})).Return(nil)

	rule, err := suite.service.CreateRuleFromTransaction(suite.ctx, "hh-1",
		dto.CreateRuleFromTransactionRequest{TransactionID: "txn-1"}, "user-1")

	suite.NoError(err)
	suite.Require().NotNil(rule)
	suite.Equal(domain.RuleKeyword, rule.Type)
}

func (suite *RuleServiceTestSuite) TestCreateRuleFromTransaction_UncategorizedRejected() {
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, "hh-1", "txn-1").
		Return(&domain.MappedTransaction{TransactionID: "txn-1", Merchant: "Starbucks"}, nil)

	rule, err := suite.service.CreateRuleFromTransaction(suite.ctx, "hh-1",
		dto.CreateRuleFromTransactionRequest{TransactionID: "txn-1"}, "user-1")

	suite.Nil(rule)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RuleServiceTestSuite) TestBatchDeleteRules_ReportsAffected() {
	suite.mockRuleRepo.On("DeleteRules", suite.ctx, "hh-1", []string{"r-1", "r-other"}).
		Return(1, nil)

	affected, err := suite.service.BatchDeleteRules(suite.ctx, "hh-1", []string{"r-1", "r-other"})

	suite.NoError(err)
	suite.Equal(1, affected)
}

func (suite *RuleServiceTestSuite) TestBatchSetRulesActive_ReportsAffected() {
	suite.mockRuleRepo.On("SetRulesActive", suite.ctx, "hh-1", []string{"r-1", "r-2"}, false).
		Return(2, nil)

	affected, err := suite.service.BatchSetRulesActive(suite.ctx, "hh-1", []string{"r-1", "r-2"}, false)

	suite.NoError(err)
	suite.Equal(2, affected)
}

func TestRuleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RuleServiceTestSuite))
}
