package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/core/ports"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/core/services"
	"github.com/hfa-project/home_finance_app/internal/vault"
)

// fakeScraper is a canned ports.Scraper. When block is set, Fetch signals
// started and waits until block is closed, to simulate an in-flight sync.
type fakeScraper struct {
	accounts []domain.ScrapedAccount
	err      error
	block    chan struct{}
	started  chan struct{}
}

func (f *fakeScraper) Fetch(ctx context.Context, credentials domain.ConnectionCredentials) ([]domain.ScrapedAccount, error) {
	if f.block != nil {
		close(f.started)
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.accounts, nil
}

type fakeRegistry struct {
	scrapers map[domain.Provider]ports.Scraper
}

func (f *fakeRegistry) ScraperFor(provider domain.Provider) (ports.Scraper, bool) {
	s, ok := f.scrapers[provider]
	return s, ok
}

type SyncServiceTestSuite struct {
	suite.Suite
	mockConnectionRepo *MockConnectionRepository
	mockTxnRepo        *MockTransactionRepository
	mockSyncJobRepo    *MockSyncJobRepository
	mockRuleRepo       *MockRuleRepository
	mockCategoryRepo   *MockCategoryRepository
	registry           *fakeRegistry
	vault              *vault.Vault
	ctx                context.Context
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.mockConnectionRepo = new(MockConnectionRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockSyncJobRepo = new(MockSyncJobRepository)
	suite.mockRuleRepo = new(MockRuleRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.registry = &fakeRegistry{scrapers: make(map[domain.Provider]ports.Scraper)}
	v, err := vault.New("test-master-secret", "connection-credentials")
	suite.Require().NoError(err)
	suite.vault = v
	suite.ctx = context.Background()
}

func (suite *SyncServiceTestSuite) newService(v *vault.Vault) portssvc.SyncSvcFacade {
	ruleSvc := services.NewRuleService(suite.mockRuleRepo, suite.mockCategoryRepo, suite.mockTxnRepo)
	return services.NewSyncService(
		suite.mockConnectionRepo,
		suite.mockTxnRepo,
		suite.mockSyncJobRepo,
		ruleSvc,
		services.NewNormalizer("ILS"),
		services.NewDeduper(),
		v,
		suite.registry,
		nil,
		2,
		time.Minute,
	)
}

func (suite *SyncServiceTestSuite) connection(id string, provider domain.Provider) domain.Connection {
	blob, err := suite.vault.Encrypt(domain.ConnectionCredentials{"username": "u", "password": "p"})
	suite.Require().NoError(err)
	return domain.Connection{
		ConnectionID:         id,
		HouseholdID:          "hh-1",
		Provider:             provider,
		Name:                 "checking",
		EncryptedCredentials: blob,
		IsActive:             true,
		LastSyncStatus:       domain.ConnectionSyncNever,
	}
}

func (suite *SyncServiceTestSuite) record(identifier string, amount int64) domain.RawScrapedRecord {
	return domain.RawScrapedRecord{
		Type:          domain.RawRecordNormal,
		Identifier:    identifier,
		Date:          time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
		ChargedAmount: decimal.NewFromInt(amount),
		Description:   "SuperMarket Tel Aviv",
		Status:        domain.RawRecordCompleted,
	}
}

// expectJobTrail allows the pending/running/terminal job rows and the
// connection outcome update without pinning their arguments.
func (suite *SyncServiceTestSuite) expectJobTrail() {
	suite.mockSyncJobRepo.On("CreateSyncJob", mock.Anything, mock.Anything).Return(nil)
	suite.mockSyncJobRepo.On("UpdateSyncJob",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil)
	suite.mockConnectionRepo.On("UpdateSyncOutcome",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything).Return(nil)
}

func (suite *SyncServiceTestSuite) expectNoRules() {
	suite.mockRuleRepo.On("ListRules", mock.Anything, "hh-1").Return([]domain.CategoryRule{}, nil)
	suite.mockCategoryRepo.On("ListCategoryIDs", mock.Anything, "hh-1").Return(map[string]bool{}, nil)
}

func (suite *SyncServiceTestSuite) TestSyncCycle_NilVaultIsConfigurationError() {
	service := suite.newService(nil)

	result, err := service.SyncCycle(suite.ctx, "hh-1", nil)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
}

func (suite *SyncServiceTestSuite) TestSyncCycle_AggregatesPartialFailure() {
	connA := suite.connection("conn-a", domain.ProviderLeumi)
	connB := suite.connection("conn-b", domain.ProviderMax)
	suite.mockConnectionRepo.On("ListConnections", mock.Anything, "hh-1", true).
		Return([]domain.Connection{connA, connB}, nil)

	suite.registry.scrapers[domain.ProviderLeumi] = &fakeScraper{
		accounts: []domain.ScrapedAccount{{
			AccountNumber: "acc-1",
			Records: []domain.RawScrapedRecord{
				suite.record("t-1", -120),
				suite.record("t-2", -80),
				suite.record("t-3", 4500),
			},
		}},
	}
	suite.registry.scrapers[domain.ProviderMax] = &fakeScraper{
		err: errors.New("login rejected"),
	}

	suite.expectJobTrail()
	suite.expectNoRules()
	suite.mockTxnRepo.On("FindExistingExternalIDs", mock.Anything, "hh-1",
		[]string{"acc-1_t-1", "acc-1_t-2", "acc-1_t-3"}).
		Return(map[string]bool{}, nil)
	suite.mockTxnRepo.On("ListRecentByAccount", mock.Anything, "hh-1", "acc-1", mock.Anything).
		Return([]domain.MappedTransaction{}, nil)
	suite.mockTxnRepo.On("SaveNewTransactions", mock.Anything, mock.MatchedBy(func(txns []domain.MappedTransaction) bool {
		return len(txns) == 3 && txns[0].TransactionID != "" && txns[0].CreatedBy == "sync"
	})).Return(3, nil)
	suite.mockTxnRepo.On("ListUncategorized", mock.Anything, "hh-1", "conn-a").
		Return([]domain.MappedTransaction{}, nil)

	service := suite.newService(suite.vault)
	result, err := service.SyncCycle(suite.ctx, "hh-1", nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(2, result.ConnectionsAttempted)
	suite.Equal(1, result.ConnectionsSucceeded)
	suite.Equal(3, result.TransactionsNew)
	suite.Require().Len(result.Errors, 1)
	suite.Contains(result.Errors[0], "conn-b")
	suite.Contains(result.Errors[0], "login rejected")

	suite.Require().Len(result.Details, 2)
	suite.Equal(domain.SyncJobSucceeded, result.Details[0].Status)
	suite.Equal(3, result.Details[0].TransactionsFound)
	suite.Equal(domain.SyncJobFailed, result.Details[1].Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSyncCycle_SecondRunInsertsNothing() {
	conn := suite.connection("conn-a", domain.ProviderLeumi)
	suite.mockConnectionRepo.On("ListConnections", mock.Anything, "hh-1", true).
		Return([]domain.Connection{conn}, nil)
	suite.registry.scrapers[domain.ProviderLeumi] = &fakeScraper{
		accounts: []domain.ScrapedAccount{{
			AccountNumber: "acc-1",
			Records:       []domain.RawScrapedRecord{suite.record("t-1", -120)},
		}},
	}

	suite.expectJobTrail()
	suite.mockTxnRepo.On("FindExistingExternalIDs", mock.Anything, "hh-1", []string{"acc-1_t-1"}).
		Return(map[string]bool{"acc-1_t-1": true}, nil)

	service := suite.newService(suite.vault)
	result, err := service.SyncCycle(suite.ctx, "hh-1", nil)

	suite.Require().NoError(err)
	suite.Equal(1, result.ConnectionsSucceeded)
	suite.Zero(result.TransactionsNew)
	suite.Equal(1, result.Details[0].TransactionsFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveNewTransactions", mock.Anything, mock.Anything)
}

func (suite *SyncServiceTestSuite) TestSyncCycle_CategorizesNewTransactions() {
	conn := suite.connection("conn-a", domain.ProviderLeumi)
	suite.mockConnectionRepo.On("ListConnections", mock.Anything, "hh-1", true).
		Return([]domain.Connection{conn}, nil)
	suite.registry.scrapers[domain.ProviderLeumi] = &fakeScraper{
		accounts: []domain.ScrapedAccount{{
			AccountNumber: "acc-1",
			Records:       []domain.RawScrapedRecord{suite.record("t-1", -120)},
		}},
	}

	suite.expectJobTrail()
	suite.mockRuleRepo.On("ListRules", mock.Anything, "hh-1").Return([]domain.CategoryRule{{
		RuleID:           "r-1",
		HouseholdID:      "hh-1",
		Type:             domain.RuleKeyword,
		Pattern:          "supermarket",
		TargetCategoryID: "cat-groceries",
		Priority:         10,
		IsActive:         true,
	}}, nil)
	suite.mockCategoryRepo.On("ListCategoryIDs", mock.Anything, "hh-1").
		Return(map[string]bool{"cat-groceries": true}, nil)
	suite.mockTxnRepo.On("FindExistingExternalIDs", mock.Anything, "hh-1", []string{"acc-1_t-1"}).
		Return(map[string]bool{}, nil)
	suite.mockTxnRepo.On("ListRecentByAccount", mock.Anything, "hh-1", "acc-1", mock.Anything).
		Return([]domain.MappedTransaction{}, nil)
	suite.mockTxnRepo.On("SaveNewTransactions", mock.Anything, mock.Anything).Return(1, nil)
	suite.mockTxnRepo.On("ListUncategorized", mock.Anything, "hh-1", "conn-a").
		Return([]domain.MappedTransaction{{
			TransactionID: "txn-1",
			HouseholdID:   "hh-1",
			ConnectionID:  "conn-a",
			Description:   "SuperMarket Tel Aviv",
			Merchant:      "SuperMarket Tel Aviv",
		}}, nil)
	suite.mockTxnRepo.On("SetTransactionCategory",
		mock.Anything, "hh-1", "txn-1",
		mock.MatchedBy(func(categoryID *string) bool {
			return categoryID != nil && *categoryID == "cat-groceries"
		}), "sync", mock.Anything).Return(nil)

	service := suite.newService(suite.vault)
	result, err := service.SyncCycle(suite.ctx, "hh-1", nil)

	suite.Require().NoError(err)
	suite.Equal(1, result.TransactionsNew)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSyncCycle_PartialInsertFailureKeepsInsertedCount() {
	conn := suite.connection("conn-a", domain.ProviderLeumi)
	suite.mockConnectionRepo.On("ListConnections", mock.Anything, "hh-1", true).
		Return([]domain.Connection{conn}, nil)
	suite.registry.scrapers[domain.ProviderLeumi] = &fakeScraper{
		accounts: []domain.ScrapedAccount{{
			AccountNumber: "acc-1",
			Records: []domain.RawScrapedRecord{
				suite.record("t-1", -120),
				suite.record("t-2", -80),
				suite.record("t-3", -60),
			},
		}},
	}

	suite.mockSyncJobRepo.On("CreateSyncJob", mock.Anything, mock.Anything).Return(nil)
	suite.mockSyncJobRepo.On("UpdateSyncJob",
		mock.Anything, mock.Anything, domain.SyncJobRunning, 0, 0, "", mock.Anything).Return(nil)
	suite.mockSyncJobRepo.On("UpdateSyncJob",
		mock.Anything, mock.Anything, domain.SyncJobFailed, 3, 2, mock.Anything, mock.Anything).Return(nil)
	suite.mockConnectionRepo.On("UpdateSyncOutcome",
		mock.Anything, "hh-1", "conn-a", domain.ConnectionSyncFailed, mock.Anything,
		mock.Anything).Return(nil)
	suite.mockTxnRepo.On("FindExistingExternalIDs", mock.Anything, "hh-1",
		[]string{"acc-1_t-1", "acc-1_t-2", "acc-1_t-3"}).
		Return(map[string]bool{}, nil)
	suite.mockTxnRepo.On("ListRecentByAccount", mock.Anything, "hh-1", "acc-1", mock.Anything).
		Return([]domain.MappedTransaction{}, nil)
	suite.mockTxnRepo.On("SaveNewTransactions", mock.Anything, mock.Anything).
		Return(2, errors.New("connection reset mid-batch"))

	service := suite.newService(suite.vault)
	result, err := service.SyncCycle(suite.ctx, "hh-1", nil)

	suite.Require().NoError(err)
	suite.Zero(result.ConnectionsSucceeded)
	suite.Equal(2, result.TransactionsNew)
	suite.Equal(domain.SyncJobFailed, result.Details[0].Status)
	suite.Equal(2, result.Details[0].TransactionsNew)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListUncategorized", mock.Anything, mock.Anything, mock.Anything)
	suite.mockSyncJobRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSyncCycle_ExplicitTriggerWhileRunningRejected() {
	conn := suite.connection("conn-a", domain.ProviderLeumi)
	suite.mockConnectionRepo.On("ListConnections", mock.Anything, "hh-1", true).
		Return([]domain.Connection{conn}, nil)
	suite.mockConnectionRepo.On("FindConnectionByID", mock.Anything, "hh-1", "conn-a").
		Return(&conn, nil)

	scraper := &fakeScraper{
		accounts: []domain.ScrapedAccount{},
		block:    make(chan struct{}),
		started:  make(chan struct{}),
	}
	suite.registry.scrapers[domain.ProviderLeumi] = scraper
	suite.expectJobTrail()

	service := suite.newService(suite.vault)
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err := service.SyncCycle(suite.ctx, "hh-1", nil)
		suite.NoError(err)
		suite.NotNil(result)
	}()
	<-scraper.started

	suite.Equal([]string{"conn-a"}, service.ActiveSyncs("hh-1"))

	connectionID := "conn-a"
	result, err := service.SyncCycle(suite.ctx, "hh-1", &connectionID)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrSyncInProgress)

	close(scraper.block)
	<-done
	suite.Empty(service.ActiveSyncs("hh-1"))
}

func (suite *SyncServiceTestSuite) TestActiveSyncs_ScopedToHousehold() {
	conn := suite.connection("conn-a", domain.ProviderLeumi)
	suite.mockConnectionRepo.On("ListConnections", mock.Anything, "hh-1", true).
		Return([]domain.Connection{conn}, nil)

	scraper := &fakeScraper{
		accounts: []domain.ScrapedAccount{},
		block:    make(chan struct{}),
		started:  make(chan struct{}),
	}
	suite.registry.scrapers[domain.ProviderLeumi] = scraper
	suite.expectJobTrail()

	service := suite.newService(suite.vault)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := service.SyncCycle(suite.ctx, "hh-1", nil)
		suite.NoError(err)
	}()
	<-scraper.started

	suite.Equal([]string{"conn-a"}, service.ActiveSyncs("hh-1"))
	suite.Empty(service.ActiveSyncs("hh-2"))

	close(scraper.block)
	<-done
}

func (suite *SyncServiceTestSuite) TestSyncCycle_ScraperErrorRecordsFailure() {
	conn := suite.connection("conn-a", domain.ProviderLeumi)
	connectionID := "conn-a"
	suite.mockConnectionRepo.On("FindConnectionByID", mock.Anything, "hh-1", "conn-a").
		Return(&conn, nil)
	suite.registry.scrapers[domain.ProviderLeumi] = &fakeScraper{err: errors.New("bank timeout")}

	suite.mockSyncJobRepo.On("CreateSyncJob", mock.Anything, mock.MatchedBy(func(job domain.SyncJob) bool {
		return job.ConnectionID == "conn-a" && job.Status == domain.SyncJobPending
	})).Return(nil)
	suite.mockSyncJobRepo.On("UpdateSyncJob",
		mock.Anything, mock.Anything, domain.SyncJobRunning, 0, 0, "", mock.Anything).Return(nil)
	suite.mockSyncJobRepo.On("UpdateSyncJob",
		mock.Anything, mock.Anything, domain.SyncJobFailed, 0, 0, mock.Anything, mock.Anything).Return(nil)
	suite.mockConnectionRepo.On("UpdateSyncOutcome",
		mock.Anything, "hh-1", "conn-a", domain.ConnectionSyncFailed, mock.Anything,
		mock.Anything).Return(nil)

	service := suite.newService(suite.vault)
	result, err := service.SyncCycle(suite.ctx, "hh-1", &connectionID)

	suite.Require().NoError(err)
	suite.Equal(1, result.ConnectionsAttempted)
	suite.Zero(result.ConnectionsSucceeded)
	suite.Require().Len(result.Errors, 1)
	suite.Contains(result.Errors[0], "bank timeout")
	suite.mockSyncJobRepo.AssertExpectations(suite.T())
	suite.mockConnectionRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestListSyncJobs_Passthrough() {
	jobs := []domain.SyncJob{{SyncJobID: "j-1", ConnectionID: "conn-a", Status: domain.SyncJobSucceeded}}
	suite.mockSyncJobRepo.On("ListSyncJobsByConnection", suite.ctx, "hh-1", "conn-a", 20).
		Return(jobs, nil)

	service := suite.newService(suite.vault)
	listed, err := service.ListSyncJobs(suite.ctx, "hh-1", "conn-a", 20)

	suite.NoError(err)
	suite.Equal(jobs, listed)
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
