package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/dto"
	"github.com/hfa-project/home_finance_app/internal/handlers"
)

// --- Mock SyncService ---
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) SyncCycle(ctx context.Context, householdID string, connectionID *string) (*domain.SyncResult, error) {
	args := m.Called(ctx, householdID, connectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}

func (m *MockSyncService) ListSyncJobs(ctx context.Context, householdID, connectionID string, limit int) ([]domain.SyncJob, error) {
	args := m.Called(ctx, householdID, connectionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncJob), args.Error(1)
}

func (m *MockSyncService) ActiveSyncs(householdID string) []string {
	args := m.Called(householdID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

var _ portssvc.SyncSvcFacade = (*MockSyncService)(nil)

type SyncHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockSyncService *MockSyncService
	householdID     string
}

func (suite *SyncHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockSyncService = new(MockSyncService)
	suite.householdID = "hh-1"

	household := suite.router.Group("/api/v1/households/:householdID")
	handlers.RegisterSyncRoutes(household, suite.mockSyncService)
}

func (suite *SyncHandlerTestSuite) TestTriggerSync_PartialFailureStillOK() {
	result := &domain.SyncResult{
		ConnectionsAttempted: 2,
		ConnectionsSucceeded: 1,
		TransactionsNew:      3,
		Errors:               []string{"conn-b: scraper failed"},
		Details: []domain.ConnectionSyncDetail{
			{ConnectionID: "conn-a", Provider: domain.ProviderLeumi, Status: domain.SyncJobSucceeded, TransactionsFound: 4, TransactionsNew: 3},
			{ConnectionID: "conn-b", Provider: domain.ProviderMax, Status: domain.SyncJobFailed, ErrorMessage: "scraper failed"},
		},
		Duration: 2 * time.Second,
	}
	suite.mockSyncService.On("SyncCycle", mock.Anything, suite.householdID, (*string)(nil)).
		Return(result, nil).Once()

	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/households/%s/sync", suite.householdID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.SyncResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.False(body.Success)
	suite.Equal(2, body.ConnectionsAttempted)
	suite.Equal(1, body.ConnectionsSucceeded)
	suite.Equal(3, body.TransactionsNew)
	suite.Len(body.Errors, 1)
	suite.Len(body.Details, 2)
	suite.mockSyncService.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestTriggerSync_SingleConnectionBody() {
	connectionID := "conn-a"
	result := &domain.SyncResult{
		ConnectionsAttempted: 1,
		ConnectionsSucceeded: 1,
		Errors:               []string{},
		Details: []domain.ConnectionSyncDetail{
			{ConnectionID: connectionID, Provider: domain.ProviderLeumi, Status: domain.SyncJobSucceeded},
		},
	}
	suite.mockSyncService.On("SyncCycle", mock.Anything, suite.householdID,
		mock.MatchedBy(func(id *string) bool { return id != nil && *id == connectionID })).
		Return(result, nil).Once()

	payload, _ := json.Marshal(dto.TriggerSyncRequest{ConnectionID: &connectionID})
	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/households/%s/sync", suite.householdID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.SyncResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Success)
	suite.mockSyncService.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestTriggerSync_AlreadyRunningConflict() {
	suite.mockSyncService.On("SyncCycle", mock.Anything, suite.householdID, mock.Anything).
		Return(nil, fmt.Errorf("connection conn-a: %w", apperrors.ErrSyncInProgress)).Once()

	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/households/%s/sync", suite.householdID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *SyncHandlerTestSuite) TestTriggerSync_MisconfiguredServer() {
	suite.mockSyncService.On("SyncCycle", mock.Anything, suite.householdID, mock.Anything).
		Return(nil, fmt.Errorf("master secret not configured: %w", apperrors.ErrConfiguration)).Once()

	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/households/%s/sync", suite.householdID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "not configured")
}

func (suite *SyncHandlerTestSuite) TestTriggerSync_UnknownConnection() {
	suite.mockSyncService.On("SyncCycle", mock.Anything, suite.householdID, mock.Anything).
		Return(nil, fmt.Errorf("failed to find connection: %w", apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/households/%s/sync", suite.householdID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SyncHandlerTestSuite) TestSyncStatus_ReportsActiveSyncs() {
	suite.mockSyncService.On("ActiveSyncs", suite.householdID).
		Return([]string{"conn-a", "conn-b"}).Once()

	req, _ := http.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/households/%s/sync/status", suite.householdID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body map[string][]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal([]string{"conn-a", "conn-b"}, body["activeSyncs"])
}

func (suite *SyncHandlerTestSuite) TestListSyncJobs_DefaultLimit() {
	jobs := []domain.SyncJob{
		{SyncJobID: "j-2", ConnectionID: "conn-a", Status: domain.SyncJobSucceeded, StartedAt: time.Now()},
		{SyncJobID: "j-1", ConnectionID: "conn-a", Status: domain.SyncJobFailed, StartedAt: time.Now().Add(-time.Hour), ErrorMessage: "bank timeout"},
	}
	suite.mockSyncService.On("ListSyncJobs", mock.Anything, suite.householdID, "conn-a", 20).
		Return(jobs, nil).Once()

	req, _ := http.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/households/%s/sync/jobs/conn-a", suite.householdID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.SyncJobResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 2)
	suite.Equal("j-2", body[0].SyncJobID)
	suite.Equal("bank timeout", body[1].ErrorMessage)
	suite.mockSyncService.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestListSyncJobs_InvalidLimit() {
	req, _ := http.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/households/%s/sync/jobs/conn-a?limit=zero", suite.householdID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSyncService.AssertNotCalled(suite.T(), "ListSyncJobs",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SyncHandlerTestSuite))
}
