package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	portssvc "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/services"
	"github.com/lgu-treasury/rpt_ledger_app/internal/dto"
	"github.com/lgu-treasury/rpt_ledger_app/internal/handlers"
	"github.com/lgu-treasury/rpt_ledger_app/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) PostPenalties(ctx context.Context, dueKeys []domain.DueKey, asOf domain.YearMonth) (domain.PostingRunResult, error) {
	args := m.Called(ctx, dueKeys, asOf)
	return args.Get(0).(domain.PostingRunResult), args.Error(1)
}

func (m *MockPostingService) ComputePenaltyDiscount(ctx context.Context, taxpayerID string, asOf domain.YearMonth) (domain.RecomputeResult, error) {
	args := m.Called(ctx, taxpayerID, asOf)
	return args.Get(0).(domain.RecomputeResult), args.Error(1)
}

func (m *MockPostingService) InitializeTaxpayerDebit(ctx context.Context, taxpayerID string) (int, error) {
	args := m.Called(ctx, taxpayerID)
	return args.Int(0), args.Error(1)
}

// --- Mock CreditService ---
type MockCreditService struct {
	mock.Mock
}

var _ portssvc.CreditSvcFacade = (*MockCreditService)(nil)

func (m *MockCreditService) AddTaxCredit(ctx context.Context, taxpayerID string, propertyID int64, taxYear int, taxPeriod domain.TaxPeriod, journalID int64, amount decimal.Decimal) (*domain.AccountEntry, error) {
	args := m.Called(ctx, taxpayerID, propertyID, taxYear, taxPeriod, journalID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountEntry), args.Error(1)
}

func (m *MockCreditService) RemoveCredits(ctx context.Context, taxpayerID string) (int64, error) {
	args := m.Called(ctx, taxpayerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditService) RemoveCreditForDue(ctx context.Context, taxpayerID string, propertyID int64, taxYear int, taxPeriod domain.TaxPeriod, journalID int64) (int64, error) {
	args := m.Called(ctx, taxpayerID, propertyID, taxYear, taxPeriod, journalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditService) RemovePenaltyDiscount(ctx context.Context, taxpayerID string) (int64, error) {
	args := m.Called(ctx, taxpayerID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock DueService ---
type MockDueService struct {
	mock.Mock
}

var _ portssvc.DueSvcFacade = (*MockDueService)(nil)

func (m *MockDueService) GetTaxDue(ctx context.Context, taxpayerID string) ([]domain.TaxYearSummary, error) {
	args := m.Called(ctx, taxpayerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxYearSummary), args.Error(1)
}

func (m *MockDueService) GetTaxDueByTdno(ctx context.Context, taxpayerID, tdNumber string) ([]domain.DueSummary, error) {
	args := m.Called(ctx, taxpayerID, tdNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DueSummary), args.Error(1)
}

func (m *MockDueService) GetAssessmentDetails(ctx context.Context, taxpayerID string) ([]domain.AssessmentDetail, error) {
	args := m.Called(ctx, taxpayerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssessmentDetail), args.Error(1)
}

func (m *MockDueService) ListPenaltyCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.PenaltyCandidate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PenaltyCandidate), args.Error(1)
}

// --- Test Suite Setup ---
type PostingHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockPostingSvc *MockPostingService
	mockCreditSvc  *MockCreditService
	mockDueSvc     *MockDueService
}

func (suite *PostingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockPostingSvc = new(MockPostingService)
	suite.mockCreditSvc = new(MockCreditService)
	suite.mockDueSvc = new(MockDueService)

	cfg := &config.Config{
		IsProduction:    true,
		RateLimitPeriod: "1m",
		RateLimitMax:    1000,
	}
	container := &portssvc.ServiceContainer{
		Posting: suite.mockPostingSvc,
		Credit:  suite.mockCreditSvc,
		Due:     suite.mockDueSvc,
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *PostingHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PostingHandlerTestSuite) TestPostPenalties_Success() {
	result := domain.PostingRunResult{Processed: 2, Total: 2, Errors: []domain.RecordError{}}
	suite.mockPostingSvc.On("PostPenalties", mock.Anything, mock.AnythingOfType("[]domain.DueKey"), mock.AnythingOfType("domain.YearMonth")).Return(result, nil)

	w := suite.postJSON("/api/v1/posting/penalties", dto.PostPenaltiesRequest{
		AsOfDate: "2024-06",
		Records: []dto.DueKeyRequest{
			{TaxTransactionID: 10, TaxpayerID: "TP-001", PropertyID: 7, TaxYear: 2022},
			{TaxTransactionID: 11, TaxpayerID: "TP-001", PropertyID: 8, TaxYear: 2024},
		},
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.PostingRunResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.Processed)
	suite.Equal(2, resp.Total)
	suite.Empty(resp.Errors)
}

func (suite *PostingHandlerTestSuite) TestPostPenalties_PartialSuccessStillOK() {
	result := domain.PostingRunResult{
		Processed: 1,
		Total:     2,
		Errors: []domain.RecordError{
			{Record: domain.DueKey{TaxTransactionID: 11, TaxpayerID: "TP-001", PropertyID: 8, TaxYear: 2024}, Error: "deadlock detected"},
		},
	}
	suite.mockPostingSvc.On("PostPenalties", mock.Anything, mock.Anything, mock.Anything).Return(result, nil)

	w := suite.postJSON("/api/v1/posting/penalties", dto.PostPenaltiesRequest{
		AsOfDate: "2024-06",
		Records: []dto.DueKeyRequest{
			{TaxTransactionID: 10, TaxpayerID: "TP-001", PropertyID: 7, TaxYear: 2022},
			{TaxTransactionID: 11, TaxpayerID: "TP-001", PropertyID: 8, TaxYear: 2024},
		},
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.PostingRunResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Processed)
	suite.Require().Len(resp.Errors, 1)
	suite.Equal(int64(11), resp.Errors[0].Record.TaxTransactionID)
}

func (suite *PostingHandlerTestSuite) TestPostPenalties_BadDate() {
	w := suite.postJSON("/api/v1/posting/penalties", dto.PostPenaltiesRequest{
		AsOfDate: "June 2024",
		Records:  []dto.DueKeyRequest{{TaxTransactionID: 10, TaxpayerID: "TP-001", PropertyID: 7, TaxYear: 2022}},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "PostPenalties", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingHandlerTestSuite) TestPostPenalties_EmptyRecords() {
	w := suite.postJSON("/api/v1/posting/penalties", dto.PostPenaltiesRequest{
		AsOfDate: "2024-06",
		Records:  []dto.DueKeyRequest{},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PostingHandlerTestSuite) TestComputePenaltyDiscount() {
	suite.mockPostingSvc.On("ComputePenaltyDiscount", mock.Anything, "TP-001", mock.AnythingOfType("domain.YearMonth")).
		Return(domain.RecomputeResult{Deleted: 3, Inserted: 2}, nil)

	w := suite.postJSON("/api/v1/taxpayers/TP-001/penalty-discount", dto.RecomputeRequest{AsOfDate: "2024-06"})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.RecomputeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(3), resp.Deleted)
	suite.Equal(2, resp.Inserted)
}

func (suite *PostingHandlerTestSuite) TestComputePenaltyDiscount_DefaultsToCurrentDate() {
	suite.mockPostingSvc.On("ComputePenaltyDiscount", mock.Anything, "TP-001", mock.MatchedBy(func(asOf domain.YearMonth) bool {
		now := time.Now().UTC()
		return asOf.Year == now.Year() && asOf.Month == int(now.Month())
	})).Return(domain.RecomputeResult{Deleted: 0, Inserted: 1}, nil)

	w := suite.postJSON("/api/v1/taxpayers/TP-001/penalty-discount", dto.RecomputeRequest{})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestComputePenaltyDiscount_ValidationError() {
	suite.mockPostingSvc.On("ComputePenaltyDiscount", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.RecomputeResult{}, apperrors.NewValidationError("taxpayer ID is required"))

	w := suite.postJSON("/api/v1/taxpayers/x/penalty-discount", dto.RecomputeRequest{AsOfDate: "2024-06"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PostingHandlerTestSuite) TestListCandidates() {
	filter := domain.CandidateFilter{TaxYear: 2024, TDNumber: "TD-01"}
	suite.mockDueSvc.On("ListPenaltyCandidates", mock.Anything, filter).Return([]domain.PenaltyCandidate{
		{TDNumber: "TD-01", TaxYear: 2024, TaxpayerID: "TP-001", TaxTransactionID: 10, PropertyID: 7},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/posting/candidates?taxYear=2024&tdNumber=TD-01", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.PenaltyCandidateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("TD-01", resp[0].TDNumber)
}

func (suite *PostingHandlerTestSuite) TestListCandidates_BadYear() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posting/candidates?taxYear=abc", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PostingHandlerTestSuite) TestGetTaxDueByTdno() {
	suite.mockDueSvc.On("GetTaxDueByTdno", mock.Anything, "TP-001", "TD-01").Return([]domain.DueSummary{
		{TaxYear: 2023, TDNumber: "TD-01", AmountDue: decimal.NewFromInt(1000), Credits: decimal.NewFromInt(100), TotalTaxDue: decimal.NewFromInt(900), Period: "YEARLY"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/taxpayers/TP-001/dues/TD-01", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.DueSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.True(resp[0].Credits.Equal(decimal.NewFromInt(100)))
}

func (suite *PostingHandlerTestSuite) TestAddCredit() {
	stored := &domain.AccountEntry{PostingID: 500, TaxpayerID: "TP-001", PropertyID: 7, TaxYear: 2024, TaxPeriod: domain.PeriodAnnual, JournalID: 5, DebitAmount: decimal.NewFromInt(100)}
	suite.mockCreditSvc.On("AddTaxCredit", mock.Anything, "TP-001", int64(7), 2024, domain.PeriodAnnual, int64(5), mock.AnythingOfType("decimal.Decimal")).Return(stored, nil)

	w := suite.postJSON("/api/v1/credits", dto.AddCreditRequest{
		TaxpayerID: "TP-001",
		PropertyID: 7,
		TaxYear:    2024,
		TaxPeriod:  99,
		JournalID:  5,
		Amount:     decimal.NewFromInt(100),
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.CreditResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(500), resp.PostingID)
	suite.True(resp.Amount.Equal(decimal.NewFromInt(100)))
}

func (suite *PostingHandlerTestSuite) TestAddCredit_BadPeriod() {
	w := suite.postJSON("/api/v1/credits", dto.AddCreditRequest{
		TaxpayerID: "TP-001",
		PropertyID: 7,
		TaxYear:    2024,
		TaxPeriod:  77,
		JournalID:  5,
		Amount:     decimal.NewFromInt(100),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCreditSvc.AssertNotCalled(suite.T(), "AddTaxCredit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingHandlerTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestPostingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PostingHandlerTestSuite))
}
