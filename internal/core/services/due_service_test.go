package services_test

import (
	"context"
	"testing"

	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	portssvc "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/services"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DueRepository ---
type MockDueRepository struct {
	mock.Mock
}

func (m *MockDueRepository) GetTaxDueByTdno(ctx context.Context, taxpayerID, tdNumber string) ([]domain.DueSummary, error) {
	args := m.Called(ctx, taxpayerID, tdNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DueSummary), args.Error(1)
}

func (m *MockDueRepository) GetAssessmentDetails(ctx context.Context, taxpayerID string) ([]domain.AssessmentDetail, error) {
	args := m.Called(ctx, taxpayerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssessmentDetail), args.Error(1)
}

func (m *MockDueRepository) ListPenaltyCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.PenaltyCandidate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PenaltyCandidate), args.Error(1)
}

type DueServiceTestSuite struct {
	suite.Suite
	mockDueRepo     *MockDueRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.DueSvcFacade
}

func (suite *DueServiceTestSuite) SetupTest() {
	suite.mockDueRepo = new(MockDueRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewDueService(suite.mockDueRepo, suite.mockJournalRepo)
}

func (suite *DueServiceTestSuite) TestGetTaxDue() {
	summaries := []domain.TaxYearSummary{
		{TaxYear: 2024, RPTDue: decimal.NewFromInt(600), SEFDue: decimal.NewFromInt(400), TotalPaid: decimal.NewFromInt(500), Balance: decimal.NewFromInt(500)},
	}
	suite.mockJournalRepo.On("ListTaxYearSummaries", mock.Anything, "TP-001").Return(summaries, nil)

	got, err := suite.service.GetTaxDue(context.Background(), "TP-001")
	suite.Require().NoError(err)
	suite.Equal(summaries, got)
}

func (suite *DueServiceTestSuite) TestGetTaxDue_RequiresTaxpayer() {
	_, err := suite.service.GetTaxDue(context.Background(), "")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DueServiceTestSuite) TestGetTaxDueByTdno() {
	summaries := []domain.DueSummary{
		{
			TaxYear:         2023,
			TDNumber:        "TD-01",
			AmountDue:       decimal.NewFromInt(1000),
			PenaltyDiscount: decimal.NewFromInt(240),
			Credits:         decimal.NewFromInt(100),
			TotalTaxDue:     decimal.NewFromInt(1140),
			Period:          "YEARLY",
		},
	}
	suite.mockDueRepo.On("GetTaxDueByTdno", mock.Anything, "TP-001", "TD-01").Return(summaries, nil)

	got, err := suite.service.GetTaxDueByTdno(context.Background(), "TP-001", "TD-01")
	suite.Require().NoError(err)
	suite.Equal(summaries, got)
}

func (suite *DueServiceTestSuite) TestGetTaxDueByTdno_RequiresTDNumber() {
	_, err := suite.service.GetTaxDueByTdno(context.Background(), "TP-001", "")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDueRepo.AssertNotCalled(suite.T(), "GetTaxDueByTdno", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DueServiceTestSuite) TestGetAssessmentDetails() {
	details := []domain.AssessmentDetail{
		{TDNumber: "TD-01", TaxYear: 2024, PIN: "123-45", Status: "open", Source: domain.Assessment},
	}
	suite.mockDueRepo.On("GetAssessmentDetails", mock.Anything, "TP-001").Return(details, nil)

	got, err := suite.service.GetAssessmentDetails(context.Background(), "TP-001")
	suite.Require().NoError(err)
	suite.Equal(details, got)
}

func (suite *DueServiceTestSuite) TestListPenaltyCandidates() {
	filter := domain.CandidateFilter{TaxYear: 2024, TDNumber: "TD-01"}
	candidates := []domain.PenaltyCandidate{
		{TDNumber: "TD-01", TaxYear: 2024, TaxpayerID: "TP-001", TaxTransactionID: 10, PropertyID: 7},
	}
	suite.mockDueRepo.On("ListPenaltyCandidates", mock.Anything, filter).Return(candidates, nil)

	got, err := suite.service.ListPenaltyCandidates(context.Background(), filter)
	suite.Require().NoError(err)
	suite.Equal(candidates, got)
}

func TestDueServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DueServiceTestSuite))
}
