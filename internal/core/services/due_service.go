package services

import (
	"context"
	"errors"

	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	portsrepo "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/services"
)

var ErrTDNumberRequired = errors.New("tax declaration number is required")

type dueService struct {
	dueRepo     portsrepo.DueRepository
	journalRepo portsrepo.JournalRepository
}

// NewDueService creates the due reporting service.
func NewDueService(dueRepo portsrepo.DueRepository, journalRepo portsrepo.JournalRepository) portssvc.DueSvcFacade {
	return &dueService{dueRepo: dueRepo, journalRepo: journalRepo}
}

var _ portssvc.DueSvcFacade = (*dueService)(nil)

// GetTaxDue returns the per-year outstanding balance summaries of a taxpayer.
func (s *dueService) GetTaxDue(ctx context.Context, taxpayerID string) ([]domain.TaxYearSummary, error) {
	if taxpayerID == "" {
		return nil, apperrors.NewValidationError(ErrTaxpayerRequired.Error())
	}
	return s.journalRepo.ListTaxYearSummaries(ctx, taxpayerID)
}

// GetTaxDueByTdno returns the per-year due breakdown of one tax declaration.
func (s *dueService) GetTaxDueByTdno(ctx context.Context, taxpayerID, tdNumber string) ([]domain.DueSummary, error) {
	if taxpayerID == "" {
		return nil, apperrors.NewValidationError(ErrTaxpayerRequired.Error())
	}
	if tdNumber == "" {
		return nil, apperrors.NewValidationError(ErrTDNumberRequired.Error())
	}
	return s.dueRepo.GetTaxDueByTdno(ctx, taxpayerID, tdNumber)
}

// GetAssessmentDetails returns the assessment roll rows of a taxpayer.
func (s *dueService) GetAssessmentDetails(ctx context.Context, taxpayerID string) ([]domain.AssessmentDetail, error) {
	if taxpayerID == "" {
		return nil, apperrors.NewValidationError(ErrTaxpayerRequired.Error())
	}
	return s.dueRepo.GetAssessmentDetails(ctx, taxpayerID)
}

// ListPenaltyCandidates returns the dues eligible for a posting run.
func (s *dueService) ListPenaltyCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.PenaltyCandidate, error) {
	return s.dueRepo.ListPenaltyCandidates(ctx, filter)
}
