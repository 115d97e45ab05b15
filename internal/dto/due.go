package dto

import (
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DueSummaryResponse is the per-TD-per-year due breakdown.
type DueSummaryResponse struct {
	TaxYear         int             `json:"taxYear"`
	TDNumber        string          `json:"tdNumber"`
	AmountDue       decimal.Decimal `json:"amountDue"`
	PenaltyDiscount decimal.Decimal `json:"penaltyDiscount"`
	Credits         decimal.Decimal `json:"credits"`
	TotalTaxDue     decimal.Decimal `json:"totalTaxDue"`
	Period          string          `json:"period"`
}

// ToDueSummaryResponses converts domain due summaries to response DTOs.
func ToDueSummaryResponses(summaries []domain.DueSummary) []DueSummaryResponse {
	out := make([]DueSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = DueSummaryResponse{
			TaxYear:         s.TaxYear,
			TDNumber:        s.TDNumber,
			AmountDue:       s.AmountDue,
			PenaltyDiscount: s.PenaltyDiscount,
			Credits:         s.Credits,
			TotalTaxDue:     s.TotalTaxDue,
			Period:          s.Period,
		}
	}
	return out
}

// TaxYearSummaryResponse is the per-year balance view over the posting journal.
type TaxYearSummaryResponse struct {
	TaxYear   int             `json:"taxYear"`
	RPTDue    decimal.Decimal `json:"rptDue"`
	SEFDue    decimal.Decimal `json:"sefDue"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToTaxYearSummaryResponses converts domain year summaries to response DTOs.
func ToTaxYearSummaryResponses(summaries []domain.TaxYearSummary) []TaxYearSummaryResponse {
	out := make([]TaxYearSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = TaxYearSummaryResponse{
			TaxYear:   s.TaxYear,
			RPTDue:    s.RPTDue,
			SEFDue:    s.SEFDue,
			TotalPaid: s.TotalPaid,
			Balance:   s.Balance,
		}
	}
	return out
}

// AssessmentDetailResponse is one assessment roll row with its display status.
type AssessmentDetailResponse struct {
	TDNumber     string          `json:"tdNo"`
	TaxYear      int             `json:"year"`
	PIN          string          `json:"pin"`
	Land         decimal.Decimal `json:"land"`
	Improvements decimal.Decimal `json:"improvements"`
	Total        decimal.Decimal `json:"total"`
	Basic        decimal.Decimal `json:"basic"`
	SEF          decimal.Decimal `json:"sef"`
	Source       string          `json:"source"`
	Status       string          `json:"status"`
}

// ToAssessmentDetailResponses converts domain assessment details to response DTOs.
func ToAssessmentDetailResponses(details []domain.AssessmentDetail) []AssessmentDetailResponse {
	out := make([]AssessmentDetailResponse, len(details))
	for i, d := range details {
		out[i] = AssessmentDetailResponse{
			TDNumber:     d.TDNumber,
			TaxYear:      d.TaxYear,
			PIN:          d.PIN,
			Land:         d.Land,
			Improvements: d.Improvements,
			Total:        d.Total,
			Basic:        d.Basic,
			SEF:          d.SEF,
			Source:       string(d.Source),
			Status:       d.Status,
		}
	}
	return out
}

// PenaltyCandidateResponse is one due eligible for a posting run.
type PenaltyCandidateResponse struct {
	TDNumber         string `json:"tdNumber"`
	TaxYear          int    `json:"taxYear"`
	TaxpayerID       string `json:"taxpayerID"`
	TaxTransactionID int64  `json:"taxTransactionID"`
	PropertyID       int64  `json:"propertyID"`
}

// ToPenaltyCandidateResponses converts domain candidates to response DTOs.
func ToPenaltyCandidateResponses(candidates []domain.PenaltyCandidate) []PenaltyCandidateResponse {
	out := make([]PenaltyCandidateResponse, len(candidates))
	for i, c := range candidates {
		out[i] = PenaltyCandidateResponse{
			TDNumber:         c.TDNumber,
			TaxYear:          c.TaxYear,
			TaxpayerID:       c.TaxpayerID,
			TaxTransactionID: c.TaxTransactionID,
			PropertyID:       c.PropertyID,
		}
	}
	return out
}
