package mapping

import (
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	"github.com/lgu-treasury/rpt_ledger_app/internal/models"
)

// ToDomainPostingJournal converts a posting journal storage model.
func ToDomainPostingJournal(m models.PostingJournal) domain.PostingJournal {
	return domain.PostingJournal{
		JournalID:        m.JournalID,
		TaxpayerID:       m.TaxpayerID,
		TDNumber:         m.TDNumber,
		PropertyID:       m.PropertyID,
		TaxTransactionID: m.TaxTransactionID,
		TaxYear:          m.TaxYear,
		RPTDue:           m.RPTDue,
		SEFDue:           m.SEFDue,
		TotalPaid:        m.TotalPaid,
		Cancelled:        m.Cancelled,
	}
}

// ToDomainDiscountRate converts a discount rate storage model.
func ToDomainDiscountRate(m models.DiscountRate) domain.DiscountRate {
	return domain.DiscountRate{
		YearFrom: m.YearFrom,
		YearTo:   m.YearTo,
		Bucket:   domain.DiscountBucket(m.DiscountMonth),
		Rate:     m.InterestRate,
	}
}
