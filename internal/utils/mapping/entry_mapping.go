package mapping

import (
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	"github.com/lgu-treasury/rpt_ledger_app/internal/models"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// ToModelAccountEntry converts a domain AccountEntry to its storage model,
// applying the legacy doubling convention to credit-kind debit amounts.
func ToModelAccountEntry(d domain.AccountEntry) models.AccountEntry {
	debit := d.DebitAmount
	if isCreditKind(d.EventKind) {
		debit = debit.Mul(two)
	}
	return models.AccountEntry{
		PostingID:        d.PostingID,
		TaxpayerID:       d.TaxpayerID,
		PropertyID:       d.PropertyID,
		TaxYear:          d.TaxYear,
		TaxPeriod:        int(d.TaxPeriod),
		TaxTransactionID: d.TaxTransactionID,
		JournalID:        d.JournalID,
		EventKind:        string(d.EventKind),
		CaseType:         string(d.EventKind),
		DebitAmount:      debit,
		CreditAmount:     d.CreditAmount,
		Earmark:          string(d.Earmark),
		RefPostingID:     d.RefPostingID,
		ValueDate:        d.ValueDate,
		TransDate:        d.TransactionDate,
		UserID:           d.UserID,
		Cancelled:        d.Cancelled,
		MunicipalID:      d.MunicipalID,
	}
}

// ToDomainAccountEntry converts a storage model back to the domain entry,
// undoing the doubling on credit-kind rows so services only ever see nominal
// amounts.
func ToDomainAccountEntry(m models.AccountEntry) domain.AccountEntry {
	kind := domain.EventKind(m.EventKind)
	debit := m.DebitAmount
	if isCreditKind(kind) {
		debit = debit.Div(two)
	}
	return domain.AccountEntry{
		PostingID:        m.PostingID,
		TaxpayerID:       m.TaxpayerID,
		PropertyID:       m.PropertyID,
		TaxYear:          m.TaxYear,
		TaxPeriod:        domain.TaxPeriod(m.TaxPeriod),
		TaxTransactionID: m.TaxTransactionID,
		JournalID:        m.JournalID,
		EventKind:        kind,
		DebitAmount:      debit,
		CreditAmount:     m.CreditAmount,
		Earmark:          domain.Earmark(m.Earmark),
		RefPostingID:     m.RefPostingID,
		ValueDate:        m.ValueDate,
		TransactionDate:  m.TransDate,
		UserID:           m.UserID,
		Cancelled:        m.Cancelled,
		MunicipalID:      m.MunicipalID,
	}
}

func isCreditKind(k domain.EventKind) bool {
	return k == domain.Credit || k == domain.CreditReversal
}

// ToDomainAccountEntrySlice converts a slice of storage models.
func ToDomainAccountEntrySlice(ms []models.AccountEntry) []domain.AccountEntry {
	out := make([]domain.AccountEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccountEntry(m)
	}
	return out
}
