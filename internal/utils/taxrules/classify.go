// Package taxrules holds the pure date-sensitive business rules of the RPT
// ledger: classifying a due as penalized or discounted for an as-of date, and
// computing the resulting amount. Both the interactive and the batch posting
// paths go through these functions.
package taxrules

import (
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
)

// Event is the classification of a due against an as-of date.
type Event int

const (
	// EventNone means the due attracts neither penalty nor discount.
	EventNone Event = iota
	// EventPenalty means the due is overdue and accrues penalty interest.
	EventPenalty
	// EventDiscount means the due qualifies for a prompt/advance discount.
	EventDiscount
	// EventInvalid means the period code is unknown; callers skip the row.
	EventInvalid
)

// Kind maps a classification to the ledger event kind it produces.
func (e Event) Kind() (domain.EventKind, bool) {
	switch e {
	case EventPenalty:
		return domain.Penalty, true
	case EventDiscount:
		return domain.Discount, true
	default:
		return "", false
	}
}

// Classify decides whether a due for (taxYear, period) is penalized,
// discounted, or neither when evaluated at the given as-of date.
//
// A due from a past tax year is always penalized. A due from a future tax
// year is discounted only when the period admits advance payment: the annual
// period and the quarterly-advance period. Within the tax year itself each
// period has a month threshold, the month the discount window closes and
// penalty interest starts.
func Classify(asOf domain.YearMonth, taxYear int, period domain.TaxPeriod) Event {
	if asOf.Year > taxYear {
		return EventPenalty
	}

	if asOf.Year < taxYear {
		switch period {
		case domain.PeriodAnnual, domain.PeriodQ1:
			return EventDiscount
		case domain.PeriodSemi1, domain.PeriodSemi2, domain.PeriodQ2, domain.PeriodQ3, domain.PeriodQ4:
			return EventNone
		default:
			return EventInvalid
		}
	}

	switch period {
	case domain.PeriodAnnual, domain.PeriodQ1:
		return thresholdEvent(asOf.Month, 4)
	case domain.PeriodSemi1, domain.PeriodQ2:
		return thresholdEvent(asOf.Month, 7)
	case domain.PeriodQ3:
		return thresholdEvent(asOf.Month, 10)
	case domain.PeriodSemi2, domain.PeriodQ4:
		return EventDiscount
	default:
		return EventInvalid
	}
}

func thresholdEvent(month, penaltyFrom int) Event {
	if month < penaltyFrom {
		return EventDiscount
	}
	return EventPenalty
}
