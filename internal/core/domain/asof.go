package domain

import (
	"fmt"
	"time"

	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
)

// YearMonth is the as-of reference date for penalty/discount evaluation.
// Only year and month take part in the business rules; the day, when given,
// is kept for the value date of generated rows.
type YearMonth struct {
	Year  int
	Month int
	day   int
}

// ParseAsOf parses an as-of date in YYYY-MM or YYYY-MM-DD form.
func ParseAsOf(s string) (YearMonth, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return YearMonth{Year: t.Year(), Month: int(t.Month()), day: 1}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return YearMonth{Year: t.Year(), Month: int(t.Month()), day: t.Day()}, nil
	}
	return YearMonth{}, apperrors.NewValidationError(fmt.Sprintf("invalid as-of date %q, want YYYY-MM or YYYY-MM-DD", s))
}

// AsOfFromTime builds a YearMonth from a concrete time.
func AsOfFromTime(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month()), day: t.Day()}
}

// Date returns the as-of moment as a time, defaulting the day to the first of
// the month when it was not supplied.
func (ym YearMonth) Date() time.Time {
	day := ym.day
	if day == 0 {
		day = 1
	}
	return time.Date(ym.Year, time.Month(ym.Month), day, 0, 0, 0, 0, time.UTC)
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}
