package billing

import (
	"fmt"
	"time"

	"github.com/armonia/backend/internal/domain/shared"
)

// BillingPeriod is a calendar-month billing window. Start is the first day
// of the month at midnight, End the last day of the month at midnight.
type BillingPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Year  int       `json:"year"`
	Month int       `json:"month"`
}

// CurrentPeriod returns the billing period for the calendar month containing now
func CurrentPeriod(now time.Time) BillingPeriod {
	return PeriodForMonth(now.Year(), int(now.Month()))
}

// PeriodForMonth returns the billing period for the given calendar month
func PeriodForMonth(year, month int) BillingPeriod {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return BillingPeriod{
		Start: start,
		End:   end,
		Year:  start.Year(),
		Month: int(start.Month()),
	}
}

// ParsePeriod validates a year/month pair and returns its period
func ParsePeriod(year, month int) (BillingPeriod, error) {
	if year < 2000 || year > 2100 {
		return BillingPeriod{}, shared.NewDomainError("INVALID_PERIOD", "Period year out of range")
	}
	if month < 1 || month > 12 {
		return BillingPeriod{}, shared.NewDomainError("INVALID_PERIOD", "Period month must be between 1 and 12")
	}
	return PeriodForMonth(year, month), nil
}

// Contains reports whether t falls within the period
func (p BillingPeriod) Contains(t time.Time) bool {
	dayAfterEnd := p.End.AddDate(0, 0, 1)
	return !t.Before(p.Start) && t.Before(dayAfterEnd)
}

// Label returns the period in "YYYY-MM" form
func (p BillingPeriod) Label() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Equals compares two periods by year and month
func (p BillingPeriod) Equals(other BillingPeriod) bool {
	return p.Year == other.Year && p.Month == other.Month
}
