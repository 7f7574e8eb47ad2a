package billing

import (
	"github.com/armonia/backend/internal/domain/shared"
	"github.com/armonia/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var daysPerMonth = decimal.NewFromInt(30)

// CalculateLateFee computes the late fee owed on a principal: the monthly
// rate prorated over a 30-day month by the number of days late. Zero days
// produces a zero fee; negative days is a caller error.
func CalculateLateFee(principal valueobject.Money, daysLate int, monthlyRate decimal.Decimal) (valueobject.Money, error) {
	if daysLate < 0 {
		return valueobject.Money{}, shared.NewDomainError("INVALID_DAYS_LATE", "Days late cannot be negative")
	}
	if monthlyRate.IsNegative() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_RATE", "Monthly rate cannot be negative")
	}
	if daysLate == 0 {
		return valueobject.Zero(principal.Currency()), nil
	}

	proration := decimal.NewFromInt(int64(daysLate)).Div(daysPerMonth)
	return principal.Multiply(monthlyRate).Multiply(proration), nil
}
