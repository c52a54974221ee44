// Package money implements exact decimal splitting with a defined
// remainder-distribution rule: every part is floor-rounded to the cent and
// the last part absorbs the residual, so the parts always sum back to the
// total.
package money

import (
	"github.com/shopspring/decimal"

	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// Percent100 is the reference value percentage weights must sum to.
var Percent100 = decimal.NewFromInt(100)

// SplitTolerance is the accepted absolute deviation when validating that a
// set of percentages sums to 100 or fixed amounts sum to a total.
var SplitTolerance = decimal.NewFromFloat(0.01)

// SplitEvenly divides total into n parts of two decimal places. All parts are
// equal to the floor-rounded quotient except the last, which absorbs the
// residual so the parts sum exactly to total.
func SplitEvenly(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeInvalidAllocation,
			"split count must be positive",
			domainerror.ErrInvalidAllocation,
		)
	}
	if total.IsNegative() {
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeInvalidAllocation,
			"split total must not be negative",
			domainerror.ErrInvalidAllocation,
		)
	}
	if n == 1 {
		return []decimal.Decimal{total}, nil
	}

	base := total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	parts := make([]decimal.Decimal, n)
	accumulated := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = base
		accumulated = accumulated.Add(base)
	}
	parts[n-1] = total.Sub(accumulated)
	return parts, nil
}

// SplitByPercentages divides total according to percentage weights, which
// must sum to 100 within SplitTolerance. Each part is the weighted share
// rounded to two decimal places; the last part absorbs the rounding residual.
func SplitByPercentages(total decimal.Decimal, percentages []decimal.Decimal) ([]decimal.Decimal, error) {
	if len(percentages) == 0 {
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeInvalidAllocation,
			"at least one percentage is required",
			domainerror.ErrInvalidAllocation,
		)
	}
	if total.IsNegative() {
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeInvalidAllocation,
			"split total must not be negative",
			domainerror.ErrInvalidAllocation,
		)
	}

	sum := decimal.Zero
	for _, pct := range percentages {
		sum = sum.Add(pct)
	}
	if sum.Sub(Percent100).Abs().GreaterThan(SplitTolerance) {
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeUnbalancedAllocation,
			"percentages must sum to 100",
			domainerror.ErrUnbalancedAllocation,
		)
	}

	parts := make([]decimal.Decimal, len(percentages))
	accumulated := decimal.Zero
	for i, pct := range percentages {
		if i < len(percentages)-1 {
			parts[i] = total.Mul(pct).Div(Percent100).Round(2)
			accumulated = accumulated.Add(parts[i])
		} else {
			parts[i] = total.Sub(accumulated)
		}
	}
	return parts, nil
}
