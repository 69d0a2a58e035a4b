package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus classifies how close spending is to the limit.
type BudgetStatus int

const (
	// BudgetOnTrack means spending is below 70% of the limit.
	BudgetOnTrack BudgetStatus = iota
	// BudgetWarning means spending is between 70% and 90% of the limit.
	BudgetWarning
	// BudgetCritical means spending is at or above 90% of the limit.
	BudgetCritical
)

var (
	warningThreshold  = decimal.NewFromFloat(0.7)
	criticalThreshold = decimal.NewFromFloat(0.9)
)

// BudgetReport relates spending in a period to a configured limit.
type BudgetReport struct {
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Progress  decimal.Decimal // spent/limit clamped to [0, 1]
}

// BudgetFor computes remaining and progress for a limit and the spent
// total. A zero limit yields zero progress rather than a division error.
func BudgetFor(limit, spent decimal.Decimal) BudgetReport {
	r := BudgetReport{
		Limit:     limit,
		Spent:     spent,
		Remaining: limit.Sub(spent),
		Progress:  decimal.Zero,
	}
	if limit.IsPositive() {
		progress := spent.Div(limit)
		switch {
		case progress.IsNegative():
			progress = decimal.Zero
		case progress.GreaterThan(decimal.NewFromInt(1)):
			progress = decimal.NewFromInt(1)
		}
		r.Progress = progress
	}
	return r
}

// Status classifies the report against the warning thresholds.
func (r BudgetReport) Status() BudgetStatus {
	switch {
	case r.Progress.GreaterThanOrEqual(criticalThreshold):
		return BudgetCritical
	case r.Progress.GreaterThanOrEqual(warningThreshold):
		return BudgetWarning
	default:
		return BudgetOnTrack
	}
}

// SuggestedDailySpend divides the remaining budget over the days left in
// the period. Days are counted date-only from now to the period end;
// zero or negative remaining days, or an exhausted budget, yield zero.
func SuggestedDailySpend(remaining decimal.Decimal, p Period, now time.Time) decimal.Decimal {
	end, bounded := p.End(now)
	if !bounded || remaining.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	days := daysBetween(now, end)
	if days <= 0 {
		return decimal.Zero
	}
	return remaining.Div(decimal.NewFromInt(int64(days)))
}

// daysBetween counts whole days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
