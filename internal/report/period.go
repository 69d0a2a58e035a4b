// Package report computes derived figures over the transaction
// collection: period filtering, totals, category breakdowns, budget
// math and the quarterly BTW deadline. All functions are pure and take
// an explicit "now" so they are deterministic under test.
package report

import (
	"time"

	"github.com/antoninaarc/finanzapp/internal/models"
)

// Period selects a date range relative to the current moment.
type Period string

const (
	// PeriodAll applies no date filter.
	PeriodAll Period = "all"
	// PeriodWeek covers the current calendar week, Monday start.
	PeriodWeek Period = "week"
	// PeriodMonth covers the current calendar month.
	PeriodMonth Period = "month"
	// PeriodLast30 covers the last 30 days.
	PeriodLast30 Period = "last30"
)

// Start returns the inclusive lower bound of the period relative to now.
// The second return is false for PeriodAll, which has no bound.
func (p Period) Start(now time.Time) (time.Time, bool) {
	switch p {
	case PeriodWeek:
		// Monday start; Go's Sunday (0) maps to day 7 of the week.
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := time.Date(now.Year(), now.Month(), now.Day()-weekday+1, 0, 0, 0, 0, now.Location())
		return start, true
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case PeriodLast30:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

// End returns the exclusive upper bound of the period relative to now.
// The second return is false for PeriodAll and PeriodLast30, which have
// no natural end before "now" moves.
func (p Period) End(now time.Time) (time.Time, bool) {
	switch p {
	case PeriodWeek:
		start, _ := PeriodWeek.Start(now)
		return start.AddDate(0, 0, 7), true
	case PeriodMonth:
		start, _ := PeriodMonth.Start(now)
		return start.AddDate(0, 1, 0), true
	default:
		return time.Time{}, false
	}
}

// Filter returns the transactions falling inside the period. The lower
// bound is inclusive. The input slice is not modified.
func Filter(txs []models.Transaction, p Period, now time.Time) []models.Transaction {
	start, bounded := p.Start(now)
	if !bounded {
		return txs
	}
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.Date.Before(start) {
			out = append(out, tx)
		}
	}
	return out
}
