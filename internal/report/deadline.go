package report

import "time"

// Dutch quarterly BTW filing deadlines fall on the last calendar day of
// these months.
var vatDeadlineMonths = [4]time.Month{time.January, time.April, time.July, time.October}

// NextVATDeadline returns the first quarterly filing deadline strictly
// after today (date-only, time of day ignored). On the deadline day
// itself the deadline rolls to the next quarter; after October 31 it
// wraps to January 31 of the following year.
func NextVATDeadline(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for year := today.Year(); ; year++ {
		for _, month := range vatDeadlineMonths {
			// Day 0 of the next month is the last day of this one.
			deadline := time.Date(year, month+1, 0, 0, 0, 0, 0, now.Location())
			if deadline.After(today) {
				return deadline
			}
		}
	}
}

// DaysUntilVATDeadline counts whole days from now to the next filing
// deadline, ignoring time of day.
func DaysUntilVATDeadline(now time.Time) int {
	return daysBetween(now, NextVATDeadline(now))
}
