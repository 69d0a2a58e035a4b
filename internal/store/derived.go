package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/antoninaarc/finanzapp/internal/export"
	"github.com/antoninaarc/finanzapp/internal/models"
	"github.com/antoninaarc/finanzapp/internal/report"
)

// Summary holds the period totals shown on the balance card.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Totals computes income, expense and net balance for the period.
func (s *Store) Totals(p report.Period) Summary {
	txs := s.periodTransactions(p)
	income := report.TotalIncome(txs)
	expense := report.TotalExpense(txs)
	return Summary{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// ExpenseByCategory returns the expense breakdown for the period.
func (s *Store) ExpenseByCategory(p report.Period) []report.CategoryTotal {
	return report.ExpenseByCategory(s.periodTransactions(p))
}

// VATSummary returns the VAT totals for the period. The second return
// is false when the current user mode has no BTW tooling; callers
// should hide the figures then.
func (s *Store) VATSummary(p report.Period) (report.VATSummary, bool) {
	if s.UserMode() != models.ModeZZP {
		return report.VATSummary{}, false
	}
	return report.SummarizeVAT(s.periodTransactions(p)), true
}

// BudgetFor relates period spending to the matching limit: the weekly
// limit for PeriodWeek, the monthly one for PeriodMonth. Other periods
// have no budget; the second return is false.
func (s *Store) BudgetFor(p report.Period) (report.BudgetReport, bool) {
	var limit decimal.Decimal
	switch p {
	case report.PeriodWeek:
		limit = s.Budget().Weekly
	case report.PeriodMonth:
		limit = s.Budget().Monthly
	default:
		return report.BudgetReport{}, false
	}
	spent := report.TotalExpense(s.periodTransactions(p))
	return report.BudgetFor(limit, spent), true
}

// SuggestedDailySpend spreads the remaining budget over the days left
// in the period.
func (s *Store) SuggestedDailySpend(p report.Period) decimal.Decimal {
	budget, ok := s.BudgetFor(p)
	if !ok {
		return decimal.Zero
	}
	return report.SuggestedDailySpend(budget.Remaining, p, s.now())
}

// NextVATDeadline returns the next quarterly filing date and the whole
// days until it.
func (s *Store) NextVATDeadline() (time.Time, int) {
	now := s.now()
	return report.NextVATDeadline(now), report.DaysUntilVATDeadline(now)
}

// ExportCSV serializes the full transaction collection.
func (s *Store) ExportCSV() ([]byte, error) {
	return export.TransactionsCSV(s.Transactions())
}

// CategoryChart renders the period's expense breakdown as a PNG.
func (s *Store) CategoryChart(p report.Period, title string) ([]byte, error) {
	return export.CategoryPieChart(s.ExpenseByCategory(p), title)
}

func (s *Store) periodTransactions(p report.Period) []models.Transaction {
	return report.Filter(s.Transactions(), p, s.now())
}
