package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/antoninaarc/finanzapp/internal/models"
)

// TotalIncome sums the gross amounts of all income transactions.
func TotalIncome(txs []models.Transaction) decimal.Decimal {
	return sumByType(txs, models.TypeIncome)
}

// TotalExpense sums the gross amounts of all expense transactions.
func TotalExpense(txs []models.Transaction) decimal.Decimal {
	return sumByType(txs, models.TypeExpense)
}

// Balance is income minus expense.
func Balance(txs []models.Transaction) decimal.Decimal {
	return TotalIncome(txs).Sub(TotalExpense(txs))
}

func sumByType(txs []models.Transaction, txType models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type == txType {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// ExpenseByCategory sums expense amounts grouped by category name.
// The result is ordered by total descending, ties broken by name
// ascending, so the breakdown is deterministic.
func ExpenseByCategory(txs []models.Transaction) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		name := tx.Category
		if name == "" {
			name = "Other"
		}
		totals[name] = totals[name].Add(tx.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		out = append(out, CategoryTotal{Name: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// VATSummary aggregates the stored VAT amounts of a collection.
// Collected is VAT on income, Paid is VAT on expenses, Owed is the
// difference to remit to the Belastingdienst.
type VATSummary struct {
	Collected decimal.Decimal
	Paid      decimal.Decimal
	Owed      decimal.Decimal
}

// SummarizeVAT computes the VAT totals over the given transactions.
func SummarizeVAT(txs []models.Transaction) VATSummary {
	var s VATSummary
	s.Collected = decimal.Zero
	s.Paid = decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case models.TypeIncome:
			s.Collected = s.Collected.Add(tx.VATAmount)
		case models.TypeExpense:
			s.Paid = s.Paid.Add(tx.VATAmount)
		}
	}
	s.Owed = s.Collected.Sub(s.Paid)
	return s
}

// VaultShortage is how much more needs to be set aside to cover an
// expected VAT bill. Never negative.
func VaultShortage(collected, expected decimal.Decimal) decimal.Decimal {
	shortage := expected.Sub(collected)
	if shortage.IsNegative() {
		return decimal.Zero
	}
	return shortage
}

// SavePerDay suggests a daily set-aside to cover shortage before the
// deadline. With zero or negative days left the full shortage is due
// today.
func SavePerDay(shortage decimal.Decimal, daysUntil int) decimal.Decimal {
	if daysUntil < 1 {
		daysUntil = 1
	}
	return shortage.Div(decimal.NewFromInt(int64(daysUntil)))
}
