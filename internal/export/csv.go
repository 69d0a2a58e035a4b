// Package export serializes the transaction collection into shareable
// artifacts: a CSV blob and a category-breakdown chart image. Both are
// pure functions over the collection; file writing and sharing stay in
// the UI layer.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/antoninaarc/finanzapp/internal/models"
)

var hundred = decimal.NewFromInt(100)

// csvHeader defines the column order of an export.
var csvHeader = []string{"Date", "Category", "Type", "Amount", "VAT Rate", "Amount Excl VAT", "VAT Amount", "Note"}

// TransactionsCSV renders the collection as CSV, newest first. Amounts
// carry exactly two decimals; the three VAT columns stay blank when no
// rate was set, so an undetected rate is distinguishable from a
// confirmed 0%. Commas in notes become semicolons to keep columns
// aligned in naive consumers.
func TransactionsCSV(txs []models.Transaction) ([]byte, error) {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range sorted {
		if err := writer.Write(csvRow(&sorted[i])); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func csvRow(tx *models.Transaction) []string {
	txType := "Expense"
	if tx.Type == models.TypeIncome {
		txType = "Income"
	}

	var rate, base, vat string
	if tx.HasVAT() {
		rate = fmt.Sprintf("%s%%", tx.VATRate.Mul(hundred).StringFixed(0))
		base = tx.AmountExclVAT.StringFixed(2)
		vat = tx.VATAmount.StringFixed(2)
	}

	return []string{
		tx.Date.Format("2006-01-02"),
		tx.Category,
		txType,
		tx.Amount.StringFixed(2),
		rate,
		base,
		vat,
		strings.ReplaceAll(tx.Note, ",", ";"),
	}
}
