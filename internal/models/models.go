// Package models defines the domain entities for the finance tracker.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeIncome marks a transaction as income.
	TypeIncome TransactionType = "income"
	// TypeExpense marks a transaction as an expense.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Dutch BTW rates. A nil rate on a transaction means VAT does not apply,
// which is a different state from a confirmed 0% rate.
var (
	VATRateZero     = decimal.Zero
	VATRateReduced  = decimal.NewFromFloat(0.09)
	VATRateStandard = decimal.NewFromFloat(0.21)
)

// ValidVATRate reports whether rate is one of the three allowed BTW rates.
func ValidVATRate(rate decimal.Decimal) bool {
	return rate.Equal(VATRateZero) || rate.Equal(VATRateReduced) || rate.Equal(VATRateStandard)
}

// SplitVAT decomposes a gross amount into its VAT-exclusive base and VAT
// portion: base = gross / (1 + rate), vat = gross - base. The base keeps
// full decimal precision; rounding happens only at presentation time.
// base + vat always equals gross exactly.
func SplitVAT(gross, rate decimal.Decimal) (base, vat decimal.Decimal) {
	if rate.IsZero() {
		return gross, decimal.Zero
	}
	base = gross.Div(decimal.NewFromInt(1).Add(rate))
	return base, gross.Sub(base)
}

// Transaction is a single income or expense entry. Amount is gross
// (VAT included); the VAT split is computed once at construction and
// stored, so VAT totals stay stable.
type Transaction struct {
	ID            uuid.UUID        `json:"id"`
	Amount        decimal.Decimal  `json:"amount"`
	CategoryID    *uuid.UUID       `json:"categoryId,omitempty"`
	Category      string           `json:"category"`
	Type          TransactionType  `json:"type"`
	Note          string           `json:"note"`
	Date          time.Time        `json:"date"`
	VATRate       *decimal.Decimal `json:"vatRate,omitempty"`
	AmountExclVAT decimal.Decimal  `json:"amountExclVat"`
	VATAmount     decimal.Decimal  `json:"vatAmount"`
}

// NewTransaction builds a transaction, assigning a fresh ID and computing
// the VAT decomposition. The amount must be positive and vatRate, when
// given, one of the allowed BTW rates. A zero date defaults to the current
// time.
func NewTransaction(amount decimal.Decimal, category Category, txType TransactionType, note string, date time.Time, vatRate *decimal.Decimal) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, fmt.Errorf("amount must be greater than zero")
	}
	if !txType.Valid() {
		return Transaction{}, fmt.Errorf("invalid transaction type %q", txType)
	}
	if vatRate != nil && !ValidVATRate(*vatRate) {
		return Transaction{}, fmt.Errorf("invalid VAT rate %s", vatRate.String())
	}
	if date.IsZero() {
		date = time.Now()
	}

	tx := Transaction{
		ID:       uuid.New(),
		Amount:   amount,
		Category: category.Name,
		Type:     txType,
		Note:     note,
		Date:     date,
	}
	if category.ID != uuid.Nil {
		id := category.ID
		tx.CategoryID = &id
	}

	if vatRate != nil {
		rate := *vatRate
		tx.VATRate = &rate
		tx.AmountExclVAT, tx.VATAmount = SplitVAT(amount, rate)
	} else {
		tx.AmountExclVAT = amount
		tx.VATAmount = decimal.Zero
	}

	return tx, nil
}

// HasVAT reports whether a VAT rate was set on the transaction.
func (t *Transaction) HasVAT() bool {
	return t.VATRate != nil
}

// UserMode gates which derived VAT/budget features are exposed.
type UserMode string

const (
	// ModeBasic is simple personal-use tracking.
	ModeBasic UserMode = "basic"
	// ModeZZP unlocks the BTW tooling for self-employed users.
	ModeZZP UserMode = "zzp"
	// ModePro is reserved for future paid features.
	ModePro UserMode = "pro"
)

// Valid reports whether m is a known user mode.
func (m UserMode) Valid() bool {
	return m == ModeBasic || m == ModeZZP || m == ModePro
}

// Description returns a short human-readable summary of the mode.
func (m UserMode) Description() string {
	switch m {
	case ModeZZP:
		return "Freelance mode with BTW tooling"
	case ModePro:
		return "All features (coming soon)"
	default:
		return "Simple personal tracking"
	}
}

// Default budget limits used when the user has not configured any.
var (
	DefaultMonthlyBudget = decimal.NewFromInt(2000)
	DefaultWeeklyBudget  = decimal.NewFromInt(500)
)

// BudgetSettings holds the independently configurable spending limits.
type BudgetSettings struct {
	Monthly decimal.Decimal `json:"monthly"`
	Weekly  decimal.Decimal `json:"weekly"`
}

// DefaultBudget returns the fixed fallback limits.
func DefaultBudget() BudgetSettings {
	return BudgetSettings{Monthly: DefaultMonthlyBudget, Weekly: DefaultWeeklyBudget}
}
