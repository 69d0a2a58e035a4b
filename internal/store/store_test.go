package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/antoninaarc/finanzapp/internal/models"
	"github.com/antoninaarc/finanzapp/internal/report"
	"github.com/antoninaarc/finanzapp/internal/storage"
)

// Wednesday, 2026-03-18.
var testNow = time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *storage.MemorySnapshots) {
	t.Helper()
	snaps := storage.NewMemorySnapshots()
	s := New(snaps, WithClock(func() time.Time { return testNow }))
	return s, snaps
}

func mustTx(t *testing.T, amount string, txType models.TransactionType, category string, date time.Time, rate *decimal.Decimal) models.Transaction {
	t.Helper()
	tx, err := models.NewTransaction(
		decimal.RequireFromString(amount),
		models.Category{ID: uuid.New(), Name: category},
		txType, "", date, rate,
	)
	require.NoError(t, err)
	return tx
}

func TestAddTransactionPersistsSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, snaps := newTestStore(t)

	tx := mustTx(t, "45.50", models.TypeExpense, "Groceries", testNow, nil)
	require.NoError(t, s.AddTransaction(ctx, tx))

	require.Len(t, s.Transactions(), 1)

	raw, err := snaps.Load(ctx, storage.KeyTransactions)
	require.NoError(t, err)
	var persisted []models.Transaction
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Len(t, persisted, 1)
	require.Equal(t, tx.ID, persisted[0].ID)
}

func TestUpdateTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	tx := mustTx(t, "45.50", models.TypeExpense, "Groceries", testNow, nil)
	require.NoError(t, s.AddTransaction(ctx, tx))

	tx.Note = "corrected"
	require.NoError(t, s.UpdateTransaction(ctx, tx))
	require.Equal(t, "corrected", s.Transactions()[0].Note)

	missing := mustTx(t, "10.00", models.TypeExpense, "Other", testNow, nil)
	require.ErrorIs(t, s.UpdateTransaction(ctx, missing), ErrNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	tx := mustTx(t, "45.50", models.TypeExpense, "Groceries", testNow, nil)
	require.NoError(t, s.AddTransaction(ctx, tx))
	require.NoError(t, s.DeleteTransaction(ctx, tx.ID))
	require.Empty(t, s.Transactions())

	require.ErrorIs(t, s.DeleteTransaction(ctx, tx.ID), ErrNotFound)
}

func TestLoadToleratesAbsentAndCorruptSnapshots(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	snaps := storage.NewMemorySnapshots()

	// One corrupt key, one valid key, the rest absent.
	require.NoError(t, snaps.Save(ctx, storage.KeyTransactions, []byte(`{not json`)))
	require.NoError(t, snaps.Save(ctx, storage.KeyUserMode, []byte(`"zzp"`)))

	s := New(snaps, WithClock(func() time.Time { return testNow }))
	s.Load(ctx)

	require.Empty(t, s.Transactions())
	require.Equal(t, models.ModeZZP, s.UserMode())
	require.True(t, s.Budget().Monthly.Equal(models.DefaultMonthlyBudget))
	require.True(t, s.Budget().Weekly.Equal(models.DefaultWeeklyBudget))
}

func TestLoadAssignsIDsToLegacyTransactions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	snaps := storage.NewMemorySnapshots()

	legacy := `[{"amount":"12.50","category":"Groceries","type":"expense","date":"2026-02-01T10:00:00Z"}]`
	require.NoError(t, snaps.Save(ctx, storage.KeyTransactions, []byte(legacy)))

	s := New(snaps)
	s.Load(ctx)

	txs := s.Transactions()
	require.Len(t, txs, 1)
	require.NotEqual(t, uuid.Nil, txs[0].ID)
	require.Equal(t, "Groceries", txs[0].Category)
}

func TestLoadRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	snaps := storage.NewMemorySnapshots()

	first := New(snaps, WithClock(func() time.Time { return testNow }))
	rate := models.VATRateStandard
	tx := mustTx(t, "121.00", models.TypeIncome, "Salary", testNow, &rate)
	require.NoError(t, first.AddTransaction(ctx, tx))
	require.NoError(t, first.SetUserMode(ctx, models.ModeZZP))
	require.NoError(t, first.SetBudget(ctx, models.BudgetSettings{
		Monthly: decimal.NewFromInt(2500),
		Weekly:  decimal.NewFromInt(600),
	}))

	second := New(snaps, WithClock(func() time.Time { return testNow }))
	second.Load(ctx)

	require.Len(t, second.Transactions(), 1)
	require.Equal(t, "21.00", second.Transactions()[0].VATAmount.StringFixed(2))
	require.Equal(t, models.ModeZZP, second.UserMode())
	require.Equal(t, "2500", second.Budget().Monthly.String())
	require.Equal(t, "600", second.Budget().Weekly.String())
}

func TestSubscribersNotifiedOnMutation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	tx := mustTx(t, "10.00", models.TypeExpense, "Other", testNow, nil)
	require.NoError(t, s.AddTransaction(ctx, tx))
	require.Equal(t, 1, calls)

	require.NoError(t, s.SetUserMode(ctx, models.ModeZZP))
	require.Equal(t, 2, calls)

	unsubscribe()
	require.NoError(t, s.DeleteTransaction(ctx, tx.ID))
	require.Equal(t, 2, calls)
}

func TestCustomCategoriesReplaceDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.Len(t, s.Categories(), len(models.DefaultCategories))

	custom, err := models.NewCategory("Office", "💼", nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveCategory(ctx, custom))

	// A single custom category fully replaces the default set.
	got := s.Categories()
	require.Len(t, got, 1)
	require.Equal(t, "Office", got[0].Name)
}

func TestCategoryCascadeDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	parent, err := models.NewCategory("Food", "🍽️", nil)
	require.NoError(t, err)
	other, err := models.NewCategory("Transport", "🚗", nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveCategory(ctx, parent))
	require.NoError(t, s.SaveCategory(ctx, other))

	childA, err := models.NewCategory("Snacks", "🍪", &parent.ID)
	require.NoError(t, err)
	childB, err := models.NewCategory("Dining", "🍝", &parent.ID)
	require.NoError(t, err)
	otherChild, err := models.NewCategory("Fuel", "⛽", &other.ID)
	require.NoError(t, err)
	require.NoError(t, s.SaveCategory(ctx, childA))
	require.NoError(t, s.SaveCategory(ctx, childB))
	require.NoError(t, s.SaveCategory(ctx, otherChild))

	require.NoError(t, s.DeleteCategory(ctx, parent.ID))

	remaining := s.Categories()
	require.Len(t, remaining, 2)
	names := []string{remaining[0].Name, remaining[1].Name}
	require.ElementsMatch(t, []string{"Transport", "Fuel"}, names)
}

func TestSaveCategoryValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	parent, err := models.NewCategory("Food", "🍽️", nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveCategory(ctx, parent))

	t.Run("rejects empty name", func(t *testing.T) {
		err := s.SaveCategory(ctx, models.Category{ID: uuid.New()})
		require.Error(t, err)
	})

	t.Run("rejects self-parenting", func(t *testing.T) {
		id := uuid.New()
		err := s.SaveCategory(ctx, models.Category{ID: id, Name: "Loop", ParentID: &id})
		require.Error(t, err)
	})

	t.Run("rejects unknown parent", func(t *testing.T) {
		missing := uuid.New()
		err := s.SaveCategory(ctx, models.Category{ID: uuid.New(), Name: "Orphan", ParentID: &missing})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects nesting below a subcategory", func(t *testing.T) {
		child, err := models.NewCategory("Snacks", "🍪", &parent.ID)
		require.NoError(t, err)
		require.NoError(t, s.SaveCategory(ctx, child))

		grandchild, err := models.NewCategory("Chips", "🥔", &child.ID)
		require.NoError(t, err)
		require.Error(t, s.SaveCategory(ctx, grandchild))
	})
}

func TestResolveCategory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	office, err := models.NewCategory("Office", "💼", nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveCategory(ctx, office))

	t.Run("resolves by stable id", func(t *testing.T) {
		tx := models.Transaction{CategoryID: &office.ID, Category: "Renamed Office"}
		require.Equal(t, office, s.ResolveCategory(&tx))
	})

	t.Run("falls back to legacy name lookup", func(t *testing.T) {
		tx := models.Transaction{Category: "Office"}
		require.Equal(t, office, s.ResolveCategory(&tx))
	})

	t.Run("unknown reference resolves to fallback", func(t *testing.T) {
		tx := models.Transaction{Category: "Gone"}
		got := s.ResolveCategory(&tx)
		require.Equal(t, "Other", got.Name)
		require.Equal(t, models.FallbackEmoji, got.Emoji)
	})
}

func TestSetBudgetValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	err := s.SetBudget(ctx, models.BudgetSettings{Monthly: decimal.Zero, Weekly: decimal.NewFromInt(100)})
	require.Error(t, err)

	err = s.SetUserMode(ctx, models.UserMode("admin"))
	require.Error(t, err)
}

func TestDerivedGetters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	rate := models.VATRateStandard
	require.NoError(t, s.AddTransaction(ctx, mustTx(t, "121.00", models.TypeIncome, "Salary", testNow, &rate)))
	require.NoError(t, s.AddTransaction(ctx, mustTx(t, "45.50", models.TypeExpense, "Groceries", testNow, nil)))
	require.NoError(t, s.AddTransaction(ctx, mustTx(t, "30.00", models.TypeExpense, "Groceries", testNow.AddDate(0, -2, 0), nil)))

	t.Run("totals respect the period", func(t *testing.T) {
		all := s.Totals(report.PeriodAll)
		require.Equal(t, "121.00", all.Income.StringFixed(2))
		require.Equal(t, "75.50", all.Expense.StringFixed(2))
		require.Equal(t, "45.50", all.Balance.StringFixed(2))

		month := s.Totals(report.PeriodMonth)
		require.Equal(t, "45.50", month.Expense.StringFixed(2))
	})

	t.Run("category breakdown", func(t *testing.T) {
		got := s.ExpenseByCategory(report.PeriodAll)
		require.Len(t, got, 1)
		require.Equal(t, "Groceries", got[0].Name)
		require.Equal(t, "75.50", got[0].Total.StringFixed(2))
	})

	t.Run("VAT summary is gated by user mode", func(t *testing.T) {
		_, ok := s.VATSummary(report.PeriodAll)
		require.False(t, ok)

		require.NoError(t, s.SetUserMode(ctx, models.ModeZZP))
		summary, ok := s.VATSummary(report.PeriodAll)
		require.True(t, ok)
		require.Equal(t, "21.00", summary.Collected.StringFixed(2))
		require.Equal(t, "21.00", summary.Owed.StringFixed(2))
	})

	t.Run("budget uses the matching limit", func(t *testing.T) {
		budget, ok := s.BudgetFor(report.PeriodMonth)
		require.True(t, ok)
		require.Equal(t, "2000", budget.Limit.String())
		require.Equal(t, "45.50", budget.Spent.StringFixed(2))

		_, ok = s.BudgetFor(report.PeriodAll)
		require.False(t, ok)
	})

	t.Run("suggested daily spend spreads remaining budget", func(t *testing.T) {
		// 2000 - 45.50 over the 14 days left in March.
		got := s.SuggestedDailySpend(report.PeriodMonth)
		require.Equal(t, "139.61", got.StringFixed(2))
	})

	t.Run("next deadline from the fixed clock", func(t *testing.T) {
		deadline, days := s.NextVATDeadline()
		require.Equal(t, time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC), deadline)
		require.Equal(t, 43, days)
	})

	t.Run("CSV export covers the full collection", func(t *testing.T) {
		out, err := s.ExportCSV()
		require.NoError(t, err)
		require.Contains(t, string(out), "Salary")
		require.Contains(t, string(out), "Groceries")
	})

	t.Run("category chart renders", func(t *testing.T) {
		png, err := s.CategoryChart(report.PeriodAll, "Expenses")
		require.NoError(t, err)
		require.NotEmpty(t, png)
	})
}
