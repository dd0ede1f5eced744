package service

import (
	"testing"
	"time"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	snapshot domain.Snapshot
	status   domain.Status
}

func (s *staticSource) Snapshot() domain.Snapshot { return s.snapshot }
func (s *staticSource) Status() domain.Status     { return s.status }

func TestDashboardService_GetDashboard(t *testing.T) {
	source := &staticSource{
		snapshot: domain.Snapshot{
			Transactions: sampleTransactions(),
			Goals: []domain.Goal{
				{ID: "g1", Name: "Car", TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.NewFromInt(250)},
				{ID: "g2", Name: "Trip", TargetAmount: decimal.NewFromInt(500), CurrentAmount: decimal.NewFromInt(900)},
			},
		},
		status: domain.Status{Error: "stale"},
	}
	now := func() time.Time { return time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC) }
	svc := NewDashboardService(source, domain.DefaultCategoryRegistry(), now)

	dashboard := svc.GetDashboard()

	assert.Equal(t, "2000.00", dashboard.Totals.Income.StringFixed(2))
	assert.Equal(t, "100.00", dashboard.Totals.Expenses.StringFixed(2))
	assert.Equal(t, "1900.00", dashboard.Totals.Balance.StringFixed(2))

	require.Len(t, dashboard.Monthly, 2)
	assert.Equal(t, "Jan 24", dashboard.Monthly[0].Label)

	require.Len(t, dashboard.ExpenseBreakdown, 2)
	assert.Equal(t, "Food & Groceries", dashboard.ExpenseBreakdown[0].Name)
	assert.Equal(t, "40.00", dashboard.ExpenseBreakdown[0].Amount.StringFixed(2))
	assert.Equal(t, "Housing", dashboard.ExpenseBreakdown[1].Name)
	assert.Equal(t, "60.00", dashboard.ExpenseBreakdown[1].Amount.StringFixed(2))
	assert.True(t, SumBreakdown(dashboard.ExpenseBreakdown).Equal(dashboard.Totals.Expenses))

	require.Len(t, dashboard.Goals, 2)
	assert.Equal(t, "25.00", dashboard.Goals[0].Percent.StringFixed(2))
	assert.Equal(t, "100.00", dashboard.Goals[1].Percent.StringFixed(2), "progress is clamped")

	assert.True(t, dashboard.InvestmentReminder)
	assert.Equal(t, "stale", dashboard.Status.Error)
}

func TestDashboardService_GetDashboard_Empty(t *testing.T) {
	svc := NewDashboardService(&staticSource{}, domain.DefaultCategoryRegistry(), nil)

	dashboard := svc.GetDashboard()

	assert.True(t, dashboard.Totals.Balance.IsZero())
	assert.Empty(t, dashboard.Monthly)
	assert.Empty(t, dashboard.ExpenseBreakdown)
	assert.Empty(t, dashboard.Goals)
	assert.True(t, SumBreakdown(dashboard.ExpenseBreakdown).IsZero())
}

func TestDashboardService_ExpenseBreakdown_UnknownCategory(t *testing.T) {
	svc := NewDashboardService(&staticSource{}, domain.DefaultCategoryRegistry(), nil)

	breakdown := svc.ExpenseBreakdown([]domain.Transaction{
		testutil.Transaction("1", "2024-01-01", domain.TransactionTypeExpense, "15",
			testutil.Split("cat_gone", "10"),
			testutil.Split("cat_exp_9", "5")),
	})

	require.Len(t, breakdown, 2)
	assert.Equal(t, "Other", breakdown[0].Name)
	assert.Equal(t, domain.UnknownCategoryName, breakdown[1].Name)
	assert.Equal(t, "cat_gone", breakdown[1].ID)
}

func TestDashboardService_GetTransactions(t *testing.T) {
	source := &staticSource{snapshot: domain.Snapshot{Transactions: sampleTransactions()}}
	svc := NewDashboardService(source, domain.DefaultCategoryRegistry(), nil)

	income := domain.TransactionTypeIncome
	result := svc.GetTransactions(domain.TransactionFilters{Type: &income})

	require.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)
}

func TestDashboardService_GetGoals(t *testing.T) {
	source := &staticSource{snapshot: domain.Snapshot{Goals: []domain.Goal{
		{ID: "g1", Name: "Bad data", TargetAmount: decimal.Zero, CurrentAmount: decimal.NewFromInt(5)},
	}}}
	svc := NewDashboardService(source, domain.DefaultCategoryRegistry(), nil)

	goals := svc.GetGoals()

	require.Len(t, goals, 1)
	assert.True(t, goals[0].Fraction.IsZero())
}
