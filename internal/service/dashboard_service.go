package service

import (
	"sort"
	"time"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// SnapshotSource provides read-only access to the loaded collections
type SnapshotSource interface {
	Snapshot() domain.Snapshot
	Status() domain.Status
}

// DashboardService turns the current snapshot into view-ready summaries.
// Every call recomputes from scratch.
type DashboardService struct {
	source   SnapshotSource
	registry *domain.CategoryRegistry
	now      func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(source SnapshotSource, registry *domain.CategoryRegistry, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		source:   source,
		registry: registry,
		now:      now,
	}
}

// GetDashboard returns totals, the monthly flow, the expense breakdown and goal progress
func (s *DashboardService) GetDashboard() *domain.Dashboard {
	snapshot := s.source.Snapshot()

	return &domain.Dashboard{
		Totals:             Totals(snapshot.Transactions),
		Monthly:            MonthlySeries(snapshot.Transactions),
		ExpenseBreakdown:   s.ExpenseBreakdown(snapshot.Transactions),
		Goals:              GoalProgressList(snapshot.Goals),
		InvestmentReminder: NeedsInvestmentReminder(snapshot.Transactions, s.now()),
		Status:             s.source.Status(),
	}
}

// ExpenseBreakdown resolves ExpenseByCategory into named entries sorted by name, then id
func (s *DashboardService) ExpenseBreakdown(transactions []domain.Transaction) []domain.CategoryAmount {
	byCategory := ExpenseByCategory(transactions)

	breakdown := make([]domain.CategoryAmount, 0, len(byCategory))
	for id, amount := range byCategory {
		breakdown = append(breakdown, domain.CategoryAmount{
			ID:     id,
			Name:   s.registry.Resolve(id),
			Amount: amount,
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Name != breakdown[j].Name {
			return breakdown[i].Name < breakdown[j].Name
		}
		return breakdown[i].ID < breakdown[j].ID
	})
	return breakdown
}

// GetTransactions returns the filtered transaction history in store order
func (s *DashboardService) GetTransactions(filters domain.TransactionFilters) []domain.Transaction {
	return FilterTransactions(s.source.Snapshot().Transactions, filters)
}

// GetGoals returns every goal with its progress
func (s *DashboardService) GetGoals() []domain.GoalProgress {
	return GoalProgressList(s.source.Snapshot().Goals)
}

// GoalProgressList pairs each goal with its clamped progress
func GoalProgressList(goals []domain.Goal) []domain.GoalProgress {
	progress := make([]domain.GoalProgress, len(goals))
	for i, g := range goals {
		progress[i] = domain.GoalProgress{
			Goal:     g,
			Fraction: domain.ProgressFraction(g),
			Percent:  domain.ProgressPercent(g),
		}
	}
	return progress
}

// SumBreakdown adds up a breakdown, used to reconcile it against total expenses
func SumBreakdown(breakdown []domain.CategoryAmount) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range breakdown {
		sum = sum.Add(c.Amount)
	}
	return sum
}
