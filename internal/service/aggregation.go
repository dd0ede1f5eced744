package service

import (
	"time"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/util"
	"github.com/shopspring/decimal"
)

// The functions in this file are pure: every call recomputes its result from the
// transactions passed in and never keeps state between calls.

// Totals sums totalAmount by transaction type. Balance = income - expenses.
func Totals(transactions []domain.Transaction) domain.Totals {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, t := range transactions {
		if t.Type == domain.TransactionTypeIncome {
			income = income.Add(t.TotalAmount)
		} else {
			expenses = expenses.Add(t.TotalAmount)
		}
	}

	return domain.Totals{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// ExpenseByCategory flattens the splits of expense transactions and sums them per category id
func ExpenseByCategory(transactions []domain.Transaction) map[string]decimal.Decimal {
	byCategory := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		if t.Type != domain.TransactionTypeExpense {
			continue
		}
		for _, s := range t.Splits {
			byCategory[s.CategoryID] = byCategory[s.CategoryID].Add(s.Amount)
		}
	}

	return byCategory
}

// MonthlySeries groups transactions by calendar month label ("Jan 24").
// Labels are bucketed in the order first seen while scanning the input forward and the
// resulting list is then reversed, so a newest-first input yields oldest-first months.
func MonthlySeries(transactions []domain.Transaction) []domain.MonthlyFlow {
	order := make([]string, 0)
	buckets := make(map[string]*domain.MonthlyFlow)

	for _, t := range transactions {
		label := util.MonthLabel(t.Date.Time)
		bucket, ok := buckets[label]
		if !ok {
			bucket = &domain.MonthlyFlow{Label: label, Income: decimal.Zero, Expenses: decimal.Zero}
			buckets[label] = bucket
			order = append(order, label)
		}
		if t.Type == domain.TransactionTypeIncome {
			bucket.Income = bucket.Income.Add(t.TotalAmount)
		} else {
			bucket.Expenses = bucket.Expenses.Add(t.TotalAmount)
		}
	}

	series := make([]domain.MonthlyFlow, len(order))
	for i, label := range order {
		series[len(order)-1-i] = *buckets[label]
	}
	return series
}

// RemainingUnassigned returns total - sum(splits). Used for live feedback only.
func RemainingUnassigned(totalAmount decimal.Decimal, splits []domain.Split) decimal.Decimal {
	return totalAmount.Sub(domain.SumSplits(splits))
}

// FilterTransactions applies the history filters and keeps the input order.
// Both date bounds are inclusive.
func FilterTransactions(transactions []domain.Transaction, filters domain.TransactionFilters) []domain.Transaction {
	var start, end time.Time
	if filters.StartDate != nil {
		start = filters.StartDate.Time
	}
	if filters.EndDate != nil {
		end = filters.EndDate.Time
	}

	result := make([]domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if filters.Type != nil && t.Type != *filters.Type {
			continue
		}
		if filters.CategoryID != "" && !usesCategory(t, filters.CategoryID) {
			continue
		}
		if !util.InDateRange(t.Date.Time, start, end) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// NeedsInvestmentReminder reports whether no transaction dated in now's calendar month
// has put money into the investment category.
func NeedsInvestmentReminder(transactions []domain.Transaction, now time.Time) bool {
	monthStart := domain.DateOf(util.StartOfMonth(now))

	for _, t := range transactions {
		if t.Date.Before(monthStart) {
			continue
		}
		if usesCategory(t, domain.CategoryInvestment) {
			return false
		}
	}
	return true
}

func usesCategory(t domain.Transaction, categoryID string) bool {
	for _, s := range t.Splits {
		if s.CategoryID == categoryID {
			return true
		}
	}
	return false
}
