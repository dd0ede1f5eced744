package domain

import "github.com/shopspring/decimal"

// Totals summarises a transaction collection
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// MonthlyFlow holds income and expenses for one calendar month, labelled like "Jan 24"
type MonthlyFlow struct {
	Label    string          `json:"name"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CategoryAmount is one entry of the expense breakdown
type CategoryAmount struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// GoalProgress pairs a goal with its clamped progress
type GoalProgress struct {
	Goal     Goal            `json:"goal"`
	Fraction decimal.Decimal `json:"fraction"`
	Percent  decimal.Decimal `json:"percent"`
}

// Dashboard contains every figure the overview screen shows
type Dashboard struct {
	Totals             Totals           `json:"totals"`
	Monthly            []MonthlyFlow    `json:"monthly"`
	ExpenseBreakdown   []CategoryAmount `json:"expenseBreakdown"`
	Goals              []GoalProgress   `json:"goals"`
	InvestmentReminder bool             `json:"investmentReminder"`
	Status             Status           `json:"status"`
}
