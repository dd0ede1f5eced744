package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Goal is a savings target. CurrentAmount is owned by the store and never changed here.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	TargetDate    Date            `json:"targetDate"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// GoalDraft is the payload for creating a goal. The store assigns the id and current amount.
type GoalDraft struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   Date            `json:"targetDate"`
}

// IsZero reports whether the draft was never built
func (d GoalDraft) IsZero() bool {
	return d.Name == "" && d.TargetDate.IsZero()
}

// BuildGoal validates the user's input. today is the caller's current calendar day.
func BuildGoal(name string, targetAmount decimal.Decimal, targetDate Date, today Date) (GoalDraft, error) {
	if !targetAmount.IsPositive() {
		return GoalDraft{}, newValidationError("targetAmount", ErrInvalidAmount)
	}
	if strings.TrimSpace(name) == "" {
		return GoalDraft{}, newValidationError("name", ErrEmptyName)
	}
	if targetDate.IsZero() || targetDate.Before(today) {
		return GoalDraft{}, newValidationError("targetDate", ErrInvalidDate)
	}
	return GoalDraft{
		Name:         name,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
	}, nil
}

// ProgressFraction returns current/target clamped to [0, 1].
// A non-positive target can only come from bad store data and yields 0.
func ProgressFraction(g Goal) decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	fraction := g.CurrentAmount.Div(g.TargetAmount)
	if fraction.IsNegative() {
		return decimal.Zero
	}
	if fraction.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return fraction
}

// ProgressPercent returns ProgressFraction scaled to 0..100
func ProgressPercent(g Goal) decimal.Decimal {
	return ProgressFraction(g).Mul(hundred)
}

// Remaining returns how much is still missing to reach the target, never below zero
func (g Goal) Remaining() decimal.Decimal {
	rest := g.TargetAmount.Sub(g.CurrentAmount)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
