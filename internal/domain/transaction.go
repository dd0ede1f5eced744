package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ParseTransactionType parses "income" or "expense"
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrUnknownKind
	}
	return t, nil
}

// SplitTolerance is the largest allowed difference between the split sum and the total
var SplitTolerance = decimal.NewFromFloat(0.01)

// Split attributes part of a transaction's total to one category
type Split struct {
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
}

type Transaction struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Type        TransactionType `json:"type"`
	Splits      []Split         `json:"splits"`
}

// TransactionDraft is a validated transaction that has not been assigned an id by the store yet
type TransactionDraft struct {
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Type        TransactionType `json:"type"`
	Splits      []Split         `json:"splits"`
}

// IsZero reports whether the draft was never built
func (d TransactionDraft) IsZero() bool {
	return d.Type == "" && len(d.Splits) == 0
}

// TransactionFilters narrows a transaction listing. Zero values disable a filter.
type TransactionFilters struct {
	Type       *TransactionType
	CategoryID string
	StartDate  *Date
	EndDate    *Date
}

// SumSplits adds up the split amounts
func SumSplits(splits []Split) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Amount)
	}
	return sum
}

// BuildTransaction validates the user's input and returns an id-less draft.
// Splits keep the caller's order.
func BuildTransaction(date Date, description string, totalAmount decimal.Decimal, txType TransactionType, splits []Split) (TransactionDraft, error) {
	if !totalAmount.IsPositive() {
		return TransactionDraft{}, newValidationError("totalAmount", ErrInvalidAmount)
	}
	if strings.TrimSpace(description) == "" {
		return TransactionDraft{}, newValidationError("description", ErrEmptyDescription)
	}
	if !txType.Valid() {
		return TransactionDraft{}, newValidationError("type", ErrInvalidType)
	}
	if len(splits) == 0 {
		return TransactionDraft{}, newValidationError("splits", ErrEmptySplits)
	}
	for i, s := range splits {
		if s.Amount.IsNegative() {
			return TransactionDraft{}, newValidationError(fmt.Sprintf("splits[%d].amount", i), ErrInvalidSplitAmount)
		}
	}

	sum := SumSplits(splits)
	if sum.Sub(totalAmount).Abs().GreaterThan(SplitTolerance) {
		return TransactionDraft{}, &ValidationError{
			Field: "splits",
			Err:   ErrSplitMismatch,
			Detail: fmt.Sprintf("split amounts (%s) must sum up to the total amount (%s)",
				sum.StringFixed(2), totalAmount.StringFixed(2)),
		}
	}

	owned := make([]Split, len(splits))
	copy(owned, splits)

	return TransactionDraft{
		Date:        date,
		Description: description,
		TotalAmount: totalAmount,
		Type:        txType,
		Splits:      owned,
	}, nil
}
