package main

import (
	"fmt"
	"strings"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// splitFlags collects repeated -split category=amount values
type splitFlags []domain.Split

func (s *splitFlags) String() string {
	parts := make([]string, len(*s))
	for i, split := range *s {
		parts[i] = split.CategoryID + "=" + split.Amount.String()
	}
	return strings.Join(parts, ",")
}

func (s *splitFlags) Set(value string) error {
	categoryID, amountStr, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(categoryID) == "" {
		return fmt.Errorf("expected category=amount, got %q", value)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
	if err != nil {
		return fmt.Errorf("invalid split amount %q: %w", amountStr, err)
	}

	*s = append(*s, domain.Split{CategoryID: strings.TrimSpace(categoryID), Amount: amount})
	return nil
}

// parseAmount reads a decimal flag value; an empty value is zero
func parseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
