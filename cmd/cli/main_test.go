package main

import (
	"testing"
	"time"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cliToday = domain.NewDate(2024, time.March, 18)

func TestTransactionForm_MissingTotalReportsInvalidAmount(t *testing.T) {
	form, err := transactionForm(domain.DefaultCategoryRegistry(), cliToday, "expense", "Lunch", "", "", nil)
	require.NoError(t, err)
	assert.True(t, form.TotalAmount.IsZero())

	_, err = form.Draft()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestTransactionForm_DefaultSplit(t *testing.T) {
	form, err := transactionForm(domain.DefaultCategoryRegistry(), cliToday, "income", "Salary", "", "2500", nil)
	require.NoError(t, err)

	draft, err := form.Draft()
	require.NoError(t, err)
	assert.Equal(t, cliToday, draft.Date)
	require.Len(t, draft.Splits, 1)
	assert.Equal(t, "cat_inc_1", draft.Splits[0].CategoryID)
	assert.True(t, decimal.NewFromInt(2500).Equal(draft.Splits[0].Amount))
}

func TestTransactionForm_ExplicitSplits(t *testing.T) {
	splits := []domain.Split{
		{CategoryID: "cat_exp_1", Amount: decimal.NewFromInt(60)},
		{CategoryID: "cat_exp_3", Amount: decimal.NewFromInt(40)},
	}
	form, err := transactionForm(domain.DefaultCategoryRegistry(), cliToday, "expense", "Rent and food", "2024-03-01", "100", splits)
	require.NoError(t, err)

	draft, err := form.Draft()
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2024, time.March, 1), draft.Date)
	assert.Len(t, draft.Splits, 2)
}

func TestTransactionForm_BadFlags(t *testing.T) {
	tests := []struct {
		name   string
		txType string
		date   string
		total  string
	}{
		{"bad type", "transfer", "", "10"},
		{"bad date", "expense", "yesterday", "10"},
		{"bad total", "expense", "", "ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transactionForm(domain.DefaultCategoryRegistry(), cliToday, tt.txType, "x", tt.date, tt.total, nil)
			assert.Error(t, err)
		})
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("  ")
	require.NoError(t, err)
	assert.True(t, amount.IsZero())

	amount, err = parseAmount("12.50")
	require.NoError(t, err)
	assert.Equal(t, "12.5", amount.String())
}
