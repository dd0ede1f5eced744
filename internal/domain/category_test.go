package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRegistry_Resolve(t *testing.T) {
	r := DefaultCategoryRegistry()

	assert.Equal(t, "Salary", r.Resolve("cat_inc_1"))
	assert.Equal(t, "Food & Groceries", r.Resolve("cat_exp_3"))
	assert.Equal(t, UnknownCategoryName, r.Resolve("cat_missing"))
	assert.Equal(t, UnknownCategoryName, r.Resolve(""))
}

func TestCategoryRegistry_ListByKind(t *testing.T) {
	r := DefaultCategoryRegistry()

	income := r.ListByKind(TransactionTypeIncome)
	require.Len(t, income, 4)
	assert.Equal(t, "cat_inc_1", income[0].ID)
	assert.Equal(t, "cat_inc_4", income[3].ID)

	expense := r.ListByKind(TransactionTypeExpense)
	require.Len(t, expense, 9)
	for i, c := range expense {
		assert.Equal(t, TransactionTypeExpense, c.Kind)
		if i > 0 {
			assert.NotEqual(t, expense[i-1].ID, c.ID)
		}
	}
	assert.Equal(t, "cat_exp_1", expense[0].ID)

	assert.Empty(t, r.ListByKind(TransactionType("transfer")))
}

func TestCategoryRegistry_ListingsAreCopies(t *testing.T) {
	r := DefaultCategoryRegistry()

	list := r.ListByKind(TransactionTypeExpense)
	list[0].Name = "Changed"
	all := r.All()
	all[0].Name = "Changed"

	assert.Equal(t, "Housing", r.Resolve("cat_exp_1"))
	assert.Equal(t, "Salary", r.Resolve("cat_inc_1"))
}

func TestCategoryRegistry_DuplicateKeepsFirst(t *testing.T) {
	r := NewCategoryRegistry([]Category{
		{ID: "a", Name: "First", Kind: TransactionTypeExpense},
		{ID: "a", Name: "Second", Kind: TransactionTypeIncome},
	})

	assert.Equal(t, "First", r.Resolve("a"))
	assert.Len(t, r.All(), 1)
}

func TestCategoryRegistry_DefaultCategory(t *testing.T) {
	r := DefaultCategoryRegistry()

	c, ok := r.DefaultCategory(TransactionTypeIncome)
	require.True(t, ok)
	assert.Equal(t, "cat_inc_1", c.ID)

	_, ok = NewCategoryRegistry(nil).DefaultCategory(TransactionTypeExpense)
	assert.False(t, ok)
}

func TestCategoryRegistry_ValidateSplitKinds(t *testing.T) {
	r := DefaultCategoryRegistry()

	err := r.ValidateSplitKinds(TransactionTypeExpense, []Split{{CategoryID: "cat_exp_1"}, {CategoryID: "cat_exp_7"}})
	assert.NoError(t, err)

	err = r.ValidateSplitKinds(TransactionTypeExpense, []Split{{CategoryID: "cat_exp_1"}, {CategoryID: "cat_inc_1"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCategoryKindMismatch)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "splits[1].categoryId", verr.Field)

	err = r.ValidateSplitKinds(TransactionTypeIncome, []Split{{CategoryID: "nope"}})
	assert.ErrorIs(t, err, ErrCategoryKindMismatch)
}
