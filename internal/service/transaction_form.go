package service

import (
	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionForm holds the state of the add-transaction workflow and applies the
// default split policy: a type change resets the splits to one split for the whole
// total under the type's first category, and while that single split has not been
// edited by hand it follows the total.
type TransactionForm struct {
	registry *domain.CategoryRegistry

	Type        domain.TransactionType
	Description string
	Date        domain.Date
	TotalAmount decimal.Decimal

	splits       []domain.Split
	splitsEdited bool
}

// NewTransactionForm creates a form for an expense dated today with one empty split
func NewTransactionForm(registry *domain.CategoryRegistry, today domain.Date) *TransactionForm {
	f := &TransactionForm{registry: registry}
	f.Reset(today)
	return f
}

// Reset restores the defaults
func (f *TransactionForm) Reset(today domain.Date) {
	f.Type = domain.TransactionTypeExpense
	f.Description = ""
	f.Date = today
	f.TotalAmount = decimal.Zero
	f.splits = []domain.Split{f.defaultSplit(decimal.Zero)}
	f.splitsEdited = false
}

// SetType switches the transaction type and replaces all splits with the default split
func (f *TransactionForm) SetType(t domain.TransactionType) {
	f.Type = t
	f.splits = []domain.Split{f.defaultSplit(f.TotalAmount)}
	f.splitsEdited = false
}

// SetTotalAmount updates the total; a sole, unedited split follows it
func (f *TransactionForm) SetTotalAmount(amount decimal.Decimal) {
	f.TotalAmount = amount
	if len(f.splits) == 1 && !f.splitsEdited {
		f.splits[0].Amount = amount
	}
}

// AddSplit appends an empty split under the first category of the current type
func (f *TransactionForm) AddSplit() {
	f.splits = append(f.splits, f.defaultSplit(decimal.Zero))
	f.splitsEdited = true
}

// RemoveSplit removes the split at index. The last split cannot be removed.
func (f *TransactionForm) RemoveSplit(index int) error {
	if index < 0 || index >= len(f.splits) {
		return domain.ErrSplitIndex
	}
	if len(f.splits) <= 1 {
		return domain.ErrLastSplit
	}
	f.splits = append(f.splits[:index:index], f.splits[index+1:]...)
	return nil
}

// SetSplitAmount changes one split's amount and marks the splits as edited by hand
func (f *TransactionForm) SetSplitAmount(index int, amount decimal.Decimal) error {
	if index < 0 || index >= len(f.splits) {
		return domain.ErrSplitIndex
	}
	f.splits[index].Amount = amount
	f.splitsEdited = true
	return nil
}

// SetSplitCategory changes one split's category
func (f *TransactionForm) SetSplitCategory(index int, categoryID string) error {
	if index < 0 || index >= len(f.splits) {
		return domain.ErrSplitIndex
	}
	f.splits[index].CategoryID = categoryID
	return nil
}

// SetSplits replaces the splits with an explicit list, e.g. from command line flags
func (f *TransactionForm) SetSplits(splits []domain.Split) {
	f.splits = make([]domain.Split, len(splits))
	copy(f.splits, splits)
	f.splitsEdited = true
}

// Splits returns a copy of the current splits
func (f *TransactionForm) Splits() []domain.Split {
	out := make([]domain.Split, len(f.splits))
	copy(out, f.splits)
	return out
}

// Categories lists the categories selectable for the current type
func (f *TransactionForm) Categories() []domain.Category {
	return f.registry.ListByKind(f.Type)
}

// Remaining returns the part of the total not yet assigned to a split
func (f *TransactionForm) Remaining() decimal.Decimal {
	return RemainingUnassigned(f.TotalAmount, f.splits)
}

// Draft validates the form through the transaction model
func (f *TransactionForm) Draft() (domain.TransactionDraft, error) {
	return domain.BuildTransaction(f.Date, f.Description, f.TotalAmount, f.Type, f.splits)
}

func (f *TransactionForm) defaultSplit(amount decimal.Decimal) domain.Split {
	split := domain.Split{Amount: amount}
	if c, ok := f.registry.DefaultCategory(f.Type); ok {
		split.CategoryID = c.ID
	}
	return split
}
