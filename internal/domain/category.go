package domain

import "fmt"

// UnknownCategoryName is shown for category ids missing from the registry
const UnknownCategoryName = "Unknown"

// Category ids referenced by application logic
const (
	CategoryInvestment = "cat_exp_7"
)

type Category struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Kind TransactionType `json:"type"`
}

// CategoryRegistry is an immutable lookup table built once at startup and shared by reference.
// It is safe for concurrent use because nothing mutates it after construction.
type CategoryRegistry struct {
	ordered []Category
	byID    map[string]Category
}

// NewCategoryRegistry creates a registry. Declaration order is kept for listings.
// A repeated id keeps its first declaration.
func NewCategoryRegistry(categories []Category) *CategoryRegistry {
	r := &CategoryRegistry{
		ordered: make([]Category, 0, len(categories)),
		byID:    make(map[string]Category, len(categories)),
	}
	for _, c := range categories {
		if _, exists := r.byID[c.ID]; exists {
			continue
		}
		r.ordered = append(r.ordered, c)
		r.byID[c.ID] = c
	}
	return r
}

// DefaultCategories returns the built-in income categories followed by the expense categories
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat_inc_1", Name: "Salary", Kind: TransactionTypeIncome},
		{ID: "cat_inc_2", Name: "Freelance", Kind: TransactionTypeIncome},
		{ID: "cat_inc_3", Name: "Investment Gains", Kind: TransactionTypeIncome},
		{ID: "cat_inc_4", Name: "Other", Kind: TransactionTypeIncome},
		{ID: "cat_exp_1", Name: "Housing", Kind: TransactionTypeExpense},
		{ID: "cat_exp_2", Name: "Transport", Kind: TransactionTypeExpense},
		{ID: "cat_exp_3", Name: "Food & Groceries", Kind: TransactionTypeExpense},
		{ID: "cat_exp_4", Name: "Utilities", Kind: TransactionTypeExpense},
		{ID: "cat_exp_5", Name: "Entertainment", Kind: TransactionTypeExpense},
		{ID: "cat_exp_6", Name: "Health", Kind: TransactionTypeExpense},
		{ID: CategoryInvestment, Name: "Investment", Kind: TransactionTypeExpense},
		{ID: "cat_exp_8", Name: "Goal Contributions", Kind: TransactionTypeExpense},
		{ID: "cat_exp_9", Name: "Other", Kind: TransactionTypeExpense},
	}
}

// DefaultCategoryRegistry creates a registry holding DefaultCategories
func DefaultCategoryRegistry() *CategoryRegistry {
	return NewCategoryRegistry(DefaultCategories())
}

// Resolve returns the category name, or UnknownCategoryName. It never fails.
func (r *CategoryRegistry) Resolve(id string) string {
	if c, ok := r.byID[id]; ok {
		return c.Name
	}
	return UnknownCategoryName
}

// Get returns the category with the given id
func (r *CategoryRegistry) Get(id string) (Category, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// All returns every category in declaration order
func (r *CategoryRegistry) All() []Category {
	out := make([]Category, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ListByKind returns the categories available for a transaction type in declaration order.
// The first entry is the default selection.
func (r *CategoryRegistry) ListByKind(kind TransactionType) []Category {
	out := make([]Category, 0, len(r.ordered))
	for _, c := range r.ordered {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// DefaultCategory returns the first category declared for kind
func (r *CategoryRegistry) DefaultCategory(kind TransactionType) (Category, bool) {
	for _, c := range r.ordered {
		if c.Kind == kind {
			return c, true
		}
	}
	return Category{}, false
}

// ValidateSplitKinds checks that every split references a registered category of the
// transaction's kind. Only applied when strict split kinds are enabled.
func (r *CategoryRegistry) ValidateSplitKinds(txType TransactionType, splits []Split) error {
	for i, s := range splits {
		c, ok := r.byID[s.CategoryID]
		if !ok || c.Kind != txType {
			return &ValidationError{
				Field:  fmt.Sprintf("splits[%d].categoryId", i),
				Err:    ErrCategoryKindMismatch,
				Detail: fmt.Sprintf("category %q is not a %s category", s.CategoryID, txType),
			}
		}
	}
	return nil
}
