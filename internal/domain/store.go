package domain

import (
	"context"
	"time"
)

// Dataset is the full content returned by the store's load endpoint
type Dataset struct {
	Transactions []Transaction `json:"transactions"`
	Goals        []Goal        `json:"goals"`
}

// FinanceStore is the external service of record for transactions and goals
type FinanceStore interface {
	FetchData(ctx context.Context) (*Dataset, error)
	CreateTransaction(ctx context.Context, draft TransactionDraft) (*Transaction, error)
	CreateGoal(ctx context.Context, draft GoalDraft) (*Goal, error)
}

// Snapshot is an immutable view of the loaded collections
type Snapshot struct {
	Transactions []Transaction
	Goals        []Goal
	LoadedAt     time.Time
}

// Status describes the data access state consumed by the presentation layer
type Status struct {
	Loading  bool       `json:"loading"`
	Error    string     `json:"error,omitempty"`
	LoadedAt *time.Time `json:"loadedAt,omitempty"`
}
