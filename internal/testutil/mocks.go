package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/websocket"
	"github.com/shopspring/decimal"
)

// MockFinanceStore is an in-memory implementation of domain.FinanceStore
type MockFinanceStore struct {
	mu           sync.Mutex
	Transactions []domain.Transaction
	Goals        []domain.Goal
	nextID       int

	// Optional failure hooks; a non-nil error is returned instead of performing the call
	FetchErr             error
	CreateTransactionErr error
	CreateGoalErr        error

	// Optional overrides for full control in tests
	FetchFn func(ctx context.Context) (*domain.Dataset, error)

	FetchCalls             int
	CreateTransactionCalls int
	CreateGoalCalls        int
}

// NewMockFinanceStore creates a new MockFinanceStore
func NewMockFinanceStore() *MockFinanceStore {
	return &MockFinanceStore{}
}

// FetchData returns copies of the stored collections
func (m *MockFinanceStore) FetchData(ctx context.Context) (*domain.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCalls++
	if m.FetchFn != nil {
		return m.FetchFn(ctx)
	}
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}

	txs := make([]domain.Transaction, len(m.Transactions))
	copy(txs, m.Transactions)
	goals := make([]domain.Goal, len(m.Goals))
	copy(goals, m.Goals)
	return &domain.Dataset{Transactions: txs, Goals: goals}, nil
}

// CreateTransaction stores the draft with a generated id
func (m *MockFinanceStore) CreateTransaction(ctx context.Context, draft domain.TransactionDraft) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateTransactionCalls++
	if m.CreateTransactionErr != nil {
		return nil, m.CreateTransactionErr
	}

	m.nextID++
	tx := domain.Transaction{
		ID:          fmt.Sprintf("tx-%d", m.nextID),
		Date:        draft.Date,
		Description: draft.Description,
		TotalAmount: draft.TotalAmount,
		Type:        draft.Type,
		Splits:      draft.Splits,
	}
	// Newest first, the order the store delivers
	m.Transactions = append([]domain.Transaction{tx}, m.Transactions...)
	return &tx, nil
}

// CreateGoal stores the draft with a generated id and a zero current amount
func (m *MockFinanceStore) CreateGoal(ctx context.Context, draft domain.GoalDraft) (*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateGoalCalls++
	if m.CreateGoalErr != nil {
		return nil, m.CreateGoalErr
	}

	m.nextID++
	goal := domain.Goal{
		ID:            fmt.Sprintf("goal-%d", m.nextID),
		Name:          draft.Name,
		TargetAmount:  draft.TargetAmount,
		TargetDate:    draft.TargetDate,
		CurrentAmount: decimal.Zero,
	}
	m.Goals = append(m.Goals, goal)
	return &goal, nil
}

// AddTransaction seeds a transaction directly
func (m *MockFinanceStore) AddTransaction(tx domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = append(m.Transactions, tx)
}

// AddGoal seeds a goal directly
func (m *MockFinanceStore) AddGoal(goal domain.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Goals = append(m.Goals, goal)
}

// SetGoalCurrentAmount simulates a server-side contribution
func (m *MockFinanceStore) SetGoalCurrentAmount(id string, amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Goals {
		if m.Goals[i].ID == id {
			m.Goals[i].CurrentAmount = amount
		}
	}
}

// RecordingPublisher captures published events
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

// NewRecordingPublisher creates a new RecordingPublisher
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

// Publish records the event
func (p *RecordingPublisher) Publish(event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

// Types returns the recorded event types in order
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Type
	}
	return types
}

// Transaction builds a transaction fixture
func Transaction(id, date string, txType domain.TransactionType, total string, splits ...domain.Split) domain.Transaction {
	d, err := domain.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return domain.Transaction{
		ID:          id,
		Date:        d,
		Description: "Fixture " + id,
		TotalAmount: decimal.RequireFromString(total),
		Type:        txType,
		Splits:      splits,
	}
}

// Split builds a split fixture
func Split(categoryID, amount string) domain.Split {
	return domain.Split{CategoryID: categoryID, Amount: decimal.RequireFromString(amount)}
}
