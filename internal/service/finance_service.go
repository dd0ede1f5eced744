package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/websocket"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Generic messages used when an error carries no user-facing text
const (
	msgUnknownError = "An unknown error occurred."
)

// FinanceServiceConfig holds configuration for the finance service
type FinanceServiceConfig struct {
	// StrictSplitKinds rejects splits whose category kind differs from the transaction type
	StrictSplitKinds bool
	// Now returns the current time; defaults to time.Now
	Now func() time.Time
}

// FinanceService owns the in-memory transaction and goal collections loaded from the store.
// Reads return copies of an immutable snapshot; writes are submitted upstream and followed by
// a full reload before they return. It is safe for concurrent use.
type FinanceService struct {
	store     domain.FinanceStore
	registry  *domain.CategoryRegistry
	publisher websocket.EventPublisher
	logger    zerolog.Logger
	config    FinanceServiceConfig

	// writeMu serializes store round-trips so a write and its reload never interleave with another
	writeMu sync.Mutex

	mu       sync.RWMutex
	snapshot *domain.Snapshot
	loading  bool
	lastErr  error
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(
	store domain.FinanceStore,
	registry *domain.CategoryRegistry,
	publisher websocket.EventPublisher,
	logger zerolog.Logger,
	config FinanceServiceConfig,
) *FinanceService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &FinanceService{
		store:     store,
		registry:  registry,
		publisher: publisher,
		logger:    logger.With().Str("component", "finance_service").Logger(),
		config:    config,
		snapshot:  &domain.Snapshot{},
		loading:   true,
	}
}

// Registry returns the category registry shared with the service
func (s *FinanceService) Registry() *domain.CategoryRegistry {
	return s.registry
}

// Now returns the service clock's current time
func (s *FinanceService) Now() time.Time {
	return s.config.Now()
}

// Load performs the initial load. On failure the collections stay empty and the error
// state is set; the error is also returned.
func (s *FinanceService) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	err := s.Reload(ctx)

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	return err
}

// Reload fetches both collections and replaces the snapshot. On failure the previous
// snapshot is kept and the error state is set.
func (s *FinanceService) Reload(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.reloadLocked(ctx)
}

func (s *FinanceService) reloadLocked(ctx context.Context) error {
	start := time.Now()

	dataset, err := s.store.FetchData(ctx)
	if err == nil && dataset == nil {
		err = domain.ErrNoDataset
	}
	if err != nil {
		s.setError(err)
		s.logger.Error().Err(err).Msg("Failed to load data from store")
		s.publisher.Publish(websocket.DataFailed(map[string]interface{}{"error": userMessage(err)}))
		return err
	}

	next := &domain.Snapshot{
		Transactions: copyTransactions(dataset.Transactions),
		Goals:        copyGoals(dataset.Goals),
		LoadedAt:     s.config.Now(),
	}

	s.mu.Lock()
	s.snapshot = next
	s.lastErr = nil
	s.mu.Unlock()

	s.logger.Debug().
		Int("transactions", len(next.Transactions)).
		Int("goals", len(next.Goals)).
		Dur("latency", time.Since(start)).
		Msg("Data reloaded")

	s.publisher.Publish(websocket.DataReloaded(map[string]interface{}{
		"transactions": len(next.Transactions),
		"goals":        len(next.Goals),
	}))
	return nil
}

// AddTransaction submits a validated draft and then reloads both collections.
// A store failure is returned unchanged and leaves the snapshot untouched. A failed
// follow-up reload is recorded in the error state but does not fail the write.
func (s *FinanceService) AddTransaction(ctx context.Context, draft domain.TransactionDraft) (*domain.Transaction, error) {
	if draft.IsZero() {
		return nil, domain.ErrEmptyDraft
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	created, err := s.store.CreateTransaction(ctx, draft)
	if err != nil {
		s.setError(err)
		s.logger.Error().Err(err).Str("description", draft.Description).Msg("Failed to add transaction")
		return nil, err
	}

	s.logger.Info().
		Str("transaction_id", created.ID).
		Str("type", string(created.Type)).
		Str("total", created.TotalAmount.StringFixed(2)).
		Int("splits", len(created.Splits)).
		Msg("Transaction created")
	s.publisher.Publish(websocket.TransactionCreated(created))

	if err := s.reloadLocked(ctx); err != nil {
		s.logger.Warn().Err(err).Str("transaction_id", created.ID).Msg("Reload after transaction create failed")
	}
	return created, nil
}

// AddGoal submits a validated goal draft and then reloads both collections.
// The store's returned currentAmount is authoritative, the client never assumes zero.
func (s *FinanceService) AddGoal(ctx context.Context, draft domain.GoalDraft) (*domain.Goal, error) {
	if draft.IsZero() {
		return nil, domain.ErrEmptyDraft
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	created, err := s.store.CreateGoal(ctx, draft)
	if err != nil {
		s.setError(err)
		s.logger.Error().Err(err).Str("name", draft.Name).Msg("Failed to add goal")
		return nil, err
	}

	s.logger.Info().
		Str("goal_id", created.ID).
		Str("target", created.TargetAmount.StringFixed(2)).
		Msg("Goal created")
	s.publisher.Publish(websocket.GoalCreated(created))

	if err := s.reloadLocked(ctx); err != nil {
		s.logger.Warn().Err(err).Str("goal_id", created.ID).Msg("Reload after goal create failed")
	}
	return created, nil
}

// CreateTransaction runs the transaction model on raw input and submits the result.
// Validation errors never reach the store.
func (s *FinanceService) CreateTransaction(ctx context.Context, date domain.Date, description string, totalAmount decimal.Decimal, txType domain.TransactionType, splits []domain.Split) (*domain.Transaction, error) {
	draft, err := s.ValidateTransaction(date, description, totalAmount, txType, splits)
	if err != nil {
		return nil, err
	}
	return s.AddTransaction(ctx, draft)
}

// ValidateTransaction builds a draft and, when enabled, checks split category kinds
func (s *FinanceService) ValidateTransaction(date domain.Date, description string, totalAmount decimal.Decimal, txType domain.TransactionType, splits []domain.Split) (domain.TransactionDraft, error) {
	draft, err := domain.BuildTransaction(date, description, totalAmount, txType, splits)
	if err != nil {
		return domain.TransactionDraft{}, err
	}
	if s.config.StrictSplitKinds {
		if err := s.registry.ValidateSplitKinds(draft.Type, draft.Splits); err != nil {
			return domain.TransactionDraft{}, err
		}
	}
	return draft, nil
}

// CreateGoal runs the goal model against today's date and submits the result
func (s *FinanceService) CreateGoal(ctx context.Context, name string, targetAmount decimal.Decimal, targetDate domain.Date) (*domain.Goal, error) {
	draft, err := domain.BuildGoal(name, targetAmount, targetDate, s.Today())
	if err != nil {
		return nil, err
	}
	return s.AddGoal(ctx, draft)
}

// Today returns the current calendar day according to the service clock
func (s *FinanceService) Today() domain.Date {
	return domain.DateOf(s.config.Now())
}

// Snapshot returns a copy of the current collections
func (s *FinanceService) Snapshot() domain.Snapshot {
	s.mu.RLock()
	current := s.snapshot
	s.mu.RUnlock()

	return domain.Snapshot{
		Transactions: copyTransactions(current.Transactions),
		Goals:        copyGoals(current.Goals),
		LoadedAt:     current.LoadedAt,
	}
}

// Transactions returns a copy of the loaded transactions
func (s *FinanceService) Transactions() []domain.Transaction {
	return s.Snapshot().Transactions
}

// Goals returns a copy of the loaded goals
func (s *FinanceService) Goals() []domain.Goal {
	return s.Snapshot().Goals
}

// Status returns the loading flag, the last error message and the last successful load time
func (s *FinanceService) Status() domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := domain.Status{Loading: s.loading}
	if s.lastErr != nil {
		status.Error = userMessage(s.lastErr)
	}
	if !s.snapshot.LoadedAt.IsZero() {
		loadedAt := s.snapshot.LoadedAt
		status.LoadedAt = &loadedAt
	}
	return status
}

// Err returns the last recorded error, or nil
func (s *FinanceService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *FinanceService) setError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// userMessage extracts the text shown to the user for err
func userMessage(err error) string {
	var terr *domain.TransportError
	if errors.As(err, &terr) && terr.Message != "" {
		return terr.Message
	}
	if err.Error() != "" {
		return err.Error()
	}
	return msgUnknownError
}

func copyTransactions(in []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(in))
	for i, t := range in {
		splits := make([]domain.Split, len(t.Splits))
		copy(splits, t.Splits)
		t.Splits = splits
		out[i] = t
	}
	return out
}

func copyGoals(in []domain.Goal) []domain.Goal {
	out := make([]domain.Goal, len(in))
	copy(out, in)
	return out
}
