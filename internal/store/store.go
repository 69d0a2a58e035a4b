// Package store owns the authoritative in-memory state for an app
// session: transactions, custom categories, user mode and budget
// settings. Every mutation persists a full snapshot of the touched
// collection and notifies subscribers; derived figures delegate to the
// report package.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/antoninaarc/finanzapp/internal/logger"
	"github.com/antoninaarc/finanzapp/internal/models"
	"github.com/antoninaarc/finanzapp/internal/storage"
)

// ErrNotFound indicates the referenced transaction or category does not
// exist in the store.
var ErrNotFound = errors.New("not found")

// Store is the single owner of mutable application state. All methods
// are safe for concurrent use; mutations are atomic with respect to
// each other.
type Store struct {
	mu        sync.Mutex
	snapshots storage.Snapshots
	now       func() time.Time

	transactions []models.Transaction
	categories   []models.Category // custom set; empty means defaults apply
	mode         models.UserMode
	budget       models.BudgetSettings

	subscribers map[int]func()
	nextSubID   int
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDefaultBudget overrides the fallback budget limits applied when
// no persisted settings exist.
func WithDefaultBudget(b models.BudgetSettings) Option {
	return func(s *Store) { s.budget = b }
}

// New builds a store on top of the given snapshot persistence.
func New(snapshots storage.Snapshots, opts ...Option) *Store {
	s := &Store{
		snapshots:   snapshots,
		now:         time.Now,
		mode:        models.ModeBasic,
		budget:      models.DefaultBudget(),
		subscribers: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads all persisted snapshots. Any missing or unreadable key
// leaves the corresponding in-memory value at its default; startup
// never fails because of bad persisted data.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var txs []models.Transaction
	if s.loadKey(ctx, storage.KeyTransactions, &txs) {
		// Snapshots written before stable IDs existed carry none;
		// assign them on import so replace-by-id keeps working.
		for i := range txs {
			if txs[i].ID == uuid.Nil {
				txs[i].ID = uuid.New()
			}
		}
		s.transactions = txs
	}

	var cats []models.Category
	if s.loadKey(ctx, storage.KeyCategories, &cats) {
		s.categories = cats
	}

	var mode models.UserMode
	if s.loadKey(ctx, storage.KeyUserMode, &mode) && mode.Valid() {
		s.mode = mode
	}

	var monthly, weekly decimal.Decimal
	if s.loadKey(ctx, storage.KeyMonthlyBudget, &monthly) && monthly.IsPositive() {
		s.budget.Monthly = monthly
	}
	if s.loadKey(ctx, storage.KeyWeeklyBudget, &weekly) && weekly.IsPositive() {
		s.budget.Weekly = weekly
	}
}

// loadKey reads and unmarshals one snapshot. False means the caller
// should keep its default.
func (s *Store) loadKey(ctx context.Context, key string, dst any) bool {
	raw, err := s.snapshots.Load(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		logger.Log.Warn().Err(err).Str("key", key).Msg("failed to load snapshot, using defaults")
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Log.Warn().Err(err).Str("key", key).Msg("failed to decode snapshot, using defaults")
		return false
	}
	return true
}

// persist writes one collection snapshot. Write failures are logged and
// swallowed: the in-memory mutation already happened and must not be
// rolled back or surfaced as a user-facing error.
func (s *Store) persist(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Log.Error().Err(err).Str("key", key).Msg("failed to encode snapshot")
		return
	}
	if err := s.snapshots.Save(ctx, key, raw); err != nil {
		logger.Log.Warn().Err(err).Str("key", key).Msg("failed to persist snapshot")
	}
}

// Subscribe registers a callback invoked after every mutation. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// notify runs the subscriber callbacks outside the state lock.
func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Transactions returns a copy of the current collection.
func (s *Store) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// AddTransaction appends a transaction and persists the collection.
func (s *Store) AddTransaction(ctx context.Context, tx models.Transaction) error {
	if tx.ID == uuid.Nil {
		return errors.New("transaction has no id")
	}
	s.mu.Lock()
	s.transactions = append(s.transactions, tx)
	s.persist(ctx, storage.KeyTransactions, s.transactions)
	s.mu.Unlock()

	logger.Log.Debug().Str("id", tx.ID.String()).Str("type", string(tx.Type)).Msg("transaction added")
	s.notify()
	return nil
}

// UpdateTransaction replaces the stored transaction with the same ID.
func (s *Store) UpdateTransaction(ctx context.Context, tx models.Transaction) error {
	s.mu.Lock()
	found := false
	for i := range s.transactions {
		if s.transactions[i].ID == tx.ID {
			s.transactions[i] = tx
			found = true
			break
		}
	}
	if found {
		s.persist(ctx, storage.KeyTransactions, s.transactions)
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	s.notify()
	return nil
}

// DeleteTransaction removes the transaction with the given ID.
func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	kept := s.transactions[:0]
	found := false
	for _, tx := range s.transactions {
		if tx.ID == id {
			found = true
			continue
		}
		kept = append(kept, tx)
	}
	s.transactions = kept
	if found {
		s.persist(ctx, storage.KeyTransactions, s.transactions)
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	s.notify()
	return nil
}

// UserMode returns the current user mode.
func (s *Store) UserMode() models.UserMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetUserMode switches the user mode and persists it.
func (s *Store) SetUserMode(ctx context.Context, mode models.UserMode) error {
	if !mode.Valid() {
		return errors.New("invalid user mode")
	}
	s.mu.Lock()
	s.mode = mode
	s.persist(ctx, storage.KeyUserMode, mode)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Budget returns the current budget settings.
func (s *Store) Budget() models.BudgetSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget
}

// SetBudget stores new budget limits. Both must be positive.
func (s *Store) SetBudget(ctx context.Context, b models.BudgetSettings) error {
	if !b.Monthly.IsPositive() || !b.Weekly.IsPositive() {
		return errors.New("budget limits must be positive")
	}
	s.mu.Lock()
	s.budget = b
	s.persist(ctx, storage.KeyMonthlyBudget, b.Monthly)
	s.persist(ctx, storage.KeyWeeklyBudget, b.Weekly)
	s.mu.Unlock()
	s.notify()
	return nil
}
