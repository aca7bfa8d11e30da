package aggregate

import (
	"sync"

	"go.uber.org/zap"

	"goflare.io/cart/models"
)

// Store owns a single CartState. All access goes through the store; there is
// no ambient global. Dispatch holds the write lock across the whole
// read-modify-write cycle so a reader can never observe a collection update
// without its recomputed scalars.
type Store struct {
	mu     sync.RWMutex
	state  models.CartState
	logger *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		state:  models.NewCartState(),
		logger: logger,
	}
}

// Dispatch applies cmd and returns a snapshot of the resulting state.
func (s *Store) Dispatch(cmd Command) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Apply(s.state, cmd)

	s.logger.Debug("cart command applied",
		zap.String("command", string(cmd.Kind())),
		zap.Int("item_count", s.state.ItemCount),
		zap.Int64("total_items", s.state.TotalItems),
		zap.Float64("subtotal", s.state.Subtotal))

	return s.state.Clone()
}

// Snapshot returns a deep copy of the current state; mutating the copy does
// not affect the store.
func (s *Store) Snapshot() models.CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}
