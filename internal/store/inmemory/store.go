// Package inmemory holds transactions in process memory. Data is lost
// on restart; it exists for tests and demo runs.
package inmemory

import (
	"context"
	"sync"

	"github.com/giftcardmax/recommender/internal/domain"
	"github.com/giftcardmax/recommender/internal/store"
)

// Store is an in-memory TransactionStore, safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	txns []domain.Transaction
}

// NewStore creates an empty in-memory transaction store.
func NewStore() *Store {
	return &Store{}
}

// Load returns a copy of the stored transactions so callers can never
// mutate the backing slice.
func (s *Store) Load(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, len(s.txns))
	copy(out, s.txns)
	return out, nil
}

// Save replaces the stored list wholesale.
func (s *Store) Save(ctx context.Context, txns []domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txns = make([]domain.Transaction, len(txns))
	copy(s.txns, txns)
	return nil
}

// Clear removes all stored transactions.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txns = nil
	return nil
}

var _ store.TransactionStore = (*Store)(nil)
