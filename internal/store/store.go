// Package store defines the persistence boundary for transaction
// lists. The engine never touches storage itself; a caller loads the
// full list, runs the pipeline, and saves whatever it chooses to keep.
package store

import (
	"context"

	"github.com/giftcardmax/recommender/internal/domain"
)

// TransactionStore is the external key-value persistence boundary.
// Load returns the complete stored list (empty when nothing has been
// saved yet, never an error for that case); Save replaces it wholesale.
// No transactional guarantees are offered across calls.
type TransactionStore interface {
	Load(ctx context.Context) ([]domain.Transaction, error)
	Save(ctx context.Context, txns []domain.Transaction) error
	Clear(ctx context.Context) error
}
