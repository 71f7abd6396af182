// Package jsonfile persists the transaction list as a single JSON
// document on local disk, the same shape the GCS store uses.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/giftcardmax/recommender/internal/domain"
	"github.com/giftcardmax/recommender/internal/store"
)

// Store reads and writes one JSON file holding the whole list.
type Store struct {
	path string
}

// NewStore creates a file-backed transaction store at the given path.
// The file is created on first Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the stored transactions. A missing file means nothing
// has been saved yet and yields an empty list, not an error.
func (s *Store) Load(ctx context.Context) ([]domain.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []domain.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load transactions from %q: %w", s.path, err)
	}

	var txns []domain.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		return nil, fmt.Errorf("decode transactions from %q: %w", s.path, err)
	}
	return txns, nil
}

// Save replaces the stored list wholesale. The document is written to a
// temp file first and renamed into place so a crash mid-write cannot
// leave a truncated list behind.
func (s *Store) Save(ctx context.Context, txns []domain.Transaction) error {
	data, err := json.MarshalIndent(txns, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write transactions to %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %q: %w", s.path, err)
	}
	return nil
}

// Clear removes the stored file. Clearing an already-empty store is
// not an error.
func (s *Store) Clear(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear transactions at %q: %w", s.path, err)
	}
	return nil
}

var _ store.TransactionStore = (*Store)(nil)
