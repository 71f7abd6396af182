// Package gcs persists the transaction list as one JSON object in a
// Cloud Storage bucket. Application Default Credentials are assumed
// (gcloud auth application-default login).
package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/giftcardmax/recommender/internal/domain"
	"github.com/giftcardmax/recommender/internal/store"
)

// Store reads and writes a single JSON object in a bucket.
type Store struct {
	bucket string
	object string
}

// NewStore creates a GCS-backed transaction store for the given bucket
// and object name.
func NewStore(bucket, object string) *Store {
	return &Store{bucket: bucket, object: object}
}

// Load returns the stored transactions. A missing object means nothing
// has been saved yet and yields an empty list, not an error.
func (s *Store) Load(ctx context.Context) ([]domain.Transaction, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: creating storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(s.bucket).Object(s.object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return []domain.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load: reading gs://%s/%s: %w", s.bucket, s.object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("load: reading bytes: %w", err)
	}

	var txns []domain.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		return nil, fmt.Errorf("load: decoding transactions: %w", err)
	}
	return txns, nil
}

// Save replaces the stored object wholesale.
func (s *Store) Save(ctx context.Context, txns []domain.Transaction) error {
	data, err := json.Marshal(txns)
	if err != nil {
		return fmt.Errorf("save: encoding transactions: %w", err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("save: creating storage client: %w", err)
	}
	defer client.Close()

	w := client.Bucket(s.bucket).Object(s.object).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("save: writing gs://%s/%s: %w", s.bucket, s.object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("save: finalizing upload: %w", err)
	}
	return nil
}

// Clear deletes the stored object. A missing object is not an error.
func (s *Store) Clear(ctx context.Context) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("clear: creating storage client: %w", err)
	}
	defer client.Close()

	err = client.Bucket(s.bucket).Object(s.object).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("clear: deleting gs://%s/%s: %w", s.bucket, s.object, err)
	}
	return nil
}

var _ store.TransactionStore = (*Store)(nil)
