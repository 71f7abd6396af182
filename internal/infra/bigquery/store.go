package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/giftcardmax/recommender/internal/domain"
	"github.com/giftcardmax/recommender/internal/store"
)

// Store is a BigQuery-backed TransactionStore.
type Store struct {
	client    *bigquery.Client
	projectID string
}

// NewStore creates a warehouse-backed transaction store for the given
// project. Application Default Credentials are assumed.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewStore: bigquery client: %w", err)
	}
	return &Store{client: client, projectID: projectID}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Load returns the full stored transaction history, oldest first.
func (s *Store) Load(ctx context.Context) ([]domain.Transaction, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
			transaction_id,
			transaction_date,
			transaction_ts,
			merchant,
			amount,
			category,
			source,
			created_ts
		FROM %s.%s
		ORDER BY transaction_ts, transaction_id
	`, datasetID, transactionsTable))

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("Load: query read: %w", err)
	}

	var txns []domain.Transaction
	for {
		var r TransactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Load: iterating rows: %w", err)
		}
		txns = append(txns, r.toDomain())
	}
	return txns, nil
}

// LoadByDateRange returns the stored transactions within the inclusive
// date range, oldest first.
func (s *Store) LoadByDateRange(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
			transaction_id,
			transaction_date,
			transaction_ts,
			merchant,
			amount,
			category,
			source,
			created_ts
		FROM %s.%s
		WHERE transaction_ts >= @start_ts
		  AND transaction_ts <= @end_ts
		ORDER BY transaction_ts, transaction_id
	`, datasetID, transactionsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "start_ts", Value: start},
		{Name: "end_ts", Value: end},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("LoadByDateRange: query read: %w", err)
	}

	var txns []domain.Transaction
	for {
		var r TransactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("LoadByDateRange: iterating rows: %w", err)
		}
		txns = append(txns, r.toDomain())
	}
	return txns, nil
}

// Save replaces the stored history wholesale: the table is cleared and
// the new list streamed in. Matches the key-value semantics of the
// other stores rather than appending.
func (s *Store) Save(ctx context.Context, txns []domain.Transaction) error {
	if err := s.Clear(ctx); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if len(txns) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*TransactionRow, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, toRow(t, now))
	}

	inserter := s.client.DatasetInProject(s.projectID, datasetID).Table(transactionsTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("Save: inserting rows: %w", err)
	}
	return nil
}

// Clear deletes every stored transaction.
func (s *Store) Clear(ctx context.Context) error {
	q := s.client.Query(fmt.Sprintf(`DELETE FROM %s.%s WHERE TRUE`, datasetID, transactionsTable))

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("Clear: running delete: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("Clear: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("Clear: job error: %w", err)
	}
	return nil
}

var _ store.TransactionStore = (*Store)(nil)
