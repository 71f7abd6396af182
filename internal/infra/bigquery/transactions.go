// Package bigquery stores the transaction history in a BigQuery
// dataset for users whose feeds are synced server-side. The engine
// never queries the warehouse directly; this package loads rows into
// plain domain transactions first.
package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/giftcardmax/recommender/internal/domain"
)

const (
	datasetID         = "giftcardmax"
	transactionsTable = "transactions"
)

// TransactionRow is the warehouse schema for one transaction.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED
	TransactionTS   time.Time  `bigquery:"transaction_ts"`   // REQUIRED

	Merchant string   `bigquery:"merchant"` // REQUIRED
	Amount   *big.Rat `bigquery:"amount"`   // REQUIRED NUMERIC
	Category string   `bigquery:"category"` // NULLABLE

	Source    bigquery.NullString `bigquery:"source"` // feed that produced the row
	CreatedTS time.Time           `bigquery:"created_ts"`
}

// toRow maps a domain transaction into the warehouse schema.
func toRow(t domain.Transaction, now time.Time) *TransactionRow {
	return &TransactionRow{
		TransactionID:   t.ID,
		TransactionDate: civil.DateOf(t.Date),
		TransactionTS:   t.Date,
		Merchant:        t.Merchant,
		Amount:          new(big.Rat).SetFloat64(t.Amount),
		Category:        t.Category,
		CreatedTS:       now,
	}
}

// toDomain maps a warehouse row back into a domain transaction.
func (r *TransactionRow) toDomain() domain.Transaction {
	amount := 0.0
	if r.Amount != nil {
		amount, _ = r.Amount.Float64()
	}
	return domain.Transaction{
		ID:       r.TransactionID,
		Date:     r.TransactionTS,
		Merchant: r.Merchant,
		Amount:   amount,
		Category: r.Category,
	}
}
