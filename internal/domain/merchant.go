package domain

import (
	"time"
)

// MerchantProfile is the per-merchant spending summary derived from a
// transaction list. Profiles are rebuilt on every run and never mutated
// in place; a profile only exists for a merchant with at least one
// transaction, so TransactionCount >= 1 always holds.
//
// Name and Category carry the original casing and category of the first
// transaction encountered for the merchant in input order.
type MerchantProfile struct {
	Name                string    `json:"name"`
	Category            string    `json:"category"`
	TotalSpent          float64   `json:"total_spent"`
	TransactionCount    int       `json:"transaction_count"`
	AverageTransaction  float64   `json:"average_transaction"`
	LastTransactionDate time.Time `json:"last_transaction_date"`
}
