package domain

import (
	"strings"
	"time"
)

// Transaction is one spending record handed to the engine by a loader.
// It is created externally (mock generator, bank feed import, warehouse
// query) and is read-only as far as the engine is concerned.
type Transaction struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Merchant string    `json:"merchant"` // free-text display name
	Amount   float64   `json:"amount"`   // non-negative
	Category string    `json:"category"`
}

// MerchantKey returns the identity key used for grouping transactions:
// the trimmed, lowercased merchant name.
func MerchantKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
