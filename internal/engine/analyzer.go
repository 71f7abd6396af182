package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/giftcardmax/recommender/internal/domain"
)

// merchantAccum collects one merchant's transactions during grouping.
type merchantAccum struct {
	name     string // original casing from the first transaction seen
	category string // from the first transaction seen
	total    float64
	count    int
	lastDate time.Time
}

// BuildProfiles groups transactions by merchant identity key (trimmed,
// lowercased name) and derives one profile per merchant. Name and
// category come from the first transaction encountered in input order;
// totals and averages are rounded to 2 decimal places half away from
// zero. Output is sorted by total spent descending, ties keeping
// first-encounter order.
//
// A malformed transaction fails the whole call with a
// *domain.RecordError; no partial profile list is returned.
func BuildProfiles(txns []domain.Transaction) ([]domain.MerchantProfile, error) {
	if err := ValidateTransactions(txns); err != nil {
		return nil, fmt.Errorf("BuildProfiles: %w", err)
	}

	accums := make(map[string]*merchantAccum)
	var order []string // identity keys in first-encounter order

	for _, t := range txns {
		key := domain.MerchantKey(t.Merchant)
		acc, ok := accums[key]
		if !ok {
			acc = &merchantAccum{
				name:     t.Merchant,
				category: t.Category,
				lastDate: t.Date,
			}
			accums[key] = acc
			order = append(order, key)
		}
		acc.total += t.Amount
		acc.count++
		if t.Date.After(acc.lastDate) {
			acc.lastDate = t.Date
		}
	}

	profiles := make([]domain.MerchantProfile, 0, len(order))
	for _, key := range order {
		acc := accums[key]
		profiles = append(profiles, domain.MerchantProfile{
			Name:                acc.name,
			Category:            acc.category,
			TotalSpent:          round2(acc.total),
			TransactionCount:    acc.count,
			AverageTransaction:  round2(acc.total / float64(acc.count)),
			LastTransactionDate: acc.lastDate,
		})
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].TotalSpent > profiles[j].TotalSpent
	})

	return profiles, nil
}

// MonthlySpending sums the named merchant's transactions within the 30
// days up to and including asOf, rounded to 2 decimal places. The
// merchant match is exact after trimming and lowercasing; no fuzzy
// matching happens here. Returns 0 when nothing falls in the window.
func MonthlySpending(txns []domain.Transaction, merchantName string, asOf time.Time) float64 {
	key := domain.MerchantKey(merchantName)
	var total float64
	for _, t := range LastNDays(txns, 30, asOf) {
		if domain.MerchantKey(t.Merchant) == key {
			total += t.Amount
		}
	}
	return round2(total)
}
