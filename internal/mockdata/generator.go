// Package mockdata produces synthetic transaction histories for demo
// runs and for exercising the pipeline without a linked bank account.
package mockdata

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giftcardmax/recommender/internal/domain"
)

var merchants = []string{
	"Amazon",
	"Target",
	"Starbucks",
	"Walmart",
	"Best Buy",
	"Home Depot",
	"Costco",
	"Whole Foods",
	"CVS Pharmacy",
	"Shell Gas Station",
	"Chipotle",
	"McDonald's",
	"Uber",
	"Lyft",
	"Netflix",
	"Spotify",
	"Apple Store",
	"Nike",
	"Adidas",
	"Trader Joe's",
}

var categories = []string{
	"Shopping",
	"Food & Drink",
	"Gas",
	"Entertainment",
	"Groceries",
	"Transportation",
	"Retail",
}

// Generator creates random transactions. A fixed seed makes the output
// deterministic, which tests rely on.
type Generator struct {
	rng  *rand.Rand
	now  time.Time
	uuid func() string
}

// NewGenerator creates a generator seeded for reproducible output,
// dating transactions relative to now.
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		now:  now,
		uuid: uuid.NewString,
	}
}

// Transactions generates count random transactions spread over the
// last 90 days: amounts between $5 and $205 rounded to cents, merchants
// and categories drawn from the usual suspects. The result is sorted
// most recent first.
func (g *Generator) Transactions(count int) []domain.Transaction {
	txns := make([]domain.Transaction, 0, count)
	for i := 0; i < count; i++ {
		daysAgo := g.rng.Intn(90)
		amount := g.rng.Float64()*200 + 5
		amount, _ = decimal.NewFromFloat(amount).Round(2).Float64()

		txns = append(txns, domain.Transaction{
			ID:       "txn_" + g.uuid(),
			Date:     g.now.AddDate(0, 0, -daysAgo),
			Merchant: merchants[g.rng.Intn(len(merchants))],
			Amount:   amount,
			Category: categories[g.rng.Intn(len(categories))],
		})
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
	return txns
}
