package engine

import (
	"time"

	"github.com/giftcardmax/recommender/internal/domain"
)

// FilterByDateRange returns every transaction with start <= date <= end,
// inclusive on both ends. A start after end yields an empty result, not
// an error. The input slice is never modified.
func FilterByDateRange(txns []domain.Transaction, start, end time.Time) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// LastNDays returns the transactions dated within the n days up to and
// including asOf. Threading asOf explicitly keeps the pipeline a pure
// function of its arguments; tests pin it to a fixed instant.
func LastNDays(txns []domain.Transaction, n int, asOf time.Time) []domain.Transaction {
	return FilterByDateRange(txns, asOf.AddDate(0, 0, -n), asOf)
}

// LastNDaysNow is LastNDays evaluated against the caller's wall clock.
// The clock is read once per call, so results are not reproducible
// across calls at different instants; that is expected.
func LastNDaysNow(txns []domain.Transaction, n int) []domain.Transaction {
	return LastNDays(txns, n, time.Now())
}
