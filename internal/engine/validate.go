package engine

import (
	"math"

	"github.com/giftcardmax/recommender/internal/domain"
)

// ValidateTransactions checks every transaction and returns a
// *domain.RecordError for the first malformed one. Empty lists are
// fine; only broken records fail the run.
func ValidateTransactions(txns []domain.Transaction) error {
	for _, t := range txns {
		if domain.MerchantKey(t.Merchant) == "" {
			return &domain.RecordError{Record: "transaction", ID: t.ID, Field: "merchant", Reason: "is missing"}
		}
		if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
			return &domain.RecordError{Record: "transaction", ID: t.ID, Field: "amount", Reason: "is not a finite number"}
		}
		if t.Amount < 0 {
			return &domain.RecordError{Record: "transaction", ID: t.ID, Field: "amount", Reason: "is negative"}
		}
		if t.Date.IsZero() {
			return &domain.RecordError{Record: "transaction", ID: t.ID, Field: "date", Reason: "is missing"}
		}
	}
	return nil
}

// ValidateOffers checks every catalog entry and returns a
// *domain.RecordError for the first malformed one.
func ValidateOffers(offers []domain.GiftCardOffer) error {
	for _, o := range offers {
		if domain.MerchantKey(o.Merchant) == "" {
			return &domain.RecordError{Record: "offer", ID: o.ID, Field: "merchant", Reason: "is missing"}
		}
		if math.IsNaN(o.DiscountPercent) || o.DiscountPercent < 0 || o.DiscountPercent > 100 {
			return &domain.RecordError{Record: "offer", ID: o.ID, Field: "discount_percent", Reason: "is outside 0-100"}
		}
		if math.IsNaN(o.AvailableAmount) || o.AvailableAmount < 0 {
			return &domain.RecordError{Record: "offer", ID: o.ID, Field: "available_amount", Reason: "is negative"}
		}
	}
	return nil
}
