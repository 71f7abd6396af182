package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/giftcardmax/recommender/internal/domain"
)

func TestValidateTransactions(t *testing.T) {
	tests := []struct {
		name    string
		txns    []domain.Transaction
		wantErr bool
	}{
		{
			name:    "nil list is valid",
			txns:    nil,
			wantErr: false,
		},
		{
			name:    "well-formed",
			txns:    []domain.Transaction{txn("t1", "Amazon", 10, day(2025, 6, 1))},
			wantErr: false,
		},
		{
			name:    "zero amount is valid",
			txns:    []domain.Transaction{txn("t1", "Amazon", 0, day(2025, 6, 1))},
			wantErr: false,
		},
		{
			name:    "NaN amount",
			txns:    []domain.Transaction{txn("t1", "Amazon", math.NaN(), day(2025, 6, 1))},
			wantErr: true,
		},
		{
			name:    "infinite amount",
			txns:    []domain.Transaction{txn("t1", "Amazon", math.Inf(1), day(2025, 6, 1))},
			wantErr: true,
		},
		{
			name:    "whitespace-only merchant",
			txns:    []domain.Transaction{txn("t1", "  ", 10, day(2025, 6, 1))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransactions(tt.txns)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTransactions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOffers(t *testing.T) {
	tests := []struct {
		name      string
		offer     domain.GiftCardOffer
		wantField string
	}{
		{
			name:      "missing merchant",
			offer:     domain.GiftCardOffer{ID: "gc1", DiscountPercent: 5},
			wantField: "merchant",
		},
		{
			name:      "negative discount",
			offer:     domain.GiftCardOffer{ID: "gc1", Merchant: "Amazon", DiscountPercent: -1},
			wantField: "discount_percent",
		},
		{
			name:      "discount above 100",
			offer:     domain.GiftCardOffer{ID: "gc1", Merchant: "Amazon", DiscountPercent: 101},
			wantField: "discount_percent",
		},
		{
			name:      "negative available amount",
			offer:     domain.GiftCardOffer{ID: "gc1", Merchant: "Amazon", DiscountPercent: 5, AvailableAmount: -10},
			wantField: "available_amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOffers([]domain.GiftCardOffer{tt.offer})
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var recErr *domain.RecordError
			if !errors.As(err, &recErr) {
				t.Fatalf("expected *domain.RecordError, got %T", err)
			}
			if recErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", recErr.Field, tt.wantField)
			}
			if recErr.Record != "offer" {
				t.Errorf("Record = %q, want %q", recErr.Record, "offer")
			}
		})
	}
}

func TestValidateOffers_WellFormed(t *testing.T) {
	offers := []domain.GiftCardOffer{
		offer("gc_amazon", "Amazon", 8.5),
		{ID: "gc_edge", Merchant: "Edge", DiscountPercent: 0, AvailableAmount: 0},
		{ID: "gc_full", Merchant: "Full", DiscountPercent: 100, AvailableAmount: 1},
	}
	if err := ValidateOffers(offers); err != nil {
		t.Errorf("ValidateOffers() = %v, want nil", err)
	}
}
