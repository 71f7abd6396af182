package engine

import (
	"errors"
	"testing"

	"github.com/giftcardmax/recommender/internal/domain"
)

func TestBuildProfiles_GroupsByNormalizedMerchant(t *testing.T) {
	txns := []domain.Transaction{
		txn("t1", "Amazon", 40, day(2025, 6, 1)),
		txn("t2", "amazon", 60, day(2025, 6, 5)),
		txn("t3", " AMAZON ", 80, day(2025, 6, 3)),
		txn("t4", "Target", 25, day(2025, 6, 2)),
	}

	profiles, err := BuildProfiles(txns)
	if err != nil {
		t.Fatalf("BuildProfiles failed: %v", err)
	}

	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}

	amazon := profiles[0] // highest total spent sorts first
	if amazon.Name != "Amazon" {
		t.Errorf("Name = %q, want first-seen casing %q", amazon.Name, "Amazon")
	}
	if amazon.TotalSpent != 180.00 {
		t.Errorf("TotalSpent = %v, want 180.00", amazon.TotalSpent)
	}
	if amazon.TransactionCount != 3 {
		t.Errorf("TransactionCount = %d, want 3", amazon.TransactionCount)
	}
	if amazon.AverageTransaction != 60.00 {
		t.Errorf("AverageTransaction = %v, want 60.00", amazon.AverageTransaction)
	}
	if !amazon.LastTransactionDate.Equal(day(2025, 6, 5)) {
		t.Errorf("LastTransactionDate = %v, want 2025-06-05", amazon.LastTransactionDate)
	}
}

func TestBuildProfiles_CountsSumToInputLength(t *testing.T) {
	txns := []domain.Transaction{
		txn("t1", "Amazon", 10, day(2025, 6, 1)),
		txn("t2", "Target", 20, day(2025, 6, 2)),
		txn("t3", "amazon", 30, day(2025, 6, 3)),
		txn("t4", "Starbucks", 5, day(2025, 6, 4)),
		txn("t5", "starbucks ", 7, day(2025, 6, 5)),
		txn("t6", "Costco", 90, day(2025, 6, 6)),
	}

	profiles, err := BuildProfiles(txns)
	if err != nil {
		t.Fatalf("BuildProfiles failed: %v", err)
	}

	sum := 0
	for _, p := range profiles {
		sum += p.TransactionCount
	}
	if sum != len(txns) {
		t.Errorf("sum of TransactionCount = %d, want %d", sum, len(txns))
	}
}

func TestBuildProfiles_FirstSeenCategoryWins(t *testing.T) {
	txns := []domain.Transaction{
		{ID: "t1", Date: day(2025, 6, 1), Merchant: "Amazon", Amount: 10, Category: "Shopping"},
		{ID: "t2", Date: day(2025, 6, 2), Merchant: "Amazon", Amount: 20, Category: "Retail"},
	}

	profiles, err := BuildProfiles(txns)
	if err != nil {
		t.Fatalf("BuildProfiles failed: %v", err)
	}
	if profiles[0].Category != "Shopping" {
		t.Errorf("Category = %q, want first-seen %q", profiles[0].Category, "Shopping")
	}
}

func TestBuildProfiles_SortedByTotalSpentWithStableTies(t *testing.T) {
	txns := []domain.Transaction{
		txn("t1", "Starbucks", 50, day(2025, 6, 1)),
		txn("t2", "Chipotle", 50, day(2025, 6, 2)),
		txn("t3", "Amazon", 200, day(2025, 6, 3)),
	}

	profiles, err := BuildProfiles(txns)
	if err != nil {
		t.Fatalf("BuildProfiles failed: %v", err)
	}

	wantOrder := []string{"Amazon", "Starbucks", "Chipotle"}
	for i, want := range wantOrder {
		if profiles[i].Name != want {
			t.Errorf("profiles[%d].Name = %q, want %q", i, profiles[i].Name, want)
		}
	}
}

func TestBuildProfiles_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name      string
		txn       domain.Transaction
		wantField string
	}{
		{
			name:      "missing merchant",
			txn:       domain.Transaction{ID: "bad", Date: day(2025, 6, 1), Merchant: "   ", Amount: 10},
			wantField: "merchant",
		},
		{
			name:      "negative amount",
			txn:       domain.Transaction{ID: "bad", Date: day(2025, 6, 1), Merchant: "Amazon", Amount: -1},
			wantField: "amount",
		},
		{
			name:      "missing date",
			txn:       domain.Transaction{ID: "bad", Merchant: "Amazon", Amount: 10},
			wantField: "date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := txn("ok", "Target", 30, day(2025, 6, 2))
			_, err := BuildProfiles([]domain.Transaction{good, tt.txn})
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var recErr *domain.RecordError
			if !errors.As(err, &recErr) {
				t.Fatalf("expected *domain.RecordError, got %T: %v", err, err)
			}
			if recErr.ID != "bad" {
				t.Errorf("RecordError.ID = %q, want %q", recErr.ID, "bad")
			}
			if recErr.Field != tt.wantField {
				t.Errorf("RecordError.Field = %q, want %q", recErr.Field, tt.wantField)
			}
		})
	}
}

func TestBuildProfiles_EmptyInput(t *testing.T) {
	profiles, err := BuildProfiles(nil)
	if err != nil {
		t.Fatalf("BuildProfiles failed: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("got %d profiles, want 0", len(profiles))
	}
}

func TestMonthlySpending(t *testing.T) {
	asOf := day(2025, 6, 30)
	txns := []domain.Transaction{
		txn("t1", "Amazon", 40, day(2025, 6, 10)),
		txn("t2", "amazon", 60, day(2025, 6, 20)),
		txn("t3", "Amazon", 80, day(2025, 6, 25)),
		txn("t4", "Amazon", 500, day(2025, 4, 1)), // outside the 30-day window
		txn("t5", "Target", 75, day(2025, 6, 15)), // different merchant
	}

	tests := []struct {
		name     string
		merchant string
		want     float64
	}{
		{name: "sums window, case-insensitive", merchant: "Amazon", want: 180.00},
		{name: "lookup by different casing", merchant: "AMAZON", want: 180.00},
		{name: "other merchant", merchant: "Target", want: 75.00},
		{name: "unknown merchant is zero, not an error", merchant: "Netflix", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlySpending(txns, tt.merchant, asOf)
			if got != tt.want {
				t.Errorf("MonthlySpending(%q) = %v, want %v", tt.merchant, got, tt.want)
			}
		})
	}
}

func TestMonthlySpending_EmptyWindow(t *testing.T) {
	txns := []domain.Transaction{
		txn("t1", "Amazon", 40, day(2025, 1, 1)),
	}
	got := MonthlySpending(txns, "Amazon", day(2025, 6, 30))
	if got != 0 {
		t.Errorf("MonthlySpending = %v, want 0", got)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 15.299999999999999, want: 15.30},
		{in: 1.234, want: 1.23},
		{in: 1.236, want: 1.24},
		{in: 100, want: 100},
		{in: 0, want: 0},
		{in: 33.333333333, want: 33.33},
		// Exact halves round away from zero, not to even.
		{in: 0.005, want: 0.01},
		{in: 2.675, want: 2.68},
		{in: 1.005, want: 1.01},
		{in: -0.005, want: -0.01},
	}

	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
