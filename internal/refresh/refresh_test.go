package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giftcardmax/recommender/internal/catalog"
	"github.com/giftcardmax/recommender/internal/domain"
	"github.com/giftcardmax/recommender/internal/engine"
	"github.com/giftcardmax/recommender/internal/store/inmemory"
)

// failingCatalog simulates a broken external catalog feed.
type failingCatalog struct{}

func (failingCatalog) Offers(ctx context.Context) ([]domain.GiftCardOffer, error) {
	return nil, errors.New("feed unavailable")
}

func TestRunner_Run(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	s := inmemory.NewStore()
	txns := []domain.Transaction{
		{ID: "t1", Date: asOf.AddDate(0, 0, -5), Merchant: "Amazon", Amount: 100, Category: "Shopping"},
		{ID: "t2", Date: asOf.AddDate(0, 0, -10), Merchant: "Amazon", Amount: 80, Category: "Shopping"},
		{ID: "t3", Date: asOf.AddDate(0, 0, -3), Merchant: "Unknown Diner", Amount: 60, Category: "Food & Drink"},
	}
	if err := s.Save(ctx, txns); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	runner := NewRunner(s, catalog.StaticSource{}, engine.DefaultConfig())
	snap, err := runner.Run(ctx, asOf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if snap.Transactions != 3 {
		t.Errorf("Transactions = %d, want 3", snap.Transactions)
	}
	if len(snap.Profiles) != 2 {
		t.Errorf("got %d profiles, want 2", len(snap.Profiles))
	}
	if len(snap.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1 (only Amazon matches the catalog)", len(snap.Recommendations))
	}
	if snap.Recommendations[0].ID != "rec_amazon" {
		t.Errorf("recommendation ID = %q, want rec_amazon", snap.Recommendations[0].ID)
	}
	if !snap.AsOf.Equal(asOf) {
		t.Errorf("AsOf = %v, want %v", snap.AsOf, asOf)
	}
}

func TestRunner_EmptyStoreYieldsEmptySnapshot(t *testing.T) {
	runner := NewRunner(inmemory.NewStore(), catalog.StaticSource{}, engine.DefaultConfig())
	snap, err := runner.Run(context.Background(), time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(snap.Recommendations) != 0 || len(snap.Profiles) != 0 {
		t.Errorf("empty store produced a non-empty snapshot: %+v", snap)
	}
}

func TestRunner_CatalogErrorPropagates(t *testing.T) {
	runner := NewRunner(inmemory.NewStore(), failingCatalog{}, engine.DefaultConfig())
	if _, err := runner.Run(context.Background(), time.Now()); err == nil {
		t.Error("expected catalog error to propagate")
	}
}

func TestHolder(t *testing.T) {
	h := NewHolder()

	if _, ok := h.Latest(); ok {
		t.Error("empty holder reported a snapshot")
	}

	want := &Snapshot{GeneratedAt: time.Now()}
	h.Set(want)

	got, ok := h.Latest()
	if !ok {
		t.Fatal("holder lost the snapshot")
	}
	if got != want {
		t.Error("holder returned a different snapshot")
	}
}
