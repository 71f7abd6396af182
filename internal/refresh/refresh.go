// Package refresh runs the full analysis pipeline (load transactions,
// build merchant profiles, generate recommendations) and holds the
// latest result snapshot for read-only consumers.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/giftcardmax/recommender/internal/domain"
	"github.com/giftcardmax/recommender/internal/engine"
	"github.com/giftcardmax/recommender/internal/store"
)

// CatalogSource supplies the gift card offers for a run. The catalog is
// fetched per run so an externally maintained feed is picked up without
// restarts.
type CatalogSource interface {
	Offers(ctx context.Context) ([]domain.GiftCardOffer, error)
}

// Snapshot is the output of one pipeline run. It is immutable once
// produced; a new run replaces the whole snapshot.
type Snapshot struct {
	GeneratedAt     time.Time                `json:"generated_at"`
	AsOf            time.Time                `json:"as_of"`
	Transactions    int                      `json:"transactions"`
	Profiles        []domain.MerchantProfile `json:"profiles"`
	Recommendations []domain.Recommendation  `json:"recommendations"`
}

// Runner wires the persistence boundary, the catalog boundary and the
// engine together.
type Runner struct {
	store   store.TransactionStore
	catalog CatalogSource
	cfg     engine.Config
}

// NewRunner creates a runner over the given store and catalog source.
func NewRunner(s store.TransactionStore, c CatalogSource, cfg engine.Config) *Runner {
	return &Runner{store: s, catalog: c, cfg: cfg}
}

// Run executes one full pipeline pass with the 30-day spending window
// anchored at asOf. A zero asOf uses the wall clock.
func (r *Runner) Run(ctx context.Context, asOf time.Time) (*Snapshot, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	txns, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh: loading transactions: %w", err)
	}

	offers, err := r.catalog.Offers(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh: loading catalog: %w", err)
	}

	profiles, err := engine.BuildProfiles(txns)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	recs, err := engine.Generate(profiles, txns, offers, r.cfg, asOf)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	return &Snapshot{
		GeneratedAt:     time.Now(),
		AsOf:            asOf,
		Transactions:    len(txns),
		Profiles:        profiles,
		Recommendations: recs,
	}, nil
}

// Holder keeps the latest snapshot for read-only consumers. Replacing
// and reading are safe from concurrent goroutines.
type Holder struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewHolder creates an empty snapshot holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Set replaces the held snapshot.
func (h *Holder) Set(snap *Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snap = snap
}

// Latest returns the held snapshot, or false when no run has completed
// yet.
func (h *Holder) Latest() (*Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.snap == nil {
		return nil, false
	}
	return h.snap, true
}
