package catalog

import (
	"context"

	"github.com/giftcardmax/recommender/internal/domain"
)

// StaticSource serves the built-in catalog.
type StaticSource struct{}

// Offers returns the built-in marketplace catalog.
func (StaticSource) Offers(ctx context.Context) ([]domain.GiftCardOffer, error) {
	return Static(), nil
}

// GCSSource serves an externally maintained catalog JSON document from
// Cloud Storage, fetched fresh on every call.
type GCSSource struct {
	URI string
}

// Offers downloads and decodes the catalog document.
func (s GCSSource) Offers(ctx context.Context) ([]domain.GiftCardOffer, error) {
	return FetchFromGCS(ctx, s.URI)
}
