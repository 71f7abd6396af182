package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/giftcardmax/recommender/internal/domain"
)

// FromJSON decodes a catalog from its JSON document form: an array of
// offer objects.
func FromJSON(r io.Reader) ([]domain.GiftCardOffer, error) {
	var offers []domain.GiftCardOffer
	if err := json.NewDecoder(r).Decode(&offers); err != nil {
		return nil, fmt.Errorf("FromJSON: decoding catalog: %w", err)
	}
	return offers, nil
}

// FetchFromGCS downloads an externally maintained catalog JSON document
// from the given URI ("gs://bucket/path/catalog.json"). Application
// Default Credentials are assumed to be configured.
func FetchFromGCS(ctx context.Context, gcsURI string) ([]domain.GiftCardOffer, error) {
	if !strings.HasPrefix(gcsURI, "gs://") {
		return nil, fmt.Errorf("invalid GCS URI: %s", gcsURI)
	}

	trimmed := strings.TrimPrefix(gcsURI, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid GCS URI (no object path): %s", gcsURI)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("FetchFromGCS: creating storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(parts[0]).Object(parts[1]).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("FetchFromGCS: reading object %s: %w", gcsURI, err)
	}
	defer rc.Close()

	offers, err := FromJSON(rc)
	if err != nil {
		return nil, fmt.Errorf("FetchFromGCS: %w", err)
	}
	return offers, nil
}
