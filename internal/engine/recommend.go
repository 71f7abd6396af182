package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/giftcardmax/recommender/internal/domain"
)

// Default thresholds for recommendation generation. All three are
// caller-overridable through Config.
const (
	DefaultMinMonthlySpending   = 50.0
	DefaultMinDiscountThreshold = 5.0
	DefaultTopN                 = 10
)

// Config carries the three eligibility knobs for Generate. It is always
// an explicit parameter, never package state, so runs stay pure
// functions of their inputs.
type Config struct {
	// MinMonthlySpending is the least a merchant must see in the last
	// 30 days before a recommendation is worth emitting.
	MinMonthlySpending float64

	// MinDiscountThreshold is the least discount percent an offer must
	// carry to be considered.
	MinDiscountThreshold float64

	// TopN caps the result set after sorting.
	TopN int
}

// DefaultConfig returns the standard thresholds: $50 monthly spend,
// 5% discount, 10 results.
func DefaultConfig() Config {
	return Config{
		MinMonthlySpending:   DefaultMinMonthlySpending,
		MinDiscountThreshold: DefaultMinDiscountThreshold,
		TopN:                 DefaultTopN,
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// RecommendationID derives the deterministic recommendation ID for a
// merchant name: "rec_" plus the lowercased name with each run of
// whitespace collapsed to a single underscore.
func RecommendationID(merchantName string) string {
	return "rec_" + whitespaceRun.ReplaceAllString(strings.ToLower(merchantName), "_")
}

// matchOffer finds the catalog offer for a merchant name. Precedence is
// explicit: an exact match on the normalized name wins; otherwise the
// first catalog entry (in catalog order) where either normalized name
// contains the other as a substring. Short names can fuzzy-match
// broadly ("CVS" matches "CVS Pharmacy"); that is the documented
// policy, not an accident.
func matchOffer(merchantName string, catalog []domain.GiftCardOffer) (domain.GiftCardOffer, bool) {
	key := domain.MerchantKey(merchantName)
	for _, o := range catalog {
		if domain.MerchantKey(o.Merchant) == key {
			return o, true
		}
	}
	for _, o := range catalog {
		offerKey := domain.MerchantKey(o.Merchant)
		if strings.Contains(key, offerKey) || strings.Contains(offerKey, key) {
			return o, true
		}
	}
	return domain.GiftCardOffer{}, false
}

// Generate produces the ranked gift card recommendations for the given
// merchant profiles. Monthly spending is computed from the original,
// unfiltered transaction list over the 30 days up to asOf, never from
// the profile's all-time total. Merchants with no matching offer or
// below either threshold are skipped silently; only malformed input is
// an error.
//
// Emitted recommendations are sorted by annual savings descending
// (stable, ties keep emission order) and truncated to cfg.TopN after
// sorting. A TopN of zero or less falls back to DefaultTopN.
func Generate(
	profiles []domain.MerchantProfile,
	txns []domain.Transaction,
	catalog []domain.GiftCardOffer,
	cfg Config,
	asOf time.Time,
) ([]domain.Recommendation, error) {
	if err := ValidateTransactions(txns); err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}
	if err := ValidateOffers(catalog); err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}

	recs := make([]domain.Recommendation, 0, len(profiles))
	for _, profile := range profiles {
		offer, ok := matchOffer(profile.Name, catalog)
		if !ok {
			continue
		}
		if offer.DiscountPercent < cfg.MinDiscountThreshold {
			continue
		}

		monthly := MonthlySpending(txns, profile.Name, asOf)
		if monthly < cfg.MinMonthlySpending {
			continue
		}

		// Annual savings come from the already-rounded monthly figure;
		// the two roundings are independent and part of the contract.
		potential := round2(monthly * offer.DiscountPercent / 100)
		annual := round2(potential * 12)

		recs = append(recs, domain.Recommendation{
			ID:               RecommendationID(profile.Name),
			Merchant:         profile,
			GiftCard:         offer,
			MonthlySpending:  monthly,
			PotentialSavings: potential,
			AnnualSavings:    annual,
			SavingsPercent:   offer.DiscountPercent,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].AnnualSavings > recs[j].AnnualSavings
	})

	if len(recs) > cfg.TopN {
		recs = recs[:cfg.TopN]
	}
	return recs, nil
}

// FindRecommendation returns the recommendation with the given ID, or
// false when none matches.
func FindRecommendation(recs []domain.Recommendation, id string) (domain.Recommendation, bool) {
	for _, r := range recs {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Recommendation{}, false
}
