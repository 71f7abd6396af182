// Package catalog supplies the discounted gift card offers the
// recommendation engine matches merchants against. The catalog is
// always handed to the engine as an explicit argument; nothing here is
// ambient state.
package catalog

import (
	"github.com/giftcardmax/recommender/internal/domain"
)

var staticOffers = []domain.GiftCardOffer{
	{ID: "gc_amazon", Merchant: "Amazon", DiscountPercent: 8.5, AvailableAmount: 500, Source: "GiftCardMarketplace", Category: "Shopping"},
	{ID: "gc_target", Merchant: "Target", DiscountPercent: 6.0, AvailableAmount: 300, Source: "CardCash", Category: "Retail"},
	{ID: "gc_starbucks", Merchant: "Starbucks", DiscountPercent: 10.0, AvailableAmount: 200, Source: "Raise", Category: "Food & Drink"},
	{ID: "gc_walmart", Merchant: "Walmart", DiscountPercent: 5.5, AvailableAmount: 400, Source: "GiftCardMarketplace", Category: "Retail"},
	{ID: "gc_bestbuy", Merchant: "Best Buy", DiscountPercent: 7.0, AvailableAmount: 250, Source: "CardCash", Category: "Shopping"},
	{ID: "gc_homedepot", Merchant: "Home Depot", DiscountPercent: 6.5, AvailableAmount: 350, Source: "Raise", Category: "Retail"},
	{ID: "gc_costco", Merchant: "Costco", DiscountPercent: 5.0, AvailableAmount: 500, Source: "GiftCardMarketplace", Category: "Groceries"},
	{ID: "gc_wholefoods", Merchant: "Whole Foods", DiscountPercent: 9.0, AvailableAmount: 200, Source: "CardCash", Category: "Groceries"},
	{ID: "gc_cvs", Merchant: "CVS Pharmacy", DiscountPercent: 7.5, AvailableAmount: 150, Source: "Raise", Category: "Retail"},
	{ID: "gc_chipotle", Merchant: "Chipotle", DiscountPercent: 12.0, AvailableAmount: 100, Source: "GiftCardMarketplace", Category: "Food & Drink"},
	{ID: "gc_netflix", Merchant: "Netflix", DiscountPercent: 15.0, AvailableAmount: 100, Source: "CardCash", Category: "Entertainment"},
	{ID: "gc_spotify", Merchant: "Spotify", DiscountPercent: 10.0, AvailableAmount: 100, Source: "Raise", Category: "Entertainment"},
	{ID: "gc_apple", Merchant: "Apple Store", DiscountPercent: 5.0, AvailableAmount: 500, Source: "GiftCardMarketplace", Category: "Shopping"},
	{ID: "gc_nike", Merchant: "Nike", DiscountPercent: 8.0, AvailableAmount: 200, Source: "CardCash", Category: "Retail"},
	{ID: "gc_traderjoes", Merchant: "Trader Joe's", DiscountPercent: 6.0, AvailableAmount: 150, Source: "Raise", Category: "Groceries"},
}

// Static returns the built-in marketplace catalog. A fresh slice is
// returned on every call so callers can never mutate the backing data.
func Static() []domain.GiftCardOffer {
	offers := make([]domain.GiftCardOffer, len(staticOffers))
	copy(offers, staticOffers)
	return offers
}

// ByMerchant returns the offer whose canonical merchant name matches
// exactly (case-insensitive, trimmed), or false when none does. Fuzzy
// matching is the engine's job, not the catalog's.
func ByMerchant(offers []domain.GiftCardOffer, merchantName string) (domain.GiftCardOffer, bool) {
	key := domain.MerchantKey(merchantName)
	for _, o := range offers {
		if domain.MerchantKey(o.Merchant) == key {
			return o, true
		}
	}
	return domain.GiftCardOffer{}, false
}
