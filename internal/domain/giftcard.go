package domain

// GiftCardOffer is one entry in the discounted gift card catalog.
// Offers are supplied wholesale by an external marketplace feed and are
// never mutated by the engine.
type GiftCardOffer struct {
	ID              string  `json:"id"`
	Merchant        string  `json:"merchant"` // canonical merchant name
	DiscountPercent float64 `json:"discount_percent"`
	AvailableAmount float64 `json:"available_amount"`
	Source          string  `json:"source"` // issuing marketplace
	Category        string  `json:"category,omitempty"`
}
