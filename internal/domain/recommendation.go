package domain

// Recommendation is one "buy a discounted gift card" suggestion. The
// merchant profile and the matched offer are embedded by value so a
// recommendation stays valid even if the source catalog changes later.
//
// PotentialSavings is monthly; AnnualSavings is computed from the
// already-rounded monthly figure, not from an unrounded intermediate.
type Recommendation struct {
	ID               string          `json:"id"`
	Merchant         MerchantProfile `json:"merchant"`
	GiftCard         GiftCardOffer   `json:"gift_card"`
	MonthlySpending  float64         `json:"monthly_spending"`
	PotentialSavings float64         `json:"potential_savings"`
	AnnualSavings    float64         `json:"annual_savings"`
	SavingsPercent   float64         `json:"savings_percent"` // equals the offer's discount
}
