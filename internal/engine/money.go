package engine

import (
	"github.com/shopspring/decimal"
)

// round2 rounds a currency value to 2 decimal places, half away from
// zero. All rounding in the engine goes through here so the contract
// stays in one place: totals, averages and both savings figures are
// rounded independently with this rule.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
