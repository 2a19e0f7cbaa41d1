package pricing

import "math"

// RevenueChangePct forecasts the expected revenue change (in percent) of
// moving from currentPrice to newPrice, given a demand elasticity and the
// average units sold per period. Non-finite inputs yield 0 — the domain
// tolerates approximate recommendations, so bad numbers are sanitized,
// never propagated.
func RevenueChangePct(currentPrice, newPrice, elasticity, avgUnits float64) float64 {
	if !allFinite(currentPrice, newPrice, elasticity, avgUnits) {
		return 0
	}

	priceChange := (newPrice - currentPrice) / currentPrice
	quantityChange := elasticity * priceChange

	currentRevenue := currentPrice * avgUnits
	newQuantity := math.Max(0, avgUnits*(1+quantityChange))
	newRevenue := newPrice * newQuantity

	if currentRevenue == 0 {
		if newRevenue > 0 {
			return 100
		}
		return 0
	}
	return (newRevenue - currentRevenue) / currentRevenue * 100
}

// MarginChangePct is the same forecast shape as RevenueChangePct computed on
// unit margin (price - cost) instead of price.
func MarginChangePct(cost, currentPrice, newPrice, elasticity, avgUnits float64) float64 {
	if !allFinite(cost, currentPrice, newPrice, elasticity, avgUnits) {
		return 0
	}

	priceChange := (newPrice - currentPrice) / currentPrice
	quantityChange := elasticity * priceChange

	currentMargin := (currentPrice - cost) * avgUnits
	newQuantity := math.Max(0, avgUnits*(1+quantityChange))
	newMargin := (newPrice - cost) * newQuantity

	if currentMargin == 0 {
		if newMargin > 0 {
			return 100
		}
		return 0
	}
	return (newMargin - currentMargin) / currentMargin * 100
}

func allFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
