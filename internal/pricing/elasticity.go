package pricing

import (
	"math"
	"sort"
	"time"
)

// DefaultElasticity is the fallback coefficient when the sales history is too
// short or too flat to estimate from (demand drops as price rises).
const DefaultElasticity = -1.5

// elasticityWindow limits the estimate to the most recent data points.
const elasticityWindow = 10

// SalesPoint is one sales observation as seen by the engine.
type SalesPoint struct {
	Date      time.Time
	UnitsSold int
	Price     float64
}

// EstimateElasticity approximates price elasticity of demand from consecutive
// pairs in the date-sorted tail of the history: %Δquantity / %Δprice.
// Pairs with a price step of 1% or less are skipped (denominator too small to
// trust), and only finite, negative ratios are accepted — positive elasticity
// is not economically meaningful for this model.
func EstimateElasticity(history []SalesPoint) float64 {
	if len(history) < 2 {
		return DefaultElasticity
	}

	sorted := make([]SalesPoint, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	if len(sorted) > elasticityWindow {
		sorted = sorted[len(sorted)-elasticityWindow:]
	}
	if len(sorted) < 2 {
		return DefaultElasticity
	}

	total := 0.0
	count := 0
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		priceChange := (cur.Price - prev.Price) / prev.Price
		if math.Abs(priceChange) <= 0.01 {
			continue
		}
		quantityChange := float64(cur.UnitsSold-prev.UnitsSold) / float64(prev.UnitsSold)
		e := quantityChange / priceChange
		if math.IsNaN(e) || math.IsInf(e, 0) || e >= 0 {
			continue
		}
		total += e
		count++
	}

	if count == 0 {
		return DefaultElasticity
	}
	return total / float64(count)
}
