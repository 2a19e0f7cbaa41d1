package pricing

import "math"

// defaultAvgUnits is assumed when a product has no sales history at all.
const defaultAvgUnits = 10.0

// recentDemandWindow is the number of trailing history entries that feed the
// recent-demand metric. The denominator is fixed at the window size, so a
// short history reads as proportionally lower demand.
const recentDemandWindow = 7

// Signals are the demand metrics consumed by the decision ladder.
type Signals struct {
	// AvgUnitsSold is the mean units sold per period over the full history.
	AvgUnitsSold float64
	// InventoryDays is days of stock coverage at the current average
	// daily-equivalent demand (inventory / max(avg*30, 1)).
	InventoryDays float64
	// RecentDemand is mean units sold over the trailing window, taken in
	// the order the history was recorded (not date-sorted).
	RecentDemand float64
}

// ComputeSignals derives inventory coverage and recent demand for a product.
func ComputeSignals(inventory int, history []SalesPoint) Signals {
	avg := defaultAvgUnits
	if len(history) > 0 {
		total := 0
		for _, s := range history {
			total += s.UnitsSold
		}
		avg = float64(total) / float64(len(history))
	}

	days := float64(inventory) / math.Max(avg*30, 1)

	recent := avg
	if len(history) > 0 {
		tail := history
		if len(tail) > recentDemandWindow {
			tail = tail[len(tail)-recentDemandWindow:]
		}
		sum := 0
		for _, s := range tail {
			sum += s.UnitsSold
		}
		recent = float64(sum) / recentDemandWindow
	}

	return Signals{
		AvgUnitsSold:  avg,
		InventoryDays: days,
		RecentDemand:  recent,
	}
}
