package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniformHistory(n, units int, price float64) []SalesPoint {
	history := make([]SalesPoint, 0, n)
	for i := 0; i < n; i++ {
		history = append(history, SalesPoint{Date: day(i), UnitsSold: units, Price: price})
	}
	return history
}

func TestSignalsEmptyHistoryDefaults(t *testing.T) {
	sig := ComputeSignals(1, nil)

	assert.Equal(t, 10.0, sig.AvgUnitsSold)
	assert.InDelta(t, 1.0/300.0, sig.InventoryDays, 1e-9)
	assert.Equal(t, 10.0, sig.RecentDemand)
}

func TestSignalsAverageAndCoverage(t *testing.T) {
	sig := ComputeSignals(120, uniformHistory(30, 2, 9.99))

	assert.Equal(t, 2.0, sig.AvgUnitsSold)
	assert.InDelta(t, 2.0, sig.InventoryDays, 1e-9) // 120 / (2*30)
}

func TestSignalsRecentDemandUsesTrailingWindowInGivenOrder(t *testing.T) {
	// 3 slow entries followed by 7 busy ones, in insertion order — only the
	// trailing 7 feed recent demand.
	history := uniformHistory(3, 0, 10)
	for i := 3; i < 10; i++ {
		history = append(history, SalesPoint{Date: day(i), UnitsSold: 14, Price: 10})
	}

	sig := ComputeSignals(0, history)
	assert.InDelta(t, 14.0, sig.RecentDemand, 1e-9)
}

func TestSignalsRecentDemandFixedDenominator(t *testing.T) {
	// Fewer than 7 entries still divide by the window size, so a short
	// history reads as proportionally lower demand.
	sig := ComputeSignals(0, uniformHistory(3, 7, 10))
	assert.InDelta(t, 3.0, sig.RecentDemand, 1e-9)
}
