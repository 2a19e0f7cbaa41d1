package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestElasticityShortHistoryReturnsDefault(t *testing.T) {
	assert.Equal(t, DefaultElasticity, EstimateElasticity(nil))
	assert.Equal(t, DefaultElasticity, EstimateElasticity([]SalesPoint{
		{Date: day(0), UnitsSold: 10, Price: 20},
	}))
}

func TestElasticityFlatPricesReturnsDefault(t *testing.T) {
	// Every step is within the ±1% trust threshold — no pair qualifies.
	history := []SalesPoint{
		{Date: day(0), UnitsSold: 10, Price: 20.00},
		{Date: day(1), UnitsSold: 15, Price: 20.10},
		{Date: day(2), UnitsSold: 5, Price: 20.05},
		{Date: day(3), UnitsSold: 12, Price: 20.00},
	}
	assert.Equal(t, DefaultElasticity, EstimateElasticity(history))
}

func TestElasticityMeanOfQualifyingPairs(t *testing.T) {
	// 10 → 11 (+10%) with 100 → 90 (-10%) gives -1.0;
	// 11 → 12.1 (+10%) with 90 → 81 (-10%) gives -1.0 again.
	history := []SalesPoint{
		{Date: day(0), UnitsSold: 100, Price: 10.0},
		{Date: day(1), UnitsSold: 90, Price: 11.0},
		{Date: day(2), UnitsSold: 81, Price: 12.1},
	}
	assert.InDelta(t, -1.0, EstimateElasticity(history), 1e-9)
}

func TestElasticitySortsByDateBeforePairing(t *testing.T) {
	// Same data as above supplied out of order — the estimator must
	// re-sort chronologically before building pairs.
	history := []SalesPoint{
		{Date: day(2), UnitsSold: 81, Price: 12.1},
		{Date: day(0), UnitsSold: 100, Price: 10.0},
		{Date: day(1), UnitsSold: 90, Price: 11.0},
	}
	assert.InDelta(t, -1.0, EstimateElasticity(history), 1e-9)
}

func TestElasticitySkipsNonNegativeRatios(t *testing.T) {
	// Price up and quantity up — positive ratio is discarded.
	history := []SalesPoint{
		{Date: day(0), UnitsSold: 50, Price: 10.0},
		{Date: day(1), UnitsSold: 80, Price: 12.0},
	}
	assert.Equal(t, DefaultElasticity, EstimateElasticity(history))
}

func TestElasticityWindowsToLastTenRecords(t *testing.T) {
	// One strong pair before the 10-record window, then flat — the
	// out-of-window pair must not leak into the estimate.
	history := []SalesPoint{
		{Date: day(0), UnitsSold: 200, Price: 10.0},
	}
	for i := 1; i <= 10; i++ {
		history = append(history, SalesPoint{Date: day(i), UnitsSold: 20, Price: 20.0})
	}
	assert.Equal(t, DefaultElasticity, EstimateElasticity(history))
}
