package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompetitor quotes the current price shifted by a fixed relative offset,
// making every engine path deterministic under test.
type stubCompetitor struct{ offset float64 }

func (s stubCompetitor) Quote(currentPrice float64) float64 {
	return currentPrice * (1 + s.offset)
}

func neutralEngine() *Engine { return NewEngine(stubCompetitor{offset: 0}) }

func TestOptimizeCriticallyLowInventory(t *testing.T) {
	// Empty history → avg 10 → coverage 1/300 days → the critical-inventory
	// rule fires with a +20% factor: 20.00 → 24.00, well above the 10.50 floor.
	res := neutralEngine().Optimize(ProductInput{
		Cost:         10,
		CurrentPrice: 20,
		Inventory:    1,
	})

	assert.Equal(t, 24.00, res.SuggestedPrice)
	assert.Contains(t, res.Reason, "Very low inventory")
	assert.Contains(t, res.Reason, "Competitor price similar")
	// Default elasticity -1.5: +20% price → -30% quantity.
	assert.Equal(t, -16.0, res.RevenueChangePct)
	assert.Equal(t, -2.0, res.MarginChangePct)
}

func TestOptimizeHighInventoryLowDemandHitsMarginFloor(t *testing.T) {
	// avg 1 unit/period with demand collapsing to zero in the trailing
	// window: coverage 1000/30 ≈ 33 days → -15% factor → raw 8.50,
	// clamped up to cost*1.05 = 10.50.
	history := uniformHistory(7, 2, 10)
	for i := 7; i < 14; i++ {
		history = append(history, SalesPoint{Date: day(i), UnitsSold: 0, Price: 10})
	}

	res := neutralEngine().Optimize(ProductInput{
		Cost:         10,
		CurrentPrice: 10,
		Inventory:    1000,
		History:      history,
	})

	assert.Equal(t, 10.50, res.SuggestedPrice)
	assert.Contains(t, res.Reason, "High inventory and low recent demand")
}

func TestOptimizeRulePriorityOrderWins(t *testing.T) {
	// Both the low-inventory/high-demand rule and the critical-inventory
	// rule match; the first one listed must win (+10%, not +20%).
	history := uniformHistory(7, 1, 20)
	for i := 7; i < 14; i++ {
		history = append(history, SalesPoint{Date: day(i), UnitsSold: 10, Price: 20})
	}
	// avg = 77/14 = 5.5, recent = 70/7 = 10 > 6.6, coverage = 100/165 < 3.

	res := neutralEngine().Optimize(ProductInput{
		Cost:         5,
		CurrentPrice: 20,
		Inventory:    100,
		History:      history,
	})

	assert.Equal(t, 22.00, res.SuggestedPrice)
	assert.Contains(t, res.Reason, "Low inventory and high recent demand")
}

func TestOptimizeElasticityFallbackPicksBestCandidate(t *testing.T) {
	// Steady demand, healthy coverage (10 days) — no inventory rule fires.
	// At elasticity -1.5 the revenue forecast is maximized by the -5%
	// candidate: 20.00 → 19.00.
	res := neutralEngine().Optimize(ProductInput{
		Cost:         10,
		CurrentPrice: 20,
		Inventory:    3000,
		History:      uniformHistory(10, 10, 20),
	})

	assert.Equal(t, 19.00, res.SuggestedPrice)
	assert.Contains(t, res.Reason, "decrease to maximize revenue")
}

func TestOptimizeCompetitorMuchHigherBumpsFactor(t *testing.T) {
	// Fallback picks -5%; competitor at +20% bumps it by +0.05 back to 0.
	res := NewEngine(stubCompetitor{offset: 0.20}).Optimize(ProductInput{
		Cost:         10,
		CurrentPrice: 20,
		Inventory:    3000,
		History:      uniformHistory(10, 10, 20),
	})

	assert.Equal(t, 20.00, res.SuggestedPrice)
	assert.Contains(t, res.Reason, "20.0% higher")
}

func TestOptimizeCompetitorMuchLowerPushesFactorDown(t *testing.T) {
	// Fallback picks -5%; competitor at -20% pushes it to -10%.
	res := NewEngine(stubCompetitor{offset: -0.20}).Optimize(ProductInput{
		Cost:         10,
		CurrentPrice: 20,
		Inventory:    3000,
		History:      uniformHistory(10, 10, 20),
	})

	assert.Equal(t, 18.00, res.SuggestedPrice)
	assert.Contains(t, res.Reason, "20.0% lower")
}

func TestOptimizeCompetitorBumpSkippedWhenFactorAlreadyHigh(t *testing.T) {
	// Critical-inventory +20% already exceeds the bump threshold — a much
	// higher competitor only appends a note, the price stays at 24.00.
	res := NewEngine(stubCompetitor{offset: 0.20}).Optimize(ProductInput{
		Cost:         10,
		CurrentPrice: 20,
		Inventory:    1,
	})

	assert.Equal(t, 24.00, res.SuggestedPrice)
	assert.Contains(t, res.Reason, "Very low inventory")
	assert.Contains(t, res.Reason, "20.0% higher")
}

func TestOptimizeNeverSuggestsBelowMarginFloor(t *testing.T) {
	// Selling far below cost with every decrease rule in play — the floor
	// still holds.
	res := neutralEngine().Optimize(ProductInput{
		Cost:         100,
		CurrentPrice: 50,
		Inventory:    100000,
		History:      uniformHistory(10, 1, 50),
	})

	require.GreaterOrEqual(t, res.SuggestedPrice, round2(100*minMarginFactor))
	assert.Equal(t, 105.00, res.SuggestedPrice)
}
