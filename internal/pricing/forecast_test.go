package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForecastSanitizesNonFiniteInputs(t *testing.T) {
	assert.Equal(t, 0.0, RevenueChangePct(math.NaN(), 11, -1.5, 10))
	assert.Equal(t, 0.0, RevenueChangePct(10, math.Inf(1), -1.5, 10))
	assert.Equal(t, 0.0, MarginChangePct(5, 10, 11, math.NaN(), 10))
}

func TestRevenueChangeKnownValues(t *testing.T) {
	// +10% price at elasticity -1.5 → -15% quantity → 11 * 8.5 = 93.5
	// against a baseline of 100 → -6.5%.
	got := RevenueChangePct(10, 11, -1.5, 10)
	assert.InDelta(t, -6.5, got, 1e-9)
}

func TestMarginChangeKnownValues(t *testing.T) {
	// Unit margin goes 5 → 6 while quantity drops to 8.5:
	// 51 against a baseline of 50 → +2%.
	got := MarginChangePct(5, 10, 11, -1.5, 10)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestForecastZeroBaseline(t *testing.T) {
	// Zero current price: the relative price change is +Inf, so negative
	// elasticity wipes out demand and the zero baseline reads as 0, not 100.
	assert.Equal(t, 0.0, RevenueChangePct(0, 5, -1.5, 10))
	assert.Equal(t, 0.0, RevenueChangePct(10, 5, -1.5, 0))

	// Selling at cost today: any margin improvement reads as +100%.
	assert.Equal(t, 100.0, MarginChangePct(10, 10, 12, 0, 5))
}

func TestForecastQuantityFloorsAtZero(t *testing.T) {
	// Elasticity strong enough to wipe out demand — revenue goes to -100%,
	// never below.
	got := RevenueChangePct(10, 20, -3, 10)
	assert.InDelta(t, -100.0, got, 1e-9)
}
