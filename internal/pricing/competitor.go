package pricing

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// CompetitorProvider supplies a competitor price point for a given list price.
// The engine depends on this interface so a deterministic stub can replace
// the randomized simulation under test, and so a real market-data feed can be
// dropped in later without touching the decision logic.
type CompetitorProvider interface {
	Quote(currentPrice float64) float64
}

// SimulatedCompetitor is a synthetic stand-in for a live competitor feed.
// Each quote is the current price perturbed by a uniform 5–20% variation with
// a random sign, floored at 0.01.
type SimulatedCompetitor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedCompetitor builds the simulation with the given seed.
// A zero seed means time-seeded (non-deterministic).
func NewSimulatedCompetitor(seed int64) *SimulatedCompetitor {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SimulatedCompetitor{rng: rand.New(rand.NewSource(seed))}
}

func (c *SimulatedCompetitor) Quote(currentPrice float64) float64 {
	c.mu.Lock()
	variation := c.rng.Float64()*0.15 + 0.05
	if c.rng.Float64() > 0.5 {
		variation = -variation
	}
	c.mu.Unlock()
	return math.Max(0.01, currentPrice*(1+variation))
}

// CompetitorHint draws a fresh quote and describes it relative to the current
// price. Differences under 2% read as "similar", everything else as a
// directional message with one-decimal magnitude.
func CompetitorHint(p CompetitorProvider, currentPrice float64) string {
	diff := (p.Quote(currentPrice) - currentPrice) / currentPrice * 100
	switch {
	case math.Abs(diff) < 2:
		return "Competitor price similar"
	case diff > 0:
		return fmt.Sprintf("Competitor price %.1f%% higher", diff)
	default:
		return fmt.Sprintf("Competitor price %.1f%% lower", math.Abs(diff))
	}
}
