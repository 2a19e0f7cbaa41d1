// Package pricing implements the price-optimization core: elasticity
// estimation, demand signals, the rule ladder that picks an adjustment
// factor, the competitor-signal adjustment, and the revenue/margin forecast.
// Everything here is a pure, stateless computation over one product snapshot;
// calls are safe to run concurrently.
package pricing

import (
	"fmt"
	"math"
	"strings"
)

// minMarginFactor enforces the 5% minimum margin floor over cost.
const minMarginFactor = 1.05

// ProductInput is the snapshot of a product the engine reads. History order
// matters for recent demand (see Signals) and is re-sorted internally for
// elasticity estimation.
type ProductInput struct {
	Cost         float64
	CurrentPrice float64
	Inventory    int
	History      []SalesPoint
}

// Result is a pure function output: recomputed on every Optimize call,
// no identity, no lifecycle.
type Result struct {
	SuggestedPrice   float64
	RevenueChangePct float64
	MarginChangePct  float64
	Reason           string
}

// ladderRule is one (guard, effect) pair of the decision ladder.
type ladderRule struct {
	match  func(s Signals) bool
	factor float64
	reason string
}

// inventoryLadder is evaluated in order; the first matching rule wins.
// Keeping the rules in a slice makes the priority explicit and testable.
var inventoryLadder = []ladderRule{
	{
		match:  func(s Signals) bool { return s.InventoryDays < 7 && s.RecentDemand > s.AvgUnitsSold*1.2 },
		factor: 0.10,
		reason: "Low inventory and high recent demand, suggested price increase to protect stock",
	},
	{
		match:  func(s Signals) bool { return s.InventoryDays > 30 && s.RecentDemand < s.AvgUnitsSold*0.8 },
		factor: -0.15,
		reason: "High inventory and low recent demand, suggested price decrease to boost sales",
	},
	{
		match:  func(s Signals) bool { return s.InventoryDays < 3 },
		factor: 0.20,
		reason: "Very low inventory, increase price to protect stock",
	},
	{
		match:  func(s Signals) bool { return s.InventoryDays > 60 },
		factor: -0.10,
		reason: "High inventory levels, suggested price decrease to clear stock",
	},
}

// candidateFactors are scanned in order by the elasticity fallback; only a
// strictly greater forecast replaces the incumbent, so exact ties keep the
// earliest-listed, least aggressive adjustment.
var candidateFactors = []float64{-0.05, -0.02, 0, 0.02, 0.05}

// Engine runs the full optimization pipeline for one product snapshot.
type Engine struct {
	competitor CompetitorProvider
}

func NewEngine(competitor CompetitorProvider) *Engine {
	return &Engine{competitor: competitor}
}

// Optimize recommends a new unit price for the product along with the
// expected revenue and margin change and a human-readable rationale.
func (e *Engine) Optimize(in ProductInput) Result {
	elasticity := EstimateElasticity(in.History)
	sig := ComputeSignals(in.Inventory, in.History)

	factor, reason := e.decide(in, sig, elasticity)
	factor, reason = e.applyCompetitorSignal(in.CurrentPrice, factor, reason)

	suggested := in.CurrentPrice * (1 + factor)
	if floor := in.Cost * minMarginFactor; suggested < floor {
		suggested = floor
	}
	suggested = round2(suggested)
	if math.IsNaN(suggested) || math.IsInf(suggested, 0) {
		suggested = in.CurrentPrice
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Price optimization applied"
	}

	return Result{
		SuggestedPrice:   suggested,
		RevenueChangePct: round2safe(RevenueChangePct(in.CurrentPrice, suggested, elasticity, sig.AvgUnitsSold)),
		MarginChangePct:  round2safe(MarginChangePct(in.Cost, in.CurrentPrice, suggested, elasticity, sig.AvgUnitsSold)),
		Reason:           reason,
	}
}

// decide walks the inventory ladder and falls back to the elasticity-based
// candidate search when no inventory rule fires.
func (e *Engine) decide(in ProductInput, sig Signals, elasticity float64) (float64, string) {
	for _, r := range inventoryLadder {
		if r.match(sig) {
			return r.factor, r.reason
		}
	}

	best := math.Inf(-1)
	factor := 0.0
	for _, c := range candidateFactors {
		forecast := RevenueChangePct(in.CurrentPrice, in.CurrentPrice*(1+c), elasticity, sig.AvgUnitsSold)
		if forecast > best {
			best = forecast
			factor = c
		}
	}

	direction := "decrease"
	if factor > 0 {
		direction = "increase"
	}
	return factor, fmt.Sprintf("Elasticity-based optimization suggests %s to maximize revenue", direction)
}

// applyCompetitorSignal mutates the chosen factor when the competitor price
// deviates more than 15% and the ladder left room to follow; otherwise it
// only appends the neutral hint.
func (e *Engine) applyCompetitorSignal(currentPrice, factor float64, reason string) (float64, string) {
	competitorPrice := e.competitor.Quote(currentPrice)
	diff := (competitorPrice - currentPrice) / currentPrice

	switch {
	case diff > 0.15 && factor < 0.10:
		factor = math.Min(factor+0.05, 0.15)
		reason += fmt.Sprintf(". Competitor price %.1f%% higher", diff*100)
	case diff < -0.15 && factor > -0.10:
		factor = math.Max(factor-0.05, -0.15)
		reason += fmt.Sprintf(". Competitor price %.1f%% lower", math.Abs(diff)*100)
	default:
		reason += ". " + CompetitorHint(e.competitor, currentPrice)
	}
	return factor, reason
}

// round2 rounds to currency granularity (2 decimal places).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round2safe additionally sanitizes non-finite values to 0.
func round2safe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return round2(v)
}
