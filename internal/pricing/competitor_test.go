package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulatedCompetitorQuoteStaysInBand(t *testing.T) {
	c := NewSimulatedCompetitor(42)

	for i := 0; i < 200; i++ {
		quote := c.Quote(100)
		deviation := math.Abs(quote-100) / 100

		assert.GreaterOrEqual(t, deviation, 0.05)
		assert.LessOrEqual(t, deviation, 0.20)
	}
}

func TestSimulatedCompetitorQuoteFloorsAtOneCent(t *testing.T) {
	c := NewSimulatedCompetitor(7)

	for i := 0; i < 50; i++ {
		assert.GreaterOrEqual(t, c.Quote(0.01), 0.01)
	}
}

func TestCompetitorHintMessages(t *testing.T) {
	assert.Equal(t, "Competitor price similar", CompetitorHint(stubCompetitor{offset: 0.01}, 100))
	assert.Equal(t, "Competitor price 10.0% higher", CompetitorHint(stubCompetitor{offset: 0.10}, 100))
	assert.Equal(t, "Competitor price 3.0% lower", CompetitorHint(stubCompetitor{offset: -0.03}, 100))
}
