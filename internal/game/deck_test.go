package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daniangio/golem/internal/models"
)

func TestNewPulseDeckComposition(t *testing.T) {
	deck := NewPulseDeck()
	require.Len(t, deck, PulseDeckSize)

	cinderValues := make(map[int]int)
	prisms := 0
	highPrisms := 0
	for _, c := range deck {
		if c.Suit == models.SuitCinder {
			cinderValues[c.Value]++
		}
		if c.IsPrism() {
			prisms++
			if c.PrismRange == models.PrismRangeHigh {
				highPrisms++
			}
		}
	}

	// One cinder card for each value 0..10.
	require.Len(t, cinderValues, 11)
	for v := 0; v <= 10; v++ {
		assert.Equal(t, 1, cinderValues[v], "cinder value %d", v)
	}

	// Five prisms, alternating parity gives three high-range ones.
	assert.Equal(t, 5, prisms)
	assert.Equal(t, 3, highPrisms)
}

func TestNewPulseDeckUniqueIDs(t *testing.T) {
	deck := NewPulseDeck()
	seen := make(map[string]bool, len(deck))
	for _, c := range deck {
		require.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestNewTerrainDeckWindows(t *testing.T) {
	for tier, cfg := range terrainTiers {
		deck := NewTerrainDeck(tier)
		require.Len(t, deck, TerrainDeckSize, "tier %d", tier)
		for _, tc := range deck {
			assert.NotEqual(t, models.SuitPrism, tc.Suit)
			assert.Less(t, tc.Min, tc.Max, "tier %d card %s", tier, tc.ID)
			width := tc.Max - tc.Min
			assert.GreaterOrEqual(t, width, cfg.widthMin)
			assert.LessOrEqual(t, width, cfg.widthMax)
			assert.GreaterOrEqual(t, tc.Min, cfg.minFloor)
			assert.LessOrEqual(t, tc.Max, cfg.maxCeil)
		}
	}
}

func TestNewTerrainDeckClampsTier(t *testing.T) {
	assert.Len(t, NewTerrainDeck(0), TerrainDeckSize)
	assert.Len(t, NewTerrainDeck(99), TerrainDeckSize)
}

func TestDrawWithReshuffleZeroIsNoop(t *testing.T) {
	deck := NewPulseDeck()
	discard := []models.PulseCard{{ID: "x"}}
	drawn, restDeck, restDiscard := DrawWithReshuffle(deck, discard, 0)
	assert.Empty(t, drawn)
	assert.Equal(t, deck, restDeck)
	assert.Equal(t, discard, restDiscard)
}

func TestDrawWithReshuffleRecyclesDiscard(t *testing.T) {
	a := models.PulseCard{ID: "a"}
	b := models.PulseCard{ID: "b"}
	drawn, restDeck, restDiscard := DrawWithReshuffle(nil, []models.PulseCard{a, b}, 2)
	require.Len(t, drawn, 2)
	assert.Empty(t, restDeck)
	assert.Empty(t, restDiscard)
	assert.ElementsMatch(t, []models.PulseCard{a, b}, drawn)
}

func TestDrawWithReshuffleStopsWhenExhausted(t *testing.T) {
	a := models.PulseCard{ID: "a"}
	drawn, restDeck, restDiscard := DrawWithReshuffle([]models.PulseCard{a}, nil, 5)
	assert.Equal(t, []models.PulseCard{a}, drawn)
	assert.Empty(t, restDeck)
	assert.Empty(t, restDiscard)
}

func TestDrawWithReshuffleConservesCards(t *testing.T) {
	deck := NewPulseDeck()
	split := 40
	drawn, restDeck, restDiscard := DrawWithReshuffle(deck[:split], deck[split:], 30)
	require.Len(t, drawn, 30)

	var all []models.PulseCard
	all = append(all, drawn...)
	all = append(all, restDeck...)
	all = append(all, restDiscard...)
	assert.ElementsMatch(t, deck, all)
}
