package game

import (
	"fmt"

	"github.com/Daniangio/golem/internal/models"
)

// PulseDeckSize is the fixed size of a freshly built pulse deck:
// 5 basic suits x values 0..10, plus 5 prism cards.
const PulseDeckSize = 60

// TerrainDeckSize is the number of terrain cards dealt per chapter.
const TerrainDeckSize = 5

// NewPulseDeck builds the full 60-card pulse deck in deterministic order.
// Only shuffling introduces randomness.
func NewPulseDeck() []models.PulseCard {
	deck := make([]models.PulseCard, 0, PulseDeckSize)
	for _, suit := range models.BasicSuits {
		for v := 0; v <= 10; v++ {
			deck = append(deck, models.PulseCard{
				ID:    fmt.Sprintf("pulse-%s-%d", suit, v),
				Suit:  suit,
				Value: v,
			})
		}
	}
	// Prism cards alternate sub-range by index parity: i=1,3,5 high, i=2,4 low.
	for i := 1; i <= 5; i++ {
		rng := models.PrismRangeLow
		if i%2 != 0 {
			rng = models.PrismRangeHigh
		}
		deck = append(deck, models.PulseCard{
			ID:         fmt.Sprintf("pulse-prism-%d", i),
			Suit:       models.SuitPrism,
			PrismRange: rng,
		})
	}
	return deck
}

// terrainTier parameterizes terrain window generation for one stage tier.
// Later tiers produce narrower, higher windows.
type terrainTier struct {
	widthMin, widthMax int
	minFloor, maxCeil  int
}

var terrainTiers = map[int]terrainTier{
	1: {widthMin: 6, widthMax: 9, minFloor: 8, maxCeil: 24},
	2: {widthMin: 4, widthMax: 7, minFloor: 10, maxCeil: 26},
	3: {widthMin: 3, widthMax: 5, minFloor: 12, maxCeil: 28},
}

// NewTerrainDeck builds the 5-card terrain deck for a stage tier. Each card
// gets a random basic suit and a random window drawn from the tier's bounds.
// Unknown tiers clamp to the nearest configured one.
func NewTerrainDeck(tier int) []models.TerrainCard {
	if tier < 1 {
		tier = 1
	}
	if tier > 3 {
		tier = 3
	}
	cfg := terrainTiers[tier]
	deck := make([]models.TerrainCard, 0, TerrainDeckSize)
	for i := 0; i < TerrainDeckSize; i++ {
		suit := models.BasicSuits[RandomInt(len(models.BasicSuits))]
		width := cfg.widthMin + RandomInt(cfg.widthMax-cfg.widthMin+1)
		floor := cfg.minFloor + RandomInt(cfg.maxCeil-width-cfg.minFloor+1)
		deck = append(deck, models.TerrainCard{
			// The id encodes the composition for traceability.
			ID:   fmt.Sprintf("terrain-t%d-%d-%s-%d-%d", tier, i, suit, floor, floor+width),
			Suit: suit,
			Min:  floor,
			Max:  floor + width,
		})
	}
	return deck
}

// DrawWithReshuffle draws up to n cards from the front of deck, shuffling the
// discard pile into a fresh deck when the deck runs out. It stops early only
// when both piles are exhausted. The multiset of cards across the returned
// values always equals the multiset across the inputs.
func DrawWithReshuffle(deck, discard []models.PulseCard, n int) (drawn, restDeck, restDiscard []models.PulseCard) {
	restDeck = append([]models.PulseCard(nil), deck...)
	restDiscard = append([]models.PulseCard(nil), discard...)
	drawn = make([]models.PulseCard, 0, n)
	for len(drawn) < n {
		if len(restDeck) == 0 {
			if len(restDiscard) == 0 {
				break
			}
			Shuffle(restDiscard)
			restDeck = restDiscard
			restDiscard = []models.PulseCard{}
		}
		drawn = append(drawn, restDeck[0])
		restDeck = restDeck[1:]
	}
	return drawn, restDeck, restDiscard
}
