package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Daniangio/golem/internal/catalog"
	"github.com/Daniangio/golem/internal/models"
)

const (
	hostUID = "uid-host"
	p2UID   = "uid-two"
	p3UID   = "uid-three"
)

// plainCatalog is a minimal effect-free content set: one stage-1 location, one
// stage-2 location, three inert parts.
func plainCatalog() *catalog.Catalog {
	return catalogWith(nil, nil)
}

// catalogWith builds the test content set with the given stage-1 location
// effects and per-part effects (keyed by part id: anchor, brace, coil).
func catalogWith(locEffects []catalog.Effect, partEffects map[string][]catalog.Effect) *catalog.Catalog {
	parts := []catalog.PartDef{
		{ID: "anchor", Name: "Anchor", Effects: partEffects["anchor"]},
		{ID: "brace", Name: "Brace", Effects: partEffects["brace"]},
		{ID: "coil", Name: "Coil", Effects: partEffects["coil"]},
	}
	locations := []catalog.LocationCard{
		{
			ID:              "plains",
			Name:            "Plains",
			Stage:           1,
			CompulsoryParts: []string{"anchor"},
			OptionalParts:   []string{"brace", "coil"},
			Effects:         locEffects,
		},
		{
			ID:              "marsh",
			Name:            "Marsh",
			Stage:           1,
			CompulsoryParts: []string{"anchor"},
			OptionalParts:   []string{"brace", "coil"},
		},
		{
			ID:              "ridge",
			Name:            "Ridge",
			Stage:           2,
			CompulsoryParts: []string{"anchor"},
			OptionalParts:   []string{"brace", "coil"},
		},
	}
	return catalog.New(locations, parts)
}

// newLobbyGame builds a full three-human lobby hosted by hostUID.
func newLobbyGame(t *testing.T, e *Engine) *models.GameDoc {
	t.Helper()
	doc := e.NewGame("game-1", hostUID, "Host", models.VisibilityPublic, models.ModeCampaign)
	require.NoError(t, e.Join(doc, p2UID, "Two"))
	require.NoError(t, e.Join(doc, p3UID, "Three"))
	return doc
}

// startedGame drives a lobby through start, location vote and part picks into
// the play phase at the stage-1 location "plains".
func startedGame(t *testing.T, e *Engine) *models.GameDoc {
	t.Helper()
	doc := newLobbyGame(t, e)
	require.NoError(t, e.Start(doc, hostUID))

	require.NoError(t, e.SetLocationVote(doc, hostUID, models.SeatP1, "plains"))
	require.NoError(t, e.SetLocationVote(doc, p2UID, models.SeatP2, "plains"))
	require.NoError(t, e.SetLocationVote(doc, p3UID, models.SeatP3, "plains"))
	require.NoError(t, e.ConfirmLocation(doc, hostUID, ""))

	require.NoError(t, e.SetPartPick(doc, hostUID, models.SeatP1, "anchor"))
	require.NoError(t, e.SetPartPick(doc, p2UID, models.SeatP2, "brace"))
	require.NoError(t, e.SetPartPick(doc, p3UID, models.SeatP3, "coil"))
	require.NoError(t, e.ConfirmParts(doc, hostUID))

	require.Equal(t, models.PhasePlay, doc.Phase)
	return doc
}

// actorFor maps a seat to the human uid seated there in the test fixtures.
func actorFor(seat models.Seat) string {
	switch seat {
	case models.SeatP1:
		return hostUID
	case models.SeatP2:
		return p2UID
	default:
		return p3UID
	}
}

// playAll commits the first card of every hand in seat order.
func playAll(t *testing.T, e *Engine, doc *models.GameDoc) {
	t.Helper()
	for _, s := range models.Seats {
		require.NoError(t, e.PlayCard(doc, actorFor(s), s, doc.Hands[s][0].ID))
	}
}

// countPulseCards tallies every zone a pulse card can live in.
func countPulseCards(doc *models.GameDoc) int {
	n := len(doc.PulseDeck) + len(doc.PulseDiscard)
	for _, s := range models.Seats {
		n += len(doc.Hands[s])
	}
	if doc.Reservoir != nil {
		n++
	}
	if doc.Reservoir2 != nil {
		n++
	}
	for _, p := range doc.Played {
		if p == nil {
			continue
		}
		n++
		if p.ExtraCard != nil {
			n++
		}
	}
	return n
}

// forceTerrain pins the active terrain window so resolutions are deterministic.
func forceTerrain(doc *models.GameDoc, suit models.Suit, min, max int) {
	doc.TerrainDeck[doc.TerrainIndex] = models.TerrainCard{
		ID:   "terrain-forced",
		Suit: suit,
		Min:  min,
		Max:  max,
	}
}

// handCard swaps a specific card into a seat's hand at index 0 and returns it.
// The displaced card goes to the bottom of the deck to preserve conservation.
func handCard(doc *models.GameDoc, seat models.Seat, card models.PulseCard) models.PulseCard {
	displaced := doc.Hands[seat][0]
	doc.Hands[seat][0] = card
	for i := range doc.PulseDeck {
		if doc.PulseDeck[i].ID == card.ID {
			doc.PulseDeck[i] = displaced
			return card
		}
	}
	for i := range doc.PulseDiscard {
		if doc.PulseDiscard[i].ID == card.ID {
			doc.PulseDiscard[i] = displaced
			return card
		}
	}
	for _, s := range models.Seats {
		if s == seat {
			continue
		}
		for j := range doc.Hands[s] {
			if doc.Hands[s][j].ID == card.ID {
				doc.Hands[s][j] = displaced
				return card
			}
		}
	}
	if doc.Reservoir != nil && doc.Reservoir.ID == card.ID {
		*doc.Reservoir = displaced
	}
	return card
}
