package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daniangio/golem/internal/catalog"
	"github.com/Daniangio/golem/internal/models"
)

func TestSetLocationVoteValidatesAndIsIdempotent(t *testing.T) {
	e := NewEngine(plainCatalog())
	doc := newLobbyGame(t, e)
	require.NoError(t, e.Start(doc, hostUID))

	err := e.SetLocationVote(doc, hostUID, models.SeatP1, "atlantis")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, e.SetLocationVote(doc, hostUID, models.SeatP1, "plains"))
	require.NoError(t, e.SetLocationVote(doc, hostUID, models.SeatP1, "plains"))
	assert.Equal(t, "plains", doc.LocationVotes[models.SeatP1])

	// Re-voting a different option replaces the previous vote.
	require.NoError(t, e.SetLocationVote(doc, hostUID, models.SeatP1, "marsh"))
	assert.Equal(t, "marsh", doc.LocationVotes[models.SeatP1])
}

func TestAutoVoteBotsFillsOnlyBotSeats(t *testing.T) {
	e := NewEngine(plainCatalog())
	doc := e.NewGame("g", hostUID, "Host", models.VisibilityPublic, models.ModeCampaign)
	require.NoError(t, e.Join(doc, p2UID, "Two"))
	require.NoError(t, e.AddBot(doc, hostUID))
	require.NoError(t, e.Start(doc, hostUID))

	require.NoError(t, e.AutoVoteBots(doc, hostUID))
	assert.Empty(t, doc.LocationVotes[models.SeatP1])
	assert.Empty(t, doc.LocationVotes[models.SeatP2])
	assert.Contains(t, doc.LocationOptions, doc.LocationVotes[models.SeatP3])
}

func TestConfirmLocationRequiresAllVotes(t *testing.T) {
	e := NewEngine(plainCatalog())
	doc := newLobbyGame(t, e)
	require.NoError(t, e.Start(doc, hostUID))
	require.NoError(t, e.SetLocationVote(doc, hostUID, models.SeatP1, "plains"))

	err := e.ConfirmLocation(doc, hostUID, "")
	assert.ErrorIs(t, err, ErrPreconditionNotMet)
}

func TestConfirmLocationPlurality(t *testing.T) {
	e := NewEngine(plainCatalog())
	doc := newLobbyGame(t, e)
	require.NoError(t, e.Start(doc, hostUID))
	require.NoError(t, e.SetLocationVote(doc, hostUID, models.SeatP1, "marsh"))
	require.NoError(t, e.SetLocationVote(doc, p2UID, models.SeatP2, "marsh"))
	require.NoError(t, e.SetLocationVote(doc, p3UID, models.SeatP3, "plains"))

	require.NoError(t, e.ConfirmLocation(doc, hostUID, ""))
	assert.Equal(t, "marsh", doc.LocationID)
	assert.Equal(t, 1, doc.Chapter)
	assert.Equal(t, models.PhaseChooseParts, doc.Phase)
}

func TestConfirmLocationPluralityBeatsPreference(t *testing.T) {
	e := NewEngine(plainCatalog())
	doc := newLobbyGame(t, e)
	require.NoError(t, e.Start(doc, hostUID))
	require.NoError(t, e.SetLocationVote(doc, hostUID, models.SeatP1, "plains"))
	require.NoError(t, e.SetLocationVote(doc, p2UID, models.SeatP2, "marsh"))
	require.NoError(t, e.SetLocationVote(doc, p3UID, models.SeatP3, "plains"))

	require.NoError(t, e.ConfirmLocation(doc, hostUID, "marsh"))
	assert.Equal(t, "plains", doc.LocationID)
}

func TestConfirmLocationThreeWayTieUsesPreferred(t *testing.T) {
	e := NewEngine(plainCatalog())
	doc := newLobbyGame(t, e)
	require.NoError(t, e.Start(doc, hostUID))
	// Widen the slate so a genuine three-way tie is possible.
	doc.LocationOptions = []string{"plains", "marsh", "ridge"}
	require.NoError(t, e.SetLocationVote(doc, hostUID, models.SeatP1, "plains"))
	require.NoError(t, e.SetLocationVote(doc, p2UID, models.SeatP2, "marsh"))
	require.NoError(t, e.SetLocationVote(doc, p3UID, models.SeatP3, "ridge"))

	require.NoError(t, e.ConfirmLocation(doc, hostUID, "marsh"))
	assert.Equal(t, "marsh", doc.LocationID)
}

func TestConfirmLocationTieWithoutPreferencePicksTiedOption(t *testing.T) {
	e := NewEngine(plainCatalog())
	doc := newLobbyGame(t, e)
	require.NoError(t, e.Start(doc, hostUID))
	doc.LocationOptions = []string{"plains", "marsh", "ridge"}
	require.NoError(t, e.SetLocationVote(doc, hostUID, models.SeatP1, "plains"))
	require.NoError(t, e.SetLocationVote(doc, p2UID, models.SeatP2, "marsh"))
	require.NoError(t, e.SetLocationVote(doc, p3UID, models.SeatP3, "ridge"))

	require.NoError(t, e.ConfirmLocation(doc, hostUID, ""))
	assert.Contains(t, []string{"plains", "marsh", "ridge"}, doc.LocationID)
}

func TestSetPartPickExclusivity(t *testing.T) {
	e := NewEngine(plainCatalog())
	doc := newLobbyGame(t, e)
	require.NoError(t, e.Start(doc, hostUID))
	for _, s := range models.Seats {
		require.NoError(t, e.SetLocationVote(doc, actorFor(s), s, "plains"))
	}
	require.NoError(t, e.ConfirmLocation(doc, hostUID, ""))

	require.NoError(t, e.SetPartPick(doc, hostUID, models.SeatP1, "anchor"))

	err := e.SetPartPick(doc, p2UID, models.SeatP2, "anchor")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = e.SetPartPick(doc, p2UID, models.SeatP2, "nonexistent")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// A seat may reassign or clear its own pick.
	require.NoError(t, e.SetPartPick(doc, hostUID, models.SeatP1, "brace"))
	require.NoError(t, e.SetPartPick(doc, hostUID, models.SeatP1, ""))
	assert.NotContains(t, doc.PartPicks, models.SeatP1)
}

func TestConfirmPartsChecksCoverage(t *testing.T) {
	e := NewEngine(plainCatalog())
	doc := newLobbyGame(t, e)
	require.NoError(t, e.Start(doc, hostUID))
	for _, s := range models.Seats {
		require.NoError(t, e.SetLocationVote(doc, actorFor(s), s, "plains"))
	}
	require.NoError(t, e.ConfirmLocation(doc, hostUID, ""))

	err := e.ConfirmParts(doc, hostUID)
	assert.ErrorIs(t, err, ErrPreconditionNotMet)

	// All picked but the compulsory part is uncovered.
	require.NoError(t, e.SetPartPick(doc, hostUID, models.SeatP1, "brace"))
	require.NoError(t, e.SetPartPick(doc, p2UID, models.SeatP2, "coil"))
	err = e.ConfirmParts(doc, hostUID)
	assert.ErrorIs(t, err, ErrPreconditionNotMet)
}

func TestConfirmPartsDealsChapter(t *testing.T) {
	e := NewEngine(plainCatalog())
	doc := startedGame(t, e)

	assert.Equal(t, models.PulseSelection, doc.PulsePhase)
	assert.Equal(t, 1, doc.Step)
	assert.Equal(t, 0, doc.TerrainIndex)
	assert.Len(t, doc.TerrainDeck, TerrainDeckSize)
	for _, s := range models.Seats {
		assert.Len(t, doc.Hands[s], DefaultHandCapacity)
	}
	require.NotNil(t, doc.Reservoir)
	assert.Nil(t, doc.Reservoir2)
	assert.Equal(t, doc.Players[models.SeatP1], doc.PartAssignments["anchor"])

	// Card conservation from the very first deal.
	assert.Equal(t, PulseDeckSize, countPulseCards(doc))
}

func TestConfirmPartsExtraReservoir(t *testing.T) {
	e := NewEngine(catalogWith([]catalog.Effect{{Type: catalog.EffectExtraReservoir, Amount: 1}}, nil))
	doc := startedGame(t, e)

	require.NotNil(t, doc.Reservoir)
	require.NotNil(t, doc.Reservoir2)
	assert.Equal(t, PulseDeckSize, countPulseCards(doc))
}

func TestConfirmPartsHandCapacityDelta(t *testing.T) {
	e := NewEngine(catalogWith(nil, map[string][]catalog.Effect{
		"anchor": {{Type: catalog.EffectHandCapacityDelta, Amount: 2}},
		"brace":  {{Type: catalog.EffectHandCapacityDelta, Amount: -1}},
	}))
	doc := startedGame(t, e)

	assert.Len(t, doc.Hands[models.SeatP1], DefaultHandCapacity+2)
	assert.Len(t, doc.Hands[models.SeatP2], DefaultHandCapacity-1)
	assert.Len(t, doc.Hands[models.SeatP3], DefaultHandCapacity)
}

func TestOpenPulseHiddenTerrainStartsPreSelection(t *testing.T) {
	e := NewEngine(catalogWith(nil, map[string][]catalog.Effect{
		"coil": {{Type: catalog.EffectHiddenTerrain}},
	}))
	doc := startedGame(t, e)

	assert.Equal(t, models.PulsePreSelection, doc.PulsePhase)
}

func TestOpenPulseMandatoryExchangeSeeded(t *testing.T) {
	e := NewEngine(catalogWith(nil, map[string][]catalog.Effect{
		"brace": {{Type: catalog.EffectMandatoryExchange}},
	}))
	doc := startedGame(t, e)

	require.NotNil(t, doc.Exchange)
	assert.Equal(t, models.SeatP2, doc.Exchange.From)
	assert.Equal(t, models.ExchangeAwaitingOffer, doc.Exchange.Status)
}
