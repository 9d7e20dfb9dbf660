package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOccupant(t *testing.T) {
	assert.Equal(t, OccupantEmpty, ParseOccupant("").Kind)

	human := ParseOccupant("uid-123")
	assert.Equal(t, OccupantHuman, human.Kind)
	assert.Equal(t, "uid-123", human.UID)

	bot := ParseOccupant(BotID("abc"))
	assert.Equal(t, OccupantBot, bot.Kind)
	assert.Equal(t, "bot:abc", bot.UID)
}

func TestIsBot(t *testing.T) {
	assert.True(t, IsBot(BotID("x")))
	assert.False(t, IsBot("uid-x"))
	assert.False(t, IsBot(""))
}

func TestSeatHelpers(t *testing.T) {
	doc := &GameDoc{Players: map[Seat]string{SeatP1: "a", SeatP2: "", SeatP3: "c"}}

	assert.Equal(t, SeatP1, doc.SeatOf("a"))
	assert.Equal(t, Seat(""), doc.SeatOf("missing"))
	assert.Equal(t, Seat(""), doc.SeatOf(""))
	assert.Equal(t, SeatP2, doc.FirstEmptySeat())
	assert.False(t, doc.SeatsFilled())
	assert.Equal(t, []string{"a", "c"}, doc.PlayerUIDs())
}

func TestTerrainCursor(t *testing.T) {
	doc := &GameDoc{TerrainDeck: []TerrainCard{{ID: "t0"}, {ID: "t1"}}}
	assert.Equal(t, "t0", doc.Terrain().ID)
	doc.TerrainIndex = 2
	assert.Nil(t, doc.Terrain())
}

func TestCloneIsDeep(t *testing.T) {
	v := 3
	doc := &GameDoc{
		ID:      "g",
		Players: map[Seat]string{SeatP1: "a"},
		Hands: map[Seat][]PulseCard{
			SeatP1: {{ID: "c1", Suit: SuitStone, Value: 4}},
		},
		Played: map[Seat]*PlayedCard{
			SeatP1: {Card: PulseCard{ID: "c2"}, ValueOverride: &v},
		},
		Exchange:          &Exchange{From: SeatP1, Status: ExchangeAwaitingOffer},
		ChapterGlobalUsed: map[string]bool{"x": true},
	}

	clone := doc.Clone()
	clone.Players[SeatP1] = "b"
	clone.Hands[SeatP1][0].Value = 9
	*clone.Played[SeatP1].ValueOverride = 7
	clone.Exchange.Status = ExchangeAwaitingReturn
	clone.ChapterGlobalUsed["x"] = false

	assert.Equal(t, "a", doc.Players[SeatP1])
	assert.Equal(t, 4, doc.Hands[SeatP1][0].Value)
	assert.Equal(t, 3, *doc.Played[SeatP1].ValueOverride)
	assert.Equal(t, ExchangeAwaitingOffer, doc.Exchange.Status)
	assert.True(t, doc.ChapterGlobalUsed["x"])
}
