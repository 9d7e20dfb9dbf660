package service

import (
	"github.com/Daniangio/golem/internal/models"
)

// SeatView is one seat as a specific viewer sees it. Hand contents are only
// present for the viewer's own seat, and for bot seats when the viewer is the
// host (who plays for them).
type SeatView struct {
	Seat      models.Seat        `json:"seat"`
	UID       string             `json:"uid,omitempty"`
	Name      string             `json:"name,omitempty"`
	IsBot     bool               `json:"isBot,omitempty"`
	PartID    string             `json:"partId,omitempty"`
	HandCount int                `json:"handCount"`
	Hand      []models.PulseCard `json:"hand,omitempty"`
	Played    *PlayedView        `json:"played,omitempty"`
	Voted     bool               `json:"voted"`
}

// PlayedView hides a face-down committed card from everyone but its owner
// until the action window opens.
type PlayedView struct {
	FaceUp     bool              `json:"faceUp"`
	Card       *models.PulseCard `json:"card,omitempty"`
	ExtraCard  *models.PulseCard `json:"extraCard,omitempty"`
	ForcedZero bool              `json:"forcedZero,omitempty"`
}

// GameView is the redacted document snapshot handed to HTTP and websocket
// clients. Deck contents never leave the server; hidden-terrain seats do not
// see the terrain window while they still owe a blind play.
type GameView struct {
	ID         string            `json:"id"`
	Status     models.Status     `json:"status"`
	Visibility models.Visibility `json:"visibility"`
	GameMode   models.Mode       `json:"gameMode"`
	CreatedBy  string            `json:"createdBy"`

	Phase      models.Phase      `json:"phase,omitempty"`
	PulsePhase models.PulsePhase `json:"pulsePhase,omitempty"`
	Chapter    int               `json:"chapter"`
	Step       int               `json:"step"`

	LocationID      string   `json:"locationId,omitempty"`
	LocationOptions []string `json:"locationOptions,omitempty"`

	Seats []SeatView `json:"seats"`

	Golem models.Golem `json:"golem"`

	DeckCount     int                `json:"deckCount"`
	DiscardCount  int                `json:"discardCount"`
	LastDiscarded []models.PulseCard `json:"lastDiscarded,omitempty"`
	Reservoir     *models.PulseCard  `json:"reservoir,omitempty"`
	Reservoir2    *models.PulseCard  `json:"reservoir2,omitempty"`

	Terrain       *models.TerrainCard `json:"terrain,omitempty"`
	TerrainLeft   int                 `json:"terrainLeft"`
	PeekedTerrain *models.TerrainCard `json:"peekedTerrain,omitempty"`

	Exchange    *models.Exchange      `json:"exchange,omitempty"`
	LastOutcome *models.PulseOutcome  `json:"lastOutcome,omitempty"`
	OutcomeLog  []models.PulseOutcome `json:"outcomeLog,omitempty"`
	EndedReason models.EndReason      `json:"endedReason,omitempty"`
}

// ViewFor builds the snapshot of doc as seen by viewer.
func (s *Service) ViewFor(doc *models.GameDoc, viewer string) *GameView {
	v := &GameView{
		ID:              doc.ID,
		Status:          doc.Status,
		Visibility:      doc.Visibility,
		GameMode:        doc.GameMode,
		CreatedBy:       doc.CreatedBy,
		Phase:           doc.Phase,
		PulsePhase:      doc.PulsePhase,
		Chapter:         doc.Chapter,
		Step:            doc.Step,
		LocationID:      doc.LocationID,
		LocationOptions: doc.LocationOptions,
		Golem:           doc.Golem,
		DeckCount:       len(doc.PulseDeck),
		DiscardCount:    len(doc.PulseDiscard),
		LastDiscarded:   doc.LastDiscarded,
		Reservoir:       doc.Reservoir,
		Reservoir2:      doc.Reservoir2,
		TerrainLeft:     len(doc.TerrainDeck) - doc.TerrainIndex,
		Exchange:        doc.Exchange,
		LastOutcome:     doc.LastOutcome,
		OutcomeLog:      doc.OutcomeLog,
		EndedReason:     doc.EndedReason,
	}
	if v.TerrainLeft < 0 {
		v.TerrainLeft = 0
	}

	viewerSeat := doc.SeatOf(viewer)
	isHost := doc.IsHost(viewer)

	// During pre-selection the terrain stays face down for the whole table;
	// the blind seats owe their card first.
	if terrain := doc.Terrain(); terrain != nil && doc.Phase == models.PhasePlay && doc.PulsePhase != models.PulsePreSelection {
		v.Terrain = terrain
		if doc.TerrainIndex+1 < len(doc.TerrainDeck) && s.viewerPeeks(doc, viewerSeat) {
			next := doc.TerrainDeck[doc.TerrainIndex+1]
			v.PeekedTerrain = &next
		}
	}

	for _, seat := range models.Seats {
		sv := SeatView{Seat: seat}
		occ := doc.Occupant(seat)
		if occ.Kind != models.OccupantEmpty {
			sv.UID = occ.UID
			sv.Name = doc.PlayerNames[occ.UID]
			sv.IsBot = occ.Kind == models.OccupantBot
			sv.PartID = doc.PartPicks[seat]
			sv.HandCount = len(doc.Hands[seat])
			_, sv.Voted = doc.LocationVotes[seat]
			if seat == viewerSeat || (isHost && sv.IsBot) {
				sv.Hand = doc.Hands[seat]
			}
			sv.Played = playedView(doc, seat, viewerSeat, isHost)
		}
		v.Seats = append(v.Seats, sv)
	}
	return v
}

func (s *Service) viewerPeeks(doc *models.GameDoc, viewerSeat models.Seat) bool {
	if viewerSeat == "" {
		return false
	}
	for _, seat := range s.engine.PeekSeats(doc) {
		if seat == viewerSeat {
			return true
		}
	}
	return false
}

// playedView decides how much of a committed play the viewer may see. Face-up
// rules: the owner always sees their own card; everyone sees every card once
// the action window opens; a reveal effect makes the play public immediately.
func playedView(doc *models.GameDoc, seat, viewerSeat models.Seat, isHost bool) *PlayedView {
	played := doc.Played[seat]
	if played == nil {
		return nil
	}
	faceUp := doc.PulsePhase == models.PulseActions ||
		played.Revealed ||
		seat == viewerSeat ||
		(isHost && doc.Occupant(seat).Kind == models.OccupantBot)
	pv := &PlayedView{FaceUp: faceUp}
	if faceUp {
		card := played.Card
		pv.Card = &card
		pv.ExtraCard = played.ExtraCard
		pv.ForcedZero = played.ValueOverride != nil && *played.ValueOverride == 0
	}
	return pv
}
