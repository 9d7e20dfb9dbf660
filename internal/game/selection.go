package game

import (
	"fmt"

	"github.com/Daniangio/golem/internal/models"
)

// SetLocationVote records a seat's vote for one of the listed locations.
// Re-voting (including the same choice) is allowed and idempotent.
func (e *Engine) SetLocationVote(doc *models.GameDoc, actor string, seat models.Seat, locationID string) error {
	if err := requirePhase(doc, models.PhaseChooseLocation); err != nil {
		return err
	}
	if err := e.authorizeSeat(doc, actor, seat); err != nil {
		return err
	}
	if !contains(doc.LocationOptions, locationID) {
		return fmt.Errorf("%w: location %s is not among the current options", ErrInvalidArgument, locationID)
	}
	if doc.LocationVotes == nil {
		doc.LocationVotes = make(map[models.Seat]string)
	}
	doc.LocationVotes[seat] = locationID
	return nil
}

// AutoVoteBots assigns a uniformly random option to every bot seat that has
// not voted yet. Host only.
func (e *Engine) AutoVoteBots(doc *models.GameDoc, actor string) error {
	if err := requirePhase(doc, models.PhaseChooseLocation); err != nil {
		return err
	}
	if err := e.requireHost(doc, actor); err != nil {
		return err
	}
	if doc.LocationVotes == nil {
		doc.LocationVotes = make(map[models.Seat]string)
	}
	for _, s := range models.Seats {
		if doc.Occupant(s).Kind != models.OccupantBot {
			continue
		}
		if _, voted := doc.LocationVotes[s]; voted {
			continue
		}
		doc.LocationVotes[s] = doc.LocationOptions[RandomInt(len(doc.LocationOptions))]
	}
	return nil
}

// ConfirmLocation closes the vote: plurality wins, ties break uniformly at
// random unless the host's preferred id is among the tied candidates. The
// chapter number follows the chosen location's declared stage and the match
// moves on to part picking. Host only.
func (e *Engine) ConfirmLocation(doc *models.GameDoc, actor, preferredID string) error {
	if err := requirePhase(doc, models.PhaseChooseLocation); err != nil {
		return err
	}
	if err := e.requireHost(doc, actor); err != nil {
		return err
	}
	for _, s := range models.Seats {
		if doc.LocationVotes[s] == "" {
			return fmt.Errorf("%w: seat %s has not voted", ErrPreconditionNotMet, s)
		}
	}

	counts := make(map[string]int)
	for _, s := range models.Seats {
		counts[doc.LocationVotes[s]]++
	}
	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	// Tied candidates in option order for a deterministic base ordering.
	var tied []string
	for _, id := range doc.LocationOptions {
		if counts[id] == best {
			tied = append(tied, id)
		}
	}
	winner := tied[0]
	if len(tied) > 1 {
		if preferredID != "" && contains(tied, preferredID) {
			winner = preferredID
		} else {
			winner = tied[RandomInt(len(tied))]
		}
	}

	loc := e.catalog.LocationByID(winner)
	if loc == nil {
		return fmt.Errorf("%w: unknown location %s", ErrInvalidArgument, winner)
	}
	doc.LocationID = winner
	doc.Chapter = loc.Stage
	doc.Phase = models.PhaseChooseParts
	doc.PartPicks = make(map[models.Seat]string)
	doc.PartAssignments = nil
	return nil
}

// SetPartPick records (or clears, with an empty id) a seat's part choice.
// Parts already claimed by another seat are rejected; a seat may freely
// reassign its own pick.
func (e *Engine) SetPartPick(doc *models.GameDoc, actor string, seat models.Seat, partID string) error {
	if err := requirePhase(doc, models.PhaseChooseParts); err != nil {
		return err
	}
	if err := e.authorizeSeat(doc, actor, seat); err != nil {
		return err
	}
	if doc.PartPicks == nil {
		doc.PartPicks = make(map[models.Seat]string)
	}
	if partID == "" {
		delete(doc.PartPicks, seat)
		return nil
	}
	loc := e.catalog.LocationByID(doc.LocationID)
	if loc == nil {
		return fmt.Errorf("%w: no location chosen", ErrPreconditionNotMet)
	}
	if !contains(loc.CompulsoryParts, partID) && !contains(loc.OptionalParts, partID) {
		return fmt.Errorf("%w: part %s is not offered at %s", ErrInvalidArgument, partID, loc.ID)
	}
	for _, s := range models.Seats {
		if s != seat && doc.PartPicks[s] == partID {
			return fmt.Errorf("%w: part %s already taken", ErrInvalidArgument, partID)
		}
	}
	doc.PartPicks[seat] = partID
	return nil
}

// ConfirmParts finalizes the chapter setup: every seat holds a distinct part,
// every compulsory part is covered, a fresh shuffled pulse deck is dealt into
// capacity-sized hands, the reservoir slots and terrain deck are laid out, the
// per-chapter bookkeeping resets and play begins. Host only.
func (e *Engine) ConfirmParts(doc *models.GameDoc, actor string) error {
	if err := requirePhase(doc, models.PhaseChooseParts); err != nil {
		return err
	}
	if err := e.requireHost(doc, actor); err != nil {
		return err
	}
	loc := e.catalog.LocationByID(doc.LocationID)
	if loc == nil {
		return fmt.Errorf("%w: no location chosen", ErrPreconditionNotMet)
	}
	seen := make(map[string]models.Seat)
	for _, s := range models.Seats {
		pick := doc.PartPicks[s]
		if pick == "" {
			return fmt.Errorf("%w: seat %s has not picked a part", ErrPreconditionNotMet, s)
		}
		if other, dup := seen[pick]; dup {
			return fmt.Errorf("%w: seats %s and %s share part %s", ErrPreconditionNotMet, other, s, pick)
		}
		seen[pick] = s
	}
	for _, compulsory := range loc.CompulsoryParts {
		if _, ok := seen[compulsory]; !ok {
			return fmt.Errorf("%w: compulsory part %s is unassigned", ErrPreconditionNotMet, compulsory)
		}
	}

	doc.PartAssignments = make(map[string]string, len(models.Seats))
	for _, s := range models.Seats {
		doc.PartAssignments[doc.PartPicks[s]] = doc.Players[s]
	}

	deck := NewPulseDeck()
	Shuffle(deck)
	discard := []models.PulseCard{}
	doc.Hands = make(map[models.Seat][]models.PulseCard, len(models.Seats))
	for _, s := range models.Seats {
		var hand []models.PulseCard
		hand, deck, discard = DrawWithReshuffle(deck, discard, e.HandCapacityForSeat(doc, s))
		doc.Hands[s] = hand
	}
	doc.Reservoir, doc.Reservoir2 = nil, nil
	reserve, deck, discard := DrawWithReshuffle(deck, discard, e.reservoirCount(doc))
	if len(reserve) > 0 {
		doc.Reservoir = &reserve[0]
	}
	if len(reserve) > 1 {
		doc.Reservoir2 = &reserve[1]
	}
	doc.PulseDeck = deck
	doc.PulseDiscard = discard
	doc.LastDiscarded = nil

	doc.TerrainDeck = NewTerrainDeck(loc.Stage)
	doc.TerrainIndex = 0
	doc.Step = 1
	doc.Played = make(map[models.Seat]*models.PlayedCard)
	doc.Exchange = nil
	doc.ChapterAbilityUsed = make(map[models.Seat]map[string]bool)
	doc.ChapterGlobalUsed = make(map[string]bool)
	doc.OutcomeLog = nil
	doc.LastOutcome = nil

	doc.Phase = models.PhasePlay
	e.openPulse(doc)
	return nil
}

// openPulse sets the pulse sub-phase for a fresh pulse and seeds the mandatory
// exchange when the terrain is immediately visible.
func (e *Engine) openPulse(doc *models.GameDoc) {
	if len(e.PreSelectionSeats(doc)) > 0 {
		doc.PulsePhase = models.PulsePreSelection
		return
	}
	doc.PulsePhase = models.PulseSelection
	e.seedExchange(doc)
}

// seedExchange opens the mandatory hand-off for the obliged seat, if any and
// none is already pending.
func (e *Engine) seedExchange(doc *models.GameDoc) {
	if doc.Exchange != nil {
		return
	}
	if seat := e.MandatoryExchangeSeat(doc); seat != "" {
		doc.Exchange = &models.Exchange{From: seat, Status: models.ExchangeAwaitingOffer}
	}
}
