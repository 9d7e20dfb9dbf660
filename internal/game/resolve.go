package game

import (
	"fmt"

	"github.com/Daniangio/golem/internal/catalog"
	"github.com/Daniangio/golem/internal/models"
)

// EndActions resolves the pulse. Host only; every seat must have played and
// no exchange may be pending. The resolved total is the best fit of every
// per-card value option against the terrain window; the outcome then drives
// damage, heat, discards, refills and progression.
func (e *Engine) EndActions(doc *models.GameDoc, actor string) error {
	if err := requirePulse(doc, models.PulseActions); err != nil {
		return err
	}
	if err := e.requireHost(doc, actor); err != nil {
		return err
	}
	if doc.Exchange != nil {
		return fmt.Errorf("%w: mandatory exchange is unresolved", ErrPreconditionNotMet)
	}
	for _, s := range models.Seats {
		if doc.Played[s] == nil {
			return fmt.Errorf("%w: seat %s has not played", ErrPreconditionNotMet, s)
		}
	}
	terrain := doc.Terrain()
	if terrain == nil {
		return fmt.Errorf("%w: no active terrain", ErrPreconditionNotMet)
	}

	locEffects := e.locationEffects(doc)

	// 1-2. Gather per-slot value options and search for the best-fit total.
	var options [][]int
	for _, s := range models.Seats {
		options = append(options, e.seatValueOptions(doc, s)...)
	}
	total := BestFitTotal(options, terrain.Min, terrain.Max)

	// 3. Classify, with the location optionally hardening undershoots.
	result := classify(total, terrain.Min, terrain.Max)
	if result == models.ResultUndershoot && HasEffect(locEffects, catalog.EffectUndershootAsOvershoot) {
		result = models.ResultOvershoot
	}

	// 4. Overshoot damage, absorbed once per chapter by an unspent shield.
	if result == models.ResultOvershoot {
		if shieldSeat := e.availableShieldSeat(doc); shieldSeat != "" {
			markAbilityUsed(doc, shieldSeat, catalog.EffectOvershootShield)
		} else {
			doc.Golem.HP--
		}
	}

	// 5. Discard every played card, remembered as this pulse's discards.
	doc.LastDiscarded = nil
	matched := make(map[models.Seat]bool)
	playedSuit := make(map[models.Seat][]models.Suit)
	for _, s := range models.Seats {
		played := doc.Played[s]
		cards := []models.PulseCard{played.Card}
		if played.ExtraCard != nil {
			cards = append(cards, *played.ExtraCard)
		}
		for _, c := range cards {
			doc.PulseDiscard = append(doc.PulseDiscard, c)
			doc.LastDiscarded = append(doc.LastDiscarded, c)
			playedSuit[s] = append(playedSuit[s], c.Suit)
			if c.Suit == terrain.Suit {
				matched[s] = true
			}
		}
	}
	anyMatched := len(matched) > 0

	// 6. Friction: location no-match and parity rules, then per-seat suit rules.
	if !anyMatched {
		if ef := findEffect(locEffects, catalog.EffectHeatOnNoMatch); ef != nil {
			doc.Golem.Heat += ef.Amount
		}
	}
	if ef := findEffect(locEffects, catalog.EffectHeatOnParity); ef != nil {
		even := total%2 == 0
		if (even && ef.Parity == catalog.ParityEven) || (!even && ef.Parity == catalog.ParityOdd) {
			doc.Golem.Heat += ef.Amount
		}
	}
	for _, s := range models.Seats {
		for _, ef := range e.EffectsForSeat(doc, s) {
			if ef.Type == catalog.EffectHeatOnSuit && suitIn(playedSuit[s], ef.Suit) {
				doc.Golem.Heat += ef.Amount
			}
		}
	}

	// 7. Heat threshold conversion.
	e.settleHeat(doc)

	// 8. Undershoot hand attrition.
	if result == models.ResultUndershoot {
		for _, s := range models.Seats {
			if ef := findEffect(e.EffectsForSeat(doc, s), catalog.EffectDiscardOnUndershoot); ef != nil {
				e.discardRandom(doc, s, ef.Amount)
			}
		}
	}

	// 9. Refill hands to capacity.
	e.refillHands(doc, result, matched, playedSuit, locEffects)

	// 10. Desperation: an empty hand after refill costs a hit point and
	// force-refills everyone.
	empty := false
	for _, s := range models.Seats {
		if len(doc.Hands[s]) == 0 {
			empty = true
			break
		}
	}
	if empty {
		doc.Golem.HP--
		for _, s := range models.Seats {
			e.refillSeat(doc, s)
		}
	}

	// 11. Advance the terrain cursor on any non-undershoot result; an
	// undershoot keeps the same terrain for a retry.
	resolvedStep := doc.Step
	if result != models.ResultUndershoot {
		doc.TerrainIndex++
		doc.Step++
	}

	// 12. Outcome log, bounded ring.
	outcome := models.PulseOutcome{
		Chapter:     doc.Chapter,
		Step:        resolvedStep,
		TerrainSuit: terrain.Suit,
		Min:         terrain.Min,
		Max:         terrain.Max,
		Total:       total,
		Result:      result,
	}
	doc.OutcomeLog = append(doc.OutcomeLog, outcome)
	if len(doc.OutcomeLog) > models.OutcomeLogCap {
		doc.OutcomeLog = doc.OutcomeLog[len(doc.OutcomeLog)-models.OutcomeLogCap:]
	}
	doc.LastOutcome = &outcome

	// 13. End conditions, in priority order.
	doc.Played = make(map[models.Seat]*models.PlayedCard)
	switch {
	case doc.Golem.HP <= 0:
		e.endMatch(doc, models.EndLoss)
	case doc.TerrainIndex >= len(doc.TerrainDeck):
		e.finishChapter(doc)
	default:
		e.openPulse(doc)
	}
	return nil
}

// seatValueOptions builds the option slot(s) one seat contributes to the
// best-fit search. A value override replaces the seat's options verbatim;
// otherwise each played card contributes its own slot, shifted by the seat's
// value-delta effects.
func (e *Engine) seatValueOptions(doc *models.GameDoc, seat models.Seat) [][]int {
	played := doc.Played[seat]
	if played.ValueOverride != nil {
		return [][]int{{*played.ValueOverride}}
	}
	effects := e.EffectsForSeat(doc, seat)
	delta := 0
	for _, ef := range effects {
		if ef.Type == catalog.EffectCardValueDelta {
			delta += ef.Amount
		}
	}
	cards := []models.PulseCard{played.Card}
	if played.ExtraCard != nil {
		cards = append(cards, *played.ExtraCard)
	}
	var out [][]int
	for _, c := range cards {
		opts := CardValueOptions(c, effects)
		// A locked prism contributes exactly 0; only unlocked cards shift.
		locked := c.IsPrism() && HasEffect(effects, catalog.EffectPrismFixedZero)
		if delta != 0 && !locked {
			shifted := make([]int, len(opts))
			for i, v := range opts {
				shifted[i] = v + delta
			}
			opts = shifted
		}
		out = append(out, opts)
	}
	return out
}

// availableShieldSeat returns the first seat holding an unspent overshoot
// shield, in seat order, or "".
func (e *Engine) availableShieldSeat(doc *models.GameDoc) models.Seat {
	for _, s := range models.Seats {
		if HasEffect(e.EffectsForSeat(doc, s), catalog.EffectOvershootShield) &&
			!abilityUsed(doc, s, catalog.EffectOvershootShield) {
			return s
		}
	}
	return ""
}

// discardRandom moves up to n uniformly random cards from a seat's hand into
// the discard pile.
func (e *Engine) discardRandom(doc *models.GameDoc, seat models.Seat, n int) {
	for i := 0; i < n && len(doc.Hands[seat]) > 0; i++ {
		idx := RandomInt(len(doc.Hands[seat]))
		card := doc.Hands[seat][idx]
		doc.Hands[seat] = append(doc.Hands[seat][:idx], doc.Hands[seat][idx+1:]...)
		doc.PulseDiscard = append(doc.PulseDiscard, card)
	}
}

// refillHands applies the refill rules for the resolved outcome.
func (e *Engine) refillHands(doc *models.GameDoc, result models.Result, matched map[models.Seat]bool, playedSuit map[models.Seat][]models.Suit, locEffects []catalog.Effect) {
	if result != models.ResultUndershoot {
		blockSuit := findEffect(locEffects, catalog.EffectNoRefillOnSuit)
		for _, s := range models.Seats {
			if blockSuit != nil && suitIn(playedSuit[s], blockSuit.Suit) {
				continue
			}
			e.refillSeat(doc, s)
		}
		return
	}

	// Undershoot: the chapter's one warmup refill covers everyone, once.
	if HasEffect(locEffects, catalog.EffectFirstUndershootRefillsAll) &&
		!doc.ChapterGlobalUsed[string(catalog.EffectFirstUndershootRefillsAll)] {
		if doc.ChapterGlobalUsed == nil {
			doc.ChapterGlobalUsed = make(map[string]bool)
		}
		doc.ChapterGlobalUsed[string(catalog.EffectFirstUndershootRefillsAll)] = true
		for _, s := range models.Seats {
			e.refillSeat(doc, s)
		}
		return
	}

	// Otherwise only seats whose played suit matched terrain refill, and a
	// seat's own effect can waive even that.
	for _, s := range models.Seats {
		if !matched[s] {
			continue
		}
		if HasEffect(e.EffectsForSeat(doc, s), catalog.EffectDisableMatchRefill) {
			continue
		}
		e.refillSeat(doc, s)
	}
}

// refillSeat tops a seat's hand up to capacity from the deck, reshuffling the
// discard pile as needed.
func (e *Engine) refillSeat(doc *models.GameDoc, seat models.Seat) {
	need := e.HandCapacityForSeat(doc, seat) - len(doc.Hands[seat])
	if need <= 0 {
		return
	}
	drawn, deck, discard := DrawWithReshuffle(doc.PulseDeck, doc.PulseDiscard, need)
	doc.Hands[seat] = append(doc.Hands[seat], drawn...)
	doc.PulseDeck = deck
	doc.PulseDiscard = discard
}

// finishChapter handles an exhausted terrain deck: a single-location run is
// won outright; a campaign moves to the next stage's location vote, or ends
// in a win when no further stages exist.
func (e *Engine) finishChapter(doc *models.GameDoc) {
	if doc.GameMode == models.ModeSingleLocation {
		e.endMatch(doc, models.EndWin)
		return
	}
	next := doc.Chapter + 1
	var options []string
	for _, l := range e.catalog.LocationsForStage(next) {
		options = append(options, l.ID)
	}
	if len(options) == 0 {
		e.endMatch(doc, models.EndWin)
		return
	}

	doc.Chapter = next
	doc.Phase = models.PhaseChooseLocation
	doc.LocationID = ""
	doc.LocationOptions = options
	doc.LocationVotes = make(map[models.Seat]string)
	doc.PartPicks = make(map[models.Seat]string)
	doc.PartAssignments = nil
	doc.PulseDeck = nil
	doc.PulseDiscard = nil
	doc.LastDiscarded = nil
	doc.Hands = nil
	doc.Reservoir, doc.Reservoir2 = nil, nil
	doc.TerrainDeck = nil
	doc.TerrainIndex = 0
	doc.Step = 0
	doc.PulsePhase = ""
	doc.Played = nil
	doc.Exchange = nil
	doc.ChapterAbilityUsed = nil
	doc.ChapterGlobalUsed = nil
}

func suitIn(suits []models.Suit, suit models.Suit) bool {
	for _, s := range suits {
		if s == suit {
			return true
		}
	}
	return false
}
