package game

import (
	"fmt"

	"github.com/Daniangio/golem/internal/catalog"
	"github.com/Daniangio/golem/internal/models"
)

// requirePulse checks the nested pulse sub-phase inside the play phase.
func requirePulse(doc *models.GameDoc, want ...models.PulsePhase) error {
	if err := requirePhase(doc, models.PhasePlay); err != nil {
		return err
	}
	for _, w := range want {
		if doc.PulsePhase == w {
			return nil
		}
	}
	return fmt.Errorf("%w: pulse phase is %s", ErrInvalidPhase, doc.PulsePhase)
}

// PlayCard commits a seat's card for the current pulse. Seats under a hidden
// terrain rule must commit first, blind; everyone else waits for them. Plays
// are blocked while a mandatory exchange is unresolved during plain selection.
func (e *Engine) PlayCard(doc *models.GameDoc, actor string, seat models.Seat, cardID string) error {
	if err := requirePulse(doc, models.PulseSelection, models.PulsePreSelection); err != nil {
		return err
	}
	if err := e.authorizeSeat(doc, actor, seat); err != nil {
		return err
	}
	if doc.PulsePhase == models.PulseSelection && doc.Exchange != nil {
		return fmt.Errorf("%w: mandatory exchange is unresolved", ErrPreconditionNotMet)
	}
	if doc.Played[seat] != nil {
		return fmt.Errorf("%w: seat %s already played this pulse", ErrPreconditionNotMet, seat)
	}
	restricted := e.PreSelectionSeats(doc)
	if doc.PulsePhase == models.PulsePreSelection && len(restricted) > 0 && !seatIn(restricted, seat) {
		return fmt.Errorf("%w: hidden-terrain seats must play first", ErrPreconditionNotMet)
	}

	card, err := removeFromHand(doc, seat, cardID)
	if err != nil {
		return err
	}
	played := &models.PlayedCard{Card: card}
	if HasEffect(e.EffectsForSeat(doc, seat), catalog.EffectRevealPlayed) {
		played.Revealed = true
	}
	if doc.Played == nil {
		doc.Played = make(map[models.Seat]*models.PlayedCard)
	}
	doc.Played[seat] = played

	e.advancePulsePhase(doc, restricted)
	return nil
}

// advancePulsePhase recomputes the pulse sub-phase after a commit: everyone
// played moves to actions; all restricted seats done reveals the terrain.
// The mandatory exchange is seeded only when the commit crosses the terrain
// reveal, that is when pre-selection ends. A plain-selection pulse seeds at
// pulse open instead, so the exchange happens exactly once per pulse.
func (e *Engine) advancePulsePhase(doc *models.GameDoc, restricted []models.Seat) {
	wasBlind := doc.PulsePhase == models.PulsePreSelection
	all := true
	for _, s := range models.Seats {
		if doc.Played[s] == nil {
			all = false
			break
		}
	}
	if all {
		doc.PulsePhase = models.PulseActions
		if wasBlind {
			e.seedExchange(doc)
		}
		return
	}
	if wasBlind {
		done := true
		for _, s := range restricted {
			if doc.Played[s] == nil {
				done = false
				break
			}
		}
		if done {
			doc.PulsePhase = models.PulseSelection
			e.seedExchange(doc)
		}
	}
}

// OfferExchangeCard is step one of the mandatory hand-off: the obliged seat
// gives one of its cards to a teammate. The card moves immediately; the
// recipient then owes a card back.
func (e *Engine) OfferExchangeCard(doc *models.GameDoc, actor string, seat models.Seat, cardID string, to models.Seat) error {
	if err := requirePhase(doc, models.PhasePlay); err != nil {
		return err
	}
	if doc.Exchange == nil || doc.Exchange.Status != models.ExchangeAwaitingOffer {
		return fmt.Errorf("%w: no exchange awaiting an offer", ErrPreconditionNotMet)
	}
	if doc.Exchange.From != seat {
		return fmt.Errorf("%w: exchange belongs to seat %s", ErrUnauthorized, doc.Exchange.From)
	}
	if err := e.authorizeSeat(doc, actor, seat); err != nil {
		return err
	}
	if to == seat || !seatIn(models.Seats, to) {
		return fmt.Errorf("%w: invalid exchange recipient %s", ErrInvalidArgument, to)
	}
	card, err := removeFromHand(doc, seat, cardID)
	if err != nil {
		return err
	}
	doc.Hands[to] = append(doc.Hands[to], card)
	doc.Exchange.To = to
	doc.Exchange.Offered = &card
	doc.Exchange.Status = models.ExchangeAwaitingReturn
	return nil
}

// ReturnExchangeCard is step two: the recipient sends any card from its own
// hand back to the offering seat (possibly the one just received), which
// settles the exchange.
func (e *Engine) ReturnExchangeCard(doc *models.GameDoc, actor string, seat models.Seat, cardID string) error {
	if err := requirePhase(doc, models.PhasePlay); err != nil {
		return err
	}
	if doc.Exchange == nil || doc.Exchange.Status != models.ExchangeAwaitingReturn {
		return fmt.Errorf("%w: no exchange awaiting a return", ErrPreconditionNotMet)
	}
	if doc.Exchange.To != seat {
		return fmt.Errorf("%w: return is owed by seat %s", ErrUnauthorized, doc.Exchange.To)
	}
	if err := e.authorizeSeat(doc, actor, seat); err != nil {
		return err
	}
	card, err := removeFromHand(doc, seat, cardID)
	if err != nil {
		return err
	}
	doc.Hands[doc.Exchange.From] = append(doc.Hands[doc.Exchange.From], card)
	doc.Exchange = nil
	return nil
}

// PlayAuxBattery attaches a once-per-chapter second card to the seat's play
// after the terrain is revealed.
func (e *Engine) PlayAuxBattery(doc *models.GameDoc, actor string, seat models.Seat, cardID string) error {
	if err := requirePulse(doc, models.PulseActions); err != nil {
		return err
	}
	if err := e.authorizeSeat(doc, actor, seat); err != nil {
		return err
	}
	if !HasEffect(e.EffectsForSeat(doc, seat), catalog.EffectExtraCardAfterReveal) {
		return fmt.Errorf("%w: seat %s has no extra-card ability", ErrPreconditionNotMet, seat)
	}
	if abilityUsed(doc, seat, catalog.EffectExtraCardAfterReveal) {
		return fmt.Errorf("%w: extra-card ability already used this chapter", ErrPreconditionNotMet)
	}
	played := doc.Played[seat]
	if played == nil {
		return fmt.Errorf("%w: seat %s has not played a primary card", ErrPreconditionNotMet, seat)
	}
	if played.ExtraCard != nil {
		return fmt.Errorf("%w: an extra card is already attached", ErrPreconditionNotMet)
	}
	card, err := removeFromHand(doc, seat, cardID)
	if err != nil {
		return err
	}
	played.ExtraCard = &card
	markAbilityUsed(doc, seat, catalog.EffectExtraCardAfterReveal)
	return nil
}

// UseFuse burns the seat's once-per-chapter fuse to force a target seat's
// play to resolve as zero. Self-targeting is allowed.
func (e *Engine) UseFuse(doc *models.GameDoc, actor string, seat, target models.Seat) error {
	if err := requirePulse(doc, models.PulseActions); err != nil {
		return err
	}
	if err := e.authorizeSeat(doc, actor, seat); err != nil {
		return err
	}
	if !HasEffect(e.EffectsForSeat(doc, seat), catalog.EffectFuseToZero) {
		return fmt.Errorf("%w: seat %s has no fuse ability", ErrPreconditionNotMet, seat)
	}
	if abilityUsed(doc, seat, catalog.EffectFuseToZero) {
		return fmt.Errorf("%w: fuse already used this chapter", ErrPreconditionNotMet)
	}
	played := doc.Played[target]
	if played == nil {
		return fmt.Errorf("%w: target seat %s has not played", ErrPreconditionNotMet, target)
	}
	if played.ValueOverride != nil && *played.ValueOverride == 0 {
		return fmt.Errorf("%w: target play is already forced to zero", ErrPreconditionNotMet)
	}
	zero := 0
	played.ValueOverride = &zero
	markAbilityUsed(doc, seat, catalog.EffectFuseToZero)
	return nil
}

// SwapWithReservoir trades the seat's played primary card with a reservoir
// slot (1 or 2), clearing any value override on the play. The swap costs heat
// per the location's rate unless the seat's free-swap effect applies and the
// suits resonate. Crossing the heat threshold converts into hull damage and
// can end the match on the spot.
func (e *Engine) SwapWithReservoir(doc *models.GameDoc, actor string, seat models.Seat, slot int) error {
	if err := requirePulse(doc, models.PulseActions); err != nil {
		return err
	}
	if err := e.authorizeSeat(doc, actor, seat); err != nil {
		return err
	}
	played := doc.Played[seat]
	if played == nil {
		return fmt.Errorf("%w: seat %s has not played", ErrPreconditionNotMet, seat)
	}
	var res **models.PulseCard
	switch slot {
	case 1:
		res = &doc.Reservoir
	case 2:
		res = &doc.Reservoir2
	default:
		return fmt.Errorf("%w: reservoir slot %d", ErrInvalidArgument, slot)
	}
	if *res == nil {
		return fmt.Errorf("%w: reservoir slot %d is empty", ErrInvalidArgument, slot)
	}

	incoming := **res
	outgoing := played.Card
	played.Card = incoming
	played.ValueOverride = nil
	**res = outgoing

	cost := e.swapCost(doc)
	if cost > 0 &&
		HasEffect(e.EffectsForSeat(doc, seat), catalog.EffectFreeSwapOnMatch) &&
		incoming.Suit == outgoing.Suit {
		cost = 0
	}
	doc.Golem.Heat += cost
	e.settleHeat(doc)
	if doc.Golem.HP <= 0 {
		e.endMatch(doc, models.EndLoss)
	}
	return nil
}

// settleHeat clamps heat at zero and converts a crossed threshold into one
// hit point of damage, resetting heat.
func (e *Engine) settleHeat(doc *models.GameDoc) {
	if doc.Golem.Heat < 0 {
		doc.Golem.Heat = 0
	}
	if doc.Golem.Heat >= HeatThreshold {
		doc.Golem.HP--
		doc.Golem.Heat = 0
	}
}

// endMatch flips the document into its terminal state.
func (e *Engine) endMatch(doc *models.GameDoc, reason models.EndReason) {
	doc.Status = models.StatusCompleted
	doc.EndedReason = reason
}

func seatIn(seats []models.Seat, seat models.Seat) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}
