package game

import (
	"github.com/Daniangio/golem/internal/catalog"
	"github.com/Daniangio/golem/internal/models"
)

// DefaultHandCapacity is the base hand size before effect deltas.
const DefaultHandCapacity = 5

// DefaultSwapCost is the heat cost of a reservoir swap when the location
// declares none.
const DefaultSwapCost = 1

// EffectsForSeat concatenates the effect list of the seat's picked part (if
// any) with the chosen location's effect list: part effects first, then
// location effects.
func (e *Engine) EffectsForSeat(doc *models.GameDoc, seat models.Seat) []catalog.Effect {
	var out []catalog.Effect
	if partID := doc.PartPicks[seat]; partID != "" {
		if part := e.catalog.PartByID(partID); part != nil {
			out = append(out, part.Effects...)
		}
	}
	out = append(out, e.locationEffects(doc)...)
	return out
}

// locationEffects returns the chosen location's effect list, empty when no
// location is confirmed.
func (e *Engine) locationEffects(doc *models.GameDoc) []catalog.Effect {
	if doc.LocationID == "" {
		return nil
	}
	loc := e.catalog.LocationByID(doc.LocationID)
	if loc == nil {
		return nil
	}
	return loc.Effects
}

// HasEffect reports membership of a type tag in an effect list.
func HasEffect(effects []catalog.Effect, t catalog.EffectType) bool {
	return findEffect(effects, t) != nil
}

func findEffect(effects []catalog.Effect, t catalog.EffectType) *catalog.Effect {
	for i := range effects {
		if effects[i].Type == t {
			return &effects[i]
		}
	}
	return nil
}

// HandCapacityForSeat returns the seat's hand capacity: the base capacity plus
// every hand_capacity_delta in scope, floored at zero.
func (e *Engine) HandCapacityForSeat(doc *models.GameDoc, seat models.Seat) int {
	capacity := doc.BaseHandCapacity
	for _, ef := range e.EffectsForSeat(doc, seat) {
		if ef.Type == catalog.EffectHandCapacityDelta {
			capacity += ef.Amount
		}
	}
	if capacity < 0 {
		return 0
	}
	return capacity
}

// PreSelectionSeats returns the seats that must commit a card before the
// terrain card is revealed to them.
func (e *Engine) PreSelectionSeats(doc *models.GameDoc) []models.Seat {
	var out []models.Seat
	for _, s := range models.Seats {
		if HasEffect(e.EffectsForSeat(doc, s), catalog.EffectHiddenTerrain) {
			out = append(out, s)
		}
	}
	return out
}

// MandatoryExchangeSeat returns the (at most one) seat whose active effects
// require a card exchange right after terrain reveal, or "".
func (e *Engine) MandatoryExchangeSeat(doc *models.GameDoc) models.Seat {
	for _, s := range models.Seats {
		if HasEffect(e.EffectsForSeat(doc, s), catalog.EffectMandatoryExchange) {
			return s
		}
	}
	return ""
}

// PeekSeats returns the seats entitled to see upcoming terrain cards.
func (e *Engine) PeekSeats(doc *models.GameDoc) []models.Seat {
	var out []models.Seat
	for _, s := range models.Seats {
		if HasEffect(e.EffectsForSeat(doc, s), catalog.EffectPeekTerrain) {
			out = append(out, s)
		}
	}
	return out
}

// swapCost returns the heat cost of a reservoir swap at the current location.
func (e *Engine) swapCost(doc *models.GameDoc) int {
	if ef := findEffect(e.locationEffects(doc), catalog.EffectSwapCost); ef != nil {
		return ef.Amount
	}
	return DefaultSwapCost
}

// reservoirCount returns how many reservoir slots the location grants (1 or 2).
func (e *Engine) reservoirCount(doc *models.GameDoc) int {
	count := 1
	if ef := findEffect(e.locationEffects(doc), catalog.EffectExtraReservoir); ef != nil {
		count += ef.Amount
	}
	if count > 2 {
		count = 2
	}
	if count < 1 {
		count = 1
	}
	return count
}
