// Package catalog holds the immutable game content: locations, parts and the
// closed set of gameplay effects they grant. The engine interprets only the
// Effects field of whatever it looks up here.
package catalog

import "github.com/Daniangio/golem/internal/models"

// EffectType enumerates the closed set of gameplay-modifying effects. Adding a
// variant requires touching the resolution switch in internal/game/effects.go,
// which is the single dispatcher for all of them.
type EffectType string

const (
	// EffectHandCapacityDelta adjusts a seat's hand capacity by Amount.
	EffectHandCapacityDelta EffectType = "hand_capacity_delta"
	// EffectCardValueDelta adds Amount to every value option of the seat's played cards.
	EffectCardValueDelta EffectType = "card_value_delta"
	// EffectZeroJolly lets a played 0-value card resolve to any integer between
	// MinValue and MaxValue (order-independent).
	EffectZeroJolly EffectType = "zero_jolly"
	// EffectPrismFixedZero forces played prism cards to resolve to 0.
	EffectPrismFixedZero EffectType = "prism_fixed_zero"
	// EffectRevealPlayed flags the seat's committed card as revealed during selection.
	EffectRevealPlayed EffectType = "reveal_played"

	// EffectExtraCardAfterReveal grants a once-per-chapter second card during actions.
	EffectExtraCardAfterReveal EffectType = "extra_card_after_reveal"
	// EffectFuseToZero grants a once-per-chapter override of any played card to 0.
	EffectFuseToZero EffectType = "fuse_to_zero"
	// EffectOvershootShield absorbs the first overshoot damage once per chapter.
	EffectOvershootShield EffectType = "overshoot_shield"

	// EffectHiddenTerrain makes the seat commit a card before terrain is revealed.
	EffectHiddenTerrain EffectType = "hidden_terrain"
	// EffectPeekTerrain entitles the seat to see upcoming terrain cards.
	EffectPeekTerrain EffectType = "peek_terrain"
	// EffectMandatoryExchange forces the seat into a card exchange after terrain reveal.
	EffectMandatoryExchange EffectType = "mandatory_exchange"

	// EffectDiscardOnUndershoot discards Amount random cards from the seat's hand
	// on an undershoot result.
	EffectDiscardOnUndershoot EffectType = "discard_on_undershoot"
	// EffectDisableMatchRefill suppresses the seat's own suit-match refill bonus
	// on undershoot.
	EffectDisableMatchRefill EffectType = "disable_match_refill"
	// EffectFirstUndershootRefillsAll refills every hand on the chapter's first
	// undershoot, once.
	EffectFirstUndershootRefillsAll EffectType = "first_undershoot_refills_all"
	// EffectNoRefillOnSuit blocks refill for seats that played Suit this pulse.
	EffectNoRefillOnSuit EffectType = "no_refill_on_suit"

	// EffectHeatOnNoMatch adds Amount heat when no played suit matched terrain.
	EffectHeatOnNoMatch EffectType = "heat_on_no_match"
	// EffectHeatOnParity adds Amount heat when the resolved total has Parity.
	EffectHeatOnParity EffectType = "heat_on_parity"
	// EffectHeatOnSuit adds Amount heat when the seat played Suit.
	EffectHeatOnSuit EffectType = "heat_on_suit"

	// EffectSwapCost sets the heat cost of a reservoir swap (location-wide).
	EffectSwapCost EffectType = "swap_cost"
	// EffectFreeSwapOnMatch waives the swap cost when swapped suits match.
	EffectFreeSwapOnMatch EffectType = "free_swap_on_match"
	// EffectExtraReservoir raises the reservoir slot count by Amount (max 2 total).
	EffectExtraReservoir EffectType = "extra_reservoir"
	// EffectUndershootAsOvershoot makes undershoot results deal overshoot damage.
	EffectUndershootAsOvershoot EffectType = "undershoot_as_overshoot"
)

// Parity values for EffectHeatOnParity.
const (
	ParityEven = "even"
	ParityOdd  = "odd"
)

// Effect is one tagged variant. Only the fields relevant to its Type are set.
type Effect struct {
	Type     EffectType  `json:"type"`
	Amount   int         `json:"amount,omitempty"`
	Suit     models.Suit `json:"suit,omitempty"`
	Parity   string      `json:"parity,omitempty"`
	MinValue int         `json:"minValue,omitempty"`
	MaxValue int         `json:"maxValue,omitempty"`
}
