package catalog

import "github.com/Daniangio/golem/internal/models"

// Default returns the built-in campaign content: three stages of sphere
// locations and the shared pool of golem parts. Content is data, not logic;
// the engine consumes only the effect lists.
func Default() *Catalog {
	return New(defaultLocations, defaultParts)
}

var defaultParts = []PartDef{
	{
		ID:   "furnace_heart",
		Name: "Furnace Heart",
		Effects: []Effect{
			{Type: EffectCardValueDelta, Amount: 1},
			{Type: EffectHeatOnSuit, Suit: models.SuitCinder, Amount: 1},
		},
	},
	{
		ID:   "vigil_lens",
		Name: "Vigil Lens",
		Effects: []Effect{
			{Type: EffectPeekTerrain},
		},
	},
	{
		ID:   "blind_oracle",
		Name: "Blind Oracle",
		Effects: []Effect{
			{Type: EffectHiddenTerrain},
			{Type: EffectHandCapacityDelta, Amount: 1},
		},
	},
	{
		ID:   "aux_battery",
		Name: "Auxiliary Battery",
		Effects: []Effect{
			{Type: EffectExtraCardAfterReveal},
		},
	},
	{
		ID:   "fuse_box",
		Name: "Fuse Box",
		Effects: []Effect{
			{Type: EffectFuseToZero},
		},
	},
	{
		ID:   "zero_coil",
		Name: "Zero Coil",
		Effects: []Effect{
			{Type: EffectZeroJolly, MinValue: 1, MaxValue: 8},
		},
	},
	{
		ID:   "bulwark_plate",
		Name: "Bulwark Plate",
		Effects: []Effect{
			{Type: EffectOvershootShield},
			{Type: EffectHandCapacityDelta, Amount: -1},
		},
	},
	{
		ID:   "courier_duct",
		Name: "Courier Duct",
		Effects: []Effect{
			{Type: EffectMandatoryExchange},
		},
	},
	{
		ID:   "open_palm",
		Name: "Open Palm",
		Effects: []Effect{
			{Type: EffectRevealPlayed},
			{Type: EffectHandCapacityDelta, Amount: 1},
		},
	},
	{
		ID:   "heat_sink",
		Name: "Heat Sink",
		Effects: []Effect{
			{Type: EffectFreeSwapOnMatch},
		},
	},
	{
		ID:   "scrap_maw",
		Name: "Scrap Maw",
		Effects: []Effect{
			{Type: EffectCardValueDelta, Amount: 2},
			{Type: EffectDiscardOnUndershoot, Amount: 2},
			{Type: EffectDisableMatchRefill},
		},
	},
	{
		ID:   "prism_anchor",
		Name: "Prism Anchor",
		Effects: []Effect{
			{Type: EffectPrismFixedZero},
			{Type: EffectHandCapacityDelta, Amount: 2},
		},
	},
}

var defaultLocations = []LocationCard{
	{
		ID:              "ember_foundry",
		Name:            "Ember Foundry",
		Stage:           1,
		CompulsoryParts: []string{"furnace_heart", "aux_battery"},
		OptionalParts:   []string{"vigil_lens", "zero_coil", "heat_sink"},
		Effects: []Effect{
			{Type: EffectSwapCost, Amount: 1},
			{Type: EffectFirstUndershootRefillsAll},
		},
	},
	{
		ID:              "mist_quarry",
		Name:            "Mist Quarry",
		Stage:           1,
		CompulsoryParts: []string{"blind_oracle"},
		OptionalParts:   []string{"fuse_box", "open_palm", "courier_duct", "heat_sink"},
		Effects: []Effect{
			{Type: EffectHeatOnNoMatch, Amount: 1},
			{Type: EffectExtraReservoir, Amount: 1},
		},
	},
	{
		ID:              "howling_span",
		Name:            "Howling Span",
		Stage:           2,
		CompulsoryParts: []string{"courier_duct", "bulwark_plate"},
		OptionalParts:   []string{"furnace_heart", "zero_coil", "vigil_lens"},
		Effects: []Effect{
			{Type: EffectNoRefillOnSuit, Suit: models.SuitSteam},
			{Type: EffectHeatOnParity, Parity: ParityOdd, Amount: 1},
			{Type: EffectSwapCost, Amount: 1},
		},
	},
	{
		ID:              "sunken_archive",
		Name:            "Sunken Archive",
		Stage:           2,
		CompulsoryParts: []string{"scrap_maw"},
		OptionalParts:   []string{"aux_battery", "fuse_box", "prism_anchor", "open_palm"},
		Effects: []Effect{
			{Type: EffectUndershootAsOvershoot},
			{Type: EffectSwapCost, Amount: 2},
			{Type: EffectFirstUndershootRefillsAll},
		},
	},
	{
		ID:              "glass_reactor",
		Name:            "Glass Reactor",
		Stage:           3,
		CompulsoryParts: []string{"bulwark_plate", "fuse_box"},
		OptionalParts:   []string{"furnace_heart", "heat_sink", "blind_oracle"},
		Effects: []Effect{
			{Type: EffectHeatOnParity, Parity: ParityEven, Amount: 1},
			{Type: EffectHeatOnNoMatch, Amount: 1},
			{Type: EffectSwapCost, Amount: 1},
		},
	},
	{
		ID:              "core_sanctum",
		Name:            "Core Sanctum",
		Stage:           3,
		CompulsoryParts: []string{"aux_battery", "courier_duct"},
		OptionalParts:   []string{"zero_coil", "vigil_lens", "scrap_maw"},
		Effects: []Effect{
			{Type: EffectNoRefillOnSuit, Suit: models.SuitCinder},
			{Type: EffectExtraReservoir, Amount: 1},
			{Type: EffectSwapCost, Amount: 2},
		},
	},
}
