// Package models defines the shared game document aggregate and its card types.
// One GameDoc exists per match; it is the sole integration surface between the
// engine, the store and the read-side observers.
package models

import "time"

// Status is the match lifecycle state.
type Status string

const (
	StatusLobby     Status = "lobby"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Visibility controls who may join a lobby.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Mode selects between the staged campaign and a one-off location run.
type Mode string

const (
	ModeCampaign       Mode = "campaign"
	ModeSingleLocation Mode = "single_location"
)

// Phase is the coarse progression state while a match is active.
type Phase string

const (
	PhaseChooseLocation Phase = "choose_location"
	PhaseChooseParts    Phase = "choose_parts"
	PhasePlay           Phase = "play"
)

// PulsePhase is the nested sub-state within PhasePlay.
type PulsePhase string

const (
	PulsePreSelection PulsePhase = "pre_selection"
	PulseSelection    PulsePhase = "selection"
	PulseActions      PulsePhase = "actions"
)

// EndReason records how a completed match ended.
type EndReason string

const (
	EndWin  EndReason = "win"
	EndLoss EndReason = "loss"
)

// Seat identifies one of the three fixed player positions.
type Seat string

const (
	SeatP1 Seat = "p1"
	SeatP2 Seat = "p2"
	SeatP3 Seat = "p3"
)

// Seats lists all seats in canonical order. Iteration over seat-indexed maps
// must go through this slice so results are deterministic.
var Seats = []Seat{SeatP1, SeatP2, SeatP3}

// Suit is a pulse or terrain card suit.
type Suit string

const (
	SuitCinder Suit = "cinder"
	SuitStone  Suit = "stone"
	SuitEther  Suit = "ether"
	SuitSteam  Suit = "steam"
	SuitAcid   Suit = "acid"
	SuitPrism  Suit = "prism"
)

// BasicSuits are the five non-prism suits used for deck composition and terrain.
var BasicSuits = []Suit{SuitCinder, SuitStone, SuitEther, SuitSteam, SuitAcid}

// Prism sub-range identifiers.
const (
	PrismRangeLow  = "1-5"
	PrismRangeHigh = "6-10"
)

// PulseCard is one card of the 60-card pulse deck. Non-prism cards carry a
// fixed Value 0-10; prism cards carry a PrismRange and resolve at scoring time.
type PulseCard struct {
	ID         string `json:"id"`
	Suit       Suit   `json:"suit"`
	Value      int    `json:"value"`
	PrismRange string `json:"prismRange,omitempty"`
}

// IsPrism reports whether the card resolves through a prism sub-range.
func (c PulseCard) IsPrism() bool { return c.Suit == SuitPrism }

// TerrainCard is a target window revealed each pulse. Suit is never prism
// and Min < Max always holds.
type TerrainCard struct {
	ID   string `json:"id"`
	Suit Suit   `json:"suit"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

// PlayedCard records a seat's committed card(s) for the current pulse.
type PlayedCard struct {
	Card          PulseCard  `json:"card"`
	ExtraCard     *PulseCard `json:"extraCard,omitempty"`
	ValueOverride *int       `json:"valueOverride,omitempty"`
	Revealed      bool       `json:"revealed,omitempty"`
}

// ExchangeStatus tracks the two-step mandatory hand-off.
type ExchangeStatus string

const (
	ExchangeAwaitingOffer  ExchangeStatus = "awaiting_offer"
	ExchangeAwaitingReturn ExchangeStatus = "awaiting_return"
)

// Exchange is the pending mandatory card hand-off between two seats.
type Exchange struct {
	From    Seat           `json:"from"`
	To      Seat           `json:"to,omitempty"`
	Offered *PulseCard     `json:"offered,omitempty"`
	Status  ExchangeStatus `json:"status"`
}

// Golem is the shared resource pool the players keep alive.
type Golem struct {
	HP   int `json:"hp"`
	Heat int `json:"heat"`
}

// PulseOutcome is one entry of the bounded resolution log.
type PulseOutcome struct {
	Chapter     int    `json:"chapter"`
	Step        int    `json:"step"`
	TerrainSuit Suit   `json:"terrainSuit"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Total       int    `json:"total"`
	Result      Result `json:"result"`
}

// Result classifies a resolved pulse.
type Result string

const (
	ResultSuccess    Result = "success"
	ResultUndershoot Result = "undershoot"
	ResultOvershoot  Result = "overshoot"
)

// OutcomeLogCap bounds the outcome ring so the document never grows unbounded.
const OutcomeLogCap = 50

// GameDoc is the single shared aggregate for one match. Every engine operation
// validates against and mutates exactly one GameDoc inside a store transaction.
type GameDoc struct {
	ID          string     `json:"id"`
	Status      Status     `json:"status"`
	Visibility  Visibility `json:"visibility"`
	GameMode    Mode       `json:"gameMode"`
	CreatedBy   string     `json:"createdBy"`
	InvitedUIDs []string   `json:"invitedUids,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Players     map[Seat]string   `json:"players"`
	PlayerNames map[string]string `json:"playerNames"`

	Phase   Phase `json:"phase,omitempty"`
	Chapter int   `json:"chapter"`
	Step    int   `json:"step"`

	LocationID      string          `json:"locationId,omitempty"`
	LocationOptions []string        `json:"locationOptions,omitempty"`
	LocationVotes   map[Seat]string `json:"locationVotes,omitempty"`

	PartPicks       map[Seat]string   `json:"partPicks,omitempty"`
	PartAssignments map[string]string `json:"partAssignments,omitempty"`

	PulseDeck        []PulseCard          `json:"pulseDeck,omitempty"`
	PulseDiscard     []PulseCard          `json:"pulseDiscard,omitempty"`
	LastDiscarded    []PulseCard          `json:"lastDiscarded,omitempty"`
	Hands            map[Seat][]PulseCard `json:"hands,omitempty"`
	Reservoir        *PulseCard           `json:"reservoir,omitempty"`
	Reservoir2       *PulseCard           `json:"reservoir2,omitempty"`
	BaseHandCapacity int                  `json:"baseHandCapacity,omitempty"`

	TerrainDeck  []TerrainCard        `json:"terrainDeck,omitempty"`
	TerrainIndex int                  `json:"terrainIndex"`
	PulsePhase   PulsePhase           `json:"pulsePhase,omitempty"`
	Played       map[Seat]*PlayedCard `json:"played,omitempty"`
	Exchange     *Exchange            `json:"exchange,omitempty"`

	Golem Golem `json:"golem"`

	ChapterAbilityUsed map[Seat]map[string]bool `json:"chapterAbilityUsed,omitempty"`
	ChapterGlobalUsed  map[string]bool          `json:"chapterGlobalUsed,omitempty"`
	OutcomeLog         []PulseOutcome           `json:"outcomeLog,omitempty"`
	LastOutcome        *PulseOutcome            `json:"lastOutcome,omitempty"`

	EndedReason EndReason `json:"endedReason,omitempty"`
}

// SeatOf returns the seat occupied by uid, or "" if uid is not seated.
func (d *GameDoc) SeatOf(uid string) Seat {
	for _, s := range Seats {
		if d.Players[s] == uid && uid != "" {
			return s
		}
	}
	return ""
}

// FirstEmptySeat returns the first vacant seat in p1,p2,p3 order, or "".
func (d *GameDoc) FirstEmptySeat() Seat {
	for _, s := range Seats {
		if d.Players[s] == "" {
			return s
		}
	}
	return ""
}

// IsHost reports whether uid created the match.
func (d *GameDoc) IsHost(uid string) bool { return uid != "" && d.CreatedBy == uid }

// SeatsFilled reports whether all three seats are occupied.
func (d *GameDoc) SeatsFilled() bool {
	for _, s := range Seats {
		if d.Players[s] == "" {
			return false
		}
	}
	return true
}

// PlayerUIDs returns the seated occupant ids in seat order, skipping vacancies.
// This is the store's membership query surface.
func (d *GameDoc) PlayerUIDs() []string {
	out := make([]string, 0, len(Seats))
	for _, s := range Seats {
		if uid := d.Players[s]; uid != "" {
			out = append(out, uid)
		}
	}
	return out
}

// Terrain returns the active terrain card, or nil when the cursor is out of range.
func (d *GameDoc) Terrain() *TerrainCard {
	if d.TerrainIndex < 0 || d.TerrainIndex >= len(d.TerrainDeck) {
		return nil
	}
	return &d.TerrainDeck[d.TerrainIndex]
}

// Clone returns a deep copy of the document. Stores hand out clones so callers
// can never mutate committed state outside a transaction.
func (d *GameDoc) Clone() *GameDoc {
	c := *d
	c.InvitedUIDs = append([]string(nil), d.InvitedUIDs...)
	c.Players = cloneMap(d.Players)
	c.PlayerNames = cloneMap(d.PlayerNames)
	c.LocationOptions = append([]string(nil), d.LocationOptions...)
	c.LocationVotes = cloneMap(d.LocationVotes)
	c.PartPicks = cloneMap(d.PartPicks)
	c.PartAssignments = cloneMap(d.PartAssignments)
	c.PulseDeck = append([]PulseCard(nil), d.PulseDeck...)
	c.PulseDiscard = append([]PulseCard(nil), d.PulseDiscard...)
	c.LastDiscarded = append([]PulseCard(nil), d.LastDiscarded...)
	if d.Hands != nil {
		c.Hands = make(map[Seat][]PulseCard, len(d.Hands))
		for s, h := range d.Hands {
			c.Hands[s] = append([]PulseCard(nil), h...)
		}
	}
	c.Reservoir = cloneCard(d.Reservoir)
	c.Reservoir2 = cloneCard(d.Reservoir2)
	c.TerrainDeck = append([]TerrainCard(nil), d.TerrainDeck...)
	if d.Played != nil {
		c.Played = make(map[Seat]*PlayedCard, len(d.Played))
		for s, p := range d.Played {
			if p == nil {
				c.Played[s] = nil
				continue
			}
			pc := *p
			pc.ExtraCard = cloneCard(p.ExtraCard)
			if p.ValueOverride != nil {
				v := *p.ValueOverride
				pc.ValueOverride = &v
			}
			c.Played[s] = &pc
		}
	}
	if d.Exchange != nil {
		ex := *d.Exchange
		ex.Offered = cloneCard(d.Exchange.Offered)
		c.Exchange = &ex
	}
	if d.ChapterAbilityUsed != nil {
		c.ChapterAbilityUsed = make(map[Seat]map[string]bool, len(d.ChapterAbilityUsed))
		for s, m := range d.ChapterAbilityUsed {
			c.ChapterAbilityUsed[s] = cloneMap(m)
		}
	}
	c.ChapterGlobalUsed = cloneMap(d.ChapterGlobalUsed)
	c.OutcomeLog = append([]PulseOutcome(nil), d.OutcomeLog...)
	if d.LastOutcome != nil {
		o := *d.LastOutcome
		c.LastOutcome = &o
	}
	return &c
}

func cloneCard(c *PulseCard) *PulseCard {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
