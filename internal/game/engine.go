// Package game implements the Golem state-transition engine: pure operations
// over a single GameDoc plus the deck, scoring and effect-resolution helpers
// they are built on. Operations validate preconditions and mutate the document
// in place; they never touch a store, a clock beyond timestamps, or a logger.
// The service layer runs each operation inside a store transaction.
package game

import (
	"fmt"

	"github.com/Daniangio/golem/internal/catalog"
	"github.com/Daniangio/golem/internal/models"
)

// StartingHP is the golem's hit points at match start.
const StartingHP = 5

// HeatThreshold converts accumulated heat into one hit point of damage.
const HeatThreshold = 3

// Engine interprets operations against the content catalog. It is stateless;
// one instance serves every match.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine builds an engine over an immutable content catalog.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Catalog exposes the content lookup to collaborators (HTTP snapshots).
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// authorizeSeat checks that actor may act for seat: either actor occupies the
// seat, or the seat is bot-occupied and actor is the host proxying for it.
func (e *Engine) authorizeSeat(doc *models.GameDoc, actor string, seat models.Seat) error {
	occ := doc.Occupant(seat)
	switch occ.Kind {
	case models.OccupantEmpty:
		return fmt.Errorf("%w: seat %s is empty", ErrInvalidArgument, seat)
	case models.OccupantBot:
		if !doc.IsHost(actor) {
			return fmt.Errorf("%w: only the host may act for bot seats", ErrUnauthorized)
		}
	default:
		if occ.UID != actor {
			return fmt.Errorf("%w: actor does not occupy seat %s", ErrUnauthorized, seat)
		}
	}
	return nil
}

// requireHost checks that actor created the match.
func (e *Engine) requireHost(doc *models.GameDoc, actor string) error {
	if !doc.IsHost(actor) {
		return fmt.Errorf("%w: host only", ErrUnauthorized)
	}
	return nil
}

// requireStatus checks the match lifecycle state.
func requireStatus(doc *models.GameDoc, want models.Status) error {
	if doc.Status != want {
		return fmt.Errorf("%w: status is %s, want %s", ErrInvalidPhase, doc.Status, want)
	}
	return nil
}

// requirePhase checks the active progression phase.
func requirePhase(doc *models.GameDoc, want models.Phase) error {
	if err := requireStatus(doc, models.StatusActive); err != nil {
		return err
	}
	if doc.Phase != want {
		return fmt.Errorf("%w: phase is %s, want %s", ErrInvalidPhase, doc.Phase, want)
	}
	return nil
}

// removeFromHand extracts the card with the given id from a seat's hand.
func removeFromHand(doc *models.GameDoc, seat models.Seat, cardID string) (models.PulseCard, error) {
	hand := doc.Hands[seat]
	for i, c := range hand {
		if c.ID == cardID {
			doc.Hands[seat] = append(append([]models.PulseCard{}, hand[:i]...), hand[i+1:]...)
			return c, nil
		}
	}
	return models.PulseCard{}, fmt.Errorf("%w: card %s not in hand of %s", ErrInvalidArgument, cardID, seat)
}

// markAbilityUsed records a once-per-chapter ability consumption for a seat.
func markAbilityUsed(doc *models.GameDoc, seat models.Seat, ability catalog.EffectType) {
	if doc.ChapterAbilityUsed == nil {
		doc.ChapterAbilityUsed = make(map[models.Seat]map[string]bool)
	}
	if doc.ChapterAbilityUsed[seat] == nil {
		doc.ChapterAbilityUsed[seat] = make(map[string]bool)
	}
	doc.ChapterAbilityUsed[seat][string(ability)] = true
}

// abilityUsed reports whether a seat already consumed a once-per-chapter ability.
func abilityUsed(doc *models.GameDoc, seat models.Seat, ability catalog.EffectType) bool {
	return doc.ChapterAbilityUsed[seat][string(ability)]
}
