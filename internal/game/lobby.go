package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Daniangio/golem/internal/models"
)

// NewGame builds a fresh lobby document with the creator seated at p1.
func (e *Engine) NewGame(id, creator, creatorName string, visibility models.Visibility, mode models.Mode) *models.GameDoc {
	now := time.Now().UTC()
	return &models.GameDoc{
		ID:         id,
		Status:     models.StatusLobby,
		Visibility: visibility,
		GameMode:   mode,
		CreatedBy:  creator,
		CreatedAt:  now,
		UpdatedAt:  now,
		Players: map[models.Seat]string{
			models.SeatP1: creator,
			models.SeatP2: "",
			models.SeatP3: "",
		},
		PlayerNames: map[string]string{creator: creatorName},
		Golem:       models.Golem{HP: StartingHP},
	}
}

// Join seats an actor in the first empty seat. Re-joining only refreshes the
// display name. Private lobbies admit only invited actors.
func (e *Engine) Join(doc *models.GameDoc, actor, name string) error {
	if err := requireStatus(doc, models.StatusLobby); err != nil {
		return err
	}
	if doc.Visibility == models.VisibilityPrivate && !doc.IsHost(actor) && !contains(doc.InvitedUIDs, actor) {
		return fmt.Errorf("%w: not invited", ErrUnauthorized)
	}
	if doc.SeatOf(actor) != "" {
		doc.PlayerNames[actor] = name
		return nil
	}
	seat := doc.FirstEmptySeat()
	if seat == "" {
		return ErrRoomFull
	}
	doc.Players[seat] = actor
	doc.PlayerNames[actor] = name
	return nil
}

// Leave vacates the actor's seat. When the creator leaves, the whole lobby is
// deleted; the returned flag tells the store layer to drop the document.
func (e *Engine) Leave(doc *models.GameDoc, actor string) (deleteDoc bool, err error) {
	if err := requireStatus(doc, models.StatusLobby); err != nil {
		return false, err
	}
	if doc.IsHost(actor) {
		return true, nil
	}
	seat := doc.SeatOf(actor)
	if seat == "" {
		return false, fmt.Errorf("%w: actor is not seated", ErrInvalidArgument)
	}
	doc.Players[seat] = ""
	delete(doc.PlayerNames, actor)
	return false, nil
}

// AddBot seats a synthetic occupant in the first empty seat. Host only.
func (e *Engine) AddBot(doc *models.GameDoc, actor string) error {
	if err := requireStatus(doc, models.StatusLobby); err != nil {
		return err
	}
	if err := e.requireHost(doc, actor); err != nil {
		return err
	}
	seat := doc.FirstEmptySeat()
	if seat == "" {
		return ErrRoomFull
	}
	botID := models.BotID(uuid.NewString()[:8])
	doc.Players[seat] = botID
	doc.PlayerNames[botID] = e.nextBotName(doc)
	return nil
}

// nextBotName picks the lowest "Bot N" name not already in use.
func (e *Engine) nextBotName(doc *models.GameDoc) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("Bot %d", n)
		taken := false
		for _, existing := range doc.PlayerNames {
			if existing == name {
				taken = true
				break
			}
		}
		if !taken {
			return name
		}
	}
}

// RemoveBot vacates a bot-occupied seat. Host only.
func (e *Engine) RemoveBot(doc *models.GameDoc, actor, botID string) error {
	if err := requireStatus(doc, models.StatusLobby); err != nil {
		return err
	}
	if err := e.requireHost(doc, actor); err != nil {
		return err
	}
	if !models.IsBot(botID) {
		return fmt.Errorf("%w: %s is not a bot", ErrInvalidArgument, botID)
	}
	seat := doc.SeatOf(botID)
	if seat == "" {
		return fmt.Errorf("%w: bot %s is not seated", ErrInvalidArgument, botID)
	}
	doc.Players[seat] = ""
	delete(doc.PlayerNames, botID)
	return nil
}

// Invite adds an actor id to the private-lobby allow-list. Host only.
func (e *Engine) Invite(doc *models.GameDoc, actor, uid string) error {
	if err := e.requireHost(doc, actor); err != nil {
		return err
	}
	if uid == "" {
		return fmt.Errorf("%w: empty uid", ErrInvalidArgument)
	}
	if !contains(doc.InvitedUIDs, uid) {
		doc.InvitedUIDs = append(doc.InvitedUIDs, uid)
	}
	return nil
}

// RevokeInvite removes an actor id from the allow-list. Host only.
func (e *Engine) RevokeInvite(doc *models.GameDoc, actor, uid string) error {
	if err := e.requireHost(doc, actor); err != nil {
		return err
	}
	for i, existing := range doc.InvitedUIDs {
		if existing == uid {
			doc.InvitedUIDs = append(doc.InvitedUIDs[:i], doc.InvitedUIDs[i+1:]...)
			return nil
		}
	}
	return nil
}

// Start launches the match: all three seats must be filled. The golem resets,
// the stage-one (or full, for single-location runs) location slate is laid out
// and the match enters the location vote.
func (e *Engine) Start(doc *models.GameDoc, actor string) error {
	if err := requireStatus(doc, models.StatusLobby); err != nil {
		return err
	}
	if err := e.requireHost(doc, actor); err != nil {
		return err
	}
	if !doc.SeatsFilled() {
		return fmt.Errorf("%w: all three seats must be filled", ErrPreconditionNotMet)
	}

	var options []string
	if doc.GameMode == models.ModeSingleLocation {
		for _, l := range e.catalog.AllLocations() {
			options = append(options, l.ID)
		}
	} else {
		for _, l := range e.catalog.LocationsForStage(1) {
			options = append(options, l.ID)
		}
	}
	if len(options) == 0 {
		return fmt.Errorf("%w: catalog has no locations", ErrPreconditionNotMet)
	}

	doc.Status = models.StatusActive
	doc.Phase = models.PhaseChooseLocation
	doc.Chapter = 1
	doc.Step = 0
	doc.Golem = models.Golem{HP: StartingHP, Heat: 0}
	doc.BaseHandCapacity = DefaultHandCapacity
	doc.LocationID = ""
	doc.LocationOptions = options
	doc.LocationVotes = make(map[models.Seat]string)
	doc.PartPicks = make(map[models.Seat]string)
	doc.PartAssignments = nil
	return nil
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
