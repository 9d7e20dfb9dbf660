package models

import "strings"

// botPrefix is the serialization sentinel for synthetic seat occupants. It is
// confined to this file; everything else works with Occupant values.
const botPrefix = "bot:"

// OccupantKind discriminates the Occupant sum type.
type OccupantKind uint8

const (
	OccupantEmpty OccupantKind = iota
	OccupantHuman
	OccupantBot
)

// Occupant is the parsed form of a seat's occupant id.
type Occupant struct {
	Kind OccupantKind
	UID  string // full stored id, including the bot sentinel for bots
}

// ParseOccupant classifies a stored occupant id.
func ParseOccupant(uid string) Occupant {
	switch {
	case uid == "":
		return Occupant{Kind: OccupantEmpty}
	case strings.HasPrefix(uid, botPrefix):
		return Occupant{Kind: OccupantBot, UID: uid}
	default:
		return Occupant{Kind: OccupantHuman, UID: uid}
	}
}

// BotID builds the stored id for a bot token.
func BotID(token string) string { return botPrefix + token }

// IsBot reports whether uid names a synthetic occupant.
func IsBot(uid string) bool { return ParseOccupant(uid).Kind == OccupantBot }

// Occupant returns the parsed occupant of a seat.
func (d *GameDoc) Occupant(seat Seat) Occupant { return ParseOccupant(d.Players[seat]) }
