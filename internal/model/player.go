package model

import (
	"time"
	"unicode/utf8"
)

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Name length bounds enforced at creation and update
const (
	MinPlayerNameLength = 1
	MaxPlayerNameLength = 32
)

// Player represents a game participant
type Player struct {
	ID             PlayerID
	Name           string
	LookingForGame bool
	CreatedAt      time.Time
}

// ValidatePlayerName checks the 1-32 character name constraint.
// Length is counted in runes so multibyte names are not penalized.
func ValidatePlayerName(name string) error {
	length := utf8.RuneCountInString(name)
	if length < MinPlayerNameLength || length > MaxPlayerNameLength {
		return ErrInvalidPlayerName
	}
	return nil
}
