package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStatus represents the current phase of a game.
// Progression is monotonic: waiting -> in progress -> completed.
type GameStatus string

const (
	GameStatusWaitingForPlayers GameStatus = "WAITING_FOR_PLAYERS"
	GameStatusInProgress        GameStatus = "IN_PROGRESS"
	GameStatusCompleted         GameStatus = "COMPLETED"
)

// GamePlayerCount is the number of participants a game needs to start
const GamePlayerCount = 2

// Game represents a single instance of the Game of Three.
// CurrentPlayer and Winner are empty when unset: CurrentPlayer is
// empty before the game starts and after it completes, Winner is
// empty until the game completes.
type Game struct {
	ID            GameID
	Players       []PlayerID
	CurrentPlayer PlayerID
	CurrentNumber int
	Status        GameStatus
	Winner        PlayerID
	CreatedAt     time.Time
	LastUpdated   time.Time
}

// HasPlayer reports whether the player participates in this game
func (g *Game) HasPlayer(id PlayerID) bool {
	for _, p := range g.Players {
		if p == id {
			return true
		}
	}
	return false
}

// Opponent returns the participant whose id differs from the given
// one. ok is false if no such participant exists.
func (g *Game) Opponent(id PlayerID) (PlayerID, bool) {
	for _, p := range g.Players {
		if p != id {
			return p, true
		}
	}
	return "", false
}
