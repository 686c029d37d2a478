package response

import (
	"time"

	"github.com/ShimmyTheDev/GameOfThree/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	LookingForGame bool      `json:"looking_for_game"`
	CreatedAt      time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:             string(p.ID),
		Name:           p.Name,
		LookingForGame: p.LookingForGame,
		CreatedAt:      p.CreatedAt,
	}
}

// Game represents a game in API responses
type Game struct {
	ID            string    `json:"id"`
	Players       []string  `json:"players"`
	CurrentPlayer *string   `json:"current_player"`
	CurrentNumber int       `json:"current_number"`
	Status        string    `json:"status"`
	Winner        *string   `json:"winner"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdated   time.Time `json:"last_updated"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	players := make([]string, len(g.Players))
	for i, p := range g.Players {
		players[i] = string(p)
	}

	var currentPlayer *string
	if g.CurrentPlayer != "" {
		cp := string(g.CurrentPlayer)
		currentPlayer = &cp
	}

	var winner *string
	if g.Winner != "" {
		w := string(g.Winner)
		winner = &w
	}

	return Game{
		ID:            string(g.ID),
		Players:       players,
		CurrentPlayer: currentPlayer,
		CurrentNumber: g.CurrentNumber,
		Status:        string(g.Status),
		Winner:        winner,
		CreatedAt:     g.CreatedAt,
		LastUpdated:   g.LastUpdated,
	}
}

// MatchmakingStatus is the response for the matchmaking poll. When a
// game has been formed it carries the game; otherwise the player is
// reported as searching.
type MatchmakingStatus struct {
	Searching bool  `json:"searching"`
	Game      *Game `json:"game,omitempty"`
}
