package storage

import (
	"context"
	"time"

	"github.com/ShimmyTheDev/GameOfThree/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	// GetPlayersLookingForGame returns the waiting pool in a stable
	// order (oldest player record first).
	GetPlayersLookingForGame(ctx context.Context) ([]*model.Player, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	// GetGameByPlayer resolves the game a player participates in,
	// preferring a non-completed game when several match.
	GetGameByPlayer(ctx context.Context, playerID model.PlayerID) (*model.Game, error)
	GetGamesByStatus(ctx context.Context, status model.GameStatus) ([]*model.Game, error)
	// GetGamesUpdatedBefore returns games whose LastUpdated predates
	// the threshold.
	GetGamesUpdatedBefore(ctx context.Context, threshold time.Time) ([]*model.Game, error)
}
