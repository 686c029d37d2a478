package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ShimmyTheDev/GameOfThree/internal/model"
	"github.com/ShimmyTheDev/GameOfThree/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	games   map[model.GameID]*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
		games:   make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[player.ID] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

func (s *Storage) GetPlayersLookingForGame(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var waiting []*model.Player
	for _, player := range s.players {
		if player.LookingForGame {
			p := *player
			waiting = append(waiting, &p)
		}
	}
	// Stable order: oldest record first, id as tiebreak
	sort.Slice(waiting, func(i, j int) bool {
		if !waiting[i].CreatedAt.Equal(waiting[j].CreatedAt) {
			return waiting[i].CreatedAt.Before(waiting[j].CreatedAt)
		}
		return waiting[i].ID < waiting[j].ID
	})
	return waiting, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = copyGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return copyGame(game), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) GetGameByPlayer(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var completed *model.Game
	var active *model.Game
	for _, game := range s.games {
		if !game.HasPlayer(playerID) {
			continue
		}
		if game.Status == model.GameStatusCompleted {
			if completed == nil || game.LastUpdated.After(completed.LastUpdated) {
				completed = game
			}
			continue
		}
		if active == nil || game.LastUpdated.After(active.LastUpdated) {
			active = game
		}
	}
	if active != nil {
		return copyGame(active), nil
	}
	if completed != nil {
		return copyGame(completed), nil
	}
	return nil, model.ErrGameNotFound
}

func (s *Storage) GetGamesByStatus(ctx context.Context, status model.GameStatus) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.Game
	for _, game := range s.games {
		if game.Status == status {
			games = append(games, copyGame(game))
		}
	}
	return games, nil
}

func (s *Storage) GetGamesUpdatedBefore(ctx context.Context, threshold time.Time) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.Game
	for _, game := range s.games {
		if game.LastUpdated.Before(threshold) {
			games = append(games, copyGame(game))
		}
	}
	return games, nil
}

// copyGame returns a deep copy so callers never alias stored state
func copyGame(game *model.Game) *model.Game {
	g := *game
	g.Players = append([]model.PlayerID(nil), game.Players...)
	return &g
}
