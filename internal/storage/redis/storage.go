package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ShimmyTheDev/GameOfThree/internal/model"
	"github.com/ShimmyTheDev/GameOfThree/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Keep the waiting-pool index in sync with the flag in one
	// pipeline so the matchmaker never observes half a write
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, s.cfg.PlayerTTL)
	if player.LookingForGame {
		pipe.ZAdd(ctx, lookingKey(), redis.Z{
			Score:  float64(player.CreatedAt.UnixNano()),
			Member: string(player.ID),
		})
	} else {
		pipe.ZRem(ctx, lookingKey(), string(player.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.ZRem(ctx, lookingKey(), string(id))
	pipe.Del(ctx, playerGamesKey(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayersLookingForGame(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.ZRange(ctx, lookingKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Player may have expired
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}
	return players, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)

	// Move the id between status sets
	for _, status := range []model.GameStatus{
		model.GameStatusWaitingForPlayers,
		model.GameStatusInProgress,
		model.GameStatusCompleted,
	} {
		if status == game.Status {
			pipe.SAdd(ctx, statusKey(status), string(game.ID))
		} else {
			pipe.SRem(ctx, statusKey(status), string(game.ID))
		}
	}

	pipe.ZAdd(ctx, lastUpdatedKey(), redis.Z{
		Score:  float64(game.LastUpdated.UnixNano()),
		Member: string(game.ID),
	})

	for _, playerID := range game.Players {
		pipe.SAdd(ctx, playerGamesKey(playerID), string(game.ID))
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	// Fetch first so participant indexes can be cleaned up
	game, err := s.GetGame(ctx, id)
	if err != nil && !errors.Is(err, model.ErrGameNotFound) {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, statusKey(model.GameStatusWaitingForPlayers), string(id))
	pipe.SRem(ctx, statusKey(model.GameStatusInProgress), string(id))
	pipe.SRem(ctx, statusKey(model.GameStatusCompleted), string(id))
	pipe.ZRem(ctx, lastUpdatedKey(), string(id))
	if game != nil {
		for _, playerID := range game.Players {
			pipe.SRem(ctx, playerGamesKey(playerID), string(id))
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGameByPlayer(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	ids, err := s.client.SMembers(ctx, playerGamesKey(playerID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, model.ErrGameNotFound
	}

	games, err := s.getGames(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Prefer a non-completed game; fall back to the most recent
	// completed one so the engine can apply its own semantics
	var active, completed *model.Game
	for _, game := range games {
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
		return active, nil
	}
	if completed != nil {
		return completed, nil
	}
	return nil, model.ErrGameNotFound
}

func (s *Storage) GetGamesByStatus(ctx context.Context, status model.GameStatus) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, statusKey(status)).Result()
	if err != nil {
		return nil, err
	}
	return s.getGames(ctx, ids)
}

func (s *Storage) GetGamesUpdatedBefore(ctx context.Context, threshold time.Time) ([]*model.Game, error) {
	ids, err := s.client.ZRangeByScore(ctx, lastUpdatedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("(%d", threshold.UnixNano()),
	}).Result()
	if err != nil {
		return nil, err
	}
	return s.getGames(ctx, ids)
}

// getGames fetches and decodes a batch of games by id
func (s *Storage) getGames(ctx context.Context, ids []string) ([]*model.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(model.GameID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Game may have expired
		}
		var game model.Game
		if err := json.Unmarshal([]byte(val.(string)), &game); err != nil {
			continue // Skip invalid data
		}
		games = append(games, &game)
	}
	return games, nil
}
