package player

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/clock"
	"github.com/ShimmyTheDev/GameOfThree/internal/model"
	"github.com/ShimmyTheDev/GameOfThree/internal/storage"
)

// Service manages player records and the waiting pool flag
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new player service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// CreatePlayer creates a player with the given display name.
// New players are not looking for a game until they say so.
func (s *Service) CreatePlayer(ctx context.Context, name string) (*model.Player, error) {
	if err := model.ValidatePlayerName(name); err != nil {
		return nil, err
	}

	player := &model.Player{
		ID:             model.PlayerID(uuid.NewString()),
		Name:           name,
		LookingForGame: false,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player_id", string(player.ID)),
		slog.String("name", player.Name),
	)

	return player, nil
}

// GetPlayer retrieves a player by id
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if id == "" {
		return nil, model.ErrEmptyPlayerID
	}
	return s.storage.GetPlayer(ctx, id)
}

// UpdatePlayer applies a partial update. Nil fields are left unchanged.
func (s *Service) UpdatePlayer(ctx context.Context, id model.PlayerID, name *string, lookingForGame *bool) (*model.Player, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if err := model.ValidatePlayerName(*name); err != nil {
			return nil, err
		}
		player.Name = *name
	}
	if lookingForGame != nil {
		player.LookingForGame = *lookingForGame
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player updated",
		slog.String("player_id", string(player.ID)),
		slog.Bool("looking_for_game", player.LookingForGame),
	)

	return player, nil
}

// SetLookingForGame flips the player's waiting-pool flag
func (s *Service) SetLookingForGame(ctx context.Context, id model.PlayerID, looking bool) (*model.Player, error) {
	return s.UpdatePlayer(ctx, id, nil, &looking)
}

// GetPlayersLookingForGame returns the waiting pool in directory order
func (s *Service) GetPlayersLookingForGame(ctx context.Context) ([]*model.Player, error) {
	return s.storage.GetPlayersLookingForGame(ctx)
}

// DeletePlayer removes a player record
func (s *Service) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if id == "" {
		return model.ErrEmptyPlayerID
	}

	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		return err
	}

	s.logger.Info("player deleted", slog.String("player_id", string(id)))
	return nil
}
