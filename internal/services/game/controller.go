package game

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/clock"
	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/random"
	"github.com/ShimmyTheDev/GameOfThree/internal/events"
	"github.com/ShimmyTheDev/GameOfThree/internal/model"
	"github.com/ShimmyTheDev/GameOfThree/internal/storage"
)

// Legal move deltas. A move is additionally required to make the
// counter divisible by 3.
const (
	MinMove = -1
	MaxMove = 1
)

// Controller owns the state machine for individual games: creation,
// player assignment, move validation and application, turn rotation,
// win detection and forced termination.
//
// Operations against the same game are serialized through a per-game
// mutex; games with distinct ids proceed independently.
type Controller struct {
	storage   storage.Storage
	publisher events.Publisher
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger

	locks sync.Map // model.GameID -> *sync.Mutex
}

// NewController creates a new game controller
func NewController(
	storage storage.Storage,
	publisher events.Publisher,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		publisher: publisher,
		clock:     clock,
		random:    random,
		logger:    logger,
	}
}

// lockGame acquires the mutex for a game id and returns its unlock
func (c *Controller) lockGame(id model.GameID) func() {
	v, _ := c.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateGame allocates an empty game awaiting players
func (c *Controller) CreateGame(ctx context.Context) (*model.Game, error) {
	now := c.clock.Now()
	game := &model.Game{
		ID:          model.GameID(uuid.NewString()),
		Status:      model.GameStatusWaitingForPlayers,
		CreatedAt:   now,
		LastUpdated: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game created", slog.String("game_id", string(game.ID)))
	return game, nil
}

// AddPlayer appends a player to a game awaiting players. Idempotent:
// adding a player who already belongs to the game is a no-op.
// Cardinality is enforced by StartGame, not here; membership is frozen
// once the game has started.
func (c *Controller) AddPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error {
	unlock := c.lockGame(gameID)
	defer unlock()

	game, err := c.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if _, err := c.storage.GetPlayer(ctx, playerID); err != nil {
		return err
	}

	if game.Status != model.GameStatusWaitingForPlayers {
		return model.ErrGameAlreadyStarted
	}
	if game.HasPlayer(playerID) {
		return nil
	}

	game.Players = append(game.Players, playerID)
	game.LastUpdated = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return err
	}

	c.logger.Info("player added to game",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.Int("player_count", len(game.Players)),
	)
	return nil
}

// StartGame transitions a populated game to in progress, picking the
// starting player uniformly at random among the participants
func (c *Controller) StartGame(ctx context.Context, gameID model.GameID) error {
	unlock := c.lockGame(gameID)
	defer unlock()

	game, err := c.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Status != model.GameStatusWaitingForPlayers {
		return model.ErrGameAlreadyStarted
	}
	if len(game.Players) < model.GamePlayerCount {
		return model.ErrInsufficientPlayers
	}

	game.Status = model.GameStatusInProgress
	game.CurrentPlayer = game.Players[c.random.Intn(len(game.Players))]
	game.LastUpdated = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return err
	}

	c.logger.Info("game started",
		slog.String("game_id", string(gameID)),
		slog.String("current_player", string(game.CurrentPlayer)),
	)

	c.publisher.Emit(ctx, model.Event{
		ID:     uuid.NewString(),
		GameID: game.ID,
		Type:   model.EventGameStarted,
		Payload: model.GameStartedPayload{
			GameID:          game.ID,
			Players:         game.Players,
			CurrentPlayerID: game.CurrentPlayer,
		},
	})
	return nil
}

// MakeMove validates and applies a move as one atomic unit. A
// rejected move leaves the game unchanged; an accepted move divides
// the counter by 3, then either completes the game (counter reached 1)
// or hands the turn to the opponent.
func (c *Controller) MakeMove(ctx context.Context, gameID model.GameID, playerID model.PlayerID, move int) error {
	unlock := c.lockGame(gameID)
	defer unlock()

	game, err := c.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if _, err := c.storage.GetPlayer(ctx, playerID); err != nil {
		return err
	}

	if game.Status != model.GameStatusInProgress {
		return model.ErrGameNotInProgress
	}
	if game.CurrentPlayer != playerID {
		return model.ErrNotPlayerTurn
	}
	if move < MinMove || move > MaxMove {
		return model.ErrInvalidMove
	}

	numberAfterMove := game.CurrentNumber + move
	if numberAfterMove%3 != 0 {
		return model.ErrMoveNotDivisible
	}

	// Division is exact: divisibility was just checked
	newNumber := numberAfterMove / 3
	game.CurrentNumber = newNumber
	game.LastUpdated = c.clock.Now()

	if newNumber == 1 {
		// The mover wins by reaching 1
		game.Status = model.GameStatusCompleted
		game.CurrentPlayer = ""
		game.Winner = playerID

		if err := c.storage.SaveGame(ctx, game); err != nil {
			return err
		}

		c.logger.Info("game won",
			slog.String("game_id", string(gameID)),
			slog.String("winner", string(playerID)),
		)

		c.publisher.Emit(ctx, model.Event{
			ID:     uuid.NewString(),
			GameID: game.ID,
			Type:   model.EventGameEnded,
			Payload: model.GameEndedPayload{
				GameID:      game.ID,
				WinnerID:    playerID,
				FinalNumber: newNumber,
			},
		})
		return nil
	}

	next, ok := game.Opponent(playerID)
	if !ok {
		// Unreachable for a game holding the 2-player invariant
		return model.ErrNoOpponent
	}
	game.CurrentPlayer = next

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return err
	}

	c.logger.Info("move applied",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.Int("move", move),
		slog.Int("new_number", newNumber),
		slog.String("next_player", string(next)),
	)

	c.publisher.Emit(ctx, model.Event{
		ID:     uuid.NewString(),
		GameID: game.ID,
		Type:   model.EventMoveApplied,
		Payload: model.MoveAppliedPayload{
			GameID:       game.ID,
			PlayerID:     playerID,
			Move:         move,
			NewNumber:    newNumber,
			NextPlayerID: next,
		},
	})
	return nil
}

// EndGame forcibly concludes an in-progress game, declaring the given
// participant the winner. Used by the reaper and for forfeits.
func (c *Controller) EndGame(ctx context.Context, gameID model.GameID, winnerID model.PlayerID) error {
	unlock := c.lockGame(gameID)
	defer unlock()

	game, err := c.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if _, err := c.storage.GetPlayer(ctx, winnerID); err != nil {
		return err
	}

	if game.Status != model.GameStatusInProgress {
		return model.ErrGameNotInProgress
	}
	if !game.HasPlayer(winnerID) {
		return model.ErrWinnerNotInGame
	}

	finalNumber := game.CurrentNumber
	game.Status = model.GameStatusCompleted
	game.CurrentPlayer = ""
	game.Winner = winnerID
	game.LastUpdated = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return err
	}

	c.logger.Info("game ended",
		slog.String("game_id", string(gameID)),
		slog.String("winner", string(winnerID)),
	)

	c.publisher.Emit(ctx, model.Event{
		ID:     uuid.NewString(),
		GameID: game.ID,
		Type:   model.EventGameEnded,
		Payload: model.GameEndedPayload{
			GameID:      game.ID,
			WinnerID:    winnerID,
			FinalNumber: finalNumber,
		},
	})
	return nil
}

// GetGame retrieves a game by id
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	if gameID == "" {
		return nil, model.ErrEmptyGameID
	}
	return c.storage.GetGame(ctx, gameID)
}

// GetGameByPlayerID resolves the player's current game. A completed
// game is treated as absent from the player's perspective.
func (c *Controller) GetGameByPlayerID(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	if playerID == "" {
		return nil, model.ErrEmptyPlayerID
	}

	game, err := c.storage.GetGameByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if game.Status == model.GameStatusCompleted {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

// DeleteGame removes a game. In-progress games cannot be deleted.
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	unlock := c.lockGame(gameID)
	defer unlock()

	game, err := c.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Status == model.GameStatusInProgress {
		return model.ErrGameInProgress
	}

	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}
	c.locks.Delete(gameID)

	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))
	return nil
}
