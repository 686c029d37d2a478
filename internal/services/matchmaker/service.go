package matchmaker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/clock"
	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/random"
	"github.com/ShimmyTheDev/GameOfThree/internal/events"
	"github.com/ShimmyTheDev/GameOfThree/internal/model"
	"github.com/ShimmyTheDev/GameOfThree/internal/storage"
)

// Initial counter bounds for a freshly formed game
const (
	MinInitialNumber = 10
	MaxInitialNumber = 100
)

// DefaultInterval is how often the waiting pool is scanned
const DefaultInterval = 5 * time.Second

// Service pairs waiting players into new games. One pair is serviced
// per tick, taken in directory order.
type Service struct {
	storage   storage.Storage
	publisher events.Publisher
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
	interval  time.Duration

	mu sync.Mutex // one tick in flight at a time
}

// New creates a new matchmaker
func New(
	storage storage.Storage,
	publisher events.Publisher,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:   storage,
		publisher: publisher,
		clock:     clock,
		random:    random,
		logger:    logger,
		interval:  DefaultInterval,
	}
}

// SetInterval overrides the scan interval (before Run is called)
func (s *Service) SetInterval(d time.Duration) {
	s.interval = d
}

// Run scans the waiting pool on a fixed interval until the context is
// cancelled. A failed tick is logged and retried on the next interval.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("matchmaker started", slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("matchmaker stopped")
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.logger.Error("matchmaking tick failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Tick runs one matchmaking pass: with at least 2 players waiting, it
// forms a game from the first pair, clears their flags and announces
// the match. Fewer than 2 waiting players is a normal empty result.
func (s *Service) Tick(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	waiting, err := s.storage.GetPlayersLookingForGame(ctx)
	if err != nil {
		return err
	}
	if len(waiting) < model.GamePlayerCount {
		return nil
	}

	player1 := waiting[0]
	player2 := waiting[1]

	currentPlayer := player1
	if s.random.Intn(model.GamePlayerCount) == 1 {
		currentPlayer = player2
	}
	initialNumber := s.random.IntBetween(MinInitialNumber, MaxInitialNumber)

	now := s.clock.Now()
	game := &model.Game{
		ID:            model.GameID(uuid.NewString()),
		Players:       []model.PlayerID{player1.ID, player2.ID},
		CurrentPlayer: currentPlayer.ID,
		CurrentNumber: initialNumber,
		Status:        model.GameStatusInProgress,
		CreatedAt:     now,
		LastUpdated:   now,
	}

	if err := s.storage.SaveGame(ctx, game); err != nil {
		return err
	}

	// Clear the flags only after the game exists; if a flag write
	// fails the player stays in the pool and the next tick retries
	player1.LookingForGame = false
	player2.LookingForGame = false
	if err := s.storage.SavePlayer(ctx, player1); err != nil {
		return err
	}
	if err := s.storage.SavePlayer(ctx, player2); err != nil {
		return err
	}

	s.logger.Info("match formed",
		slog.String("game_id", string(game.ID)),
		slog.String("player1_id", string(player1.ID)),
		slog.String("player2_id", string(player2.ID)),
		slog.Int("initial_number", initialNumber),
		slog.String("current_player", string(currentPlayer.ID)),
	)

	s.publisher.Emit(ctx, model.Event{
		ID:     uuid.NewString(),
		GameID: game.ID,
		Type:   model.EventMatchFormed,
		Payload: model.MatchFormedPayload{
			GameID:          game.ID,
			Player1ID:       player1.ID,
			Player2ID:       player2.ID,
			InitialNumber:   initialNumber,
			CurrentPlayerID: currentPlayer.ID,
		},
	})
	return nil
}
