package reaper

import (
	"context"
	"log/slog"
	"time"

	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/clock"
	"github.com/ShimmyTheDev/GameOfThree/internal/model"
	"github.com/ShimmyTheDev/GameOfThree/internal/services/game"
	"github.com/ShimmyTheDev/GameOfThree/internal/storage"
)

const (
	// DefaultSweepInterval is how often in-progress games are checked
	// for inactivity.
	DefaultSweepInterval = 10 * time.Second

	// DefaultIdleThreshold is how long a game may sit without a move
	// before it is forfeited.
	DefaultIdleThreshold = 60 * time.Second

	// DefaultPurgeInterval is how often completed games are removed
	// from storage.
	DefaultPurgeInterval = time.Hour
)

// Service forfeits games whose current player has stalled and purges
// completed games from storage. A stalled game is awarded to the
// player who was waiting on their opponent.
type Service struct {
	storage        storage.Storage
	gameController *game.Controller
	clock          clock.Clock
	logger         *slog.Logger

	sweepInterval time.Duration
	idleThreshold time.Duration
	purgeInterval time.Duration
}

// New creates a new reaper
func New(
	storage storage.Storage,
	gameController *game.Controller,
	clock clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:        storage,
		gameController: gameController,
		clock:          clock,
		logger:         logger,
		sweepInterval:  DefaultSweepInterval,
		idleThreshold:  DefaultIdleThreshold,
		purgeInterval:  DefaultPurgeInterval,
	}
}

// SetSweepInterval overrides the inactivity scan interval (before Run is called)
func (s *Service) SetSweepInterval(d time.Duration) {
	s.sweepInterval = d
}

// SetIdleThreshold overrides the inactivity threshold (before Run is called)
func (s *Service) SetIdleThreshold(d time.Duration) {
	s.idleThreshold = d
}

// SetPurgeInterval overrides the completed-game purge interval (before Run is called)
func (s *Service) SetPurgeInterval(d time.Duration) {
	s.purgeInterval = d
}

// Run drives the inactivity sweep and the completed-game purge on
// their own intervals until the context is cancelled. Failures are
// logged and retried on the next interval.
func (s *Service) Run(ctx context.Context) {
	sweep := time.NewTicker(s.sweepInterval)
	defer sweep.Stop()
	purge := time.NewTicker(s.purgeInterval)
	defer purge.Stop()
	s.logger.Info("reaper started",
		slog.Duration("sweep_interval", s.sweepInterval),
		slog.Duration("idle_threshold", s.idleThreshold),
		slog.Duration("purge_interval", s.purgeInterval),
	)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reaper stopped")
			return
		case <-sweep.C:
			if err := s.SweepInactive(ctx); err != nil {
				s.logger.Error("inactivity sweep failed", slog.String("error", err.Error()))
			}
		case <-purge.C:
			if err := s.PurgeCompleted(ctx); err != nil {
				s.logger.Error("completed-game purge failed", slog.String("error", err.Error()))
			}
		}
	}
}

// SweepInactive forfeits every in-progress game whose last move is
// older than the idle threshold. The win goes to the opponent of the
// player whose turn it was.
func (s *Service) SweepInactive(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.idleThreshold)
	stale, err := s.storage.GetGamesUpdatedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	for _, g := range stale {
		if g.Status != model.GameStatusInProgress {
			continue
		}
		winner, ok := g.Opponent(g.CurrentPlayer)
		if !ok {
			s.logger.Warn("stale game has no opponent to award",
				slog.String("game_id", string(g.ID)))
			continue
		}
		if err := s.gameController.EndGame(ctx, g.ID, winner); err != nil {
			// The game may have received a move between the scan and
			// the forfeit; leave it for the next sweep if still stale
			s.logger.Error("failed to forfeit stale game",
				slog.String("game_id", string(g.ID)),
				slog.String("error", err.Error()))
			continue
		}
		s.logger.Info("stale game forfeited",
			slog.String("game_id", string(g.ID)),
			slog.String("winner", string(winner)),
			slog.String("idle_player", string(g.CurrentPlayer)))
	}
	return nil
}

// PurgeCompleted removes all completed games from storage.
func (s *Service) PurgeCompleted(ctx context.Context) error {
	completed, err := s.storage.GetGamesByStatus(ctx, model.GameStatusCompleted)
	if err != nil {
		return err
	}
	for _, g := range completed {
		if err := s.gameController.DeleteGame(ctx, g.ID); err != nil {
			s.logger.Error("failed to purge completed game",
				slog.String("game_id", string(g.ID)),
				slog.String("error", err.Error()))
			continue
		}
	}
	if len(completed) > 0 {
		s.logger.Info("purged completed games", slog.Int("count", len(completed)))
	}
	return nil
}
