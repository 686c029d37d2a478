package reaper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/mocks"
	"github.com/ShimmyTheDev/GameOfThree/internal/events"
	"github.com/ShimmyTheDev/GameOfThree/internal/model"
	"github.com/ShimmyTheDev/GameOfThree/internal/services/game"
	"github.com/ShimmyTheDev/GameOfThree/internal/storage/memory"
	"github.com/ShimmyTheDev/GameOfThree/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage   *memory.Storage
	publisher *events.MemoryPublisher
	clock     *mocks.MockClock
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.publisher = events.NewMemoryPublisher()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	controller := game.NewController(s.storage, s.publisher, s.clock, mocks.NewMockRandom(), testutil.NopLogger())
	s.service = New(s.storage, controller, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) savePlayer(id model.PlayerID) {
	err := s.storage.SavePlayer(s.ctx, &model.Player{
		ID:        id,
		Name:      string(id),
		CreatedAt: s.clock.CurrentTime,
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) saveGame(id model.GameID, status model.GameStatus, current model.PlayerID, age time.Duration) {
	updated := s.clock.CurrentTime.Add(-age)
	err := s.storage.SaveGame(s.ctx, &model.Game{
		ID:            id,
		Players:       []model.PlayerID{"player-a", "player-b"},
		CurrentPlayer: current,
		CurrentNumber: 42,
		Status:        status,
		CreatedAt:     updated,
		LastUpdated:   updated,
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestSweepForfeitsStaleGameToWaitingPlayer() {
	s.savePlayer("player-a")
	s.savePlayer("player-b")
	s.saveGame("game-1", model.GameStatusInProgress, "player-a", 2*time.Minute)

	err := s.service.SweepInactive(s.ctx)
	s.Require().NoError(err)

	game, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameStatusCompleted, game.Status)
	s.Equal(model.PlayerID("player-b"), game.Winner)
	s.Equal(model.PlayerID(""), game.CurrentPlayer)
	s.Equal(s.clock.CurrentTime, game.LastUpdated)

	ended := s.publisher.EventsOfType(model.EventGameEnded)
	s.Require().Len(ended, 1)
	payload := ended[0].Payload.(model.GameEndedPayload)
	s.Equal(model.GameID("game-1"), payload.GameID)
	s.Equal(model.PlayerID("player-b"), payload.WinnerID)
	s.Equal(42, payload.FinalNumber)
}

func (s *ServiceSuite) TestSweepLeavesActiveGameAlone() {
	s.savePlayer("player-a")
	s.savePlayer("player-b")
	s.saveGame("game-1", model.GameStatusInProgress, "player-a", 30*time.Second)

	err := s.service.SweepInactive(s.ctx)
	s.Require().NoError(err)

	game, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameStatusInProgress, game.Status)
	s.Empty(s.publisher.Events())
}

func (s *ServiceSuite) TestSweepIgnoresStaleCompletedGame() {
	s.savePlayer("player-a")
	s.savePlayer("player-b")
	s.saveGame("game-1", model.GameStatusCompleted, "", 2*time.Hour)

	err := s.service.SweepInactive(s.ctx)
	s.Require().NoError(err)

	game, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Empty(s.publisher.Events())
	s.Equal(model.GameStatusCompleted, game.Status)
}

func (s *ServiceSuite) TestSweepExactlyAtThresholdIsNotStale() {
	s.savePlayer("player-a")
	s.savePlayer("player-b")
	s.saveGame("game-1", model.GameStatusInProgress, "player-a", DefaultIdleThreshold)

	err := s.service.SweepInactive(s.ctx)
	s.Require().NoError(err)

	game, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameStatusInProgress, game.Status)
}

func (s *ServiceSuite) TestSweepForfeitsOnlyStaleGames() {
	s.savePlayer("player-a")
	s.savePlayer("player-b")
	s.saveGame("game-1", model.GameStatusInProgress, "player-a", 5*time.Minute)
	s.saveGame("game-2", model.GameStatusInProgress, "player-b", time.Second)

	err := s.service.SweepInactive(s.ctx)
	s.Require().NoError(err)

	stale, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameStatusCompleted, stale.Status)

	active, err := s.storage.GetGame(s.ctx, "game-2")
	s.Require().NoError(err)
	s.Equal(model.GameStatusInProgress, active.Status)
}

func (s *ServiceSuite) TestPurgeRemovesCompletedGames() {
	s.savePlayer("player-a")
	s.savePlayer("player-b")
	s.saveGame("game-1", model.GameStatusCompleted, "", time.Hour)
	s.saveGame("game-2", model.GameStatusInProgress, "player-a", time.Second)

	err := s.service.PurgeCompleted(s.ctx)
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	survivor, err := s.storage.GetGame(s.ctx, "game-2")
	s.Require().NoError(err)
	s.Equal(model.GameStatusInProgress, survivor.Status)
}

func (s *ServiceSuite) TestPurgeWithNothingCompletedIsNoOp() {
	s.savePlayer("player-a")
	s.savePlayer("player-b")
	s.saveGame("game-1", model.GameStatusInProgress, "player-a", time.Second)

	err := s.service.PurgeCompleted(s.ctx)
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
}
