package matchmaker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/mocks"
	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/random"
	"github.com/ShimmyTheDev/GameOfThree/internal/events"
	"github.com/ShimmyTheDev/GameOfThree/internal/model"
	"github.com/ShimmyTheDev/GameOfThree/internal/storage/memory"
	"github.com/ShimmyTheDev/GameOfThree/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage   *memory.Storage
	publisher *events.MemoryPublisher
	clock     *mocks.MockClock
	random    *mocks.MockRandom
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
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.publisher, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) saveWaitingPlayer(id model.PlayerID, createdOffset time.Duration) {
	err := s.storage.SavePlayer(s.ctx, &model.Player{
		ID:             id,
		Name:           string(id),
		LookingForGame: true,
		CreatedAt:      s.clock.CurrentTime.Add(createdOffset),
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestTickWithEmptyPoolIsNoOp() {
	err := s.service.Tick(s.ctx)
	s.Require().NoError(err)

	games, _ := s.storage.GetGamesByStatus(s.ctx, model.GameStatusInProgress)
	s.Empty(games)
	s.Empty(s.publisher.Events())
}

func (s *ServiceSuite) TestTickWithOneWaitingPlayerIsNoOp() {
	s.saveWaitingPlayer("player-a", 0)

	err := s.service.Tick(s.ctx)
	s.Require().NoError(err)

	games, _ := s.storage.GetGamesByStatus(s.ctx, model.GameStatusInProgress)
	s.Empty(games)

	// The lone player keeps waiting
	player, _ := s.storage.GetPlayer(s.ctx, "player-a")
	s.True(player.LookingForGame)
}

func (s *ServiceSuite) TestTickFormsGameFromFirstPair() {
	s.saveWaitingPlayer("player-a", 0)
	s.saveWaitingPlayer("player-b", time.Second)

	s.random.QueueIntn(1)        // second player starts
	s.random.QueueIntBetween(56) // initial number

	err := s.service.Tick(s.ctx)
	s.Require().NoError(err)

	games, _ := s.storage.GetGamesByStatus(s.ctx, model.GameStatusInProgress)
	s.Require().Len(games, 1)
	game := games[0]

	s.Equal([]model.PlayerID{"player-a", "player-b"}, game.Players)
	s.Equal(model.PlayerID("player-b"), game.CurrentPlayer)
	s.Equal(56, game.CurrentNumber)
	s.Equal(model.GameStatusInProgress, game.Status)
	s.Equal(s.clock.CurrentTime, game.LastUpdated)

	// Both flags cleared
	for _, id := range []model.PlayerID{"player-a", "player-b"} {
		player, _ := s.storage.GetPlayer(s.ctx, id)
		s.False(player.LookingForGame)
	}

	formed := s.publisher.EventsOfType(model.EventMatchFormed)
	s.Require().Len(formed, 1)
	payload := formed[0].Payload.(model.MatchFormedPayload)
	s.Equal(game.ID, payload.GameID)
	s.Equal(model.PlayerID("player-a"), payload.Player1ID)
	s.Equal(model.PlayerID("player-b"), payload.Player2ID)
	s.Equal(56, payload.InitialNumber)
	s.Equal(model.PlayerID("player-b"), payload.CurrentPlayerID)
}

func (s *ServiceSuite) TestTickInitialNumberWithinBounds() {
	s.saveWaitingPlayer("player-a", 0)
	s.saveWaitingPlayer("player-b", time.Second)

	// Real randomness for the bounds property
	err := New(s.storage, s.publisher, s.clock, random.New(), testutil.NopLogger()).Tick(s.ctx)
	s.Require().NoError(err)

	games, _ := s.storage.GetGamesByStatus(s.ctx, model.GameStatusInProgress)
	s.Require().Len(games, 1)
	s.GreaterOrEqual(games[0].CurrentNumber, MinInitialNumber)
	s.LessOrEqual(games[0].CurrentNumber, MaxInitialNumber)
}

func (s *ServiceSuite) TestTickServicesOnlyFirstPair() {
	s.saveWaitingPlayer("player-a", 0)
	s.saveWaitingPlayer("player-b", time.Second)
	s.saveWaitingPlayer("player-c", 2*time.Second)

	s.random.QueueIntn(0)
	s.random.QueueIntBetween(30)

	err := s.service.Tick(s.ctx)
	s.Require().NoError(err)

	games, _ := s.storage.GetGamesByStatus(s.ctx, model.GameStatusInProgress)
	s.Require().Len(games, 1)
	s.Equal([]model.PlayerID{"player-a", "player-b"}, games[0].Players)

	// The third player stays in the pool for the next tick
	player, _ := s.storage.GetPlayer(s.ctx, "player-c")
	s.True(player.LookingForGame)
}

func (s *ServiceSuite) TestConsecutiveTicksDrainThePool() {
	s.saveWaitingPlayer("player-a", 0)
	s.saveWaitingPlayer("player-b", time.Second)
	s.saveWaitingPlayer("player-c", 2*time.Second)
	s.saveWaitingPlayer("player-d", 3*time.Second)

	s.random.QueueIntn(0, 0)
	s.random.QueueIntBetween(30, 60)

	s.Require().NoError(s.service.Tick(s.ctx))
	s.Require().NoError(s.service.Tick(s.ctx))

	games, _ := s.storage.GetGamesByStatus(s.ctx, model.GameStatusInProgress)
	s.Len(games, 2)

	waiting, _ := s.storage.GetPlayersLookingForGame(s.ctx)
	s.Empty(waiting)

	// A third tick finds nobody and does nothing
	s.Require().NoError(s.service.Tick(s.ctx))
	games, _ = s.storage.GetGamesByStatus(s.ctx, model.GameStatusInProgress)
	s.Len(games, 2)
}
