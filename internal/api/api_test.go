package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShimmyTheDev/GameOfThree/internal/api"
	"github.com/ShimmyTheDev/GameOfThree/internal/api/response"
	"github.com/ShimmyTheDev/GameOfThree/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		PlayerService:  app.PlayerService,
		GameController: app.GameController,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func createPlayer(t *testing.T, ts *testServer, name string) response.Player {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

// matchedPair creates Alice and Bob, queues them both and drives one
// matchmaker tick. Creation times are staggered so the pool order is
// deterministic: Alice goes first with the number 56.
func matchedPair(t *testing.T, ts *testServer) (alice, bob response.Player, game response.Game) {
	t.Helper()

	alice = createPlayer(t, ts, "Alice")
	ts.app.MockClock.Advance(time.Second)
	bob = createPlayer(t, ts, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/players/"+alice.ID+"/matchmaking", nil)
	require.Equal(t, http.StatusAccepted, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/players/"+bob.ID+"/matchmaking", nil)
	require.Equal(t, http.StatusAccepted, rr.Code)

	ts.app.MockRandom.QueueIntn(0)
	ts.app.MockRandom.QueueIntBetween(56)
	require.NoError(t, ts.app.Matchmaker.Tick(context.Background()))

	rr = ts.request(http.MethodGet, "/api/v1/matchmaking?player_id="+alice.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var status response.MatchmakingStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	require.False(t, status.Searching)
	require.NotNil(t, status.Game)
	return alice, bob, *status.Game
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreatePlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]string{"name": "Alice"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Alice", resp.Name)
	assert.False(t, resp.LookingForGame)
}

func TestCreatePlayerValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	long := make([]byte, 33)
	for i := range long {
		long[i] = 'a'
	}
	rr = ts.request(http.MethodPost, "/api/v1/players", map[string]string{"name": string(long)})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_PLAYER_NAME")
}

func TestGetAndUpdatePlayer(t *testing.T) {
	ts := newTestServer(t)

	created := createPlayer(t, ts, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/players/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPatch, "/api/v1/players/"+created.ID, map[string]string{"name": "Alicia"})
	assert.Equal(t, http.StatusOK, rr.Code)

	var updated response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "Alicia", updated.Name)
}

func TestGetUnknownPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "PLAYER_NOT_FOUND")
}

func TestDeletePlayer(t *testing.T) {
	ts := newTestServer(t)

	created := createPlayer(t, ts, "Alice")

	rr := ts.request(http.MethodDelete, "/api/v1/players/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEnterAndLeaveMatchmaking(t *testing.T) {
	ts := newTestServer(t)

	created := createPlayer(t, ts, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/players/"+created.ID+"/matchmaking", nil)
	assert.Equal(t, http.StatusAccepted, rr.Code)

	var queued response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &queued))
	assert.True(t, queued.LookingForGame)

	rr = ts.request(http.MethodDelete, "/api/v1/players/"+created.ID+"/matchmaking", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var after response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &after))
	assert.False(t, after.LookingForGame)
}

func TestMatchmakingPollMarksSearching(t *testing.T) {
	ts := newTestServer(t)

	created := createPlayer(t, ts, "Alice")

	// With no game formed yet, polling enters the player into the pool
	rr := ts.request(http.MethodGet, "/api/v1/matchmaking?player_id="+created.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var status response.MatchmakingStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.True(t, status.Searching)
	assert.Nil(t, status.Game)

	rr = ts.request(http.MethodGet, "/api/v1/players/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var after response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &after))
	assert.True(t, after.LookingForGame)
}

func TestMatchmakingPollRequiresPlayerID(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/matchmaking", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMatchAndPlayThroughAPI(t *testing.T) {
	ts := newTestServer(t)

	alice, bob, game := matchedPair(t, ts)

	require.NotNil(t, game.CurrentPlayer)
	assert.Equal(t, alice.ID, *game.CurrentPlayer)
	assert.Equal(t, 56, game.CurrentNumber)

	// 56 +1 -> 19, -1 -> 6, 0 -> 2, +1 -> 1
	steps := []struct {
		playerID string
		move     int
		number   int
	}{
		{alice.ID, 1, 19},
		{bob.ID, -1, 6},
		{alice.ID, 0, 2},
		{bob.ID, 1, 1},
	}
	var last response.Game
	for _, step := range steps {
		rr := ts.request(http.MethodPost, "/api/v1/games/moves", map[string]any{
			"game_id":   game.ID,
			"player_id": step.playerID,
			"move":      step.move,
		})
		require.Equal(t, http.StatusOK, rr.Code)
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &last))
		assert.Equal(t, step.number, last.CurrentNumber)
	}

	assert.Equal(t, "COMPLETED", last.Status)
	require.NotNil(t, last.Winner)
	assert.Equal(t, bob.ID, *last.Winner)
	assert.Nil(t, last.CurrentPlayer)
}

func TestMoveValidationThroughAPI(t *testing.T) {
	ts := newTestServer(t)

	alice, bob, game := matchedPair(t, ts)

	// Move missing from the body
	rr := ts.request(http.MethodPost, "/api/v1/games/moves", map[string]any{
		"game_id":   game.ID,
		"player_id": alice.ID,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Out of range
	rr = ts.request(http.MethodPost, "/api/v1/games/moves", map[string]any{
		"game_id":   game.ID,
		"player_id": alice.ID,
		"move":      2,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_MOVE")

	// Legal delta but does not reach a multiple of 3 (56 + 0 = 56)
	rr = ts.request(http.MethodPost, "/api/v1/games/moves", map[string]any{
		"game_id":   game.ID,
		"player_id": alice.ID,
		"move":      0,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "MOVE_NOT_DIVISIBLE")

	// Not Bob's turn
	rr = ts.request(http.MethodPost, "/api/v1/games/moves", map[string]any{
		"game_id":   game.ID,
		"player_id": bob.ID,
		"move":      1,
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_YOUR_TURN")

	// Nothing changed
	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var unchanged response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &unchanged))
	assert.Equal(t, 56, unchanged.CurrentNumber)
	assert.Equal(t, "IN_PROGRESS", unchanged.Status)
}

func TestDeleteGameThroughAPI(t *testing.T) {
	ts := newTestServer(t)

	alice, bob, game := matchedPair(t, ts)

	// An in-progress game cannot be deleted
	rr := ts.request(http.MethodDelete, "/api/v1/games/"+game.ID, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_IN_PROGRESS")

	// Finish it: 56 +1 -> 19, -1 -> 6, 0 -> 2, +1 -> 1
	for _, step := range []struct {
		playerID string
		move     int
	}{
		{alice.ID, 1}, {bob.ID, -1}, {alice.ID, 0}, {bob.ID, 1},
	} {
		rr = ts.request(http.MethodPost, "/api/v1/games/moves", map[string]any{
			"game_id":   game.ID,
			"player_id": step.playerID,
			"move":      step.move,
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr = ts.request(http.MethodDelete, "/api/v1/games/"+game.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetUnknownGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}
