package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ShimmyTheDev/GameOfThree/internal/api/request"
	"github.com/ShimmyTheDev/GameOfThree/internal/api/response"
	"github.com/ShimmyTheDev/GameOfThree/internal/model"
	"github.com/ShimmyTheDev/GameOfThree/internal/services/game"
	"github.com/ShimmyTheDev/GameOfThree/internal/services/player"
)

// GameHandler handles game and matchmaking endpoints
type GameHandler struct {
	gameController *game.Controller
	playerService  *player.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, playerService *player.Service) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		playerService:  playerService,
	}
}

// MakeMove handles POST /api/v1/games/moves
func (h *GameHandler) MakeMove(w http.ResponseWriter, r *http.Request) {
	var req request.MakeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.GameID == "" {
		WriteError(w, NewInvalidRequestError("game_id is required"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.Move == nil {
		WriteError(w, NewInvalidRequestError("move is required"))
		return
	}

	gameID := model.GameID(req.GameID)
	if err := h.gameController.MakeMove(r.Context(), gameID, model.PlayerID(req.PlayerID), *req.Move); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["game_id"])

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Delete handles DELETE /api/v1/games/{game_id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["game_id"])

	if err := h.gameController.DeleteGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// PollMatchmaking handles GET /api/v1/matchmaking?player_id=
// Returns the player's active game if one has been formed. Otherwise
// the player is marked as looking for a game and reported as
// searching, so polling this endpoint is enough to enter the pool.
func (h *GameHandler) PollMatchmaking(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(r.URL.Query().Get("player_id"))
	if id == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	g, err := h.gameController.GetGameByPlayerID(r.Context(), id)
	if err == nil {
		resp := response.GameFromModel(g)
		response.JSON(w, http.StatusOK, response.MatchmakingStatus{Searching: false, Game: &resp})
		return
	}
	if !errors.Is(err, model.ErrGameNotFound) {
		WriteError(w, err)
		return
	}

	if _, err := h.playerService.SetLookingForGame(r.Context(), id, true); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchmakingStatus{Searching: true})
}
