package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ShimmyTheDev/GameOfThree/internal/api/handler"
	"github.com/ShimmyTheDev/GameOfThree/internal/api/middleware"
	"github.com/ShimmyTheDev/GameOfThree/internal/services/game"
	"github.com/ShimmyTheDev/GameOfThree/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	PlayerService  *player.Service
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.PlayerService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Player routes
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{player_id}", playerHandler.Update).Methods(http.MethodPatch)
	api.HandleFunc("/players/{player_id}", playerHandler.Delete).Methods(http.MethodDelete)

	// Matchmaking routes
	api.HandleFunc("/players/{player_id}/matchmaking", playerHandler.EnterMatchmaking).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}/matchmaking", playerHandler.LeaveMatchmaking).Methods(http.MethodDelete)
	api.HandleFunc("/matchmaking", gameHandler.PollMatchmaking).Methods(http.MethodGet)

	// Game routes
	api.HandleFunc("/games/moves", gameHandler.MakeMove).Methods(http.MethodPost)
	api.HandleFunc("/games/{game_id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{game_id}", gameHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
