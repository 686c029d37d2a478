package model

import "errors"

// Common errors used across the application.
// Grouped by kind so the API layer can map each to a distinct signal:
// not-found, invalid state, invalid move, invalid argument.
var (
	// Not found
	ErrPlayerNotFound = errors.New("player not found")
	ErrGameNotFound   = errors.New("game not found")

	// Invalid state
	ErrGameNotInProgress   = errors.New("game is not currently in progress")
	ErrGameAlreadyStarted  = errors.New("game has already started")
	ErrGameInProgress      = errors.New("game is currently in progress")
	ErrNotPlayerTurn       = errors.New("not this player's turn")
	ErrInsufficientPlayers = errors.New("game cannot start with fewer than 2 players")
	ErrWinnerNotInGame     = errors.New("winner must be a player in the game")
	ErrNoOpponent          = errors.New("no other player found in the game")

	// Invalid move
	ErrInvalidMove      = errors.New("move must be -1, 0 or 1")
	ErrMoveNotDivisible = errors.New("move must result in a number divisible by 3")

	// Invalid argument
	ErrInvalidPlayerName = errors.New("player name must be between 1 and 32 characters")
	ErrEmptyPlayerID     = errors.New("player id cannot be empty")
	ErrEmptyGameID       = errors.New("game id cannot be empty")
)
