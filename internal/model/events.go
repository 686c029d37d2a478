package model

// EventType identifies the type of a lifecycle event
type EventType string

const (
	EventMatchFormed EventType = "match_formed"
	EventGameStarted EventType = "game_started"
	EventMoveApplied EventType = "move_applied"
	EventGameEnded   EventType = "game_ended"
)

// Event is the envelope published for every game lifecycle change.
// Delivery is best-effort; consumers must tolerate gaps.
type Event struct {
	ID      string    `json:"id"`
	GameID  GameID    `json:"game_id"`
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// MatchFormedPayload contains data for match formed events
type MatchFormedPayload struct {
	GameID          GameID   `json:"game_id"`
	Player1ID       PlayerID `json:"player1_id"`
	Player2ID       PlayerID `json:"player2_id"`
	InitialNumber   int      `json:"initial_number"`
	CurrentPlayerID PlayerID `json:"current_player_id"`
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	GameID          GameID     `json:"game_id"`
	Players         []PlayerID `json:"players"`
	CurrentPlayerID PlayerID   `json:"current_player_id"`
}

// MoveAppliedPayload contains data for move applied events
type MoveAppliedPayload struct {
	GameID       GameID   `json:"game_id"`
	PlayerID     PlayerID `json:"player_id"`
	Move         int      `json:"move"`
	NewNumber    int      `json:"new_number"`
	NextPlayerID PlayerID `json:"next_player_id"`
}

// GameEndedPayload contains data for game ended events
type GameEndedPayload struct {
	GameID      GameID   `json:"game_id"`
	WinnerID    PlayerID `json:"winner_id"`
	FinalNumber int      `json:"final_number"`
}
