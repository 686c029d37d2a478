package request

// CreatePlayerRequest is the request body for creating a player
type CreatePlayerRequest struct {
	Name string `json:"name"`
}

// UpdatePlayerRequest is the request body for updating a player.
// Absent fields are left unchanged.
type UpdatePlayerRequest struct {
	Name           *string `json:"name,omitempty"`
	LookingForGame *bool   `json:"looking_for_game,omitempty"`
}

// MakeMoveRequest is the request body for submitting a move
type MakeMoveRequest struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Move     *int   `json:"move"`
}
