package redis

import (
	"fmt"

	"github.com/ShimmyTheDev/GameOfThree/internal/model"
)

// Key prefix for all game-of-three data
const keyPrefix = "gothree"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// lookingKey returns the key of the sorted set of players looking for
// a game, scored by the time they were saved with the flag set
func lookingKey() string {
	return fmt.Sprintf("%s:idx:looking", keyPrefix)
}

// statusKey returns the key of the set of game ids with the status
func statusKey(status model.GameStatus) string {
	return fmt.Sprintf("%s:idx:status:%s", keyPrefix, status)
}

// lastUpdatedKey returns the key of the sorted set of game ids scored
// by LastUpdated (unix nanos)
func lastUpdatedKey() string {
	return fmt.Sprintf("%s:idx:last_updated", keyPrefix)
}

// playerGamesKey returns the key of the set of game ids a player
// participates in
func playerGamesKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:idx:player_games:%s", keyPrefix, id)
}
