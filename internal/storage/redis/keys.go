package redis

import (
	"fmt"

	"github.com/padelmixer/padelmixer-admin/internal/model"
)

// Key prefix for all directory data
const keyPrefix = "padelmixer"

// Dependency hash fields
const (
	fieldMatches      = "matches"
	fieldTournaments  = "tournaments"
	fieldReservations = "reservations"
)

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// playerIndexKey returns the Redis key for the ZSET of player ids, scored by id
func playerIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// dependenciesKey returns the Redis key for the HASH of a player's dependent counts
func dependenciesKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:deps:%d", keyPrefix, id)
}
