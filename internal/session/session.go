// Package session holds the persisted game aggregate and its Redis store.
package session

import (
	"errors"
	"strings"
	"time"
)

// DefaultTTL is the sliding expiry window: refreshed on every write, after
// which the store may reclaim the record.
const DefaultTTL = 7 * 24 * time.Hour

// GameSession is the sole persisted aggregate. Board state is always derived
// from MoveRecord, never stored independently. Seat-two fields stay empty
// until someone joins and are then set exactly once.
type GameSession struct {
	GameID string `json:"game_id"`

	PlayerOneUsername string `json:"player_one_username"`
	PlayerOnePassword string `json:"player_one_password"`
	PlayerTwoUsername string `json:"player_two_username,omitempty"`
	PlayerTwoPassword string `json:"player_two_password,omitempty"`

	// MoveRecord is the canonical serialized move history and the single
	// source of truth for board state.
	MoveRecord string `json:"move_record"`

	// WhoseTurn caches the side to move (1 or 2) so turn checks avoid
	// re-deriving the whole line. Kept in sync with MoveRecord parity.
	WhoseTurn int `json:"whose_turn"`

	// Expiration is the absolute unix timestamp after which the record may
	// be reclaimed. Refreshed on every write.
	Expiration int64 `json:"expiration"`

	PreviousMove string              `json:"previous_move,omitempty"`
	EnPassant    bool                `json:"en_passant"`
	Graveyard    []string            `json:"graveyard,omitempty"`
	PieceTaken   map[string][]string `json:"piece_taken,omitempty"`

	PlayerOneConnectionID string `json:"player_one_connection_id,omitempty"`
	PlayerTwoConnectionID string `json:"player_two_connection_id,omitempty"`

	// Version guards read-modify-write cycles; Store.Update rejects a write
	// whose Version no longer matches the stored record.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrMalformed means a stored item is structurally unusable.
var ErrMalformed = errors.New("malformed game session")

// Validate checks required fields on a freshly loaded session.
func (s *GameSession) Validate() error {
	if s == nil {
		return ErrMalformed
	}
	if strings.TrimSpace(s.GameID) == "" || strings.TrimSpace(s.PlayerOnePassword) == "" {
		return ErrMalformed
	}
	if s.WhoseTurn != 1 && s.WhoseTurn != 2 {
		return ErrMalformed
	}
	return nil
}

// Joined reports whether seat two has been taken.
func (s *GameSession) Joined() bool {
	return strings.TrimSpace(s.PlayerTwoPassword) != ""
}

// Touch refreshes the sliding expiry metadata.
func (s *GameSession) Touch(now time.Time, ttl time.Duration) {
	s.Expiration = now.Add(ttl).Unix()
	s.UpdatedAt = now
}
