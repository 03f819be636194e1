package lifecycle

import "errors"

var (
	// ErrGameNotFound means no game exists under the id.
	ErrGameNotFound = errors.New("game not found")
	// ErrNotAllowed means the password matched neither seat.
	ErrNotAllowed = errors.New("player is not allowed to play")
	// ErrAlreadyJoined means seat two was already taken.
	ErrAlreadyJoined = errors.New("someone has already joined")
	// ErrNotYourTurn means the caller holds a seat but the other side moves.
	ErrNotYourTurn = errors.New("not your turn")
	// ErrIllegalMove means the move is not in the current legal set.
	ErrIllegalMove = errors.New("illegal move")
	// ErrCorrupted means the stored record no longer replays into a position.
	ErrCorrupted = errors.New("corrupted game")
	// ErrUsernameRejected means the username failed profanity screening.
	ErrUsernameRejected = errors.New("username rejected")
	// ErrConflict means a concurrent writer won the read-modify-write race.
	ErrConflict = errors.New("concurrent update conflict")
	// ErrStorage means the store could not complete a write.
	ErrStorage = errors.New("storage write failed")
)
