package engine

import (
	"errors"
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// ErrInvalidRecord means the stored record text does not replay into a legal
// line from the standard starting position.
var ErrInvalidRecord = errors.New("invalid move record")

// GameLine is the ordered sequence of plies from the initial position to the
// current position. It is only ever constructed by ParseRecord or ApplyMove,
// so a GameLine in hand is always a legal line.
type GameLine struct {
	game *nchess.Game
}

// ParseRecord parses headerless PGN movetext into a GameLine. The empty
// record (a freshly created game) is the bare starting position; the PGN
// exporter writes it as "*".
func ParseRecord(record string) (*GameLine, error) {
	text := strings.TrimSpace(record)
	if text == "" || text == "*" {
		return &GameLine{game: nchess.NewGame()}, nil
	}
	opt, err := nchess.PGN(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return &GameLine{game: nchess.NewGame(opt)}, nil
}

// SerializeRecord renders the canonical record for a line. ParseRecord of the
// result yields an equal line.
func SerializeRecord(line *GameLine) string {
	return strings.TrimSpace(line.game.String())
}

// Plies returns the line's moves in coordinate (UCI) notation.
func (l *GameLine) Plies() []string {
	moves := l.game.Moves()
	out := make([]string, 0, len(moves))
	for _, mv := range moves {
		out = append(out, mv.String())
	}
	return out
}

// Len is the number of plies played.
func (l *GameLine) Len() int {
	return len(l.game.Moves())
}
