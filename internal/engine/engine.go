package engine

import (
	"errors"
	"sort"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

var (
	// ErrIllegalMove is returned for any move string outside the current
	// legal-move set of the side to move.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidGameState means a line could not be derived into a position.
	ErrInvalidGameState = errors.New("invalid game state")
)

// Seat numbers. Seat one always plays white and moves first.
const (
	SeatOne = 1
	SeatTwo = 2
)

// State is the derived board state for a line: occupancy grouped by piece
// symbol, the seat to move, and every legal reply in coordinate notation.
type State struct {
	Occupancy  map[string][]string
	SideToMove int
	LegalMoves []string
}

// Capture describes the piece removed by a move and the square it stood on.
// For en passant the square is not the move's destination: it is the
// destination file on the capturing pawn's origin rank.
type Capture struct {
	Symbol    string
	Square    string
	EnPassant bool
}

// DeriveState computes occupancy, side to move, and the legal-move set.
func DeriveState(line *GameLine) (*State, error) {
	if line == nil || line.game == nil {
		return nil, ErrInvalidGameState
	}
	pos := line.game.Position()
	if pos == nil {
		return nil, ErrInvalidGameState
	}

	occupancy := make(map[string][]string)
	for sq, piece := range pos.Board().SquareMap() {
		sym := pieceSymbol(piece)
		occupancy[sym] = append(occupancy[sym], sq.String())
	}
	for _, squares := range occupancy {
		sort.Strings(squares)
	}

	legal := make([]string, 0, 40)
	for _, mv := range line.game.ValidMoves() {
		legal = append(legal, mv.String())
	}
	sort.Strings(legal)

	return &State{
		Occupancy:  occupancy,
		SideToMove: sideToMove(pos),
		LegalMoves: legal,
	}, nil
}

// ApplyMove plays one ply in coordinate notation and returns the extended
// line plus capture metadata when the move took a piece. The receiver line is
// not mutated.
func ApplyMove(line *GameLine, moveText string) (*GameLine, *Capture, error) {
	if line == nil || line.game == nil {
		return nil, nil, ErrInvalidGameState
	}
	uci := strings.ToLower(strings.TrimSpace(moveText))
	if uci == "" {
		return nil, nil, ErrIllegalMove
	}

	next := line.game.Clone()
	pos := next.Position()
	notation := nchess.UCINotation{}
	mv, err := notation.Decode(pos, uci)
	if err != nil {
		return nil, nil, ErrIllegalMove
	}

	capture := captureInfo(pos, mv)
	if err := next.Move(mv, nil); err != nil {
		return nil, nil, ErrIllegalMove
	}
	return &GameLine{game: next}, capture, nil
}

// SideToMove reports which seat moves next, alternating by ply parity.
func SideToMove(line *GameLine) (int, error) {
	if line == nil || line.game == nil || line.game.Position() == nil {
		return 0, ErrInvalidGameState
	}
	return sideToMove(line.game.Position()), nil
}

func sideToMove(pos *nchess.Position) int {
	if pos.Turn() == nchess.White {
		return SeatOne
	}
	return SeatTwo
}

func captureInfo(pos *nchess.Position, mv *nchess.Move) *Capture {
	if !mv.HasTag(nchess.Capture) && !mv.HasTag(nchess.EnPassant) {
		return nil
	}
	captureSquare := mv.S2()
	enPassant := mv.HasTag(nchess.EnPassant)
	if enPassant {
		file := mv.S2().File()
		rank := mv.S2().Rank()
		if pos.Turn() == nchess.White {
			captureSquare = nchess.NewSquare(file, rank-1)
		} else {
			captureSquare = nchess.NewSquare(file, rank+1)
		}
	}
	piece := pos.Board().Piece(captureSquare)
	if piece == nchess.NoPiece {
		return nil
	}
	return &Capture{
		Symbol:    pieceSymbol(piece),
		Square:    captureSquare.String(),
		EnPassant: enPassant,
	}
}

// pieceSymbol renders a piece the way the record format does: uppercase for
// white, lowercase for black.
func pieceSymbol(piece nchess.Piece) string {
	var sym string
	switch piece.Type() {
	case nchess.King:
		sym = "k"
	case nchess.Queen:
		sym = "q"
	case nchess.Rook:
		sym = "r"
	case nchess.Bishop:
		sym = "b"
	case nchess.Knight:
		sym = "n"
	case nchess.Pawn:
		sym = "p"
	default:
		return ""
	}
	if piece.Color() == nchess.White {
		return strings.ToUpper(sym)
	}
	return sym
}
