package engine

import (
	"errors"
	"testing"
)

func TestDeriveInitialState(t *testing.T) {
	line := mustLine(t)
	state, err := DeriveState(line)
	if err != nil {
		t.Fatalf("DeriveState: %v", err)
	}
	if state.SideToMove != SeatOne {
		t.Fatalf("expected seat one to move, got %d", state.SideToMove)
	}
	if len(state.LegalMoves) != 20 {
		t.Fatalf("expected 20 legal opening moves, got %d", len(state.LegalMoves))
	}
	if got := len(state.Occupancy["P"]); got != 8 {
		t.Fatalf("expected 8 white pawns, got %d", got)
	}
	if got := len(state.Occupancy["k"]); got != 1 {
		t.Fatalf("expected 1 black king, got %d", got)
	}
	if state.Occupancy["K"][0] != "e1" {
		t.Fatalf("white king on %s, want e1", state.Occupancy["K"][0])
	}
}

func TestDeriveAfterFirstMove(t *testing.T) {
	state, err := DeriveState(mustLine(t, "e2e4"))
	if err != nil {
		t.Fatalf("DeriveState: %v", err)
	}
	if state.SideToMove != SeatTwo {
		t.Fatalf("expected seat two to move, got %d", state.SideToMove)
	}
	if len(state.LegalMoves) != 20 {
		t.Fatalf("expected 20 legal replies to e4, got %d", len(state.LegalMoves))
	}
	found := false
	for _, sq := range state.Occupancy["P"] {
		if sq == "e4" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a white pawn on e4, occupancy: %v", state.Occupancy["P"])
	}
}

func TestSideAlternatesByPlyParity(t *testing.T) {
	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6"}
	line := mustLine(t)
	for i, mv := range moves {
		side, err := SideToMove(line)
		if err != nil {
			t.Fatalf("SideToMove: %v", err)
		}
		want := SeatOne
		if i%2 == 1 {
			want = SeatTwo
		}
		if side != want {
			t.Fatalf("after %d plies expected seat %d, got %d", i, want, side)
		}
		next, _, err := ApplyMove(line, mv)
		if err != nil {
			t.Fatalf("ApplyMove %s: %v", mv, err)
		}
		line = next
	}
}

func TestLegalSetIsExactlyApplicable(t *testing.T) {
	line := mustLine(t)
	state, err := DeriveState(line)
	if err != nil {
		t.Fatalf("DeriveState: %v", err)
	}
	for _, mv := range state.LegalMoves {
		if _, _, err := ApplyMove(line, mv); err != nil {
			t.Fatalf("legal move %s rejected: %v", mv, err)
		}
	}
	for _, mv := range []string{"e2e5", "e7e5", "a1a3", "zz99", ""} {
		if _, _, err := ApplyMove(line, mv); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("move %q: expected ErrIllegalMove, got %v", mv, err)
		}
	}
}

func TestOrdinaryCapture(t *testing.T) {
	line := mustLine(t, "e2e4", "d7d5")
	next, capture, err := ApplyMove(line, "e4d5")
	if err != nil {
		t.Fatalf("ApplyMove e4d5: %v", err)
	}
	if capture == nil {
		t.Fatalf("expected capture info")
	}
	if capture.Symbol != "p" {
		t.Fatalf("captured symbol %q, want p", capture.Symbol)
	}
	// For an ordinary capture the captured square is the destination.
	if capture.Square != "d5" {
		t.Fatalf("captured square %q, want d5", capture.Square)
	}
	if capture.EnPassant {
		t.Fatalf("ordinary capture flagged as en passant")
	}
	if next.Len() != 3 {
		t.Fatalf("line length %d, want 3", next.Len())
	}
}

func TestEnPassantCaptureSquareDiffersFromDestination(t *testing.T) {
	line := mustLine(t, "e2e4", "a7a6", "e4e5", "d7d5")
	_, capture, err := ApplyMove(line, "e5d6")
	if err != nil {
		t.Fatalf("ApplyMove e5d6: %v", err)
	}
	if capture == nil {
		t.Fatalf("expected en passant capture info")
	}
	if capture.Symbol != "p" {
		t.Fatalf("captured symbol %q, want p", capture.Symbol)
	}
	if capture.Square != "d5" {
		t.Fatalf("captured square %q, want d5 (behind the destination)", capture.Square)
	}
	if !capture.EnPassant {
		t.Fatalf("en passant capture not flagged")
	}
}

func TestEnPassantByBlack(t *testing.T) {
	line := mustLine(t, "e2e4", "d7d5", "e4e5", "g8f6", "a2a3", "d5d4", "c2c4")
	_, capture, err := ApplyMove(line, "d4c3")
	if err != nil {
		t.Fatalf("ApplyMove d4c3: %v", err)
	}
	if capture == nil {
		t.Fatalf("expected en passant capture info")
	}
	if capture.Symbol != "P" {
		t.Fatalf("captured symbol %q, want P", capture.Symbol)
	}
	if capture.Square != "c4" {
		t.Fatalf("captured square %q, want c4", capture.Square)
	}
	if !capture.EnPassant {
		t.Fatalf("en passant capture not flagged")
	}
}

func TestNoCaptureReportsNil(t *testing.T) {
	line := mustLine(t)
	_, capture, err := ApplyMove(line, "g1f3")
	if err != nil {
		t.Fatalf("ApplyMove g1f3: %v", err)
	}
	if capture != nil {
		t.Fatalf("unexpected capture info: %+v", capture)
	}
}
