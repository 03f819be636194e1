package engine

import (
	"errors"
	"testing"
)

func mustLine(t *testing.T, moves ...string) *GameLine {
	t.Helper()
	line, err := ParseRecord("")
	if err != nil {
		t.Fatalf("ParseRecord empty: %v", err)
	}
	for _, mv := range moves {
		next, _, err := ApplyMove(line, mv)
		if err != nil {
			t.Fatalf("ApplyMove %s: %v", mv, err)
		}
		line = next
	}
	return line
}

func TestParseEmptyRecord(t *testing.T) {
	for _, record := range []string{"", "*", "  *  "} {
		line, err := ParseRecord(record)
		if err != nil {
			t.Fatalf("ParseRecord %q: %v", record, err)
		}
		if line.Len() != 0 {
			t.Fatalf("expected empty line for %q, got %d plies", record, line.Len())
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	line := mustLine(t, "e2e4", "e7e5", "g1f3", "b8c6", "f1b5")
	record := SerializeRecord(line)

	parsed, err := ParseRecord(record)
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	reparsed, err := ParseRecord(SerializeRecord(parsed))
	if err != nil {
		t.Fatalf("ParseRecord round-trip: %v", err)
	}

	want := line.Plies()
	for _, got := range [][]string{parsed.Plies(), reparsed.Plies()} {
		if len(got) != len(want) {
			t.Fatalf("ply count mismatch: got %d want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("ply %d mismatch: got %s want %s", i, got[i], want[i])
			}
		}
	}
}

func TestParseRejectsIllegalLine(t *testing.T) {
	// Syntactically PGN-shaped but not a legal line from the start position.
	if _, err := ParseRecord("1. Ke2 *"); err == nil {
		t.Fatalf("expected error for illegal movetext")
	} else if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}
