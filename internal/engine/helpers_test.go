package engine

import (
	"testing"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/parser"
)

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func mustGame(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := NewGame(fen)
	if err != nil {
		t.Fatalf("NewGame(%q) failed: %v", fen, err)
	}
	return g
}

// play applies a transcript or bare move list and fails the test on error.
func play(t *testing.T, g *Game, moves string) {
	t.Helper()
	tr, err := parser.ParseMoves(moves)
	if err != nil {
		t.Fatalf("ParseMoves(%q) failed: %v", moves, err)
	}
	if err := g.PlayMoves(tr.Moves); err != nil {
		t.Fatalf("PlayMoves(%q) failed: %v", moves, err)
	}
}

func sq(name string) chess.Square { return chess.MustSquare(name) }

func destSquares(dests []Destination) []chess.Square {
	out := make([]chess.Square, len(dests))
	for i, d := range dests {
		out[i] = d.Square
	}
	return out
}

func findDest(dests []Destination, s chess.Square) (Destination, bool) {
	for _, d := range dests {
		if d.Square == s {
			return d, true
		}
	}
	return Destination{}, false
}

// moveKeys returns the distinct from-to pairs of moves, promotions folded.
func moveKeys(moves []Move) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range moves {
		k := m.From.String() + m.To.String()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}
