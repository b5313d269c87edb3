package engine

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/testutil"
)

// Move counts at depth one, with the four promotions of a pawn move counted
// once since LegalMoves lists each origin-destination pair once.
func TestLegalMoves_Counts(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"initial", InitialFEN, 20},
		{"kiwipete", kiwipeteFEN, 48},
		{"rook endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 14},
		{"white in check", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 6},
		{"promotion by capture", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 41},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", 0},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := MustParseFEN(tt.fen)
			testutil.AssertEqual(t, len(LegalMoves(board)), tt.want)
			testutil.AssertEqual(t, HasLegalMoves(board), tt.want > 0)
		})
	}
}

// referenceMoves lists the distinct origin-destination pairs an independent
// bitboard generator finds for fen.
func referenceMoves(fen string) []string {
	board := dragontoothmg.ParseFen(fen)
	seen := map[string]bool{}
	var keys []string
	for _, m := range board.GenerateLegalMoves() {
		key := referenceSquare(m.From()) + referenceSquare(m.To())
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// referenceSquare converts a little-endian rank-file index (a1 = 0) to a
// square name.
func referenceSquare(idx uint8) string {
	return chess.Sq(7-int(idx)/8, int(idx)%8).String()
}

func TestLegalMoves_MatchReferenceGenerator(t *testing.T) {
	fens := []string{
		InitialFEN,
		kiwipeteFEN,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"r3kr2/8/8/8/8/8/8/R3K2R w KQq - 0 1",
		"4k3/4r3/8/1N6/8/8/4N3/4K3 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			got := moveKeys(LegalMoves(MustParseFEN(fen)))
			slices.Sort(got)
			testutil.AssertEqual(t, got, referenceMoves(fen))
		})
	}
}

// Walking two plies deep from each position and comparing every child
// exercises apply and undo against the reference as well.
func TestLegalMoves_MatchReferenceAfterEachMove(t *testing.T) {
	fens := []string{
		kiwipeteFEN,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	if testing.Short() {
		fens = fens[:1]
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			g := mustGame(t, fen)
			for _, m := range g.LegalMoves() {
				_, err := g.ApplyMove(m.From, m.To)
				testutil.AssertNoError(t, err, "move %s", m)

				child := g.FEN()
				got := moveKeys(g.LegalMoves())
				slices.Sort(got)
				testutil.AssertEqual(t, got, referenceMoves(child), "after %s", m)
				g.Back()
			}
		})
	}
}
