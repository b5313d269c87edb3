package engine

import "github.com/lgbarn/chessboard-go/internal/chess"

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// lineBetween returns the unit step from a towards b when the two squares
// share a rank, file or diagonal.
func lineBetween(a, b chess.Square) (chess.Direction, bool) {
	dr, dc := b.Row-a.Row, b.Col-a.Col
	if dr == 0 && dc == 0 {
		return chess.Direction{}, false
	}
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return chess.Direction{}, false
	}
	return chess.Direction{DRow: sign(dr), DCol: sign(dc)}, true
}
