package testutil

import "github.com/lgbarn/chessboard-go/internal/chess"

// Squares parses square names such as "e4" and panics on a malformed one.
func Squares(names ...string) []chess.Square {
	squares := make([]chess.Square, len(names))
	for i, name := range names {
		squares[i] = chess.MustSquare(name)
	}
	return squares
}

// Sq parses one square name.
func Sq(name string) chess.Square {
	return chess.MustSquare(name)
}
