package engine

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// findPawnSource finds the origin of a pawn move by scanning back from the
// destination along the hinted file, or the destination file when there is
// no hint. A capture looks one rank back; a push up to two.
func findPawnSource(board *chess.Board, move chess.ParsedMove) (chess.Square, error) {
	colour := board.ToMove
	pawn := chess.MakePiece(colour, chess.Pawn)
	back := -colour.Forward()

	col := move.To.Col
	if move.From.HasCol() {
		col = move.From.Col
	}
	maxSteps := 2
	if col != move.To.Col {
		maxSteps = 1
	}

	for n := 1; n <= maxSteps; n++ {
		sq := chess.Sq(move.To.Row+back*n, col)
		piece := board.Get(sq)
		if piece == chess.Empty && sq.Valid() {
			continue
		}
		if piece == pawn && move.From.Matches(sq) && containsSquare(PseudoLegalDestinations(board, sq), move.To) {
			return sq, nil
		}
		break
	}
	return chess.NoSquare, fmt.Errorf("%s: no %s pawn reaches %s: %w", move.Text, colour, move.To, errors.ErrUnresolvedMove)
}
