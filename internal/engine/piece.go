package engine

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// findPieceSource finds the origin of a non-pawn move. Candidates are the
// side to move's pieces of the named type; they are narrowed by the origin
// hint, then by which of them can reach the destination, and finally by
// which can do so without leaving the king in check.
func findPieceSource(board *chess.Board, move chess.ParsedMove) (chess.Square, error) {
	target := chess.MakePiece(board.ToMove, move.Piece)

	var candidates []chess.Square
	board.EachPiece(func(sq chess.Square, piece chess.Piece) {
		if piece == target && move.From.Matches(sq) && containsSquare(PseudoLegalDestinations(board, sq), move.To) {
			candidates = append(candidates, sq)
		}
	})

	if len(candidates) > 1 {
		legal := candidates[:0]
		for _, sq := range candidates {
			if isLegal(board, sq, move.To) {
				legal = append(legal, sq)
			}
		}
		candidates = legal
	}

	switch len(candidates) {
	case 0:
		return chess.NoSquare, fmt.Errorf("%s: no %s reaches %s: %w", move.Text, move.Piece, move.To, errors.ErrUnresolvedMove)
	case 1:
		return candidates[0], nil
	default:
		return chess.NoSquare, fmt.Errorf("%s: %d pieces reach %s: %w", move.Text, len(candidates), move.To, errors.ErrAmbiguousMove)
	}
}

// findCastleSource returns the king's home square and destination for a
// castle by the side to move.
func findCastleSource(board *chess.Board, move chess.ParsedMove) (chess.Square, chess.Square, error) {
	colour := board.ToMove
	from := chess.Sq(chess.HomeRow(colour), kingHomeCol)
	if board.Get(from) != chess.MakePiece(colour, chess.King) {
		return chess.NoSquare, chess.NoSquare, fmt.Errorf("%s: %s king is not on its home square: %w", move.Text, colour, errors.ErrUnresolvedMove)
	}
	return from, chess.Sq(from.Row, castles[move.Castle].kingTo), nil
}
