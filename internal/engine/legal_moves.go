package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// Move is a fully resolved move in coordinates.
type Move struct {
	From, To  chess.Square
	Capture   bool
	Promotion chess.PieceType
}

// String returns the move in long algebraic form, e.g. "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != chess.NoPiece {
		s += string(rune(m.Promotion.Letter() + 'a' - 'A'))
	}
	return s
}

// leavesKingSafe tries from -> to on a copy of the board and reports whether
// the mover's king is unattacked afterwards.
func leavesKingSafe(board *chess.Board, from, to chess.Square) bool {
	colour := board.Get(from).Colour()
	trial := board.Copy()
	execute(trial, from, to, chess.Queen)
	return !IsInCheck(trial, colour)
}

// isLegal reports whether a pseudo-legal destination is also legal.
func isLegal(board *chess.Board, from, to chess.Square) bool {
	if side := castleSideOf(board, from, to); side != chess.NoCastle {
		return CanCastle(board, board.Get(from).Colour(), side)
	}
	return leavesKingSafe(board, from, to)
}

// LegalDestinations returns the destinations of the piece on from that do
// not leave its own king in check, with castling filtered through CanCastle.
func LegalDestinations(board *chess.Board, from chess.Square) []Destination {
	pseudo := PseudoLegalDestinations(board, from)
	legal := pseudo[:0:0]
	for _, d := range pseudo {
		if isLegal(board, from, d.Square) {
			legal = append(legal, d)
		}
	}
	return legal
}

// LegalMoves returns every legal move of the side to move, ordered by
// origin then destination. Promotions appear once, as queen promotions.
func LegalMoves(board *chess.Board) []Move {
	var moves []Move
	board.EachPiece(func(from chess.Square, piece chess.Piece) {
		if piece.Colour() != board.ToMove {
			return
		}
		for _, d := range LegalDestinations(board, from) {
			m := Move{From: from, To: d.Square, Capture: d.Capture}
			if piece.Type() == chess.Pawn && d.Square.Row == chess.HomeRow(piece.Colour().Opposite()) {
				m.Promotion = chess.Queen
			}
			moves = append(moves, m)
		}
	})
	slices.SortFunc(moves, compareMoves)
	return moves
}

func compareMoves(a, b Move) int {
	if c := compareSquares(a.From, b.From); c != 0 {
		return c
	}
	return compareSquares(a.To, b.To)
}

func compareSquares(a, b chess.Square) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// hasLegalMove reports whether the side to move has any legal move.
func hasLegalMove(board *chess.Board) bool {
	found := false
	board.EachPiece(func(from chess.Square, piece chess.Piece) {
		if found || piece.Colour() != board.ToMove {
			return
		}
		for _, d := range PseudoLegalDestinations(board, from) {
			if isLegal(board, from, d.Square) {
				found = true
				return
			}
		}
	})
	return found
}
