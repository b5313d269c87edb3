package engine

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// Destination is a square a piece may move to. Capture is set when the move
// takes an enemy piece, including en passant. Castling destinations never
// carry it.
type Destination struct {
	Square  chess.Square
	Capture bool
}

// PseudoLegalDestinations returns the squares the piece on from can reach,
// ignoring whether the move would leave its own king in check. Castling is
// offered on rights, empty transit squares and rook presence alone; use
// CanCastle or LegalDestinations for the attack checks. Enemy kings block but
// are never a destination.
func PseudoLegalDestinations(board *chess.Board, from chess.Square) []Destination {
	piece := board.Get(from)
	if piece == chess.Empty {
		return nil
	}
	colour := piece.Colour()

	switch pt := piece.Type(); pt {
	case chess.Pawn:
		return pawnDestinations(board, from, colour)
	case chess.Knight:
		return stepDestinations(board, from, colour, pt.Offsets())
	case chess.King:
		dests := stepDestinations(board, from, colour, pt.Offsets())
		return append(dests, castleDestinations(board, from, colour)...)
	case chess.Bishop:
		return filterShadows(board, from, colour, chess.DiagonalDirections)
	case chess.Rook:
		return filterShadows(board, from, colour, chess.OrthogonalDirections)
	case chess.Queen:
		return filterShadows(board, from, colour, chess.AllDirections)
	default:
		panic(fmt.Sprintf("engine: unknown piece type %d", int(pt)))
	}
}

// canLandOn reports whether a piece of colour may finish on sq and whether
// doing so captures.
func canLandOn(board *chess.Board, sq chess.Square, colour chess.Colour) (ok, capture bool) {
	if !sq.Valid() {
		return false, false
	}
	target := board.Get(sq)
	if target == chess.Empty {
		return true, false
	}
	if target.Colour() == colour || target.Type() == chess.King {
		return false, false
	}
	return true, true
}

// pawnStartRow returns the row a pawn of colour starts on.
func pawnStartRow(colour chess.Colour) int {
	return chess.HomeRow(colour) + colour.Forward()
}

// enPassantRow returns the row of an en-passant target that a pawn of
// colour may capture onto.
func enPassantRow(colour chess.Colour) int {
	return chess.HomeRow(colour.Opposite()) - 2*colour.Forward()
}

func pawnDestinations(board *chess.Board, from chess.Square, colour chess.Colour) []Destination {
	var dests []Destination
	forward := chess.Direction{DRow: colour.Forward()}

	one := from.Step(forward, 1)
	if board.IsEmpty(one) {
		dests = append(dests, Destination{Square: one})
		if from.Row == pawnStartRow(colour) {
			if two := from.Step(forward, 2); board.IsEmpty(two) {
				dests = append(dests, Destination{Square: two})
			}
		}
	}

	for _, dc := range []int{-1, 1} {
		to := chess.Sq(from.Row+colour.Forward(), from.Col+dc)
		if !to.Valid() {
			continue
		}
		if target := board.Get(to); target != chess.Empty {
			if target.Colour() != colour && target.Type() != chess.King {
				dests = append(dests, Destination{Square: to, Capture: true})
			}
			continue
		}
		if isEnPassantCapture(board, from, to) {
			dests = append(dests, Destination{Square: to, Capture: true})
		}
	}
	return dests
}

// isEnPassantCapture reports whether a pawn moving from -> to takes en
// passant: the destination is the board's target, it lies one rank ahead
// diagonally and an enemy pawn stands beside the origin.
func isEnPassantCapture(board *chess.Board, from, to chess.Square) bool {
	pawn := board.Get(from)
	if pawn.Type() != chess.Pawn || !board.HasEnPassant() || to != board.EnPassant {
		return false
	}
	colour := pawn.Colour()
	if to.Row != enPassantRow(colour) || to.Row != from.Row+colour.Forward() || abs(to.Col-from.Col) != 1 {
		return false
	}
	return board.Get(enPassantVictim(from, to)) == chess.MakePiece(colour.Opposite(), chess.Pawn)
}

// enPassantVictim returns the square of the pawn taken en passant.
func enPassantVictim(from, to chess.Square) chess.Square {
	return chess.Sq(from.Row, to.Col)
}

func stepDestinations(board *chess.Board, from chess.Square, colour chess.Colour, offsets []chess.Direction) []Destination {
	var dests []Destination
	for _, d := range offsets {
		to := from.Step(d, 1)
		if ok, capture := canLandOn(board, to, colour); ok {
			dests = append(dests, Destination{Square: to, Capture: capture})
		}
	}
	return dests
}

// castleGeometry describes one castling move on a colour's home row.
type castleGeometry struct {
	kingTo  int
	rookSq  int
	rookTo  int
	between []int
	transit int
}

var castles = map[chess.CastleSide]castleGeometry{
	chess.Kingside:  {kingTo: 6, rookSq: 7, rookTo: 5, between: []int{5, 6}, transit: 5},
	chess.Queenside: {kingTo: 2, rookSq: 0, rookTo: 3, between: []int{1, 2, 3}, transit: 3},
}

const kingHomeCol = 4

// castleSideOf returns the side castled by a king move, or NoCastle.
func castleSideOf(board *chess.Board, from, to chess.Square) chess.CastleSide {
	king := board.Get(from)
	if king.Type() != chess.King || from.Row != to.Row || from.Col != kingHomeCol || from.Row != chess.HomeRow(king.Colour()) {
		return chess.NoCastle
	}
	switch to.Col {
	case castles[chess.Kingside].kingTo:
		return chess.Kingside
	case castles[chess.Queenside].kingTo:
		return chess.Queenside
	}
	return chess.NoCastle
}

// castlePathClear checks rights, rook presence and empty squares between
// king and rook.
func castlePathClear(board *chess.Board, colour chess.Colour, side chess.CastleSide) bool {
	row := chess.HomeRow(colour)
	if board.Get(chess.Sq(row, kingHomeCol)) != chess.MakePiece(colour, chess.King) {
		return false
	}
	if !board.Castling.Has(chess.CastlingRight(colour, side)) {
		return false
	}
	geo := castles[side]
	if board.Get(chess.Sq(row, geo.rookSq)) != chess.MakePiece(colour, chess.Rook) {
		return false
	}
	for _, col := range geo.between {
		if !board.IsEmpty(chess.Sq(row, col)) {
			return false
		}
	}
	return true
}

func castleDestinations(board *chess.Board, from chess.Square, colour chess.Colour) []Destination {
	if from != chess.Sq(chess.HomeRow(colour), kingHomeCol) {
		return nil
	}
	var dests []Destination
	for _, side := range []chess.CastleSide{chess.Kingside, chess.Queenside} {
		if castlePathClear(board, colour, side) {
			dests = append(dests, Destination{Square: chess.Sq(from.Row, castles[side].kingTo)})
		}
	}
	return dests
}

// rayCandidate is a square on one of a slider's rays.
type rayCandidate struct {
	square chess.Square
	dir    int
	dist   int
}

// filterShadows generates slider destinations in two passes. The first pass
// walks every ray to the edge of the board and records, per direction, the
// nearest occupied square. The second keeps the candidates up to that
// distance; the boundary square is a capture if it holds an enemy piece
// other than the king and is dropped otherwise.
func filterShadows(board *chess.Board, from chess.Square, colour chess.Colour, dirs []chess.Direction) []Destination {
	var candidates []rayCandidate
	nearest := make([]int, len(dirs))

	for i, d := range dirs {
		nearest[i] = chess.BoardSize
		for n := 1; ; n++ {
			sq := from.Step(d, n)
			if !sq.Valid() {
				break
			}
			candidates = append(candidates, rayCandidate{square: sq, dir: i, dist: n})
			if !board.IsEmpty(sq) && n < nearest[i] {
				nearest[i] = n
			}
		}
	}

	var dests []Destination
	for _, c := range candidates {
		switch {
		case c.dist > nearest[c.dir]:
			// shadowed
		case c.dist == nearest[c.dir]:
			if _, capture := canLandOn(board, c.square, colour); capture {
				dests = append(dests, Destination{Square: c.square, Capture: true})
			}
		default:
			dests = append(dests, Destination{Square: c.square})
		}
	}
	return dests
}

// containsSquare reports whether sq is among dests.
func containsSquare(dests []Destination, sq chess.Square) bool {
	for _, d := range dests {
		if d.Square == sq {
			return true
		}
	}
	return false
}
