package chess

import "strings"

// CastlingRights is the subset of {K, Q, k, q} still available.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

var castlingLetters = []struct {
	right  CastlingRights
	letter byte
}{
	{WhiteKingside, 'K'},
	{WhiteQueenside, 'Q'},
	{BlackKingside, 'k'},
	{BlackQueenside, 'q'},
}

// CastlingRight returns the right for a colour and side.
func CastlingRight(colour Colour, side CastleSide) CastlingRights {
	switch {
	case colour == White && side == Kingside:
		return WhiteKingside
	case colour == White && side == Queenside:
		return WhiteQueenside
	case colour == Black && side == Kingside:
		return BlackKingside
	case colour == Black && side == Queenside:
		return BlackQueenside
	}
	return NoCastling
}

// ParseCastlingRights parses "KQkq", any subset of it, or "-".
func ParseCastlingRights(s string) (CastlingRights, bool) {
	if s == "-" {
		return NoCastling, true
	}
	if s == "" {
		return NoCastling, false
	}
	var rights CastlingRights
outer:
	for i := 0; i < len(s); i++ {
		for _, cl := range castlingLetters {
			if s[i] == cl.letter {
				rights |= cl.right
				continue outer
			}
		}
		return NoCastling, false
	}
	return rights, true
}

// Has reports whether every right in r is present.
func (c CastlingRights) Has(r CastlingRights) bool {
	return r != NoCastling && c&r == r
}

// Without returns c with the given rights removed.
func (c CastlingRights) Without(r CastlingRights) CastlingRights {
	return c &^ r
}

// String renders the rights in the fixed KQkq order, or "-" if none remain.
func (c CastlingRights) String() string {
	var sb strings.Builder
	for _, cl := range castlingLetters {
		if c&cl.right != 0 {
			sb.WriteByte(cl.letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// cornerRights maps each rook corner to the right it guards.
var cornerRights = map[Square]CastlingRights{
	{Row: 7, Col: 7}: WhiteKingside,
	{Row: 7, Col: 0}: WhiteQueenside,
	{Row: 0, Col: 7}: BlackKingside,
	{Row: 0, Col: 0}: BlackQueenside,
}

// CornerRight returns the castling right guarded by a rook corner, or
// NoCastling if sq is not a corner.
func CornerRight(sq Square) CastlingRights {
	return cornerRights[sq]
}

// Board represents a chess board with all state needed for the game.
type Board struct {
	// Squares is indexed [row][col]; row 0 is rank 8, col 0 is file a.
	Squares [BoardSize][BoardSize]Piece

	// Who has the next move.
	ToMove Colour

	// Castling rights still available.
	Castling CastlingRights

	// EnPassant is the square a pawn skipped over on the previous move,
	// or NoSquare.
	EnPassant Square
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	return &Board{
		ToMove:    White,
		EnPassant: NoSquare,
	}
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Squares = [BoardSize][BoardSize]Piece{}

	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Squares[0][col] = B(backRank[col])
		b.Squares[1][col] = B(Pawn)
		b.Squares[6][col] = W(Pawn)
		b.Squares[7][col] = W(backRank[col])
	}

	b.ToMove = White
	b.Castling = AllCastling
	b.EnPassant = NoSquare
}

// Get returns the piece at sq. Off-board squares read as Empty.
func (b *Board) Get(sq Square) Piece {
	if !sq.Valid() {
		return Empty
	}
	return b.Squares[sq.Row][sq.Col]
}

// Put places a piece at sq. Off-board squares are ignored.
func (b *Board) Put(sq Square, piece Piece) {
	if sq.Valid() {
		b.Squares[sq.Row][sq.Col] = piece
	}
}

// Clear empties sq.
func (b *Board) Clear(sq Square) {
	b.Put(sq, Empty)
}

// IsEmpty reports whether sq is on the board and unoccupied.
func (b *Board) IsEmpty(sq Square) bool {
	return sq.Valid() && b.Squares[sq.Row][sq.Col] == Empty
}

// HasEnPassant reports whether an en-passant target is set.
func (b *Board) HasEnPassant() bool {
	return b.EnPassant.Valid()
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// FindKing returns the square of the given colour's king.
func (b *Board) FindKing(colour Colour) (Square, bool) {
	king := MakePiece(colour, King)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Squares[row][col] == king {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return NoSquare, false
}

// EachPiece calls fn for every occupied square in row-major order.
func (b *Board) EachPiece(fn func(sq Square, piece Piece)) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p := b.Squares[row][col]; p != Empty {
				fn(Square{Row: row, Col: col}, p)
			}
		}
	}
}

// PiecePositions returns the squares of every piece of a colour, grouped by type.
func (b *Board) PiecePositions(colour Colour) map[PieceType][]Square {
	positions := make(map[PieceType][]Square)
	b.EachPiece(func(sq Square, p Piece) {
		if p.Colour() == colour {
			positions[p.Type()] = append(positions[p.Type()], sq)
		}
	})
	return positions
}
