// Package chess provides core chess types and operations.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Letter returns the side-to-move letter used in position notation.
func (c Colour) Letter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// Forward returns the row step a pawn of this colour advances by.
// Row 0 is rank 8, so White moves towards lower rows.
func (c Colour) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PieceType is the closed set of chess piece kinds.
type PieceType int

const (
	NoPiece PieceType = iota
	Pawn
	Bishop
	Knight
	Rook
	Queen
	King
	numPieceTypes
)

// Direction is a single (row, col) step on the board.
type Direction struct {
	DRow, DCol int
}

// IsZero reports whether d is the zero direction.
func (d Direction) IsZero() bool {
	return d.DRow == 0 && d.DCol == 0
}

// IsOrthogonal reports whether d runs along a rank or a file.
func (d Direction) IsOrthogonal() bool {
	return (d.DRow == 0) != (d.DCol == 0)
}

// IsDiagonal reports whether d runs along a diagonal.
func (d Direction) IsDiagonal() bool {
	return d.DRow != 0 && d.DCol != 0 && abs(d.DRow) == abs(d.DCol)
}

var (
	// OrthogonalDirections are the four rank/file steps.
	OrthogonalDirections = []Direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	// DiagonalDirections are the four diagonal steps.
	DiagonalDirections = []Direction{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	// AllDirections is the union of orthogonal and diagonal steps.
	AllDirections = append(append([]Direction{}, OrthogonalDirections...), DiagonalDirections...)
	// KnightOffsets are the eight knight jumps.
	KnightOffsets = []Direction{{2, 1}, {2, -1}, {1, 2}, {-1, 2}, {-1, -2}, {1, -2}, {-2, -1}, {-2, 1}}
)

// pieceRule holds everything that varies by piece type.
type pieceRule struct {
	name        string
	letter      byte // uppercase SAN letter
	symbolWhite string
	symbolBlack string
	offsets     []Direction // single-step targets (knight, king)
	orthogonal  bool        // slides or attacks along ranks and files
	diagonal    bool        // slides or attacks along diagonals
	slides      bool
}

var pieceRules = [numPieceTypes]pieceRule{
	NoPiece: {},
	Pawn:    {name: "pawn", letter: 'P', symbolWhite: "♙", symbolBlack: "♟"},
	Bishop:  {name: "bishop", letter: 'B', symbolWhite: "♗", symbolBlack: "♝", diagonal: true, slides: true},
	Knight:  {name: "knight", letter: 'N', symbolWhite: "♘", symbolBlack: "♞", offsets: KnightOffsets},
	Rook:    {name: "rook", letter: 'R', symbolWhite: "♖", symbolBlack: "♜", orthogonal: true, slides: true},
	Queen:   {name: "queen", letter: 'Q', symbolWhite: "♕", symbolBlack: "♛", orthogonal: true, diagonal: true, slides: true},
	King:    {name: "king", letter: 'K', symbolWhite: "♔", symbolBlack: "♚", offsets: AllDirections},
}

// Valid reports whether p is one of the six real piece types.
func (p PieceType) Valid() bool {
	return p > NoPiece && p < numPieceTypes
}

func (p PieceType) rule() *pieceRule {
	if !p.Valid() {
		panic(fmt.Sprintf("chess: invalid piece type %d", int(p)))
	}
	return &pieceRules[p]
}

// String returns the lowercase piece name.
func (p PieceType) String() string {
	if !p.Valid() {
		return "none"
	}
	return pieceRules[p].name
}

// Letter returns the uppercase SAN letter of a piece type.
func (p PieceType) Letter() byte {
	if !p.Valid() {
		return '?'
	}
	return pieceRules[p].letter
}

// Slides reports whether the piece moves along rays.
func (p PieceType) Slides() bool { return p.rule().slides }

// Orthogonal reports whether the piece moves or attacks along ranks and files.
func (p PieceType) Orthogonal() bool { return p.rule().orthogonal }

// Diagonal reports whether the piece moves or attacks along diagonals.
func (p PieceType) Diagonal() bool { return p.rule().diagonal }

// Offsets returns the fixed step table of a non-sliding piece.
func (p PieceType) Offsets() []Direction { return p.rule().offsets }

// AttacksAlong reports whether a slider of this type attacks along d.
func (p PieceType) AttacksAlong(d Direction) bool {
	if !p.Valid() || !p.Slides() {
		return false
	}
	if d.IsOrthogonal() {
		return p.Orthogonal()
	}
	return d.IsDiagonal() && p.Diagonal()
}

// PieceTypeFromLetter converts a piece letter (either case) to a piece type.
// It returns NoPiece for anything else.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoPiece
	}
}

// Piece is a coded piece: the piece type in the low bits and the colour in
// BlackFlag. The zero value is an empty square.
type Piece uint8

const (
	// Empty is the code of an unoccupied square.
	Empty Piece = 0

	// BlackFlag marks a black piece.
	BlackFlag Piece = 1 << 4

	typeMask Piece = 0x0f
)

// MakePiece creates a coloured piece value.
func MakePiece(colour Colour, piece PieceType) Piece {
	code := Piece(piece)
	if colour == Black {
		code |= BlackFlag
	}
	return code
}

// W creates a white piece.
func W(piece PieceType) Piece {
	return MakePiece(White, piece)
}

// B creates a black piece.
func B(piece PieceType) Piece {
	return MakePiece(Black, piece)
}

// IsEmpty reports whether the code is the empty square.
func (p Piece) IsEmpty() bool {
	return p == Empty
}

// Type extracts the piece type.
func (p Piece) Type() PieceType {
	return PieceType(p & typeMask)
}

// Colour extracts the colour. Empty squares report White.
func (p Piece) Colour() Colour {
	if p&BlackFlag != 0 {
		return Black
	}
	return White
}

// Is reports whether p is a piece of the given colour and type.
func (p Piece) Is(colour Colour, piece PieceType) bool {
	return p != Empty && p == MakePiece(colour, piece)
}

// CastleSide selects king-side or queen-side castling.
type CastleSide int

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

// String returns the castling notation for the side.
func (s CastleSide) String() string {
	switch s {
	case Kingside:
		return "O-O"
	case Queenside:
		return "O-O-O"
	default:
		return ""
	}
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	Files = "abcdefgh"
	Ranks = "87654321" // indexed by row
)

// Square addresses one cell of the grid. Row 0 is rank 8 and Col 0 is
// file a.
type Square struct {
	Row, Col int
}

// NoSquare is the sentinel for "no square".
var NoSquare = Square{-1, -1}

// Sq builds a square from row and column indices.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return InBounds(s.Row, s.Col)
}

// Step returns the square reached by moving n steps in direction d.
func (s Square) Step(d Direction, n int) Square {
	return Square{Row: s.Row + d.DRow*n, Col: s.Col + d.DCol*n}
}

// File returns the file letter of the square.
func (s Square) File() byte {
	return Files[s.Col]
}

// Rank returns the rank digit of the square.
func (s Square) Rank() byte {
	return Ranks[s.Row]
}

// String returns the square in file+rank form, or "-" for an off-board square.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{s.File(), s.Rank()})
}

// ColFromFile converts a file letter to a column index, or -1.
func ColFromFile(c byte) int {
	if c >= 'a' && c <= 'h' {
		return int(c - 'a')
	}
	return -1
}

// RowFromRank converts a rank digit to a row index, or -1.
func RowFromRank(c byte) int {
	if c >= '1' && c <= '8' {
		return int('8' - c)
	}
	return -1
}

// ParseSquare parses a two-character square such as "e4".
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return NoSquare, false
	}
	col, row := ColFromFile(s[0]), RowFromRank(s[1])
	if col < 0 || row < 0 {
		return NoSquare, false
	}
	return Square{Row: row, Col: col}, true
}

// MustSquare parses a square and panics on malformed input. Intended for
// constants and tests.
func MustSquare(s string) Square {
	sq, ok := ParseSquare(s)
	if !ok {
		panic(fmt.Sprintf("chess: invalid square %q", s))
	}
	return sq
}

// HomeRow returns the back-rank row of a colour.
func HomeRow(c Colour) int {
	if c == White {
		return BoardSize - 1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
