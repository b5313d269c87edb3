package chess

// Result is a game-result marker found in a transcript.
type Result int

const (
	NoResult Result = iota
	WhiteWins
	BlackWins
	Draw
	Unfinished
)

// String returns the transcript token for the result.
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	case Unfinished:
		return "*"
	default:
		return ""
	}
}

// Hint is a partial origin square from SAN disambiguation. Row and Col
// are -1 when absent.
type Hint struct {
	Row, Col int
}

// NoHint is a hint carrying neither rank nor file.
var NoHint = Hint{Row: -1, Col: -1}

// HasRow reports whether the hint names a rank.
func (h Hint) HasRow() bool { return h.Row >= 0 }

// HasCol reports whether the hint names a file.
func (h Hint) HasCol() bool { return h.Col >= 0 }

// IsEmpty reports whether the hint carries nothing.
func (h Hint) IsEmpty() bool { return !h.HasRow() && !h.HasCol() }

// Matches reports whether sq agrees with every part of the hint.
func (h Hint) Matches(sq Square) bool {
	if h.HasRow() && sq.Row != h.Row {
		return false
	}
	if h.HasCol() && sq.Col != h.Col {
		return false
	}
	return true
}

// ParsedMove is the structured form of one single-move notation token.
type ParsedMove struct {
	// The token as written, e.g. "Nbxd7+".
	Text string

	// The piece being moved; Pawn when no letter is given.
	Piece PieceType

	// Origin disambiguation, possibly empty.
	From Hint

	// Destination; NoSquare for castles and results.
	To Square

	Capture bool
	Check   bool
	Mate    bool

	// The piece promoted to, NoPiece if not a promotion.
	Promotion PieceType

	// Castling side, NoCastle otherwise.
	Castle CastleSide

	// Terminal result marker, NoResult otherwise.
	Result Result
}

// IsResult reports whether the token was a game-result marker.
func (m ParsedMove) IsResult() bool {
	return m.Result != NoResult
}

// IsCastle reports whether the token was a castling move.
func (m ParsedMove) IsCastle() bool {
	return m.Castle != NoCastle
}

// IsPromotion reports whether the token promotes a pawn.
func (m ParsedMove) IsPromotion() bool {
	return m.Promotion != NoPiece
}
