package engine

import "github.com/lgbarn/chessboard-go/internal/chess"

// RookMove is the rook relocation paired with a castling king move.
type RookMove struct {
	From, To chess.Square
	Piece    chess.Piece
}

// EnPassantCapture records a pawn taken en passant, which stands on a
// different square from the capturing pawn's destination.
type EnPassantCapture struct {
	Square chess.Square
	Piece  chess.Piece
}

// Entry is one applied move, holding everything needed to undo and redo it
// without recomputation.
type Entry struct {
	From, To chess.Square

	// Piece is the moved piece as it stood on From; Placed is what was left
	// on To, which differs only on promotion.
	Piece  chess.Piece
	Placed chess.Piece

	// Captured is the piece taken on To, Empty if none.
	Captured chess.Piece

	SAN string

	Rook      *RookMove
	EnPassant *EnPassantCapture

	PrevEnPassant, NextEnPassant chess.Square
	PrevCastling, NextCastling   chess.CastlingRights
}

// IsCapture reports whether the move took a piece.
func (e *Entry) IsCapture() bool {
	return e.Captured != chess.Empty || e.EnPassant != nil
}

func (e *Entry) undo(board *chess.Board) {
	board.Put(e.To, e.Captured)
	board.Put(e.From, e.Piece)
	if e.Rook != nil {
		board.Clear(e.Rook.To)
		board.Put(e.Rook.From, e.Rook.Piece)
	}
	if e.EnPassant != nil {
		board.Put(e.EnPassant.Square, e.EnPassant.Piece)
	}
	board.EnPassant = e.PrevEnPassant
	board.Castling = e.PrevCastling
	board.ToMove = board.ToMove.Opposite()
}

func (e *Entry) redo(board *chess.Board) {
	board.Clear(e.From)
	board.Put(e.To, e.Placed)
	if e.Rook != nil {
		board.Clear(e.Rook.From)
		board.Put(e.Rook.To, e.Rook.Piece)
	}
	if e.EnPassant != nil {
		board.Clear(e.EnPassant.Square)
	}
	board.EnPassant = e.NextEnPassant
	board.Castling = e.NextCastling
	board.ToMove = board.ToMove.Opposite()
}

// execute performs from -> to on board and returns the entry describing it.
// It does no legality checking. A pawn reaching the last rank becomes promo,
// or a queen when promo is not a piece a pawn may promote to.
func execute(board *chess.Board, from, to chess.Square, promo chess.PieceType) *Entry {
	piece := board.Get(from)
	colour := piece.Colour()
	e := &Entry{
		From:          from,
		To:            to,
		Piece:         piece,
		Placed:        piece,
		Captured:      board.Get(to),
		PrevEnPassant: board.EnPassant,
		NextEnPassant: chess.NoSquare,
		PrevCastling:  board.Castling,
	}

	switch piece.Type() {
	case chess.Pawn:
		if isEnPassantCapture(board, from, to) {
			victim := enPassantVictim(from, to)
			e.EnPassant = &EnPassantCapture{Square: victim, Piece: board.Get(victim)}
		}
		if to.Row == chess.HomeRow(colour.Opposite()) {
			if !isPromotionPiece(promo) {
				promo = chess.Queen
			}
			e.Placed = chess.MakePiece(colour, promo)
		}
		if abs(to.Row-from.Row) == 2 {
			e.NextEnPassant = chess.Sq((from.Row+to.Row)/2, from.Col)
		}
	case chess.King:
		if side := castleSideOf(board, from, to); side != chess.NoCastle {
			geo := castles[side]
			rookFrom := chess.Sq(from.Row, geo.rookSq)
			e.Rook = &RookMove{
				From:  rookFrom,
				To:    chess.Sq(from.Row, geo.rookTo),
				Piece: board.Get(rookFrom),
			}
		}
	}

	e.NextCastling = updatedCastling(board.Castling, piece, e.Captured, from, to)
	e.redo(board)
	return e
}

// updatedCastling drops the rights lost by moving piece from -> to: a king
// move loses both of its colour's rights, a rook leaving a corner loses
// that corner's right, and a capture on a corner loses that corner's right.
func updatedCastling(rights chess.CastlingRights, piece, captured chess.Piece, from, to chess.Square) chess.CastlingRights {
	switch piece.Type() {
	case chess.King:
		colour := piece.Colour()
		rights = rights.Without(chess.CastlingRight(colour, chess.Kingside) | chess.CastlingRight(colour, chess.Queenside))
	case chess.Rook:
		rights = rights.Without(chess.CornerRight(from))
	}
	if captured != chess.Empty {
		rights = rights.Without(chess.CornerRight(to))
	}
	return rights
}

func isPromotionPiece(pt chess.PieceType) bool {
	switch pt {
	case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
		return true
	}
	return false
}

// History is a linear move log with a cursor. Entries before the cursor have
// been played; entries at or after it can be replayed with Redo.
type History struct {
	entries []*Entry
	index   int
}

// Len returns the number of recorded entries, played or not.
func (h *History) Len() int { return len(h.entries) }

// Index returns the cursor: the number of entries currently played.
func (h *History) Index() int { return h.index }

// IsAtStart reports whether no entry is played.
func (h *History) IsAtStart() bool { return h.index == 0 }

// IsAtEnd reports whether every entry is played.
func (h *History) IsAtEnd() bool { return h.index == len(h.entries) }

// Entry returns the i'th entry, or nil when out of range.
func (h *History) Entry(i int) *Entry {
	if i < 0 || i >= len(h.entries) {
		return nil
	}
	return h.entries[i]
}

// Last returns the most recently played entry, or nil at the start.
func (h *History) Last() *Entry {
	return h.Entry(h.index - 1)
}

// SANs returns the notation of the played entries.
func (h *History) SANs() []string {
	sans := make([]string, h.index)
	for i, e := range h.entries[:h.index] {
		sans[i] = e.SAN
	}
	return sans
}

// AllSANs returns the notation of every entry, including those past the
// cursor.
func (h *History) AllSANs() []string {
	sans := make([]string, len(h.entries))
	for i, e := range h.entries {
		sans[i] = e.SAN
	}
	return sans
}

// TruncateFrom drops entry i and everything after it. The cursor is pulled
// back if it pointed past the new end.
func (h *History) TruncateFrom(i int) {
	i = clamp(i, 0, len(h.entries))
	for j := i; j < len(h.entries); j++ {
		h.entries[j] = nil
	}
	h.entries = h.entries[:i]
	if h.index > i {
		h.index = i
	}
}

// Push discards any unplayed entries and records e as played.
func (h *History) Push(e *Entry) {
	h.TruncateFrom(h.index)
	h.entries = append(h.entries, e)
	h.index++
}

// Reset empties the history.
func (h *History) Reset() {
	h.TruncateFrom(0)
}

// Undo reverts the last played entry on board.
func (h *History) Undo(board *chess.Board) bool {
	if h.IsAtStart() {
		return false
	}
	h.index--
	h.entries[h.index].undo(board)
	return true
}

// Redo replays the next entry on board.
func (h *History) Redo(board *chess.Board) bool {
	if h.IsAtEnd() {
		return false
	}
	h.entries[h.index].redo(board)
	h.index++
	return true
}

// GoTo undoes or redoes until n entries are played. n is clamped to
// [0, Len()].
func (h *History) GoTo(board *chess.Board, n int) {
	n = clamp(n, 0, len(h.entries))
	for h.index > n {
		h.Undo(board)
	}
	for h.index < n {
		h.Redo(board)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
