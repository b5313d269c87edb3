package engine

import (
	"github.com/lgbarn/chessboard-go/internal/chess"
)

// Game is a board together with its move history. A Game is not safe for
// concurrent use; give each goroutine its own.
type Game struct {
	board    *chess.Board
	history  History
	registry *chess.Registry

	// Parsed moves queued by LoadMoves and consumed by PlayNext.
	queue []chess.ParsedMove
}

// Option configures a Game.
type Option func(*Game)

// WithRegistry makes the game decode pieces through r instead of a registry
// of its own.
func WithRegistry(r *chess.Registry) Option {
	return func(g *Game) {
		if r != nil {
			g.registry = r
		}
	}
}

// NewGame creates a game from a FEN string. An empty string starts from the
// initial position.
func NewGame(fen string, opts ...Option) (*Game, error) {
	g := &Game{}
	for _, opt := range opts {
		opt(g)
	}
	if g.registry == nil {
		g.registry = chess.NewRegistry()
	}
	if fen == "" {
		fen = InitialFEN
	}
	if err := g.Load(fen); err != nil {
		return nil, err
	}
	return g, nil
}

// NewInitialGame creates a game at the standard starting position.
func NewInitialGame(opts ...Option) *Game {
	g, err := NewGame(InitialFEN, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Load replaces the position with the one described by fen and clears the
// history. On error the game is left untouched.
func (g *Game) Load(fen string) error {
	board, err := ParseFEN(fen)
	if err != nil {
		return err
	}
	g.board = board
	g.history.Reset()
	g.queue = nil
	return nil
}

// Board returns the live board. Callers must not mutate it except through
// the Game.
func (g *Game) Board() *chess.Board { return g.board }

// History returns the move log.
func (g *Game) History() *History { return &g.history }

// Registry returns the piece registry the game decodes through.
func (g *Game) Registry() *chess.Registry { return g.registry }

// ToMove returns the side to move.
func (g *Game) ToMove() chess.Colour { return g.board.ToMove }

// FEN serializes the current position.
func (g *Game) FEN() string { return BoardToFEN(g.board) }

// Get returns the piece code on sq, Empty off the board.
func (g *Game) Get(sq chess.Square) chess.Piece { return g.board.Get(sq) }

// Piece returns the decoded description of the piece on sq.
func (g *Game) Piece(sq chess.Square) chess.PieceInfo {
	return g.registry.Decode(g.board.Get(sq))
}

// Put places a piece on sq. Editing the board discards the history, whose
// entries would no longer describe it.
func (g *Game) Put(sq chess.Square, piece chess.Piece) {
	g.board.Put(sq, piece)
	g.history.Reset()
}

// Clear empties sq and discards the history.
func (g *Game) Clear(sq chess.Square) {
	g.Put(sq, chess.Empty)
}

// EachPiece calls fn for every occupied square with its decoded piece.
func (g *Game) EachPiece(fn func(sq chess.Square, info chess.PieceInfo)) {
	g.board.EachPiece(func(sq chess.Square, p chess.Piece) {
		fn(sq, g.registry.Decode(p))
	})
}

// PiecePositions returns the squares of colour's pieces grouped by type.
func (g *Game) PiecePositions(colour chess.Colour) map[chess.PieceType][]chess.Square {
	return g.board.PiecePositions(colour)
}

// PseudoLegalDestinations returns the squares the piece on sq can reach
// without regard to its own king's safety.
func (g *Game) PseudoLegalDestinations(sq chess.Square) []Destination {
	return PseudoLegalDestinations(g.board, sq)
}

// LegalDestinations returns the legal destinations of the piece on sq.
// Pieces of the side not to move have none.
func (g *Game) LegalDestinations(sq chess.Square) []Destination {
	if p := g.board.Get(sq); p == chess.Empty || p.Colour() != g.board.ToMove {
		return nil
	}
	return LegalDestinations(g.board, sq)
}

// LegalMoves returns every legal move of the side to move.
func (g *Game) LegalMoves() []Move { return LegalMoves(g.board) }

// CheckState reports check, checkmate and stalemate for the side to move.
func (g *Game) CheckState() CheckState { return ComputeCheckState(g.board) }

// AttackersOf returns the pieces of colour by that attack sq.
func (g *Game) AttackersOf(sq chess.Square, by chess.Colour) []Attacker {
	return AttackersOf(g.board, sq, by)
}

// IsSquareAttackedBy reports whether colour by attacks sq.
func (g *Game) IsSquareAttackedBy(sq chess.Square, by chess.Colour) bool {
	return IsSquareAttackedBy(g.board, sq, by)
}

// IsPinned reports whether the piece on sq is pinned to its king.
func (g *Game) IsPinned(sq chess.Square) bool { return IsPinned(g.board, sq) }

// IsUndefended reports whether the piece on sq is attacked and not covered.
func (g *Game) IsUndefended(sq chess.Square) bool { return IsUndefended(g.board, sq) }

// Back undoes one move. It returns false at the start of the history.
func (g *Game) Back() bool { return g.history.Undo(g.board) }

// Forward redoes one move. It returns false at the end of the history.
func (g *Game) Forward() bool { return g.history.Redo(g.board) }

// GoTo moves the cursor to n played moves, clamped to [0, Len()].
func (g *Game) GoTo(n int) { g.history.GoTo(g.board, n) }

// Start undoes every played move.
func (g *Game) Start() { g.GoTo(0) }

// End redoes every recorded move.
func (g *Game) End() { g.GoTo(g.history.Len()) }

// Index returns the number of played moves.
func (g *Game) Index() int { return g.history.Index() }

// Len returns the number of recorded moves.
func (g *Game) Len() int { return g.history.Len() }

// IsAtStart reports whether no move is played.
func (g *Game) IsAtStart() bool { return g.history.IsAtStart() }

// IsAtEnd reports whether every recorded move is played.
func (g *Game) IsAtEnd() bool { return g.history.IsAtEnd() }

// SANs returns the notation of the played moves.
func (g *Game) SANs() []string { return g.history.SANs() }
