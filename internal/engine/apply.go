package engine

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/parser"
)

type moveOptions struct {
	san       string
	promotion chess.PieceType
}

// MoveOption adjusts how ApplyMove records a move.
type MoveOption func(*moveOptions)

// WithSAN records san as the move's notation instead of generating it. A
// promotion written in san ("e8=N") chooses the promotion piece.
func WithSAN(san string) MoveOption {
	return func(o *moveOptions) { o.san = san }
}

// WithPromotion chooses the piece a pawn promotes to. Without it a pawn
// reaching the last rank becomes a queen.
func WithPromotion(pt chess.PieceType) MoveOption {
	return func(o *moveOptions) { o.promotion = pt }
}

// ApplyMove moves the piece on from to to, records the move in the history
// and flips the side to move. Any moves past the history cursor are
// discarded. The move must be legal for the side to move: the piece must be
// able to reach to, the move may not leave its own king in check, and a
// castle may not start in, cross or land on an attacked square. On error the
// game is unchanged.
func (g *Game) ApplyMove(from, to chess.Square, opts ...MoveOption) (*Entry, error) {
	var o moveOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !from.Valid() || !to.Valid() {
		return nil, fmt.Errorf("%v-%v: %w", from, to, errors.ErrOutOfBounds)
	}
	piece := g.board.Get(from)
	if piece == chess.Empty {
		return nil, fmt.Errorf("%s: %w", from, errors.ErrNoPiece)
	}
	if piece.Colour() != g.board.ToMove {
		return nil, fmt.Errorf("%s %s on %s: %w", piece.Colour(), piece.Type(), from, errors.ErrWrongTurn)
	}
	if !containsSquare(PseudoLegalDestinations(g.board, from), to) {
		return nil, fmt.Errorf("%s %s%s: %w", piece.Type(), from, to, errors.ErrIllegalMove)
	}
	if side := castleSideOf(g.board, from, to); side != chess.NoCastle {
		if !CanCastle(g.board, piece.Colour(), side) {
			return nil, fmt.Errorf("%s: %w", side, errors.ErrCastleThroughCheck)
		}
	} else if !leavesKingSafe(g.board, from, to) {
		return nil, fmt.Errorf("%s %s%s leaves the king in check: %w", piece.Type(), from, to, errors.ErrIllegalMove)
	}
	if err := promotionFromSAN(&o); err != nil {
		return nil, err
	}
	if o.promotion != chess.NoPiece && !isPromotionPiece(o.promotion) {
		return nil, fmt.Errorf("cannot promote to %s: %w", o.promotion, errors.ErrIllegalMove)
	}

	san := o.san
	if san == "" {
		san = MoveSAN(g.board, from, to, o.promotion)
	}
	e := execute(g.board, from, to, o.promotion)
	e.SAN = san
	g.history.Push(e)
	return e, nil
}

// promotionFromSAN takes the promotion piece from the notation hint when
// none was chosen explicitly. A hint naming a different piece than
// WithPromotion is an error. Hints that do not parse are recorded as given.
func promotionFromSAN(o *moveOptions) error {
	if o.san == "" {
		return nil
	}
	hint, err := parser.ParseSAN(o.san)
	if err != nil || hint.Promotion == chess.NoPiece {
		return nil
	}
	switch {
	case o.promotion == chess.NoPiece:
		o.promotion = hint.Promotion
	case o.promotion != hint.Promotion:
		return fmt.Errorf("%s contradicts promotion to %s: %w", o.san, o.promotion, errors.ErrIllegalMove)
	}
	return nil
}

// ResolveParsedMove finds the coordinates of a parsed move for the side to
// move without applying it. Result markers do not resolve.
func (g *Game) ResolveParsedMove(move chess.ParsedMove) (Move, error) {
	if move.IsResult() {
		return Move{}, fmt.Errorf("%s is a result: %w", move.Text, errors.ErrUnresolvedMove)
	}

	var from, to chess.Square
	var err error
	switch {
	case move.IsCastle():
		from, to, err = findCastleSource(g.board, move)
	case !move.To.Valid():
		err = fmt.Errorf("%s: no destination: %w", move.Text, errors.ErrUnresolvedMove)
	case move.Piece == chess.Pawn:
		to = move.To
		from, err = findPawnSource(g.board, move)
	default:
		to = move.To
		from, err = findPieceSource(g.board, move)
	}
	if err != nil {
		return Move{}, err
	}

	m := Move{From: from, To: to, Promotion: move.Promotion}
	m.Capture = g.board.Get(to) != chess.Empty || isEnPassantCapture(g.board, from, to)
	return m, nil
}

// ApplyParsedMove resolves a parsed move and applies it. A result marker is
// accepted and changes nothing, returning a nil entry. An unresolved or
// ambiguous move is an error and leaves the game unchanged.
func (g *Game) ApplyParsedMove(move chess.ParsedMove) (*Entry, error) {
	if move.IsResult() {
		return nil, nil
	}
	m, err := g.ResolveParsedMove(move)
	if err != nil {
		return nil, err
	}
	return g.ApplyMove(m.From, m.To, WithPromotion(m.Promotion))
}

// PlayMoves applies moves in order and stops at the first failure, which is
// returned as a *errors.GameError carrying the 1-based ply and move text.
// Moves applied before the failure stay applied.
func (g *Game) PlayMoves(moves []chess.ParsedMove) error {
	for i, move := range moves {
		if _, err := g.ApplyParsedMove(move); err != nil {
			return &errors.GameError{Err: err, PlyNum: i + 1, MoveText: move.Text}
		}
	}
	return nil
}

// LoadMoves queues moves for PlayNext, replacing any earlier queue.
func (g *Game) LoadMoves(moves []chess.ParsedMove) {
	g.queue = append([]chess.ParsedMove(nil), moves...)
}

// Pending returns the number of queued moves not yet played.
func (g *Game) Pending() int { return len(g.queue) }

// PlayNext applies the next queued move. It returns nil, nil when the queue
// is empty or the move was a result marker. A failing move stays queued.
func (g *Game) PlayNext() (*Entry, error) {
	if len(g.queue) == 0 {
		return nil, nil
	}
	e, err := g.ApplyParsedMove(g.queue[0])
	if err != nil {
		return nil, err
	}
	g.queue = g.queue[1:]
	return e, nil
}
