// Package output builds position reports and writes them in various formats.
package output

import (
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/eco"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/parser"
)

// Report describes a replayed game: the moves played, the position they
// reached and what the opening index knows about them.
type Report struct {
	Source     string       `json:"source,omitempty"`
	StartFEN   string       `json:"startFEN"`
	FEN        string       `json:"fen"`
	ToMove     string       `json:"toMove"`
	Moves      []MoveRecord `json:"moves,omitempty"`
	Transcript string       `json:"transcript,omitempty"`
	Result     string       `json:"result,omitempty"`
	Check      bool         `json:"check,omitempty"`
	Checkmate  bool         `json:"checkmate,omitempty"`
	Stalemate  bool         `json:"stalemate,omitempty"`
	Legal      []string     `json:"legal,omitempty"`

	Opening       *eco.Opening   `json:"opening,omitempty"`
	Continuations []*eco.Opening `json:"continuations,omitempty"`
	Matches       []eco.Match    `json:"matches,omitempty"`

	// Error is set when the input could not be replayed in full; the rest
	// of the report describes the position reached before the failure.
	Error string `json:"error,omitempty"`

	board    *chess.Board
	registry *chess.Registry
}

// Board returns the final position. It is nil for a decoded report.
func (r *Report) Board() *chess.Board { return r.board }

// MoveRecord is one played move.
type MoveRecord struct {
	Ply        int    `json:"ply"`
	MoveNumber int    `json:"moveNumber"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	FEN        string `json:"fen"`
}

// BuildReport describes g at its current history position. ix may be nil,
// in which case the opening sections are left empty. The game is walked
// from its start to collect per-move positions and is left where it was.
func BuildReport(source string, g *engine.Game, result chess.Result, ix *eco.Index, cfg *config.Config) *Report {
	r := &Report{
		Source:   source,
		Result:   result.String(),
		registry: g.Registry(),
	}

	cursor := g.Index()
	g.Start()
	r.StartFEN = g.FEN()
	firstColour := g.ToMove()
	for ply := 0; ply < cursor; ply++ {
		g.Forward()
		r.Moves = append(r.Moves, moveRecord(g, ply, firstColour))
	}

	r.FEN = g.FEN()
	r.ToMove = strings.ToLower(g.ToMove().String())
	r.board = g.Board().Copy()

	sans := g.SANs()
	r.Transcript = parser.FormatTranscript(sans)

	state := g.CheckState()
	r.Check = state.IsCheck
	r.Checkmate = state.IsCheckmate
	r.Stalemate = state.IsStalemate

	if cfg != nil && cfg.Output != nil && cfg.Output.ShowLegal {
		r.Legal = LegalSANs(g)
	}
	if ix != nil && cfg != nil && cfg.Opening != nil {
		addOpenings(r, ix, cfg.Opening, sans, g.ToMove())
	}
	return r
}

// moveRecord describes the move that was just redone, ply counted from 0.
func moveRecord(g *engine.Game, ply int, first chess.Colour) MoveRecord {
	e := g.History().Entry(ply)
	reg := g.Registry()
	piece := reg.Decode(e.Piece)

	// A game set up with Black to move numbers its first move "1...".
	offset := 0
	if first == chess.Black {
		offset = 1
	}
	rec := MoveRecord{
		Ply:        ply + 1,
		MoveNumber: (ply+offset)/2 + 1,
		Color:      strings.ToLower(piece.Colour().String()),
		SAN:        e.SAN,
		From:       e.From.String(),
		To:         e.To.String(),
		Piece:      piece.Name,
		FEN:        g.FEN(),
	}
	switch {
	case e.EnPassant != nil:
		rec.Captured = reg.Decode(e.EnPassant.Piece).Name
	case e.Captured != chess.Empty:
		rec.Captured = reg.Decode(e.Captured).Name
	}
	move := engine.Move{From: e.From, To: e.To}
	if e.Placed != e.Piece {
		move.Promotion = e.Placed.Type()
		rec.Promotion = reg.Decode(e.Placed).Name
	}
	rec.UCI = move.String()
	return rec
}

// LegalSANs returns the legal moves of the side to move in SAN, in the
// order engine.LegalMoves lists them. Each promotion is listed once, to a
// queen.
func LegalSANs(g *engine.Game) []string {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return nil
	}
	sans := make([]string, 0, len(moves))
	for _, m := range moves {
		sans = append(sans, engine.MoveSAN(g.Board(), m.From, m.To, m.Promotion))
	}
	return sans
}

func addOpenings(r *Report, ix *eco.Index, cfg *config.OpeningConfig, sans []string, toMove chess.Colour) {
	if cfg.ShowCurrent {
		r.Opening = ix.Current(sans)
	}
	if cfg.PrefixLimit > 0 {
		r.Continuations = limit(ix.SearchByPrefix(sans, toMove), cfg.PrefixLimit)
	}
	if cfg.Query != "" {
		r.Matches = limit(ix.SearchByQuery(cfg.Query), cfg.QueryLimit)
	}
}

// limit truncates s to n elements; n of 0 means no limit.
func limit[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
