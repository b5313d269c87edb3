// Package parser decodes single-move notation and game transcripts.
package parser

import (
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// resultTokens maps each accepted game-result token to its result.
var resultTokens = map[string]chess.Result{
	"1-0":     chess.WhiteWins,
	"0-1":     chess.BlackWins,
	"1/2-1/2": chess.Draw,
	"½-½":     chess.Draw,
	"*":       chess.Unfinished,
}

// castleTokens maps castling notation, letter-O and digit-zero forms, to
// the side castled.
var castleTokens = map[string]chess.CastleSide{
	"O-O":   chess.Kingside,
	"0-0":   chess.Kingside,
	"O-O-O": chess.Queenside,
	"0-0-0": chess.Queenside,
}

// isCol returns true if c is a valid column (file) character.
func isCol(c byte) bool {
	return c >= 'a' && c <= 'h'
}

// isRank returns true if c is a valid rank character.
func isRank(c byte) bool {
	return c >= '1' && c <= '8'
}

// isPiece returns the piece named by an uppercase SAN letter other than P.
func isPiece(c byte) chess.PieceType {
	switch c {
	case 'K':
		return chess.King
	case 'Q':
		return chess.Queen
	case 'R':
		return chess.Rook
	case 'N':
		return chess.Knight
	case 'B':
		return chess.Bishop
	}
	return chess.NoPiece
}

// isCheck returns true if c is a check indicator.
func isCheck(c byte) bool {
	return c == '+' || c == '#'
}

// isAnnotation returns true for move-quality suffix characters.
func isAnnotation(c byte) bool {
	return c == '!' || c == '?'
}

func parseFailure(text, expected string) error {
	return &errors.ParseError{Err: errors.ErrParseFailure, Expected: expected, Got: text}
}

// ParseSAN decodes one token of single-move notation: a result marker, a
// castle, a piece move such as "Nbxd7+" or a pawn move such as "exd8=Q#".
func ParseSAN(text string) (chess.ParsedMove, error) {
	move := chess.ParsedMove{
		Text:  text,
		Piece: chess.Pawn,
		From:  chess.NoHint,
		To:    chess.NoSquare,
	}

	s := strings.TrimSpace(text)
	if result, ok := resultTokens[s]; ok {
		move.Result = result
		return move, nil
	}

	for len(s) > 0 && isAnnotation(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	for len(s) > 0 && isCheck(s[len(s)-1]) {
		if s[len(s)-1] == '#' {
			move.Mate = true
		} else {
			move.Check = true
		}
		s = s[:len(s)-1]
	}
	if s == "" {
		return move, parseFailure(text, "move")
	}

	if side, ok := castleTokens[s]; ok {
		move.Piece = chess.King
		move.Castle = side
		return move, nil
	}

	if pt := isPiece(s[0]); pt != chess.NoPiece {
		move.Piece = pt
		s = s[1:]
	} else {
		promo, rest, err := splitPromotion(s)
		if err != nil {
			return move, parseFailure(text, "promotion piece")
		}
		move.Promotion = promo
		s = rest
	}

	if err := decodeTarget(&move, s); err != nil {
		return move, parseFailure(text, "destination square")
	}
	if move.Piece == chess.Pawn {
		if problem := pawnMoveProblem(move); problem != "" {
			return move, parseFailure(text, problem)
		}
	}
	return move, nil
}

// splitPromotion removes a trailing promotion from a pawn move, written
// either "e8=Q" or "e8Q".
func splitPromotion(s string) (chess.PieceType, string, error) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		if i != len(s)-2 {
			return chess.NoPiece, s, errors.ErrParseFailure
		}
		pt := isPiece(s[i+1])
		if pt == chess.NoPiece || pt == chess.King {
			return chess.NoPiece, s, errors.ErrParseFailure
		}
		return pt, s[:i], nil
	}
	if n := len(s); n > 2 {
		if pt := isPiece(s[n-1]); pt != chess.NoPiece && pt != chess.King {
			return pt, s[:n-1], nil
		}
	}
	return chess.NoPiece, s, nil
}

// decodeTarget reads "[hint][x]square" where the hint is a file, a rank or
// a full square.
func decodeTarget(move *chess.ParsedMove, s string) error {
	n := len(s)
	if n < 2 || !isCol(s[n-2]) || !isRank(s[n-1]) {
		return errors.ErrParseFailure
	}
	move.To = chess.Sq(chess.RowFromRank(s[n-1]), chess.ColFromFile(s[n-2]))

	hint := s[:n-2]
	if strings.HasSuffix(hint, "x") {
		move.Capture = true
		hint = hint[:len(hint)-1]
	}

	switch len(hint) {
	case 0:
	case 1:
		switch c := hint[0]; {
		case isCol(c):
			move.From.Col = chess.ColFromFile(c)
		case isRank(c):
			move.From.Row = chess.RowFromRank(c)
		default:
			return errors.ErrParseFailure
		}
	case 2:
		if !isCol(hint[0]) || !isRank(hint[1]) {
			return errors.ErrParseFailure
		}
		move.From = chess.Hint{Row: chess.RowFromRank(hint[1]), Col: chess.ColFromFile(hint[0])}
	default:
		return errors.ErrParseFailure
	}
	return nil
}

// pawnMoveProblem describes what a pawn move that cannot happen was missing,
// or returns "" for a well-formed pawn move.
func pawnMoveProblem(move chess.ParsedMove) string {
	lastRank := move.To.Row == 0 || move.To.Row == chess.BoardSize-1
	switch {
	case move.Promotion != chess.NoPiece && !lastRank:
		return "promotion on the last rank"
	case move.Capture && !move.From.HasCol():
		return "capturing file"
	case move.From.HasCol() && abs(move.From.Col-move.To.Col) > 1:
		return "adjacent capturing file"
	}
	return ""
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
