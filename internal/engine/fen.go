// Package engine provides chess move generation, check detection and the
// game state with its navigable history.
package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Defaults for trailing fields missing from a FEN string.
const (
	defaultSideToMove = "w"
	defaultCastling   = "KQkq"
)

// ParseFEN creates a board from a FEN string. Only the placement field is
// required; a missing side to move defaults to White, missing castling
// rights to KQkq and a missing en-passant field to none. The half-move and
// full-move counters are accepted but not tracked.
func ParseFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}
	if len(parts) > 6 {
		return nil, fmt.Errorf("too many fields (%d): %w", len(parts), errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	squares, err := ParsePlacement(parts[0])
	if err != nil {
		return nil, err
	}
	board.Squares = squares

	if err := parseSideToMove(board, field(parts, 1, defaultSideToMove)); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(board, field(parts, 2, defaultCastling)); err != nil {
		return nil, err
	}
	if err := parseEnPassant(board, field(parts, 3, "-")); err != nil {
		return nil, err
	}

	return board, nil
}

// MustParseFEN is ParseFEN for constants and tests; it panics on error.
func MustParseFEN(fen string) *chess.Board {
	board, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return board
}

func field(parts []string, i int, def string) string {
	if i < len(parts) {
		return parts[i]
	}
	return def
}

// ParsePlacement parses the piece placement field of a FEN string. Rows must
// each cover exactly eight squares, there must be eight of them, pawns may
// not stand on the first or eighth rank and each colour has at most one king.
func ParsePlacement(placement string) ([chess.BoardSize][chess.BoardSize]chess.Piece, error) {
	var squares [chess.BoardSize][chess.BoardSize]chess.Piece

	rows := strings.Split(placement, "/")
	if len(rows) != chess.BoardSize {
		return squares, fmt.Errorf("expected %d ranks, got %d: %w", chess.BoardSize, len(rows), errors.ErrInvalidFEN)
	}

	kings := [2]int{}
	for row, text := range rows {
		col := 0
		for i := 0; i < len(text); i++ {
			c := text[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				if col > chess.BoardSize {
					return squares, fmt.Errorf("rank %c is too long: %w", chess.Ranks[row], errors.ErrInvalidFEN)
				}
				continue
			}

			piece, ok := chess.PieceFromFENCode(c)
			if !ok {
				return squares, fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if col >= chess.BoardSize {
				return squares, fmt.Errorf("rank %c is too long: %w", chess.Ranks[row], errors.ErrInvalidFEN)
			}
			switch piece.Type() {
			case chess.Pawn:
				if row == 0 || row == chess.BoardSize-1 {
					return squares, fmt.Errorf("pawn on rank %c: %w", chess.Ranks[row], errors.ErrInvalidFEN)
				}
			case chess.King:
				kings[piece.Colour()]++
				if kings[piece.Colour()] > 1 {
					return squares, fmt.Errorf("more than one %s king: %w", piece.Colour(), errors.ErrInvalidFEN)
				}
			}
			squares[row][col] = piece
			col++
		}
		if col != chess.BoardSize {
			return squares, fmt.Errorf("rank %c covers %d squares: %w", chess.Ranks[row], col, errors.ErrInvalidFEN)
		}
	}
	return squares, nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, side string) error {
	switch side {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", side, errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, castling string) error {
	rights, ok := chess.ParseCastlingRights(castling)
	if !ok {
		return fmt.Errorf("invalid castling rights: %s: %w", castling, errors.ErrInvalidFEN)
	}
	board.Castling = rights
	return nil
}

// parseEnPassant parses the en passant target square field. The target can
// only lie on the third or sixth rank.
func parseEnPassant(board *chess.Board, ep string) error {
	if ep == "-" {
		board.EnPassant = chess.NoSquare
		return nil
	}
	sq, ok := chess.ParseSquare(ep)
	if !ok || (sq.Rank() != '3' && sq.Rank() != '6') {
		return fmt.Errorf("invalid en passant square: %s: %w", ep, errors.ErrInvalidFEN)
	}
	board.EnPassant = sq
	return nil
}

// BoardToFEN converts a board to a FEN string. The clock fields are always
// written as "0 1".
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	sb.WriteString(PlacementToFEN(board))
	sb.WriteByte(' ')
	sb.WriteByte(board.ToMove.Letter())
	sb.WriteByte(' ')
	sb.WriteString(board.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(board.EnPassant.String())
	sb.WriteString(" 0 1")

	return sb.String()
}

// PlacementToFEN writes the piece placement field only.
func PlacementToFEN(board *chess.Board) string {
	var sb strings.Builder

	for row := 0; row < chess.BoardSize; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Squares[row][col]
			if piece == chess.Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(chess.Describe(piece).FENCode)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	return sb.String()
}
