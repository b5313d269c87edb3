package engine

import (
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// MoveSAN renders from -> to in standard algebraic notation for the position
// on board before the move is made: piece letter, the least disambiguation
// that identifies the mover, capture marker, promotion and a check or mate
// suffix.
func MoveSAN(board *chess.Board, from, to chess.Square, promo chess.PieceType) string {
	piece := board.Get(from)
	var sb strings.Builder

	if side := castleSideOf(board, from, to); side != chess.NoCastle {
		sb.WriteString(side.String())
	} else {
		capture := board.Get(to) != chess.Empty || isEnPassantCapture(board, from, to)
		if piece.Type() == chess.Pawn {
			if capture {
				sb.WriteByte(from.File())
			}
		} else {
			sb.WriteByte(piece.Type().Letter())
			sb.WriteString(disambiguation(board, from, to))
		}
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if piece.Type() == chess.Pawn && to.Row == chess.HomeRow(piece.Colour().Opposite()) {
			if !isPromotionPiece(promo) {
				promo = chess.Queen
			}
			sb.WriteByte('=')
			sb.WriteByte(promo.Letter())
		}
	}

	after := board.Copy()
	execute(after, from, to, promo)
	switch state := ComputeCheckState(after); {
	case state.IsCheckmate:
		sb.WriteByte('#')
	case state.IsCheck:
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell the
// piece on from apart from other pieces of the same kind that can legally
// reach to.
func disambiguation(board *chess.Board, from, to chess.Square) string {
	piece := board.Get(from)
	var sameFile, sameRank, rivals bool

	board.EachPiece(func(sq chess.Square, p chess.Piece) {
		if sq == from || p != piece {
			return
		}
		if !containsSquare(PseudoLegalDestinations(board, sq), to) || !leavesKingSafe(board, sq, to) {
			return
		}
		rivals = true
		if sq.Col == from.Col {
			sameFile = true
		}
		if sq.Row == from.Row {
			sameRank = true
		}
	})

	switch {
	case !rivals:
		return ""
	case !sameFile:
		return string(from.File())
	case !sameRank:
		return string(from.Rank())
	default:
		return from.String()
	}
}
