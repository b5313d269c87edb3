package engine

import "github.com/lgbarn/chessboard-go/internal/chess"

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(board *chess.Board) bool {
	return ComputeCheckState(board).IsCheckmate
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(board *chess.Board) bool {
	return ComputeCheckState(board).IsStalemate
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board) bool {
	return hasLegalMove(board)
}
