package hashing

import (
	"math/rand"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// Zobrist keys, indexed by colour, piece type and square (row*8 + col).
var (
	zobristPiece     [2][7][chess.BoardSize * chess.BoardSize]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [chess.BoardSize]uint64
	zobristSide      uint64 // XORed in when Black is to move
)

func init() {
	// Fixed seed so hashes are stable between runs.
	rnd := rand.New(rand.NewSource(0xC0DE))

	for c := range zobristPiece {
		for pt := range zobristPiece[c] {
			for sq := range zobristPiece[c][pt] {
				zobristPiece[c][pt][sq] = rnd.Uint64()
			}
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rnd.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// GenerateZobristHash hashes everything that makes two positions the same:
// piece placement, side to move, castling rights and the en-passant file.
func GenerateZobristHash(board *chess.Board) uint64 {
	var key uint64

	board.EachPiece(func(sq chess.Square, piece chess.Piece) {
		key ^= zobristPiece[piece.Colour()][piece.Type()][sq.Row*chess.BoardSize+sq.Col]
	})
	if board.ToMove == chess.Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[board.Castling&chess.AllCastling]
	if board.HasEnPassant() {
		key ^= zobristEnPassant[board.EnPassant.Col]
	}
	return key
}

// WeakHash is a cheap second opinion on a Zobrist match: a position
// checksum that does not share the Zobrist key tables.
func WeakHash(board *chess.Board) uint32 {
	var h uint32
	board.EachPiece(func(sq chess.Square, piece chess.Piece) {
		h += uint32(piece) * uint32(sq.Row*chess.BoardSize+sq.Col+1)
	})
	h = h*31 + uint32(board.ToMove)
	h = h*31 + uint32(board.Castling)
	return h
}
