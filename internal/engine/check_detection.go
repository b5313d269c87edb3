package engine

import "github.com/lgbarn/chessboard-go/internal/chess"

// Attacker describes one piece attacking a square. Direction is the step
// from the attacked square towards the attacker for pieces found on a ray
// (sliders and the king) and zero for knights and pawns.
type Attacker struct {
	Square    chess.Square
	Piece     chess.PieceType
	Direction chess.Direction
}

// CheckState is the check status of the side to move.
type CheckState struct {
	// KingSquare is NoSquare when the side to move has no king.
	KingSquare  chess.Square
	KingFound   bool
	IsCheck     bool
	IsCheckmate bool
	IsStalemate bool
	Attackers   []Attacker
}

// AttackersOf returns every piece of colour by that attacks sq.
func AttackersOf(board *chess.Board, sq chess.Square, by chess.Colour) []Attacker {
	var attackers []Attacker

	for _, d := range chess.AllDirections {
		for n := 1; ; n++ {
			s := sq.Step(d, n)
			if !s.Valid() {
				break
			}
			piece := board.Get(s)
			if piece == chess.Empty {
				continue
			}
			if piece.Colour() == by {
				pt := piece.Type()
				if pt.AttacksAlong(d) || (pt == chess.King && n == 1) {
					attackers = append(attackers, Attacker{Square: s, Piece: pt, Direction: d})
				}
			}
			break
		}
	}

	// Pawns of colour by attack from one row behind their direction of travel.
	pawn := chess.MakePiece(by, chess.Pawn)
	for _, dc := range []int{-1, 1} {
		s := chess.Sq(sq.Row-by.Forward(), sq.Col+dc)
		if board.Get(s) == pawn {
			attackers = append(attackers, Attacker{Square: s, Piece: chess.Pawn})
		}
	}

	knight := chess.MakePiece(by, chess.Knight)
	for _, d := range chess.KnightOffsets {
		s := sq.Step(d, 1)
		if board.Get(s) == knight {
			attackers = append(attackers, Attacker{Square: s, Piece: chess.Knight})
		}
	}

	return attackers
}

// IsSquareAttackedBy reports whether any piece of colour by attacks sq.
func IsSquareAttackedBy(board *chess.Board, sq chess.Square, by chess.Colour) bool {
	return len(AttackersOf(board, sq, by)) > 0
}

// IsInCheck reports whether colour's king is attacked. A board without that
// king is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king, ok := board.FindKing(colour)
	if !ok {
		return false
	}
	return IsSquareAttackedBy(board, king, colour.Opposite())
}

// IsUndefended reports whether the piece on sq is attacked by the opponent
// and no piece of its own colour covers the square.
func IsUndefended(board *chess.Board, sq chess.Square) bool {
	piece := board.Get(sq)
	if piece == chess.Empty {
		return false
	}
	colour := piece.Colour()
	return IsSquareAttackedBy(board, sq, colour.Opposite()) && !IsSquareAttackedBy(board, sq, colour)
}

// IsPinned reports whether the piece on sq is the first piece met walking
// from its own king along a rank, file or diagonal, with an enemy slider
// that attacks along that line standing next beyond it.
func IsPinned(board *chess.Board, sq chess.Square) bool {
	piece := board.Get(sq)
	if piece == chess.Empty || piece.Type() == chess.King {
		return false
	}
	colour := piece.Colour()
	king, ok := board.FindKing(colour)
	if !ok {
		return false
	}
	d, ok := lineBetween(king, sq)
	if !ok {
		return false
	}

	for n := 1; ; n++ {
		s := king.Step(d, n)
		if s == sq {
			break
		}
		if !board.IsEmpty(s) {
			return false
		}
	}

	for n := 1; ; n++ {
		s := sq.Step(d, n)
		if !s.Valid() {
			return false
		}
		beyond := board.Get(s)
		if beyond == chess.Empty {
			continue
		}
		return beyond.Colour() != colour && beyond.Type().AttacksAlong(d)
	}
}

// CanCastle reports whether colour may castle on side right now: the path
// must be clear, the king not in check, and neither the square it crosses
// nor the one it lands on attacked.
func CanCastle(board *chess.Board, colour chess.Colour, side chess.CastleSide) bool {
	if !castlePathClear(board, colour, side) {
		return false
	}
	row := chess.HomeRow(colour)
	geo := castles[side]
	enemy := colour.Opposite()
	for _, col := range []int{kingHomeCol, geo.transit, geo.kingTo} {
		if IsSquareAttackedBy(board, chess.Sq(row, col), enemy) {
			return false
		}
	}
	return true
}

// ComputeCheckState evaluates check, checkmate and stalemate for the side to
// move.
func ComputeCheckState(board *chess.Board) CheckState {
	colour := board.ToMove
	king, ok := board.FindKing(colour)
	state := CheckState{KingSquare: king, KingFound: ok}
	if !ok {
		return state
	}

	state.Attackers = AttackersOf(board, king, colour.Opposite())
	state.IsCheck = len(state.Attackers) > 0
	if !state.IsCheck {
		state.IsStalemate = !hasLegalMove(board)
		return state
	}

	if canKingEscape(board, king) {
		return state
	}
	// Double check can only be met by moving the king.
	if len(state.Attackers) == 1 && canProtectKing(board, king, state.Attackers[0]) {
		return state
	}
	state.IsCheckmate = true
	return state
}

// canKingEscape reports whether the king on sq has a step that leaves it
// unattacked. The king is moved on a copy, so squares behind it on a
// checking ray count as attacked.
func canKingEscape(board *chess.Board, sq chess.Square) bool {
	colour := board.Get(sq).Colour()
	for _, d := range chess.King.Offsets() {
		to := sq.Step(d, 1)
		if ok, _ := canLandOn(board, to, colour); ok && leavesKingSafe(board, sq, to) {
			return true
		}
	}
	return false
}

// canProtectKing reports whether a piece other than the king can capture the
// attacker or interpose on its ray without exposing the king.
func canProtectKing(board *chess.Board, king chess.Square, attacker Attacker) bool {
	colour := board.ToMove
	targets := map[chess.Square]bool{attacker.Square: true}
	if attacker.Piece.Slides() {
		for n := 1; ; n++ {
			s := king.Step(attacker.Direction, n)
			if s == attacker.Square || !s.Valid() {
				break
			}
			targets[s] = true
		}
	}

	found := false
	board.EachPiece(func(from chess.Square, piece chess.Piece) {
		if found || piece.Colour() != colour || piece.Type() == chess.King {
			return
		}
		for _, dest := range PseudoLegalDestinations(board, from) {
			hits := targets[dest.Square]
			if !hits && isEnPassantCapture(board, from, dest.Square) {
				hits = enPassantVictim(from, dest.Square) == attacker.Square
			}
			if hits && leavesKingSafe(board, from, dest.Square) {
				found = true
				return
			}
		}
	})
	return found
}
