package chess

import (
	"fmt"
	"strings"
)

// PieceInfo is the decoded, immutable description of a piece code.
type PieceInfo struct {
	Code        Piece
	IsEmpty     bool
	IsBlack     bool
	Type        PieceType
	Letter      string // lowercase piece letter
	Symbol      string // symbol for the piece's own colour
	SymbolWhite string
	SymbolBlack string
	FENCode     string // uppercase for White, lowercase for Black
	Name        string
}

// Colour returns the colour of a non-empty piece.
func (pi PieceInfo) Colour() Colour {
	if pi.IsBlack {
		return Black
	}
	return White
}

var emptyInfo = PieceInfo{IsEmpty: true}

// Describe decodes a piece code. It is a pure function; Registry memoizes it.
// Codes whose type bits are not a piece type are a programming error and
// cause a panic.
func Describe(code Piece) PieceInfo {
	if code == Empty {
		return emptyInfo
	}
	pt := code.Type()
	if !pt.Valid() || code&^(typeMask|BlackFlag) != 0 {
		panic(fmt.Sprintf("chess: invalid piece code %#x", uint8(code)))
	}

	rule := pt.rule()
	isBlack := code.Colour() == Black
	letter := strings.ToLower(string(rule.letter))
	info := PieceInfo{
		Code:        code,
		IsBlack:     isBlack,
		Type:        pt,
		Letter:      letter,
		Symbol:      rule.symbolWhite,
		SymbolWhite: rule.symbolWhite,
		SymbolBlack: rule.symbolBlack,
		FENCode:     string(rule.letter),
		Name:        rule.name,
	}
	if isBlack {
		info.Symbol = rule.symbolBlack
		info.FENCode = letter
	}
	return info
}

// Registry memoizes Describe by code. A Registry is owned by whoever
// composes the engine and is not safe for concurrent use. Entries are
// handed out by value so callers cannot alter the cache.
type Registry struct {
	byCode map[Piece]PieceInfo
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byCode: make(map[Piece]PieceInfo)}
}

// Decode returns the cached description of code, decoding it on first use.
func (r *Registry) Decode(code Piece) PieceInfo {
	if info, ok := r.byCode[code]; ok {
		return info
	}
	info := Describe(code)
	r.byCode[code] = info
	return info
}

// Len returns the number of distinct codes decoded so far.
func (r *Registry) Len() int {
	return len(r.byCode)
}

// PieceFromFENCode converts a position-notation letter to a piece code.
func PieceFromFENCode(c byte) (Piece, bool) {
	pt := PieceTypeFromLetter(c)
	if pt == NoPiece {
		return Empty, false
	}
	if c >= 'a' && c <= 'z' {
		return B(pt), true
	}
	return W(pt), true
}
