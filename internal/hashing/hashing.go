// Package hashing provides position hashing and duplicate detection for
// replayed inputs.
package hashing

import (
	"github.com/lgbarn/chessboard-go/internal/chess"
)

// DuplicateDetector tracks the final positions already seen. It is not safe
// for concurrent use; the command checks results from a single goroutine.
type DuplicateDetector struct {
	// hashTable stores seen positions by Zobrist hash
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires the same number of plies
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// GameSignature stores identifying information about a replay.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// MoveCount is the number of half-moves played
	MoveCount int
	// WeakHash is a fast hash for quick comparison
	WeakHash uint32
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector(exactMatch bool) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
	}
}

// CheckAndAdd checks whether a replay that reached board after plies moves
// duplicates one seen before, and records it if not.
// Returns true if the replay is a duplicate.
func (d *DuplicateDetector) CheckAndAdd(board *chess.Board, plies int) bool {
	if board == nil {
		return false
	}

	sig := GameSignature{
		Hash:      GenerateZobristHash(board),
		MoveCount: plies,
		WeakHash:  WeakHash(board),
	}

	// Check for duplicates
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return false
}

// signaturesMatch checks if two signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	return !d.useExactMatch || a.MoveCount == b.MoveCount
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique positions recorded.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.hashTable {
		count += len(sigs)
	}
	return count
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
}
