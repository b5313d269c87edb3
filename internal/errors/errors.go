// Package errors provides sentinel errors and error types for the chessboard
// engine. Structured errors preserve context while still allowing inspection
// with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed position string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move the piece on the origin square cannot make.
	ErrIllegalMove = errors.New("illegal move")

	// ErrCastleThroughCheck indicates a castle out of, through, or into check.
	ErrCastleThroughCheck = errors.New("cannot castle out of, through, or into check")

	// ErrNoPiece indicates a move from an empty or off-board square.
	ErrNoPiece = errors.New("no piece on origin square")

	// ErrWrongTurn indicates a move by the side not on move.
	ErrWrongTurn = errors.New("piece does not belong to the side to move")

	// ErrOutOfBounds indicates a coordinate outside the board.
	ErrOutOfBounds = errors.New("square out of bounds")

	// ErrUnresolvedMove indicates that no piece matches a parsed move.
	ErrUnresolvedMove = errors.New("no piece can make this move")

	// ErrAmbiguousMove indicates that more than one piece matches a parsed move.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrParseFailure indicates malformed move or transcript notation.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidOpening indicates a malformed opening dataset record.
	ErrInvalidOpening = errors.New("invalid opening record")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// GameError wraps errors with game context: where the game came from, the
// ply at which it failed and the move text involved. It supports unwrapping
// via errors.Is() and errors.As().
type GameError struct {
	Err      error  // The underlying error
	Source   string // Input name (file name, "stdin", "-moves")
	PlyNum   int    // 1-based ply where the error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	if e.Source != "" {
		parts = append(parts, e.Source)
	}
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err != nil && context != "":
		return fmt.Sprintf("%s: %v", context, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case context != "":
		return context
	}
	return "game error"
}

// Unwrap returns the underlying error.
func (e *GameError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with location context.
// It's used for position, move and dataset parsing errors.
type ParseError struct {
	Err      error  // The underlying error
	File     string // Source file name
	Line     int    // Line number (1-based)
	Column   int    // Column or token number (1-based)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.File != "" || e.Line > 0 {
		loc := e.File
		if e.Line > 0 {
			if loc != "" {
				loc += ":"
			}
			loc += fmt.Sprintf("%d", e.Line)
			if e.Column > 0 {
				loc += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %q", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}
	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is is errors.Is, re-exported so callers importing this package under its
// own name keep access to the standard helpers.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As, re-exported for the same reason as Is.
func As(err error, target any) bool {
	return errors.As(err, target)
}
