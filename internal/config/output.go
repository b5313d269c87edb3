package config

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// OutputConfig holds settings related to report formatting.
type OutputConfig struct {
	// Format specifies the report format (text, JSON, FEN, transcript)
	Format OutputFormat

	// MaxLineLength is the wrap column for move lists in text output
	MaxLineLength uint

	// ShowLegal includes the legal moves of the side to move
	ShowLegal bool

	// ShowDiagram draws the board in text output
	ShowDiagram bool

	// UseSymbols draws pieces with their figurine symbols instead of letters
	UseSymbols bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:        Text,
		MaxLineLength: 80,
		ShowDiagram:   true,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if _, ok := formatNames[o.Format]; !ok {
		return fmt.Errorf("output format %d: %w", int(o.Format), errors.ErrInvalidConfig)
	}
	if o.MaxLineLength > 0 && o.MaxLineLength < 20 {
		return fmt.Errorf("line length %d is below 20: %w", o.MaxLineLength, errors.ErrInvalidConfig)
	}
	return nil
}
