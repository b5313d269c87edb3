// Package config provides configuration for the chessboard command and its
// report writers.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// OutputFormat selects how reports are written.
type OutputFormat int

const (
	Text       OutputFormat = iota // Diagram, position and move list
	JSON                           // One JSON document per run
	FEN                            // Final position string only
	Transcript                     // Numbered move transcript only
)

var formatNames = map[OutputFormat]string{
	Text:       "text",
	JSON:       "json",
	FEN:        "fen",
	Transcript: "pgn",
}

func (f OutputFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

// ParseOutputFormat maps a format name, as accepted on the command line, to
// its OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for f, name := range formatNames {
		if name == want {
			return f, nil
		}
	}
	return Text, fmt.Errorf("unknown output format %q: %w", s, errors.ErrInvalidConfig)
}

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	// StartFEN is the position every input starts from. Empty means the
	// standard initial position.
	StartFEN string

	// Workers is the number of goroutines used for batch input; 0 picks
	// one per CPU.
	Workers int

	// SuppressDuplicates drops reports whose final position was already
	// reported in the same run.
	SuppressDuplicates bool

	Output  *OutputConfig
	Opening *OpeningConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Output:     NewOutputConfig(),
		Opening:    NewOpeningConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the report stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the diagnostics stream.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Logf writes a diagnostic line when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...any) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
	if !strings.HasSuffix(format, "\n") {
		fmt.Fprintln(c.LogFile)
	}
}

// Validate checks the configuration and its sections.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d is negative: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("worker count %d is negative: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.Output != nil {
		if err := c.Output.Validate(); err != nil {
			return err
		}
	}
	if c.Opening != nil {
		if err := c.Opening.Validate(); err != nil {
			return err
		}
	}
	return nil
}
