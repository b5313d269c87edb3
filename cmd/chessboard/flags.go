// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessboard-go/internal/config"
)

var (
	// Input options
	startFEN     = flag.String("fen", "", "Start position in FEN (default: initial position)")
	movesText    = flag.String("moves", "", "Moves to play, e.g. \"e4 e5 Nf3\", instead of reading input files")
	fileListFile = flag.String("f", "", "File containing list of input files to process (one per line)")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	lineLength   = flag.Int("w", 80, "Maximum line length")
	outputFormat = flag.String("W", "", "Output format: text, json, fen, pgn")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	fenOnly      = flag.Bool("F", false, "Output only the final position in FEN")
	showLegal    = flag.Bool("legal", false, "List the legal moves of the side to move")
	noDiagram    = flag.Bool("nodiagram", false, "Don't draw the board in text output")
	useSymbols   = flag.Bool("symbols", false, "Draw the board with figurine symbols")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress inputs reaching a position already reported")

	// Opening index
	ecoFile      = flag.String("e", "", "Opening dataset, JSON or TSV (default: built-in)")
	noOpening    = flag.Bool("noopening", false, "Don't name the opening the moves follow")
	openingLimit = flag.Int("openings", 0, "List up to N openings that continue the moves")
	searchQuery  = flag.String("search", "", "Search openings by code, name or moves")
	searchLimit  = flag.Int("searchlimit", 10, "Maximum number of search results (0 = no limit)")

	// Logging
	logFile    = flag.String("l", "", "Write diagnostics to log file")
	appendLog  = flag.String("L", "", "Append diagnostics to log file")
	reportOnly = flag.Bool("r", false, "Report errors without writing reports")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no input count)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	applyContentFlags(cfg)
	applyOpeningFlags(cfg)
	if err := applyOutputFormatFlags(cfg); err != nil {
		return err
	}

	cfg.StartFEN = *startFEN
	cfg.Workers = *workers
	cfg.SuppressDuplicates = *suppressDuplicates
	if *quiet {
		cfg.Verbosity = 0
	}
	return cfg.Validate()
}

// applyContentFlags configures what text reports show.
func applyContentFlags(cfg *config.Config) {
	cfg.Output.MaxLineLength = uint(*lineLength)
	cfg.Output.ShowLegal = *showLegal
	cfg.Output.ShowDiagram = !*noDiagram
	cfg.Output.UseSymbols = *useSymbols
}

// applyOpeningFlags configures the opening index lookups.
func applyOpeningFlags(cfg *config.Config) {
	cfg.Opening.File = *ecoFile
	cfg.Opening.ShowCurrent = !*noOpening
	cfg.Opening.PrefixLimit = *openingLimit
	cfg.Opening.Query = *searchQuery
	cfg.Opening.QueryLimit = *searchLimit
}

// applyOutputFormatFlags configures the output format. -J and -F take
// precedence over -W.
func applyOutputFormatFlags(cfg *config.Config) error {
	switch {
	case *jsonOutput:
		cfg.Output.Format = config.JSON
	case *fenOnly:
		cfg.Output.Format = config.FEN
	case *outputFormat != "":
		format, err := config.ParseOutputFormat(*outputFormat)
		if err != nil {
			return err
		}
		cfg.Output.Format = format
	default:
		cfg.Output.Format = config.Text
	}
	return nil
}
