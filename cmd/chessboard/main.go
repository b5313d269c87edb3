// chessboard replays chess moves, reports the positions they reach and looks
// them up in an opening index.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/hashing"
	"github.com/lgbarn/chessboard-go/internal/output"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = func() { usage(os.Stderr) }
	flag.Parse()
	os.Exit(run(flag.Args(), os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command with parsed flags and returns the exit status:
// 0 on success, 1 when setup failed or any input could not be replayed.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if *help {
		usage(stderr)
		return 0
	}
	if *version {
		fmt.Fprintf(stdout, "chessboard version %s\n", programVersion)
		return 0
	}

	cfg := config.NewConfig()
	cfg.SetOutput(stdout)
	cfg.SetLog(stderr)
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Set up logging and output files
	closeLog, err := setupLogFile(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	closeOutput, err := setupOutputFile(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeOutput()

	index, err := loadOpeningIndex(cfg)
	if err != nil {
		cfg.Logf(0, "Error: %v", err)
		return 1
	}

	items, err := collectInputs(args, stdin)
	if err != nil {
		cfg.Logf(0, "Error: %v", err)
		return 1
	}

	ctx := &ProcessingContext{cfg: cfg, index: index}
	if cfg.SuppressDuplicates {
		ctx.detector = hashing.NewDuplicateDetector(false)
	}
	w := output.NewWriter(cfg.OutputFile, cfg.Output)
	replayed, failed := processAll(items, ctx, w)
	if err := w.Close(); err != nil {
		cfg.Logf(0, "Error writing output: %v", err)
		return 1
	}

	// Report statistics
	reportStatistics(cfg, ctx.detector, replayed, failed)

	if failed > 0 {
		return 1
	}
	return 0
}

// setupLogFile redirects diagnostics to the -l or -L file. The returned
// function closes it.
func setupLogFile(cfg *config.Config) (func(), error) {
	var file *os.File
	var err error
	switch {
	case *logFile != "":
		file, err = os.Create(*logFile)
	case *appendLog != "":
		file, err = os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	default:
		return func() {}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	cfg.SetLog(file)
	return func() { file.Close() }, nil //nolint:errcheck,gosec // G104: cleanup on exit
}

// setupOutputFile redirects reports to the -o file. The returned function
// closes it.
func setupOutputFile(cfg *config.Config) (func(), error) {
	if *outputFile == "" {
		return func() {}, nil
	}

	var file *os.File
	var err error
	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", *outputFile, err)
	}
	cfg.SetOutput(file)
	return func() { file.Close() }, nil //nolint:errcheck,gosec // G104: cleanup on exit
}

// reportStatistics logs the final input count.
func reportStatistics(cfg *config.Config, detector *hashing.DuplicateDetector, replayed, failed int) {
	if detector != nil {
		cfg.Logf(1, "%d input(s) replayed, %d duplicate(s), %d failed.", replayed, detector.DuplicateCount(), failed)
		return
	}
	if failed > 0 {
		cfg.Logf(1, "%d input(s) replayed, %d failed.", replayed, failed)
		return
	}
	cfg.Logf(1, "%d input(s) replayed.", replayed)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: chessboard [options] [input-files...]\n\n")
	fmt.Fprintf(w, "Replays chess moves and reports the resulting position and opening.\n\n")
	fmt.Fprintf(w, "Options:\n")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
	fmt.Fprintf(w, "\nOutput formats (-W):\n")
	fmt.Fprintf(w, "  text   Position report with board diagram (default)\n")
	fmt.Fprintf(w, "  json   JSON array of reports\n")
	fmt.Fprintf(w, "  fen    Final position only\n")
	fmt.Fprintf(w, "  pgn    Move transcript with tags\n")
}
