// processor.go - Input collection, replay and report output
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/eco"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/hashing"
	"github.com/lgbarn/chessboard-go/internal/output"
	"github.com/lgbarn/chessboard-go/internal/parser"
	"github.com/lgbarn/chessboard-go/internal/worker"
)

// fenTag matches a [FEN "..."] header line.
var fenTag = regexp.MustCompile(`(?m)^\s*\[FEN\s+"([^"]*)"\s*\]`)

// ProcessingContext holds what every replay shares. The index is read-only
// once loaded; the config is not modified after flags are applied. The
// detector is only touched by the goroutine writing reports.
type ProcessingContext struct {
	cfg      *config.Config
	index    *eco.Index
	detector *hashing.DuplicateDetector
}

// loadOpeningIndex loads the opening dataset when any report section needs it.
func loadOpeningIndex(cfg *config.Config) (*eco.Index, error) {
	if !cfg.Opening.Enabled() {
		return nil, nil
	}

	if cfg.Opening.File == "" {
		ix, err := eco.Default()
		if err != nil {
			return nil, errors.Wrap(err, "built-in opening dataset")
		}
		cfg.Logf(2, "Loaded %d built-in openings", ix.EntriesLoaded())
		return ix, nil
	}

	ix := eco.NewIndex()
	if err := ix.LoadFromFile(cfg.Opening.File); err != nil {
		return nil, errors.Wrapf(err, "loading opening file %s", cfg.Opening.File)
	}
	cfg.Logf(1, "Loaded %d openings from %s", ix.EntriesLoaded(), cfg.Opening.File)
	return ix, nil
}

// collectInputs turns file arguments into work items. A file holding
// several games, each introduced by header lines, yields one item per game.
// "-" reads stdin. With no file arguments the -moves text is replayed, or,
// when only a position or search was asked for, an empty move list; failing
// both, stdin is read.
func collectInputs(args []string, stdin io.Reader) ([]worker.WorkItem, error) {
	var items []worker.WorkItem
	add := func(name, text string) {
		games := splitGames(text)
		for i, game := range games {
			itemName := name
			if len(games) > 1 {
				itemName = fmt.Sprintf("%s#%d", name, i+1)
			}
			items = append(items, worker.WorkItem{Name: itemName, Text: game, Index: len(items)})
		}
	}

	if *fileListFile != "" {
		listed, err := readFileList(*fileListFile)
		if err != nil {
			return nil, err
		}
		args = append(listed, args...)
	}

	if len(args) == 0 {
		switch {
		case *movesText != "":
			add("moves", *movesText)
			return items, nil
		case *startFEN != "" || *searchQuery != "":
			items = append(items, worker.WorkItem{Name: "position"})
			return items, nil
		}
		args = []string{"-"}
	}

	for _, filename := range args {
		var data []byte
		var err error
		name := filename
		if filename == "-" {
			name = "stdin"
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", name)
		}
		add(name, string(data))
	}
	return items, nil
}

// readFileList reads input file names, one per line. Blank lines and lines
// starting with # are skipped.
func readFileList(filename string) ([]string, error) {
	file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, errors.Wrap(err, "opening file list")
	}
	defer file.Close()

	var files []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading file list")
	}
	return files, nil
}

// splitGames splits text into games. A header line that follows move text
// starts a new game. Text with no moves at all is a single game.
func splitGames(text string) []string {
	var games []string
	var current strings.Builder
	sawMoves := false

	for _, line := range parser.SplitLines(text) {
		trimmed := strings.TrimSpace(line)
		isHeader := strings.HasPrefix(trimmed, "[")
		if isHeader && sawMoves {
			games = append(games, current.String())
			current.Reset()
			sawMoves = false
		}
		if !isHeader && trimmed != "" {
			sawMoves = true
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	if current.Len() > 0 || len(games) == 0 {
		games = append(games, current.String())
	}
	return games
}

// headerFEN returns the position named by a [FEN "..."] header, if any.
func headerFEN(text string) string {
	if m := fenTag.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// replayInput replays one input on a game of its own and reports the
// position reached. A move that fails to parse or play ends the replay;
// the report then describes the position before it and carries the error.
// This runs on worker goroutines, so it only reads from ctx.
func replayInput(item worker.WorkItem, ctx *ProcessingContext) worker.ProcessResult {
	result := worker.ProcessResult{Index: item.Index, Name: item.Name}

	start := headerFEN(item.Text)
	if start == "" {
		start = ctx.cfg.StartFEN
	}
	g, err := engine.NewGame(start)
	if err != nil {
		result.Err = &errors.GameError{Err: err, Source: item.Name}
		return result
	}

	transcript, parseErr := parser.ParseMoves(item.Text)
	playErr := g.PlayMoves(transcript.Moves)

	result.Report = output.BuildReport(item.Name, g, transcript.Result, ctx.index, ctx.cfg)

	var pe *errors.ParseError
	var ge *errors.GameError
	switch {
	case playErr != nil && errors.As(playErr, &ge):
		ge.Source = item.Name
		result.Err = ge
	case playErr != nil:
		result.Err = &errors.GameError{Err: playErr, Source: item.Name}
	case parseErr != nil && errors.As(parseErr, &pe):
		result.Err = &errors.GameError{Err: pe, Source: item.Name, PlyNum: pe.Column}
	case parseErr != nil:
		result.Err = &errors.GameError{Err: parseErr, Source: item.Name}
	}
	if result.Err != nil {
		result.Report.Error = result.Err.Error()
	}
	return result
}

// processAll replays every item and writes the reports in input order,
// skipping duplicates when ctx has a detector. Returns the number of inputs
// replayed in full and the number that failed.
func processAll(items []worker.WorkItem, ctx *ProcessingContext, w output.ReportWriter) (int, int) {
	replayed, failed := 0, 0
	emit := func(result worker.ProcessResult) {
		if result.Err != nil {
			failed++
			ctx.cfg.Logf(0, "Error: %v", result.Err)
		} else {
			replayed++
		}
		if *reportOnly || result.Report == nil {
			return
		}
		if ctx.detector != nil && ctx.detector.CheckAndAdd(result.Report.Board(), len(result.Report.Moves)) {
			ctx.cfg.Logf(2, "Skipping %s: position already reported", result.Name)
			return
		}
		if err := w.WriteReport(result.Report); err != nil {
			ctx.cfg.Logf(0, "Error writing report for %s: %v", result.Name, err)
		}
	}

	numWorkers := ctx.cfg.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	// Use parallel processing for multiple workers and enough inputs
	if numWorkers > 1 && len(items) > 2 {
		processParallel(items, ctx, numWorkers, emit)
	} else {
		for _, item := range items {
			emit(replayInput(item, ctx))
		}
	}
	return replayed, failed
}

// processParallel replays items on a worker pool. Results are consumed by
// this goroutine alone and released in input order, so emit needs no
// synchronization.
func processParallel(items []worker.WorkItem, ctx *ProcessingContext, numWorkers int, emit func(worker.ProcessResult)) {
	bufferSize := len(items)
	if bufferSize > 100 {
		bufferSize = 100
	}
	pool := worker.NewPool(numWorkers, bufferSize, func(item worker.WorkItem) worker.ProcessResult {
		return replayInput(item, ctx)
	})
	pool.Start()

	go func() {
		for _, item := range items {
			pool.Submit(item)
		}
		pool.Close()
	}()

	worker.InOrder(pool.Results(), emit)
}
