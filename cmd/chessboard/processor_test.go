package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/output"
	"github.com/lgbarn/chessboard-go/internal/worker"
)

const twoGames = `[Event "First"]

1. e4 e5 2. Nf3 *

[Event "Second"]
[FEN "4k3/8/8/8/8/8/8/4K3 w - - 0 1"]

1. Kd2 Kd7 *
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newContext(t *testing.T) *ProcessingContext {
	t.Helper()
	var log bytes.Buffer
	cfg := config.NewConfigBuilder().
		WithCurrentOpening(false).
		WithLog(&log).
		WithWorkers(1).
		Build()
	return &ProcessingContext{cfg: cfg}
}

func TestSplitGames(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 1},
		{"bare moves", "e4 e5 Nf3", 1},
		{"one game with headers", "[Event \"x\"]\n[Site \"y\"]\n\n1. e4 *\n", 1},
		{"two games", twoGames, 2},
		{"headers only", "[Event \"x\"]\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, splitGames(tt.text), tt.want)
		})
	}

	games := splitGames(twoGames)
	assert.True(t, strings.HasPrefix(games[0], `[Event "First"]`))
	assert.Contains(t, games[0], "Nf3")
	assert.True(t, strings.HasPrefix(games[1], `[Event "Second"]`))
	assert.Contains(t, games[1], "Kd2")
}

func TestSplitGames_LongLine(t *testing.T) {
	long := "1. d4 d5" + strings.Repeat(" ", 2<<20) + "2. c4 *\n"
	games := splitGames(twoGames + long)

	require.Len(t, games, 2)
	assert.True(t, strings.HasSuffix(games[1], "2. c4 *\n"))

	item := worker.WorkItem{Name: "long", Text: "[Event \"Long\"]\n" + long}
	result := replayInput(item, newContext(t))
	require.NoError(t, result.Err)
	assert.Equal(t, "rnbqkbnr/ppp1pppp/8/3p4/2PP4/8/PP2PPPP/RNBQKBNR b KQkq c3 0 1", result.Report.FEN)
}

func TestHeaderFEN(t *testing.T) {
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1", headerFEN(splitGames(twoGames)[1]))
	assert.Empty(t, headerFEN(splitGames(twoGames)[0]))
	assert.Equal(t, "8/8/8/8/8/8/8/K6k b", headerFEN(`  [FEN "8/8/8/8/8/8/8/K6k b" ]`))
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pgn", twoGames)
	b := writeFile(t, dir, "b.pgn", "1. d4 d5 *\n")

	t.Run("files", func(t *testing.T) {
		items, err := collectInputs([]string{a, b}, strings.NewReader(""))
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, a+"#1", items[0].Name)
		assert.Equal(t, a+"#2", items[1].Name)
		assert.Equal(t, b, items[2].Name)
		for i, item := range items {
			assert.Equal(t, i, item.Index)
		}
	})

	t.Run("dash reads stdin", func(t *testing.T) {
		items, err := collectInputs([]string{"-"}, strings.NewReader("1. c4 *"))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "stdin", items[0].Name)
		assert.Equal(t, "1. c4 *\n", items[0].Text)
	})

	t.Run("no arguments reads stdin", func(t *testing.T) {
		items, err := collectInputs(nil, strings.NewReader("e4"))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "stdin", items[0].Name)
	})

	t.Run("moves flag", func(t *testing.T) {
		defer saveRestoreString(movesText, "e4 e5")()
		items, err := collectInputs(nil, strings.NewReader("ignored"))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "moves", items[0].Name)
		assert.Contains(t, items[0].Text, "e4 e5")
	})

	t.Run("position only", func(t *testing.T) {
		defer saveRestoreString(startFEN, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")()
		items, err := collectInputs(nil, strings.NewReader("ignored"))
		require.NoError(t, err)
		assert.Equal(t, []worker.WorkItem{{Name: "position"}}, items)
	})

	t.Run("file list", func(t *testing.T) {
		list := writeFile(t, dir, "list.txt", "# inputs\n"+b+"\n\n")
		defer saveRestoreString(fileListFile, list)()
		items, err := collectInputs(nil, strings.NewReader(""))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, b, items[0].Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := collectInputs([]string{filepath.Join(dir, "missing.pgn")}, strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestReplayInput(t *testing.T) {
	ctx := newContext(t)

	t.Run("full game", func(t *testing.T) {
		r := replayInput(worker.WorkItem{Name: "fools", Text: "1. f3 e5 2. g4 Qh4# 0-1", Index: 7}, ctx)
		require.NoError(t, r.Err)
		require.NotNil(t, r.Report)
		assert.Equal(t, 7, r.Index)
		assert.Equal(t, "fools", r.Report.Source)
		assert.True(t, r.Report.Checkmate)
		assert.Equal(t, "0-1", r.Report.Result)
		assert.Empty(t, r.Report.Error)
	})

	t.Run("header position", func(t *testing.T) {
		r := replayInput(worker.WorkItem{Name: "second", Text: splitGames(twoGames)[1]}, ctx)
		require.NoError(t, r.Err)
		assert.Equal(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1", r.Report.StartFEN)
		assert.Equal(t, "8/3k4/8/8/8/8/3K4/8 w - - 0 1", r.Report.FEN)
	})

	t.Run("illegal move", func(t *testing.T) {
		r := replayInput(worker.WorkItem{Name: "bad", Text: "e4 e5 Ke3 Nc6"}, ctx)
		require.Error(t, r.Err)

		var ge *errors.GameError
		require.True(t, errors.As(r.Err, &ge))
		assert.Equal(t, "bad", ge.Source)
		assert.Equal(t, 3, ge.PlyNum)
		assert.Equal(t, "Ke3", ge.MoveText)

		require.NotNil(t, r.Report)
		assert.Len(t, r.Report.Moves, 2)
		assert.Equal(t, r.Err.Error(), r.Report.Error)
	})

	t.Run("unparsable move", func(t *testing.T) {
		r := replayInput(worker.WorkItem{Name: "junk", Text: "e4 e5 Zz9"}, ctx)
		require.Error(t, r.Err)
		assert.True(t, errors.Is(r.Err, errors.ErrParseFailure))
		require.NotNil(t, r.Report)
		assert.Len(t, r.Report.Moves, 2)
	})

	t.Run("bad position", func(t *testing.T) {
		r := replayInput(worker.WorkItem{Name: "fen", Text: "[FEN \"9/8 w\"]\n1. e4"}, ctx)
		require.Error(t, r.Err)
		assert.True(t, errors.Is(r.Err, errors.ErrInvalidFEN))
		assert.Nil(t, r.Report)
	})
}

func TestProcessAll(t *testing.T) {
	texts := []string{"e4", "d4", "e4 e5 Ke3", "c4", "Nf3", "g3"}
	var items []worker.WorkItem
	for i, text := range texts {
		items = append(items, worker.WorkItem{Name: text, Text: text, Index: i})
	}

	for _, numWorkers := range []int{1, 4} {
		ctx := newContext(t)
		ctx.cfg.Workers = numWorkers
		var log bytes.Buffer
		ctx.cfg.SetLog(&log)

		var out bytes.Buffer
		w := output.NewJSONWriter(&out)
		replayed, failed := processAll(items, ctx, w)
		require.NoError(t, w.Close())

		assert.Equal(t, 5, replayed, "workers=%d", numWorkers)
		assert.Equal(t, 1, failed, "workers=%d", numWorkers)
		assert.Contains(t, log.String(), "ply 3")

		// Reports come out in input order whatever the worker count.
		var sources []string
		for _, line := range strings.Split(out.String(), "\n") {
			if strings.Contains(line, `"source":`) {
				sources = append(sources, strings.Trim(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), `"source":`)), `",`))
			}
		}
		assert.Equal(t, texts, sources, "workers=%d", numWorkers)
	}
}

func TestProcessAll_ReportOnly(t *testing.T) {
	defer saveRestoreBool(reportOnly, true)()

	ctx := newContext(t)
	var out bytes.Buffer
	w := output.NewFENWriter(&out)
	replayed, failed := processAll([]worker.WorkItem{{Name: "a", Text: "e4"}, {Name: "b", Text: "Qh5", Index: 1}}, ctx, w)

	assert.Equal(t, 1, replayed)
	assert.Equal(t, 1, failed)
	assert.Zero(t, out.Len())
}
