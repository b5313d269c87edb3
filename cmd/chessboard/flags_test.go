package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// saveRestoreBool sets a bool flag and returns a function restoring it.
// Usage: defer saveRestoreBool(jsonOutput, true)()
func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyOutputFormatFlags(t *testing.T) {
	tests := []struct {
		name    string
		json    bool
		fen     bool
		format  string
		want    config.OutputFormat
		wantErr bool
	}{
		{"default is text", false, false, "", config.Text, false},
		{"-J", true, false, "", config.JSON, false},
		{"-F", false, true, "", config.FEN, false},
		{"-J wins over -F", true, true, "", config.JSON, false},
		{"-J wins over -W", true, false, "pgn", config.JSON, false},
		{"-W pgn", false, false, "pgn", config.Transcript, false},
		{"-W FEN", false, false, "FEN", config.FEN, false},
		{"-W unknown", false, false, "epd", config.Text, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreBool(jsonOutput, tt.json)()
			defer saveRestoreBool(fenOnly, tt.fen)()
			defer saveRestoreString(outputFormat, tt.format)()

			cfg := config.NewConfig()
			err := applyOutputFormatFlags(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Output.Format)
		})
	}
}

func TestApplyContentFlags(t *testing.T) {
	defer saveRestoreInt(lineLength, 60)()
	defer saveRestoreBool(showLegal, true)()
	defer saveRestoreBool(noDiagram, true)()
	defer saveRestoreBool(useSymbols, true)()

	cfg := config.NewConfig()
	applyContentFlags(cfg)

	assert.Equal(t, uint(60), cfg.Output.MaxLineLength)
	assert.True(t, cfg.Output.ShowLegal)
	assert.False(t, cfg.Output.ShowDiagram)
	assert.True(t, cfg.Output.UseSymbols)
}

func TestApplyOpeningFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := config.NewConfig()
		applyOpeningFlags(cfg)

		assert.Empty(t, cfg.Opening.File)
		assert.True(t, cfg.Opening.ShowCurrent)
		assert.Zero(t, cfg.Opening.PrefixLimit)
		assert.Empty(t, cfg.Opening.Query)
		assert.Equal(t, 10, cfg.Opening.QueryLimit)
	})

	t.Run("all set", func(t *testing.T) {
		defer saveRestoreString(ecoFile, "openings.json")()
		defer saveRestoreBool(noOpening, true)()
		defer saveRestoreInt(openingLimit, 5)()
		defer saveRestoreString(searchQuery, "gambit")()
		defer saveRestoreInt(searchLimit, 3)()

		cfg := config.NewConfig()
		applyOpeningFlags(cfg)

		assert.Equal(t, &config.OpeningConfig{
			File:        "openings.json",
			Query:       "gambit",
			PrefixLimit: 5,
			QueryLimit:  3,
			ShowCurrent: false,
		}, cfg.Opening)
	})
}

func TestApplyFlags(t *testing.T) {
	t.Run("quiet and position", func(t *testing.T) {
		defer saveRestoreBool(quiet, true)()
		defer saveRestoreString(startFEN, "8/8/8/8/8/8/8/K6k w - - 0 1")()
		defer saveRestoreInt(workers, 3)()

		cfg := config.NewConfig()
		require.NoError(t, applyFlags(cfg))
		assert.Zero(t, cfg.Verbosity)
		assert.Equal(t, "8/8/8/8/8/8/8/K6k w - - 0 1", cfg.StartFEN)
		assert.Equal(t, 3, cfg.Workers)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		defer saveRestoreInt(lineLength, 5)()

		err := applyFlags(config.NewConfig())
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	})

	t.Run("negative opening limit", func(t *testing.T) {
		defer saveRestoreInt(openingLimit, -1)()
		assert.Error(t, applyFlags(config.NewConfig()))
	})
}
