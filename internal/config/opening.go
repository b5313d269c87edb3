package config

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// OpeningConfig holds settings for the opening index lookups.
type OpeningConfig struct {
	// File is an opening dataset to load instead of the built-in one
	File string

	// Query is a free-text opening search; empty disables it
	Query string

	// PrefixLimit caps the openings listed as continuations of the played
	// moves; 0 disables the listing
	PrefixLimit int

	// QueryLimit caps the results of Query; 0 means no cap
	QueryLimit int

	// ShowCurrent names the longest opening the played moves follow
	ShowCurrent bool
}

// NewOpeningConfig creates an OpeningConfig with default values.
func NewOpeningConfig() *OpeningConfig {
	return &OpeningConfig{
		QueryLimit:  10,
		ShowCurrent: true,
	}
}

// Enabled reports whether any report section needs the opening index.
func (o *OpeningConfig) Enabled() bool {
	return o.ShowCurrent || o.PrefixLimit > 0 || o.Query != ""
}

// Validate checks that the opening configuration is valid.
func (o *OpeningConfig) Validate() error {
	if o.PrefixLimit < 0 {
		return fmt.Errorf("opening limit %d is negative: %w", o.PrefixLimit, errors.ErrInvalidConfig)
	}
	if o.QueryLimit < 0 {
		return fmt.Errorf("search limit %d is negative: %w", o.QueryLimit, errors.ErrInvalidConfig)
	}
	return nil
}
