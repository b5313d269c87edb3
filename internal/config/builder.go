package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithOutputFormat sets the output format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithLegalMoves includes the legal moves in reports.
func (b *ConfigBuilder) WithLegalMoves(enabled bool) *ConfigBuilder {
	b.cfg.Output.ShowLegal = enabled
	return b
}

// WithDiagram controls the board diagram in text reports.
func (b *ConfigBuilder) WithDiagram(enabled bool) *ConfigBuilder {
	b.cfg.Output.ShowDiagram = enabled
	return b
}

// WithSymbols draws diagrams with figurine symbols.
func (b *ConfigBuilder) WithSymbols(enabled bool) *ConfigBuilder {
	b.cfg.Output.UseSymbols = enabled
	return b
}

// WithOpeningFile loads openings from filename instead of the built-in set.
func (b *ConfigBuilder) WithOpeningFile(filename string) *ConfigBuilder {
	b.cfg.Opening.File = filename
	return b
}

// WithOpeningSearch sets a free-text opening search and its result cap.
func (b *ConfigBuilder) WithOpeningSearch(query string, limit int) *ConfigBuilder {
	b.cfg.Opening.Query = query
	b.cfg.Opening.QueryLimit = limit
	return b
}

// WithOpeningContinuations lists up to limit openings the moves lead into.
func (b *ConfigBuilder) WithOpeningContinuations(limit int) *ConfigBuilder {
	b.cfg.Opening.PrefixLimit = limit
	return b
}

// WithCurrentOpening controls naming the opening the moves follow.
func (b *ConfigBuilder) WithCurrentOpening(enabled bool) *ConfigBuilder {
	b.cfg.Opening.ShowCurrent = enabled
	return b
}

// WithStartFEN sets the position inputs start from.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.StartFEN = fen
	return b
}

// WithWorkers sets the number of batch workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithDuplicateSuppression drops reports of positions already reported.
func (b *ConfigBuilder) WithDuplicateSuppression(enabled bool) *ConfigBuilder {
	b.cfg.SuppressDuplicates = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the diagnostics writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
