package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/engine"
)

// ReportWriter is the interface for writing reports to output.
// Different implementations handle different output formats (text, JSON, etc.).
type ReportWriter interface {
	// WriteReport writes a single report to the output.
	WriteReport(r *Report) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewWriter returns the writer for the configured output format.
func NewWriter(w io.Writer, cfg *config.OutputConfig) ReportWriter {
	if cfg == nil {
		cfg = config.NewOutputConfig()
	}
	switch cfg.Format {
	case config.JSON:
		return NewJSONWriter(w)
	case config.FEN:
		return NewFENWriter(w)
	case config.Transcript:
		return NewTranscriptWriter(w, cfg)
	default:
		return NewTextWriter(w, cfg)
	}
}

// JSONOutput holds multiple reports for array output.
type JSONOutput struct {
	Reports []*Report `json:"reports"`
}

// JSONWriter writes reports in JSON format.
// It buffers reports and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	reports []*Report
	single  bool // If true, write each report immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches reports and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:       w,
		reports: make([]*Report, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each report immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteReport buffers a report for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteReport(r *Report) error {
	if jw.single {
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	jw.reports = append(jw.reports, r)
	return nil
}

// Flush writes all buffered reports as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.reports) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Reports: jw.reports})

	// Clear buffer after writing
	jw.reports = jw.reports[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

// FENWriter writes the final position of each report, one per line.
type FENWriter struct {
	w io.Writer
}

// NewFENWriter creates a new FEN writer.
func NewFENWriter(w io.Writer) *FENWriter {
	return &FENWriter{w: w}
}

// WriteReport writes the report's position.
func (fw *FENWriter) WriteReport(r *Report) error {
	_, err := fmt.Fprintln(fw.w, r.FEN)
	return err
}

// Flush is a no-op for FEN output.
func (fw *FENWriter) Flush() error {
	return nil
}

// Close closes the FEN writer.
func (fw *FENWriter) Close() error {
	return nil
}

// TranscriptWriter writes reports as move transcripts with a small tag
// header, wrapped at the configured line length.
type TranscriptWriter struct {
	w   io.Writer
	cfg *config.OutputConfig
}

// NewTranscriptWriter creates a new transcript writer.
func NewTranscriptWriter(w io.Writer, cfg *config.OutputConfig) *TranscriptWriter {
	if cfg == nil {
		cfg = config.NewOutputConfig()
	}
	return &TranscriptWriter{w: w, cfg: cfg}
}

// WriteReport writes the tags, a blank line, the moves and a blank line.
// Games not starting from the initial position carry SetUp and FEN tags.
func (tw *TranscriptWriter) WriteReport(r *Report) error {
	result := r.Result
	if result == "" {
		result = "*"
	}

	if r.Source != "" {
		fmt.Fprintf(tw.w, "[Event \"%s\"]\n", escapeTagValue(r.Source))
	}
	if r.Opening != nil {
		fmt.Fprintf(tw.w, "[ECO \"%s\"]\n", escapeTagValue(r.Opening.ECO))
		fmt.Fprintf(tw.w, "[Opening \"%s\"]\n", escapeTagValue(r.Opening.Name))
	}
	if r.StartFEN != engine.InitialFEN {
		fmt.Fprintln(tw.w, `[SetUp "1"]`)
		fmt.Fprintf(tw.w, "[FEN \"%s\"]\n", escapeTagValue(r.StartFEN))
	}
	fmt.Fprintf(tw.w, "[Result \"%s\"]\n", result)
	fmt.Fprintln(tw.w)

	ow := NewOutputWriter(tw.w, int(tw.cfg.MaxLineLength))
	tokens := strings.Fields(r.Transcript)
	if len(r.Moves) > 0 && r.Moves[0].Color == "black" {
		// The formatter numbers from White; a Black first move reads "1...".
		tokens = blackFirst(tokens)
	}
	for _, tok := range tokens {
		ow.Write(tok)
	}
	ow.Write(result)
	ow.NewLine()
	_, err := fmt.Fprintln(tw.w)
	return err
}

// blackFirst renumbers a White-first token list for a game whose first
// move was Black's: "1. Kd7 2. Ke2" becomes "1... Kd7 2. Ke2".
func blackFirst(tokens []string) []string {
	out := make([]string, 0, len(tokens)+1)
	ply := 0
	for _, tok := range tokens {
		if strings.HasSuffix(tok, ".") {
			continue
		}
		switch {
		case ply == 0:
			out = append(out, "1...")
		case ply%2 == 1:
			out = append(out, fmt.Sprintf("%d.", (ply+1)/2+1))
		}
		out = append(out, tok)
		ply++
	}
	return out
}

// Flush is a no-op for transcript output.
func (tw *TranscriptWriter) Flush() error {
	return nil
}

// Close closes the transcript writer.
func (tw *TranscriptWriter) Close() error {
	return nil
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
