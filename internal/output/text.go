package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/eco"
	"github.com/lgbarn/chessboard-go/internal/engine"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	indent        string
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// SetIndent sets the prefix written at the start of each wrapped line.
func (o *OutputWriter) SetIndent(indent string) {
	o.indent = indent
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			fmt.Fprint(o.w, o.indent)
			o.lineLength = len(o.indent)
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// WriteNoSpace writes without adding a leading space.
func (o *OutputWriter) WriteNoSpace(s string) {
	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// TextWriter writes reports as readable text blocks.
type TextWriter struct {
	w   io.Writer
	cfg *config.OutputConfig
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.OutputConfig) *TextWriter {
	if cfg == nil {
		cfg = config.NewOutputConfig()
	}
	return &TextWriter{w: w, cfg: cfg}
}

// WriteReport writes one report followed by a blank line.
func (tw *TextWriter) WriteReport(r *Report) error {
	ow := NewOutputWriter(tw.w, int(tw.cfg.MaxLineLength))

	if r.Source != "" {
		ow.WriteNoSpace("Source: " + r.Source)
		ow.NewLine()
	}
	if r.StartFEN != engine.InitialFEN {
		ow.WriteNoSpace("Start: " + r.StartFEN)
		ow.NewLine()
	}
	if len(r.Moves) > 0 {
		ow.SetIndent("  ")
		ow.WriteNoSpace("Moves:")
		for _, tok := range strings.Fields(r.Transcript) {
			ow.Write(tok)
		}
		if r.Result != "" {
			ow.Write(r.Result)
		}
		ow.NewLine()
		ow.SetIndent("")
	}
	if r.Error != "" {
		ow.WriteNoSpace("Error: " + r.Error)
		ow.NewLine()
	}

	ow.WriteNoSpace("FEN: " + r.FEN)
	ow.NewLine()
	ow.WriteNoSpace("To move: " + r.ToMove + statusSuffix(r))
	ow.NewLine()

	if r.Opening != nil {
		ow.WriteNoSpace("Opening: " + openingLine(r.Opening))
		ow.NewLine()
	}
	if len(r.Continuations) > 0 {
		ow.WriteNoSpace("Continuations:")
		ow.NewLine()
		for _, o := range r.Continuations {
			ow.WriteNoSpace(fmt.Sprintf("  %s (%d/%d/%d)", openingLine(o), o.White, o.Draws, o.Black))
			ow.NewLine()
		}
	}
	if len(r.Matches) > 0 {
		ow.WriteNoSpace("Matches:")
		ow.NewLine()
		for _, m := range r.Matches {
			ow.WriteNoSpace(fmt.Sprintf("  [%d] %s", m.Score, openingLine(m.Opening)))
			ow.NewLine()
		}
	}
	if len(r.Legal) > 0 {
		ow.SetIndent("  ")
		ow.WriteNoSpace(fmt.Sprintf("Legal (%d):", len(r.Legal)))
		for _, san := range r.Legal {
			ow.Write(san)
		}
		ow.NewLine()
		ow.SetIndent("")
	}
	if tw.cfg.ShowDiagram && r.board != nil {
		writeDiagram(tw.w, r.board, r.registry, tw.cfg.UseSymbols)
	}

	ow.NewLine()
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

func statusSuffix(r *Report) string {
	switch {
	case r.Checkmate:
		return " (checkmate)"
	case r.Stalemate:
		return " (stalemate)"
	case r.Check:
		return " (check)"
	}
	return ""
}

func openingLine(o *eco.Opening) string {
	return fmt.Sprintf("%s %s: %s", o.ECO, o.Name, o.PGN)
}

// writeDiagram draws the board with rank 8 at the top. Empty squares are
// dots; pieces use their position-notation letter or figurine symbol.
func writeDiagram(w io.Writer, board *chess.Board, reg *chess.Registry, symbols bool) {
	if reg == nil {
		reg = chess.NewRegistry()
	}
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		sq := chess.Sq(row, 0)
		sb.WriteByte(sq.Rank())
		for col := 0; col < chess.BoardSize; col++ {
			sb.WriteByte(' ')
			info := reg.Decode(board.Get(chess.Sq(row, col)))
			switch {
			case info.IsEmpty:
				sb.WriteByte('.')
			case symbols:
				sb.WriteString(info.Symbol)
			default:
				sb.WriteString(info.FENCode)
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	fmt.Fprint(w, sb.String())
}
