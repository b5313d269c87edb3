// Package eco provides the opening index: a read-only set of named,
// ECO-classified move sequences with prefix and free-text search.
package eco

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/parser"
)

//go:embed data/openings.tsv
var defaultData []byte

// Opening is one record of the dataset.
type Opening struct {
	ECO   string `json:"eco"`   // e.g., "B90"
	Name  string `json:"name"`  // e.g., "Sicilian Defense: Najdorf Variation"
	PGN   string `json:"pgn"`   // canonical transcript, "1. e4 c5 2. Nf3"
	White int    `json:"white"` // games won by White in the reference corpus
	Draws int    `json:"draws"`
	Black int    `json:"black"` // games won by Black

	sans []string

	// Normalized search keys.
	normECO  string
	normName string
	normPGN  string
	nameToks map[string]bool
}

// Plies returns the number of half-moves in the record.
func (o *Opening) Plies() int { return len(o.sans) }

// SANs returns a copy of the record's moves.
func (o *Opening) SANs() []string { return append([]string(nil), o.sans...) }

// Wins returns the reference win count for colour.
func (o *Opening) Wins(colour chess.Colour) int {
	if colour == chess.Black {
		return o.Black
	}
	return o.White
}

// Games returns the total number of reference games.
func (o *Opening) Games() int { return o.White + o.Draws + o.Black }

// Index holds the loaded openings. It is not modified by searches and may be
// shared between goroutines once loading is complete.
type Index struct {
	openings []*Opening
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

var defaultIndex = sync.OnceValues(func() (*Index, error) {
	ix := NewIndex()
	if err := ix.load(bytes.NewReader(defaultData), "openings.tsv"); err != nil {
		return nil, err
	}
	return ix, nil
})

// Default returns the index built from the embedded dataset. It is loaded
// once per process.
func Default() (*Index, error) {
	return defaultIndex()
}

// LoadFromFile loads openings from a JSON or TSV file.
func (ix *Index) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("cannot open opening file: %w", err)
	}
	defer file.Close()

	return ix.load(file, filename)
}

// LoadFromReader loads openings from r. The JSON form is an array of
// {eco, name, pgn, white, draws, black} objects; the TSV form has a header
// row naming at least the eco, name and pgn columns. Every record is
// replayed from the initial position and stored with its canonical
// transcript. Loading stops at the first invalid record.
func (ix *Index) LoadFromReader(r io.Reader) error {
	return ix.load(r, "")
}

func (ix *Index) load(r io.Reader, name string) error {
	br := bufio.NewReader(r)
	if first, err := firstNonSpace(br); err == nil && first == '[' {
		return ix.loadJSON(br, name)
	}
	return ix.loadTSV(br, name)
}

// firstNonSpace peeks past leading whitespace and a byte order mark.
func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			return 0, err
		}
		if r == '\uFEFF' || r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			continue
		}
		if err := br.UnreadRune(); err != nil {
			return 0, err
		}
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		return b[0], nil
	}
}

func (ix *Index) loadJSON(r io.Reader, name string) error {
	var records []Opening
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return &errors.ParseError{Err: fmt.Errorf("%w: %w", errors.ErrInvalidOpening, err), File: name}
	}
	for i := range records {
		if err := ix.Add(records[i]); err != nil {
			return &errors.ParseError{Err: err, File: name, Line: i + 1, Got: records[i].Name}
		}
	}
	return nil
}

func (ix *Index) loadTSV(r io.Reader, name string) error {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return &errors.ParseError{Err: fmt.Errorf("%w: %w", errors.ErrInvalidOpening, err), File: name, Line: 1}
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}
	for _, required := range []string{"eco", "name", "pgn"} {
		if _, ok := cols[required]; !ok {
			return &errors.ParseError{Err: errors.ErrInvalidOpening, File: name, Line: 1, Expected: required + " column"}
		}
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		line, _ := cr.FieldPos(0)
		if err != nil {
			return &errors.ParseError{Err: fmt.Errorf("%w: %w", errors.ErrInvalidOpening, err), File: name, Line: line}
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}

		o, err := recordFromRow(row, cols)
		if err == nil {
			err = ix.Add(o)
		}
		if err != nil {
			return &errors.ParseError{Err: err, File: name, Line: line, Got: o.Name}
		}
	}
}

func recordFromRow(row []string, cols map[string]int) (Opening, error) {
	get := func(col string) string {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	o := Opening{ECO: get("eco"), Name: get("name"), PGN: get("pgn")}
	counts := []struct {
		col string
		dst *int
	}{{"white", &o.White}, {"draws", &o.Draws}, {"black", &o.Black}}
	for _, c := range counts {
		text := get(c.col)
		if text == "" {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return o, fmt.Errorf("%w: %s count %q", errors.ErrInvalidOpening, c.col, text)
		}
		*c.dst = n
	}
	return o, nil
}

// Add validates a record, replays its moves and appends it to the index.
// The stored transcript is rebuilt from the replayed moves, so spacing and
// check markers always match what the engine generates.
func (ix *Index) Add(o Opening) error {
	switch {
	case o.ECO == "":
		return fmt.Errorf("%w: missing code", errors.ErrInvalidOpening)
	case o.Name == "":
		return fmt.Errorf("%w: missing name", errors.ErrInvalidOpening)
	case o.White < 0 || o.Draws < 0 || o.Black < 0:
		return fmt.Errorf("%w: negative result count", errors.ErrInvalidOpening)
	}

	t, err := parser.ParseMoves(o.PGN)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidOpening, err)
	}
	game := engine.NewInitialGame()
	if err := game.PlayMoves(t.Moves); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidOpening, err)
	}
	if game.Len() == 0 {
		return fmt.Errorf("%w: no moves", errors.ErrInvalidOpening)
	}

	rec := o
	rec.sans = game.SANs()
	rec.PGN = parser.FormatTranscript(rec.sans)
	rec.index()
	ix.openings = append(ix.openings, &rec)
	return nil
}

// Len returns the number of records loaded.
func (ix *Index) Len() int {
	return len(ix.openings)
}

// EntriesLoaded is Len under the name the CLI reports.
func (ix *Index) EntriesLoaded() int {
	return ix.Len()
}

// All returns every record in load order.
func (ix *Index) All() []*Opening {
	return append([]*Opening(nil), ix.openings...)
}
