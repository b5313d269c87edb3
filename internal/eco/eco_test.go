package eco

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/testutil"
)

const testOpeningData = `[
  {"eco": "C20", "name": "King's Pawn Game", "pgn": "1. e4 e5", "white": 500, "draws": 300, "black": 400},
  {"eco": "C40", "name": "King's Knight Opening", "pgn": "1. e4 e5 2. Nf3", "white": 450, "draws": 250, "black": 300},
  {"eco": "C23", "name": "Bishop's Opening", "pgn": "1. e4 e5 2. Bc4", "white": 30, "draws": 20, "black": 500},
  {"eco": "B20", "name": "Sicilian Defense", "pgn": "1. e4 c5", "white": 600, "draws": 400, "black": 700},
  {"eco": "B90", "name": "Sicilian Defense: Najdorf Variation", "pgn": "1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6", "white": 100, "draws": 90, "black": 120},
  {"eco": "D80", "name": "Grünfeld Defense", "pgn": "1. d4 Nf6 2. c4 g6 3. Nc3 d5", "white": 80, "draws": 70, "black": 85}
]`

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	ix := NewIndex()
	if err := ix.LoadFromReader(strings.NewReader(testOpeningData)); err != nil {
		t.Fatalf("failed to load opening data: %v", err)
	}
	return ix
}

func codes(openings []*Opening) []string {
	out := make([]string, 0, len(openings))
	for _, o := range openings {
		out = append(out, o.ECO)
	}
	return out
}

func matchCodes(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Opening.ECO)
	}
	return out
}

func TestLoadJSON(t *testing.T) {
	ix := newTestIndex(t)
	testutil.AssertEqual(t, ix.Len(), 6)
	testutil.AssertEqual(t, ix.EntriesLoaded(), 6)

	najdorf := ix.All()[4]
	testutil.AssertEqual(t, najdorf.Name, "Sicilian Defense: Najdorf Variation")
	testutil.AssertEqual(t, najdorf.Plies(), 10)
	testutil.AssertEqual(t, najdorf.Games(), 310)
	testutil.AssertEqual(t, najdorf.Wins(chess.White), 100)
	testutil.AssertEqual(t, najdorf.Wins(chess.Black), 120)
}

func TestLoadTSV(t *testing.T) {
	data := "eco\tname\tpgn\twhite\tdraws\tblack\n" +
		"C20\tKing's Pawn Game\t1. e4 e5\t5\t3\t4\n" +
		"B51\tSicilian Defense: Moscow Variation\t1.e4 c5 2.Nf3 d6 3.Bb5\t\t\t\n"

	ix := NewIndex()
	testutil.AssertNoError(t, ix.LoadFromReader(strings.NewReader(data)))
	testutil.AssertEqual(t, ix.Len(), 2)

	kp := ix.All()[0]
	testutil.AssertEqual(t, []int{kp.White, kp.Draws, kp.Black}, []int{5, 3, 4})

	// Spacing and the check marker come from the replayed moves.
	moscow := ix.All()[1]
	testutil.AssertEqual(t, moscow.PGN, "1. e4 c5 2. Nf3 d6 3. Bb5+")
	testutil.AssertEqual(t, moscow.SANs(), []string{"e4", "c5", "Nf3", "d6", "Bb5+"})
	testutil.AssertEqual(t, moscow.Games(), 0)
}

func TestLoadInvalidRecords(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		line     int
		wantSent error
	}{
		{
			name: "missing pgn column",
			data: "eco\tname\nC20\tKing's Pawn Game\n",
			line: 1,
		},
		{
			name:     "unresolvable move",
			data:     "eco\tname\tpgn\nC20\tKing's Pawn Game\t1. e4 e5\nC99\tBad\t1. e4 e5 2. Ke3\n",
			line:     3,
			wantSent: errors.ErrUnresolvedMove,
		},
		{
			name:     "malformed move",
			data:     "eco\tname\tpgn\nC99\tBad\t1. e4 Zz9\n",
			line:     2,
			wantSent: errors.ErrParseFailure,
		},
		{
			name: "missing name",
			data: "eco\tname\tpgn\nC20\t\t1. e4 e5\n",
			line: 2,
		},
		{
			name: "bad count",
			data: "eco\tname\tpgn\twhite\nC20\tKing's Pawn Game\t1. e4 e5\tmany\n",
			line: 2,
		},
		{
			name: "no moves",
			data: "eco\tname\tpgn\nA00\tNothing\t*\n",
			line: 2,
		},
		{
			name: "negative count in JSON",
			data: `[{"eco": "C20", "name": "King's Pawn Game", "pgn": "1. e4 e5", "white": -1}]`,
			line: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewIndex().LoadFromReader(strings.NewReader(tt.data))
			testutil.AssertErrorIs(t, err, errors.ErrInvalidOpening)
			if tt.wantSent != nil {
				testutil.AssertErrorIs(t, err, tt.wantSent)
			}

			var pe *errors.ParseError
			if errors.As(err, &pe) {
				testutil.AssertEqual(t, pe.Line, tt.line)
			} else {
				t.Errorf("error %v is not a *ParseError", err)
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	err := NewIndex().LoadFromFile("testdata/does-not-exist.tsv")
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "cannot open opening file")
}

func TestDefaultIndex(t *testing.T) {
	ix, err := Default()
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ix.Len() > 50, "default dataset has %d records", ix.Len())

	again, err := Default()
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ix == again, "default index should be loaded once")
}

// The embedded file is kept in canonical form, so every stored transcript
// must equal the text it was loaded from.
func TestDefaultDatasetIsCanonical(t *testing.T) {
	ix, err := Default()
	testutil.AssertNoError(t, err)

	scanner := bufio.NewScanner(bytes.NewReader(defaultData))
	scanner.Scan() // header
	var raw []string
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		raw = append(raw, fields[2])
	}

	all := ix.All()
	testutil.AssertEqual(t, len(all), len(raw))
	for i, o := range all {
		testutil.AssertEqual(t, o.PGN, raw[i], "%s %s", o.ECO, o.Name)
	}
}

func TestSearchByPrefix(t *testing.T) {
	ix := newTestIndex(t)

	tests := []struct {
		name   string
		sans   []string
		toMove chess.Colour
		want   []string
	}{
		{"white to rank", []string{"e4"}, chess.White, []string{"B20", "C20", "C40", "B90", "C23"}},
		{"black to rank", []string{"e4"}, chess.Black, []string{"B20", "C23", "C20", "C40", "B90"}},
		{"two plies", []string{"e4", "e5"}, chess.White, []string{"C20", "C40", "C23"}},
		{"exact record", []string{"e4", "e5", "Nf3"}, chess.Black, []string{"C40"}},
		{"token boundary", []string{"e4", "e5", "Nf"}, chess.Black, []string{}},
		{"past every record", []string{"e4", "e5", "Nf3", "Nc6"}, chess.Black, []string{}},
		{"other first move", []string{"d4"}, chess.Black, []string{"D80"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, codes(ix.SearchByPrefix(tt.sans, tt.toMove)), tt.want)
		})
	}

	testutil.AssertEqual(t, len(ix.SearchByPrefix(nil, chess.White)), ix.Len())
}

func TestSearchByPrefixMonotone(t *testing.T) {
	ix, err := Default()
	testutil.AssertNoError(t, err)

	lines := [][]string{
		{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "a6"},
		{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Ba4", "Nf6", "O-O", "Be7"},
		{"d4", "Nf6", "c4", "g6", "Nc3", "d5", "cxd5", "Nxd5"},
	}
	for _, line := range lines {
		prev := map[*Opening]bool{}
		for _, o := range ix.SearchByPrefix(nil, chess.White) {
			prev[o] = true
		}
		for n := 1; n <= len(line); n++ {
			got := ix.SearchByPrefix(line[:n], chess.White)
			cur := map[*Opening]bool{}
			for _, o := range got {
				testutil.AssertTrue(t, prev[o], "%s matched %v but not its prefix", o.Name, line[:n])
				cur[o] = true
			}
			testutil.AssertTrue(t, len(got) > 0, "no record for %v", line[:n])
			prev = cur
		}
	}
}

func TestFindExactAndCurrent(t *testing.T) {
	ix := newTestIndex(t)

	exact := ix.FindExact([]string{"e4", "c5"})
	testutil.AssertNotNil(t, exact)
	testutil.AssertEqual(t, exact.ECO, "B20")
	testutil.AssertNil(t, ix.FindExact([]string{"e4"}))
	testutil.AssertNil(t, ix.FindExact(nil))

	tests := []struct {
		sans []string
		want string
	}{
		{[]string{"e4", "e5", "Nf3", "Nc6", "Bb5"}, "C40"},
		{[]string{"e4", "e5"}, "C20"},
		{[]string{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "a6", "Be2"}, "B90"},
		{[]string{"e4", "c5", "Nc3"}, "B20"},
		{[]string{"e4"}, ""},
		{[]string{"c4"}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.sans, " "), func(t *testing.T) {
			got := ix.Current(tt.sans)
			if tt.want == "" {
				testutil.AssertNil(t, got)
				return
			}
			testutil.AssertNotNil(t, got)
			testutil.AssertEqual(t, got.ECO, tt.want)
		})
	}
}

func TestSearchByQuery(t *testing.T) {
	ix := newTestIndex(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"najdorf", []string{"B90"}},
		{"B90", []string{"B90"}},
		{"GRÜNFELD", []string{"D80"}},
		{"grunfeld", []string{"D80"}},
		{"sicilian", []string{"B20", "B90"}},
		{"Sicilian Defense", []string{"B20", "B90", "D80"}},
		{"nf3", []string{"C40", "B90"}},
		{"kings", []string{"C40", "C20"}},
		{"xyzzy", []string{}},
		{"", []string{}},
		{"!!!", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			testutil.AssertEqual(t, matchCodes(ix.SearchByQuery(tt.query)), tt.want)
		})
	}
}

func TestSearchByQueryScores(t *testing.T) {
	ix := newTestIndex(t)

	got := ix.SearchByQuery("sicilian defense")
	testutil.AssertEqual(t, len(got), 3)
	testutil.AssertEqual(t, got[0].Score, scoreNameExact+2*scoreNameToken)
	testutil.AssertEqual(t, got[1].Score, scoreNamePrefix+2*scoreNameToken)
	testutil.AssertEqual(t, got[2].Score, scoreNameToken)

	code := ix.SearchByQuery("b9")
	testutil.AssertEqual(t, len(code), 1)
	testutil.AssertEqual(t, code[0].Score, scoreCodePrefix)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Grünfeld Defense: Exchange", "grunfeld defense exchange"},
		{"King's Indian", "kings indian"},
		{"  1. e4   e5 ", "1 e4 e5"},
		{"Réti", "reti"},
		{"Caro-Kann", "carokann"},
		{"B90", "b90"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			testutil.AssertEqual(t, normalize(tt.in), tt.want)
		})
	}
}
