package eco

import (
	"strings"
	"unicode"

	"golang.org/x/exp/slices"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/parser"
)

// Query score tiers.
const (
	scoreCodeExact    = 100
	scoreCodePrefix   = 60
	scoreCodeContains = 30
	scoreNameExact    = 90
	scoreNamePrefix   = 50
	scoreNameContains = 25
	scoreNameToken    = 10
	scoreTranscript   = 5
)

// Match is a query result.
type Match struct {
	Opening *Opening `json:"opening"`
	Score   int      `json:"score"`
}

// continues reports whether pgn is played, or played followed by more moves.
func continues(pgn, played string) bool {
	return played == "" || pgn == played || strings.HasPrefix(pgn, played+" ")
}

// SearchByPrefix returns the records whose moves begin with sans, ordered by
// the reference win count for toMove, most wins first, then by name. An
// empty move list matches every record.
func (ix *Index) SearchByPrefix(sans []string, toMove chess.Colour) []*Opening {
	played := parser.FormatTranscript(sans)

	var matches []*Opening
	for _, o := range ix.openings {
		if continues(o.PGN, played) {
			matches = append(matches, o)
		}
	}
	slices.SortStableFunc(matches, func(a, b *Opening) int {
		if wa, wb := a.Wins(toMove), b.Wins(toMove); wa != wb {
			return wb - wa
		}
		return strings.Compare(a.Name, b.Name)
	})
	return matches
}

// FindExact returns the first record whose moves are exactly sans.
func (ix *Index) FindExact(sans []string) *Opening {
	if len(sans) == 0 {
		return nil
	}
	played := parser.FormatTranscript(sans)
	for _, o := range ix.openings {
		if o.PGN == played {
			return o
		}
	}
	return nil
}

// Current returns the longest record that the played moves have passed
// through, or nil when the game left the dataset on its first move.
func (ix *Index) Current(sans []string) *Opening {
	played := parser.FormatTranscript(sans)

	var best *Opening
	for _, o := range ix.openings {
		if !continues(played, o.PGN) {
			continue
		}
		if best == nil || o.Plies() > best.Plies() {
			best = o
		}
	}
	return best
}

// SearchByQuery scores every record against free text and returns those
// that score above zero, best first, ties by name. The code and name are
// matched as whole, prefix or substring; each query word found in the name
// adds a bonus, and the query appearing inside the transcript adds a
// smaller one. Matching ignores case, accents and punctuation.
func (ix *Index) SearchByQuery(text string) []Match {
	q := normalize(text)
	if q == "" {
		return nil
	}
	words := strings.Fields(q)

	var matches []Match
	for _, o := range ix.openings {
		if s := o.score(q, words); s > 0 {
			matches = append(matches, Match{Opening: o, Score: s})
		}
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Opening.Name, b.Opening.Name)
	})
	return matches
}

func (o *Opening) score(q string, words []string) int {
	s := tier(o.normECO, q, scoreCodeExact, scoreCodePrefix, scoreCodeContains)
	s += tier(o.normName, q, scoreNameExact, scoreNamePrefix, scoreNameContains)
	for _, w := range words {
		if o.nameToks[w] {
			s += scoreNameToken
		}
	}
	if strings.Contains(o.normPGN, q) {
		s += scoreTranscript
	}
	return s
}

func tier(field, q string, exact, prefix, contains int) int {
	switch {
	case field == q:
		return exact
	case strings.HasPrefix(field, q):
		return prefix
	case strings.Contains(field, q):
		return contains
	}
	return 0
}

// index fills in the normalized search keys.
func (o *Opening) index() {
	o.normECO = normalize(o.ECO)
	o.normName = normalize(o.Name)
	o.normPGN = normalize(o.PGN)
	o.nameToks = make(map[string]bool)
	for _, w := range strings.Fields(o.normName) {
		o.nameToks[w] = true
	}
}

// normalize lowercases s, folds accented letters to their base letter,
// drops everything but letters, digits and spaces, and collapses runs of
// whitespace. "Grünfeld Defense: Exchange" becomes "grunfeld defense exchange".
func normalize(s string) string {
	// Transformers carry state, so each call builds its own chain.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var sb strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
