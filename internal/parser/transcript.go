package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

var (
	// moveNumber matches the "12." markers between move pairs.
	moveNumber = regexp.MustCompile(`\s?\d+\.`)

	// braceComment matches a {...} comment.
	braceComment = regexp.MustCompile(`\{[^}]*\}`)
)

// Transcript is a parsed game transcript. SANs and Moves run in lock-step:
// Moves[i] is the decoding of SANs[i].
type Transcript struct {
	SANs  []string
	Moves []chess.ParsedMove

	// Result is the terminal result marker, NoResult if none was given.
	Result chess.Result
}

// Len returns the number of tokens, result markers included.
func (t Transcript) Len() int { return len(t.SANs) }

// ParseTranscript decodes a game transcript such as "1. e4 e5 2. Nf3 Nc6".
// Header lines beginning with "[" are ignored, as is everything before the
// first move number, {comments}, ";" line comments, "$n" annotation glyphs
// and the "..." of black-to-move numbering. Parsing stops after a result
// marker. A malformed token returns the moves decoded so far together with
// a *errors.ParseError whose Column is the token's 1-based position.
func ParseTranscript(text string) (Transcript, error) {
	var t Transcript

	body := stripNonMoveText(text)
	loc := moveNumber.FindStringIndex(body)
	if loc == nil {
		return t, nil
	}

	chunks := moveNumber.Split(body[loc[0]:], -1)
	for _, chunk := range chunks[1:] {
		for _, tok := range strings.Fields(chunk) {
			if skipToken(tok) {
				continue
			}
			move, err := ParseSAN(tok)
			if err != nil {
				return t, tokenError(err, t.Len()+1)
			}
			t.add(tok, move)
			if move.IsResult() {
				return t, nil
			}
		}
	}
	return t, nil
}

// ParseMoves accepts either a numbered transcript or a bare whitespace
// separated list of moves such as "e4 e5 Nf3".
func ParseMoves(text string) (Transcript, error) {
	body := stripNonMoveText(text)
	if moveNumber.MatchString(body) {
		return ParseTranscript(body)
	}

	var t Transcript
	for _, tok := range strings.Fields(body) {
		if skipToken(tok) {
			continue
		}
		move, err := ParseSAN(tok)
		if err != nil {
			return t, tokenError(err, t.Len()+1)
		}
		t.add(tok, move)
		if move.IsResult() {
			break
		}
	}
	return t, nil
}

func (t *Transcript) add(tok string, move chess.ParsedMove) {
	t.SANs = append(t.SANs, tok)
	t.Moves = append(t.Moves, move)
	if move.IsResult() {
		t.Result = move.Result
	}
}

// skipToken reports tokens that carry no move: annotation glyphs and the
// dots left over from "12..." numbering.
func skipToken(tok string) bool {
	return strings.HasPrefix(tok, "$") || strings.Trim(tok, ".") == ""
}

func tokenError(err error, column int) error {
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		pe.Column = column
		return pe
	}
	return &errors.ParseError{Err: err, Column: column}
}

// stripNonMoveText removes header lines, line comments and brace comments.
func stripNonMoveText(text string) string {
	var sb strings.Builder
	for _, line := range SplitLines(braceComment.ReplaceAllString(text, " ")) {
		if strings.HasPrefix(strings.TrimSpace(line), "[") {
			continue
		}
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SplitLines splits text into lines with their "\n" or "\r\n" endings
// removed. A final newline does not start another line. Lines may be of
// any length.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// FormatTranscript renders moves as "1. e4 e5 2. Nf3": a move number before
// every White move and single spaces between tokens.
func FormatTranscript(sans []string) string {
	var sb strings.Builder
	for i, san := range sans {
		if i%2 == 0 {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(i/2 + 1))
			sb.WriteString(". ")
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteString(san)
	}
	return sb.String()
}
