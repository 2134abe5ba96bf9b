// Package definition parses sequence-definition files.
//
// The format is one entry per line:
//
//	<Multi_key> <quotedbl> <minus> : "½"   # VULGAR FRACTION ONE HALF
//
// A line counts as a definition only when it starts with the <Multi_key>
// marker, carries a colon-delimited trigger group, and quotes a result
// string. Everything else in a file (comments, blanks, include directives)
// is skipped without error.
package definition

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dshills/keycompose/internal/input/key"
	"github.com/dshills/keycompose/internal/input/sequence"
	"go.uber.org/zap"
)

// Errors reported by ParseLine. Callers treat every one of them as
// "skip this line"; they differ only in what gets logged.
var (
	// ErrNotSequence marks a line that is not a sequence definition at all.
	ErrNotSequence = errors.New("definition: not a sequence definition")

	// ErrTooFewKeys marks a definition with fewer than two trigger keys
	// after the marker.
	ErrTooFewKeys = errors.New("definition: sequence needs at least two trigger keys")
)

// UnknownKeysymError reports a trigger token that resolves to no Symbol.
// The whole line is rejected; no partial sequence is produced.
type UnknownKeysymError struct {
	Name string
}

func (e *UnknownKeysymError) Error() string {
	return fmt.Sprintf("definition: unknown keysym %q", e.Name)
}

// Entry is one parsed definition, ready for trie insertion.
type Entry struct {
	Sequence    sequence.Sequence
	Result      string
	Description string
	Codepoint   rune
}

// HasCodepoint reports whether the result resolved to a single codepoint.
func (e Entry) HasCodepoint() bool { return e.Codepoint != sequence.NoCodepoint }

// DescribeFunc looks up a curated character name for a codepoint. When it
// returns ok, the name overrides the line's own description.
type DescribeFunc func(cp rune) (string, bool)

// lineRE recognizes one definition line: the marker, the trigger group up
// to the first colon, the quoted result (escaped quotes allowed), and an
// optional #-description. The trigger group cannot contain a colon, so a
// line using the colon keysym in bracketed form is not representable.
var lineRE = regexp.MustCompile(`^\s*(<Multi_key>[^:]*):[^"]*"((?:[^"\\]|\\.)*)"[^#]*(?:#\s*(.*))?$`)

// tokenSplitRE splits the trigger group on whitespace and angle brackets.
var tokenSplitRE = regexp.MustCompile(`[\s<>]+`)

// Parser turns definition-file lines into Entries.
type Parser struct {
	describe DescribeFunc
	log      *zap.SugaredLogger
}

// New returns a Parser. describe may be nil to keep the descriptions the
// files carry; logger may be nil to disable logging.
func New(describe DescribeFunc, logger *zap.SugaredLogger) *Parser {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Parser{describe: describe, log: logger}
}

// ParseLine parses a single line. It returns ErrNotSequence for lines that
// are not sequence definitions, ErrTooFewKeys for degenerate ones, and an
// UnknownKeysymError when a trigger token cannot be resolved.
func (p *Parser) ParseLine(line string) (Entry, error) {
	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, ErrNotSequence
	}

	tokens := splitTriggers(m[1])
	// Token 0 is the marker itself. A usable entry needs the marker plus
	// at least two trigger keys; cheaper to count raw tokens than to
	// resolve them first.
	if len(tokens) < 3 {
		return Entry{}, ErrTooFewKeys
	}

	seq := make(sequence.Sequence, 0, len(tokens)-1)
	for _, tok := range tokens[1:] {
		sym, err := resolveToken(tok)
		if err != nil {
			return Entry{}, err
		}
		seq = append(seq, sym)
	}

	entry := Entry{
		Sequence:    seq,
		Result:      unescapeResult(m[2]),
		Description: strings.TrimSpace(m[3]),
		Codepoint:   sequence.NoCodepoint,
	}

	if utf8.RuneCountInString(entry.Result) == 1 {
		cp, _ := utf8.DecodeRuneInString(entry.Result)
		entry.Codepoint = cp
		if p.describe != nil {
			if name, ok := p.describe(cp); ok {
				entry.Description = name
			}
		}
	}

	return entry, nil
}

// ParseTriggers resolves a bare trigger list such as `<o> <c>` or `o c`
// into a sequence. Unlike ParseLine it expects no marker and accepts a
// single key. Lookup tools use it to parse user-supplied triggers.
func ParseTriggers(raw string) (sequence.Sequence, error) {
	tokens := splitTriggers(raw)
	if len(tokens) == 0 {
		return nil, errors.New("definition: empty trigger list")
	}
	seq := make(sequence.Sequence, 0, len(tokens))
	for _, tok := range tokens {
		sym, err := resolveToken(tok)
		if err != nil {
			return nil, err
		}
		seq = append(seq, sym)
	}
	return seq, nil
}

// splitTriggers tokenizes the marker-and-trigger group, dropping the empty
// fragments the delimiters leave behind.
func splitTriggers(group string) []string {
	raw := tokenSplitRE.Split(group, -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// resolveToken turns one trigger token into a Symbol: curated keysym names
// first, then any single-grapheme token as its literal character.
func resolveToken(tok string) (key.Symbol, error) {
	if sym, ok := lookupKeysym(tok); ok {
		return sym, nil
	}
	if key.SingleGrapheme(tok) {
		return key.Printable(tok), nil
	}
	return key.Symbol{}, &UnknownKeysymError{Name: tok}
}

func unescapeResult(raw string) string {
	return strings.ReplaceAll(raw, `\"`, `"`)
}
