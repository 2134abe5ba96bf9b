package sequence

import (
	"strings"

	"github.com/dshills/keycompose/internal/input/key"
)

// Sequence is an ordered list of symbols forming a trigger or a prefix of
// one. The empty sequence denotes "no input consumed"; it is a valid prefix
// but never a storable trigger.
type Sequence []key.Symbol

// Of builds a sequence from the given symbols.
func Of(syms ...key.Symbol) Sequence {
	return Sequence(syms)
}

// Equal reports positional equality: same length, equal symbol at every
// index.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Append returns a new sequence with sym added. The receiver is never
// modified, so callers can keep a prefix while probing extensions.
func (s Sequence) Append(sym key.Symbol) Sequence {
	out := make(Sequence, len(s), len(s)+1)
	copy(out, s)
	return append(out, sym)
}

// String returns the space-joined serialized symbol forms,
// e.g. `VK.Compose " -`. ParseString is its inverse for symbols whose
// serialized form contains no whitespace.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, sym := range s {
		parts[i] = sym.String()
	}
	return strings.Join(parts, " ")
}

// Labels returns the compact key-cap rendering for display,
// e.g. `RAlt " -`.
func (s Sequence) Labels() string {
	parts := make([]string, len(s))
	for i, sym := range s {
		parts[i] = sym.Label()
	}
	return strings.Join(parts, " ")
}

// ParseString parses the space-joined form produced by String. A printable
// whitespace symbol cannot round-trip through this form; such sequences are
// built programmatically instead.
func ParseString(raw string) Sequence {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}
	out := make(Sequence, len(fields))
	for i, f := range fields {
		out[i] = key.Parse(f)
	}
	return out
}
