package key

import (
	"strings"

	"github.com/rivo/uniseg"
)

// namedPrefix introduces the serialized form of a named symbol.
const namedPrefix = "VK."

// Symbol is an atomic input unit: either a printable string or a named
// platform key. Symbols are immutable values, compare with ==, and may be
// used as map keys. Two printable symbols are equal iff their text is equal;
// two named symbols are equal iff their keys are equal; a printable symbol is
// never equal to a named one. The zero Symbol is not usable.
type Symbol struct {
	id   Key
	text string
}

// Printable returns the printable-variant Symbol for text. Match keys are
// expected to be a single grapheme cluster; longer text is kept as-is but
// will never match single-keystroke input.
func Printable(text string) Symbol {
	return Symbol{text: text}
}

// PrintableRune returns the printable-variant Symbol for a single rune.
func PrintableRune(r rune) Symbol {
	return Symbol{text: string(r)}
}

// Named returns the named-variant Symbol for a platform key.
func Named(k Key) Symbol {
	return Symbol{id: k}
}

// IsPrintable reports whether this is the printable variant.
func (s Symbol) IsPrintable() bool {
	return s.text != ""
}

// Text returns the printable text, or "" for named symbols.
func (s Symbol) Text() string {
	return s.text
}

// Key returns the named key identifier, or KeyNone for printable symbols.
func (s Symbol) Key() Key {
	if s.IsPrintable() {
		return KeyNone
	}
	return s.id
}

// Usable reports whether the symbol can participate in sequence matching:
// printable text, or a recognized named key.
func (s Symbol) Usable() bool {
	if s.IsPrintable() {
		return true
	}
	return s.id.Recognized()
}

// Name returns the friendly display name: the literal text for printable
// symbols, the curated or canonical key name otherwise.
func (s Symbol) Name() string {
	if s.IsPrintable() {
		return s.text
	}
	return s.id.Name()
}

// Label returns the compact key-cap label for display in sequence listings.
func (s Symbol) Label() string {
	if s.IsPrintable() {
		return s.text
	}
	return s.id.Label()
}

// String returns the round-trippable serialized form: "VK.<name>" for named
// symbols, the literal text for printable ones. Parse is its inverse.
func (s Symbol) String() string {
	if s.IsPrintable() {
		return s.text
	}
	return namedPrefix + s.id.String()
}

// Parse is the inverse of String: "VK.<name>" with a recognized key name
// (case-insensitive) yields the named variant; any other string yields the
// printable variant with that exact text.
func Parse(raw string) Symbol {
	if name, ok := strings.CutPrefix(raw, namedPrefix); ok {
		if k := FromName(name); k != KeyNone {
			return Named(k)
		}
	}
	return Printable(raw)
}

// SingleGrapheme reports whether text renders as exactly one grapheme
// cluster. Combining sequences and multi-rune emoji count as one.
func SingleGrapheme(text string) bool {
	return text != "" && uniseg.GraphemeClusterCount(text) == 1
}
