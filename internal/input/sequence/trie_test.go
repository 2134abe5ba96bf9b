package sequence

import (
	"errors"
	"testing"

	"github.com/dshills/keycompose/internal/input/key"
)

func seq(chars ...string) Sequence {
	out := make(Sequence, len(chars))
	for i, c := range chars {
		out[i] = key.Printable(c)
	}
	return out
}

func TestTrieInsertAndLookup(t *testing.T) {
	tr := New()
	if err := tr.Insert(seq("\"", "-"), "½", 0x00BD, "VULGAR FRACTION ONE HALF"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if !tr.IsValidSequence(seq("\"", "-")) {
		t.Error("IsValidSequence() = false for inserted sequence")
	}
	if got := tr.Result(seq("\"", "-")); got != "½" {
		t.Errorf("Result() = %q, want %q", got, "½")
	}
	if !tr.IsValidPrefix(seq("\"", "-")) {
		t.Error("IsValidPrefix() = false for complete sequence")
	}
}

func TestTrieProperPrefixes(t *testing.T) {
	tr := New()
	if err := tr.Insert(seq("a", "b", "c"), "x", NoCodepoint, ""); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	// Every proper prefix is valid even though none was inserted.
	prefixes := []Sequence{
		seq("a"),
		seq("a", "b"),
	}
	for _, p := range prefixes {
		if !tr.IsValidPrefix(p) {
			t.Errorf("IsValidPrefix(%v) = false, want true", p)
		}
		if tr.IsValidSequence(p) {
			t.Errorf("IsValidSequence(%v) = true for non-terminal prefix", p)
		}
		if got := tr.Result(p); got != "" {
			t.Errorf("Result(%v) = %q, want empty", p, got)
		}
	}
}

func TestTrieEmptySequence(t *testing.T) {
	tr := New()

	if err := tr.Insert(nil, "x", NoCodepoint, ""); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("Insert(empty) error = %v, want ErrEmptySequence", err)
	}
	if tr.Count() != 0 {
		t.Errorf("Count() = %d after rejected insert, want 0", tr.Count())
	}

	// The empty sequence is always a valid prefix (the root exists) but
	// never a valid sequence.
	if !tr.IsValidPrefix(nil) {
		t.Error("IsValidPrefix(empty) = false, want true")
	}
	if tr.IsValidSequence(nil) {
		t.Error("IsValidSequence(empty) = true, want false")
	}
}

func TestTrieAbsentSequence(t *testing.T) {
	tr := New()
	if err := tr.Insert(seq("a", "b"), "x", NoCodepoint, ""); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	absent := seq("z", "z")
	if tr.IsValidPrefix(absent) {
		t.Error("IsValidPrefix(absent) = true")
	}
	if tr.IsValidSequence(absent) {
		t.Error("IsValidSequence(absent) = true")
	}
	if got := tr.Result(absent); got != "" {
		t.Errorf("Result(absent) = %q, want empty", got)
	}

	// Sharing a first symbol is not enough.
	if tr.IsValidPrefix(seq("a", "z")) {
		t.Error("IsValidPrefix(diverging path) = true")
	}
}

func TestTrieOverwrite(t *testing.T) {
	tr := New()
	if err := tr.Insert(seq("o", "c"), "©", 0x00A9, "COPYRIGHT SIGN"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := tr.Insert(seq("o", "c"), "ⓒ", 0x24D2, "CIRCLED LATIN SMALL LETTER C"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if got := tr.Result(seq("o", "c")); got != "ⓒ" {
		t.Errorf("Result() = %q after overwrite, want %q", got, "ⓒ")
	}
	if tr.Count() != 1 {
		t.Errorf("Count() = %d after overwrite, want 1", tr.Count())
	}

	entries := tr.Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries() length = %d, want 1", len(entries))
	}
	if entries[0].Result != "ⓒ" {
		t.Errorf("enumerated result = %q, want %q", entries[0].Result, "ⓒ")
	}
}

func TestTrieTerminalIsStillPrefix(t *testing.T) {
	tr := New()
	if err := tr.Insert(seq("a", "e"), "æ", 0x00E6, ""); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := tr.Insert(seq("a", "e", "i"), "ǣ", 0x01E3, ""); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	// The shorter sequence is complete and simultaneously a prefix of the
	// longer one.
	if !tr.IsValidSequence(seq("a", "e")) {
		t.Error("shorter sequence lost its terminal")
	}
	if !tr.IsValidPrefix(seq("a", "e")) {
		t.Error("terminal node not reported as prefix")
	}
	if !tr.IsValidSequence(seq("a", "e", "i")) {
		t.Error("extension sequence not terminal")
	}
	if tr.Count() != 2 {
		t.Errorf("Count() = %d, want 2", tr.Count())
	}
}

func TestTrieCount(t *testing.T) {
	tr := New()
	inserts := []struct {
		s      Sequence
		result string
	}{
		{seq("a", "b"), "1"},
		{seq("a", "c"), "2"},
		{seq("a", "b", "c"), "3"},
		{seq("a", "b"), "overwritten"},
	}
	for _, in := range inserts {
		if err := tr.Insert(in.s, in.result, NoCodepoint, ""); err != nil {
			t.Fatalf("Insert(%v) error = %v", in.s, err)
		}
	}

	if tr.Count() != 3 {
		t.Errorf("Count() = %d, want 3", tr.Count())
	}
	if got := len(tr.Entries()); got != 3 {
		t.Errorf("len(Entries()) = %d, want 3", got)
	}
}

func TestEntriesCodepointOrder(t *testing.T) {
	// Insert in descending codepoint order; enumeration must come back
	// ascending regardless.
	tr := New()
	if err := tr.Insert(seq("\"", "-"), "½", 0x00BD, "VULGAR FRACTION ONE HALF"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := tr.Insert(seq("'", "-"), "¼", 0x00BC, "VULGAR FRACTION ONE QUARTER"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	entries := tr.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() length = %d, want 2", len(entries))
	}
	if entries[0].Codepoint != 0x00BC || entries[1].Codepoint != 0x00BD {
		t.Errorf("order = [%#x %#x], want [0xbc 0xbd]",
			entries[0].Codepoint, entries[1].Codepoint)
	}
}

func TestEntriesNoCodepointSortsFirst(t *testing.T) {
	tr := New()
	if err := tr.Insert(seq("t", "m"), "™", 0x2122, "TRADE MARK SIGN"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := tr.Insert(seq("h", "i"), "hello", NoCodepoint, "multi-char result"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	entries := tr.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() length = %d, want 2", len(entries))
	}
	if entries[0].HasCodepoint() {
		t.Errorf("first entry has codepoint %#x, want the no-codepoint entry first", entries[0].Codepoint)
	}
	if entries[0].Result != "hello" {
		t.Errorf("first entry result = %q, want %q", entries[0].Result, "hello")
	}
}

func TestEntriesLexicographicWithoutCodepoints(t *testing.T) {
	tr := New()
	for _, in := range []struct {
		s      Sequence
		result string
	}{
		{seq("z", "1"), "zulu"},
		{seq("a", "1"), "alpha"},
		{seq("m", "1"), "mike"},
	} {
		if err := tr.Insert(in.s, in.result, NoCodepoint, ""); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	entries := tr.Entries()
	want := []string{"alpha", "mike", "zulu"}
	for i, w := range want {
		if entries[i].Result != w {
			t.Errorf("entries[%d].Result = %q, want %q", i, entries[i].Result, w)
		}
	}
}

func TestEntriesFreshEachCall(t *testing.T) {
	tr := New()
	if err := tr.Insert(seq("a", "b"), "1", NoCodepoint, ""); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	first := tr.Entries()
	if err := tr.Insert(seq("c", "d"), "2", NoCodepoint, ""); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	second := tr.Entries()

	if len(first) != 1 {
		t.Errorf("first snapshot length = %d, want 1", len(first))
	}
	if len(second) != 2 {
		t.Errorf("second snapshot length = %d, want 2", len(second))
	}
}

func TestEntriesDeterministic(t *testing.T) {
	tr := New()
	// Same codepoint on two sequences: order must still be stable.
	if err := tr.Insert(seq("x", "1"), "µ", 0x00B5, ""); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := tr.Insert(seq("x", "2"), "µ", 0x00B5, ""); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	first := tr.Entries()
	for i := 0; i < 10; i++ {
		again := tr.Entries()
		for j := range first {
			if !again[j].Sequence.Equal(first[j].Sequence) {
				t.Fatalf("run %d: entry %d moved: %v vs %v",
					i, j, again[j].Sequence, first[j].Sequence)
			}
		}
	}
}

func TestDescriptorLess(t *testing.T) {
	tests := []struct {
		name string
		a, b Descriptor
		want bool
	}{
		{
			name: "codepoints numeric",
			a:    Descriptor{Codepoint: 0x00BC, Result: "¼"},
			b:    Descriptor{Codepoint: 0x00BD, Result: "½"},
			want: true,
		},
		{
			name: "no codepoint below real",
			a:    Descriptor{Codepoint: NoCodepoint, Result: "zz"},
			b:    Descriptor{Codepoint: 0x0021, Result: "!"},
			want: true,
		},
		{
			name: "real above no codepoint",
			a:    Descriptor{Codepoint: 0x0021, Result: "!"},
			b:    Descriptor{Codepoint: NoCodepoint, Result: "aa"},
			want: false,
		},
		{
			name: "neither: lexicographic",
			a:    Descriptor{Codepoint: NoCodepoint, Result: "abc"},
			b:    Descriptor{Codepoint: NoCodepoint, Result: "abd"},
			want: true,
		},
		{
			name: "equal codepoint falls to result",
			a:    Descriptor{Codepoint: 0x00B5, Result: "a"},
			b:    Descriptor{Codepoint: 0x00B5, Result: "b"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("Less() = %v, want %v", got, tt.want)
			}
		})
	}
}
