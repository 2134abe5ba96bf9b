package sequence

import (
	"errors"

	"github.com/dshills/keycompose/internal/input/key"
)

// ErrEmptySequence is returned by Insert when given an empty sequence.
var ErrEmptySequence = errors.New("sequence: cannot insert empty sequence")

// payload holds the terminal data of a complete sequence.
type payload struct {
	result      string
	description string
	codepoint   rune
}

type trieNode struct {
	children map[key.Symbol]*trieNode
	entry    *payload
}

func newTrieNode() *trieNode {
	return &trieNode{
		children: make(map[key.Symbol]*trieNode),
	}
}

// Trie is a prefix tree keyed by symbols. The root represents the
// empty-prefix state. Intermediate nodes are never removed once created;
// stale entries disappear only when a fresh trie replaces the whole tree.
type Trie struct {
	root  *trieNode
	count int
}

// New creates an empty trie.
func New() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert stores the terminal payload at the path seq, creating nodes as
// needed. Inserting a path that is already terminal overwrites its payload
// (last write wins) without affecting the distinct-sequence count. Returns
// ErrEmptySequence for an empty path; any non-empty insert succeeds.
func (t *Trie) Insert(seq Sequence, result string, codepoint rune, description string) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}

	node := t.root
	for _, sym := range seq {
		child, ok := node.children[sym]
		if !ok {
			child = newTrieNode()
			node.children[sym] = child
		}
		node = child
	}

	if node.entry == nil {
		t.count++
	}
	node.entry = &payload{
		result:      result,
		description: description,
		codepoint:   codepoint,
	}
	return nil
}

// walk follows seq from the root and returns the node at that exact path,
// or nil if the path leaves the tree.
func (t *Trie) walk(seq Sequence) *trieNode {
	node := t.root
	for _, sym := range seq {
		child, ok := node.children[sym]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// IsValidPrefix reports whether a node exists at the exact path seq,
// terminal or not. The empty sequence is always a valid prefix.
func (t *Trie) IsValidPrefix(seq Sequence) bool {
	return t.walk(seq) != nil
}

// IsValidSequence reports whether seq is a stored complete sequence.
func (t *Trie) IsValidSequence(seq Sequence) bool {
	node := t.walk(seq)
	return node != nil && node.entry != nil
}

// Result returns the produced text for a complete sequence, or "" when seq
// is absent or non-terminal. Absence is not an error: legitimate entries
// never produce an empty result.
func (t *Trie) Result(seq Sequence) string {
	node := t.walk(seq)
	if node == nil || node.entry == nil {
		return ""
	}
	return node.entry.result
}

// Count returns the number of distinct complete sequences stored.
func (t *Trie) Count() int {
	return t.count
}

// Entries returns every complete sequence as a Descriptor, sorted per the
// descriptor ordering rule. The list is recomputed on each call.
func (t *Trie) Entries() []Descriptor {
	out := make([]Descriptor, 0, t.count)
	collect(t.root, nil, &out)
	sortDescriptors(out)
	return out
}

// collect walks the subtree gathering terminal payloads. The path slice is
// capacity-clamped before each child append so sibling branches never share
// a slot.
func collect(node *trieNode, path Sequence, out *[]Descriptor) {
	if node.entry != nil {
		seq := make(Sequence, len(path))
		copy(seq, path)
		*out = append(*out, Descriptor{
			Sequence:    seq,
			Result:      node.entry.result,
			Description: node.entry.description,
			Codepoint:   node.entry.codepoint,
		})
	}
	for sym, child := range node.children {
		collect(child, append(path[:len(path):len(path)], sym), out)
	}
}
