// Package sequence implements the matching engine: a prefix tree keyed by
// input symbols.
//
// A Sequence is an ordered, non-empty list of key.Symbol values. The Trie
// stores complete sequences with a terminal payload (result text, optional
// codepoint, description) and answers three questions about any sequence in
// one walk from the root:
//
//   - IsValidPrefix: does any stored sequence start this way?
//   - IsValidSequence: is this exactly a stored sequence?
//   - Result: what text does this sequence produce?
//
// A node holding a terminal payload is still a valid prefix for longer
// sequences sharing its path; "has children" and "is terminal" are
// independent.
//
// Tries are not synchronized. The configuration store builds a replacement
// trie off to the side and publishes it in one step, so a published trie is
// only ever read.
package sequence
