package config

import (
	"bytes"
	_ "embed"
	"path/filepath"

	"github.com/dshills/keycompose/internal/definition"
	"github.com/dshills/keycompose/internal/input/sequence"
)

//go:embed rules/builtin.txt
var builtinRules []byte

// userSequenceFile is the conventional per-user definition file name,
// shared with other compose implementations.
const userSequenceFile = ".XCompose"

// sequenceFile is the definition file name probed in the data and config
// directories.
const sequenceFile = "sequences.txt"

// LoadSequences rebuilds the trie from every definition source in priority
// order: embedded built-ins, the shared data directory, the user's
// .XCompose, then the file next to the settings file. Later sources
// override earlier ones that share a trigger path. A missing or unreadable
// file is skipped; nothing here fails the load.
//
// The new trie is built aside and published in one swap, so concurrent
// lookups never observe a half-built tree.
func (s *Store) LoadSequences() {
	trie := sequence.New()

	entries, err := s.parser.Parse(bytes.NewReader(builtinRules))
	if err != nil {
		s.log.Warnw("Reading built-in sequences", "error", err)
	}
	s.insertAll(trie, entries)

	files := 0
	for _, path := range s.sequenceFiles() {
		entries, err := s.parser.ParseFile(path)
		if err != nil {
			s.log.Debugw("Skipping sequence file", "path", path, "error", err)
			continue
		}
		s.insertAll(trie, entries)
		files++
	}

	s.mu.Lock()
	s.trie = trie
	s.mu.Unlock()

	s.log.Infow("Sequences loaded", "entries", trie.Count(), "files", files)
}

// sequenceFiles returns the on-disk definition files in load order. The
// embedded built-ins always precede these.
func (s *Store) sequenceFiles() []string {
	var files []string
	if s.dataDir != "" {
		files = append(files, filepath.Join(s.dataDir, sequenceFile))
	}
	if s.userDir != "" {
		files = append(files, filepath.Join(s.userDir, userSequenceFile))
	}
	files = append(files, filepath.Join(filepath.Dir(s.configPath), sequenceFile))
	return files
}

func (s *Store) insertAll(trie *sequence.Trie, entries []definition.Entry) {
	for _, e := range entries {
		if err := trie.Insert(e.Sequence, e.Result, e.Codepoint, e.Description); err != nil {
			s.log.Debugw("Skipping entry", "error", err)
		}
	}
}
