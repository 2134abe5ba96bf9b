// Package config owns the runtime state of the compose engine: typed
// settings read from a single [global] section, the compiled sequence
// trie, and the watch/reload lifecycle.
//
// The Store is an explicit context object, not process-global state.
// Construct one, call Load and LoadSequences, and hand it to whatever
// consumes the lookup API. Malformed settings never surface as errors;
// every degradation falls back to a default.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dshills/keycompose/internal/config/watcher"
	"github.com/dshills/keycompose/internal/definition"
	"github.com/dshills/keycompose/internal/input/key"
	"github.com/dshills/keycompose/internal/input/sequence"
	"github.com/dshills/keycompose/internal/locale"
	"go.uber.org/zap"
)

// settingsFile is the settings file name under the config directory.
const settingsFile = "settings.toml"

// Store holds settings and the compiled trie behind one lock. Lookups are
// concurrent reads; Load, LoadSequences, and the setters are writers.
type Store struct {
	mu   sync.RWMutex
	raw  map[string]string
	trie *sequence.Trie

	configPath string
	dataDir    string
	userDir    string
	debounce   time.Duration

	catalog *locale.Catalog
	parser  *definition.Parser
	watcher *watcher.Watcher
	log     *zap.SugaredLogger
}

// Option configures a Store.
type Option func(*Store)

// WithConfigPath sets the settings file path.
func WithConfigPath(path string) Option {
	return func(s *Store) {
		s.configPath = path
	}
}

// WithDataDir sets the shared data directory probed for sequence files.
func WithDataDir(dir string) Option {
	return func(s *Store) {
		s.dataDir = dir
	}
}

// WithUserDir sets the directory probed for the user's .XCompose file.
func WithUserDir(dir string) Option {
	return func(s *Store) {
		s.userDir = dir
	}
}

// WithDebounce overrides the reload debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) {
		s.debounce = d
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Store) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithCatalog injects a locale catalog, replacing the embedded one.
func WithCatalog(c *locale.Catalog) Option {
	return func(s *Store) {
		s.catalog = c
	}
}

// New creates a Store with empty settings and an empty trie. Call Load and
// LoadSequences to populate it.
func New(opts ...Option) *Store {
	s := &Store{
		raw:  make(map[string]string),
		trie: sequence.New(),
		log:  zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.configPath == "" {
		s.configPath = filepath.Join(defaultUserConfigDir(), settingsFile)
	}
	if s.dataDir == "" {
		s.dataDir = defaultDataDir()
	}
	if s.userDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			s.userDir = home
		}
	}

	if s.catalog == nil {
		cat, err := locale.Load(s.log)
		if err != nil {
			s.log.Warnw("Locale catalogs unavailable", "error", err)
		} else {
			s.catalog = cat
		}
	}

	var describe definition.DescribeFunc
	if s.catalog != nil {
		describe = s.catalog.Describe
	}
	s.parser = definition.New(describe, s.log)

	wopts := []watcher.Option{watcher.WithLogger(s.log)}
	if s.debounce > 0 {
		wopts = append(wopts, watcher.WithDebounce(s.debounce))
	}
	s.watcher = watcher.New(s.configPath, s.reloadSettings, wopts...)

	return s
}

// ConfigPath returns the settings file path.
func (s *Store) ConfigPath() string { return s.configPath }

// DataDir returns the shared data directory.
func (s *Store) DataDir() string { return s.dataDir }

// Load reads the settings file. A missing or malformed file resets every
// entry to its default; nothing fails. The configured language is applied
// to the locale catalog, with failures swallowed.
func (s *Store) Load() {
	section := readSection(s.configPath, s.log)

	s.mu.Lock()
	if section == nil {
		section = make(map[string]string)
	}
	s.raw = section
	lang := s.languageLocked()
	s.mu.Unlock()

	s.applyLanguage(lang)
	s.log.Debugw("Settings loaded", "path", s.configPath)
}

// Save writes the effective value of every setting back to the settings
// file, creating the directory if needed. Values that fell back to their
// defaults are written normalized.
func (s *Store) Save() error {
	s.mu.RLock()
	section := make(map[string]string, len(boolSettings)+3)
	settingComposeKey.put(section, settingComposeKey.get(s.raw))
	settingResetDelay.put(section, settingResetDelay.get(s.raw))
	section[keyLanguage] = s.languageLocked()
	for _, b := range boolSettings {
		b.put(section, b.get(s.raw))
	}
	s.mu.RUnlock()

	if err := writeSection(s.configPath, section); err != nil {
		return err
	}
	s.log.Debugw("Settings saved", "path", s.configPath)
	return nil
}

// StartWatch begins watching the settings file's directory. When the file
// changes, settings (not sequence files) reload after the debounce delay.
func (s *Store) StartWatch() error {
	return s.watcher.Start()
}

// StopWatch ends the watch and disposes any pending reload.
func (s *Store) StopWatch() {
	s.watcher.Stop()
}

// reloadSettings runs on the watcher's timer goroutine.
func (s *Store) reloadSettings() {
	s.log.Infow("Settings file changed, reloading", "path", s.configPath)
	s.Load()
}

// snapshot returns the current trie. Published tries are never mutated, so
// the caller may query it without holding the lock.
func (s *Store) snapshot() *sequence.Trie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trie
}

// IsComposeTrigger reports whether sym is the configured compose key.
func (s *Store) IsComposeTrigger(sym key.Symbol) bool {
	return sym == s.ComposeKey()
}

// IsUsable reports whether sym can participate in sequences: printable, or
// a recognized named key.
func (s *Store) IsUsable(sym key.Symbol) bool {
	return sym.Usable()
}

// IsValidPrefix reports whether seq is a prefix of at least one entry.
func (s *Store) IsValidPrefix(seq sequence.Sequence) bool {
	return s.snapshot().IsValidPrefix(seq)
}

// IsValidSequence reports whether seq is a complete entry.
func (s *Store) IsValidSequence(seq sequence.Sequence) bool {
	return s.snapshot().IsValidSequence(seq)
}

// Result returns the text seq produces, or "" when seq is not an entry.
func (s *Store) Result(seq sequence.Sequence) string {
	return s.snapshot().Result(seq)
}

// Entries returns every entry as a sorted descriptor list, fresh each call.
func (s *Store) Entries() []sequence.Descriptor {
	return s.snapshot().Entries()
}

// EntryCount returns the number of distinct entries.
func (s *Store) EntryCount() int {
	return s.snapshot().Count()
}

// Languages returns the discovered locale identifiers.
func (s *Store) Languages() []string {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.Available()
}

// ComposeKey returns the configured compose trigger. Values outside the
// candidate whitelist resolve to the default trigger.
func (s *Store) ComposeKey() key.Symbol {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return settingComposeKey.get(s.raw)
}

// SetComposeKey stores sym as the compose trigger.
func (s *Store) SetComposeKey(sym key.Symbol) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settingComposeKey.put(s.raw, sym)
}

// ResetDelay returns the sequence timeout in milliseconds; negative means
// disabled.
func (s *Store) ResetDelay() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return settingResetDelay.get(s.raw)
}

// SetResetDelay stores the sequence timeout in milliseconds.
func (s *Store) SetResetDelay(ms int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settingResetDelay.put(s.raw, ms)
}

// Language returns the configured locale identifier: empty, or a member of
// the discovered set. Anything else resolves to empty.
func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.languageLocked()
}

// SetLanguage stores the locale identifier and applies it to the catalog.
// An identifier outside the discovered set resolves to the default locale.
func (s *Store) SetLanguage(id string) {
	s.mu.Lock()
	s.raw[keyLanguage] = id
	lang := s.languageLocked()
	s.mu.Unlock()

	s.applyLanguage(lang)
}

// CaseInsensitive reports whether printable symbols should match either
// case.
func (s *Store) CaseInsensitive() bool { return s.getBool(settingCaseInsensitive) }

// SetCaseInsensitive stores the case matching flag.
func (s *Store) SetCaseInsensitive(v bool) { s.setBool(settingCaseInsensitive, v) }

// DiscardOnInvalid reports whether an invalid sequence swallows its keys.
func (s *Store) DiscardOnInvalid() bool { return s.getBool(settingDiscardOnInvalid) }

// SetDiscardOnInvalid stores the discard flag.
func (s *Store) SetDiscardOnInvalid(v bool) { s.setBool(settingDiscardOnInvalid, v) }

// BeepOnInvalid reports whether an invalid sequence beeps.
func (s *Store) BeepOnInvalid() bool { return s.getBool(settingBeepOnInvalid) }

// SetBeepOnInvalid stores the beep flag.
func (s *Store) SetBeepOnInvalid(v bool) { s.setBool(settingBeepOnInvalid, v) }

// KeepOriginalKey reports whether the compose key also keeps its native
// function.
func (s *Store) KeepOriginalKey() bool { return s.getBool(settingKeepOriginalKey) }

// SetKeepOriginalKey stores the keep-original flag.
func (s *Store) SetKeepOriginalKey(v bool) { s.setBool(settingKeepOriginalKey, v) }

// InsertZWSP reports whether results get a zero-width space appended.
func (s *Store) InsertZWSP() bool { return s.getBool(settingInsertZWSP) }

// SetInsertZWSP stores the zero-width space flag.
func (s *Store) SetInsertZWSP(v bool) { s.setBool(settingInsertZWSP, v) }

// EmulateCapsLock reports whether caps lock is emulated during sequences.
func (s *Store) EmulateCapsLock() bool { return s.getBool(settingEmulateCapsLock) }

// SetEmulateCapsLock stores the caps lock emulation flag.
func (s *Store) SetEmulateCapsLock(v bool) { s.setBool(settingEmulateCapsLock, v) }

// ShiftDisablesCapsLock reports whether shift releases caps lock.
func (s *Store) ShiftDisablesCapsLock() bool { return s.getBool(settingShiftDisablesCapsLock) }

// SetShiftDisablesCapsLock stores the shift-releases-caps-lock flag.
func (s *Store) SetShiftDisablesCapsLock(v bool) { s.setBool(settingShiftDisablesCapsLock, v) }

func (s *Store) getBool(e setting[bool]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return e.get(s.raw)
}

func (s *Store) setBool(e setting[bool], v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.put(s.raw, v)
}

// languageLocked resolves the language entry under the lock: empty or a
// supported identifier, anything else falls back to empty.
func (s *Store) languageLocked() string {
	text, ok := s.raw[keyLanguage]
	if !ok {
		return ""
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if s.catalog != nil && s.catalog.Supported(text) {
		return text
	}
	return ""
}

// applyLanguage selects the locale; failures keep the previous one.
func (s *Store) applyLanguage(id string) {
	if s.catalog == nil {
		return
	}
	if err := s.catalog.Apply(id); err != nil {
		s.log.Debugw("Keeping previous locale", "language", id, "error", err)
	}
}

// defaultUserConfigDir returns the per-user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keycompose")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "keycompose")
}

// defaultDataDir returns the per-user data directory.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "keycompose")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "keycompose")
}
