// Package locale provides localized character-name catalogs.
//
// Catalogs are YAML files embedded at build time, one per language tag.
// Probing the embedded set at construction yields the supported-language
// whitelist the configuration store validates against; the active catalog
// answers codepoint-to-name lookups used to describe sequence results.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// DefaultTag is the language used when none is selected or a selection
// cannot be applied.
const DefaultTag = "en"

// catalogFile is the decoded shape of one embedded catalog.
type catalogFile struct {
	Language   string            `yaml:"language"`
	Characters map[string]string `yaml:"characters"`
}

// Catalog holds the discovered language set and resolves codepoint names
// for the active language, falling back to the default language.
type Catalog struct {
	mu     sync.RWMutex
	active language.Tag

	def     language.Tag
	tags    []language.Tag
	matcher language.Matcher
	names   map[language.Tag]map[rune]string
	log     *zap.SugaredLogger
}

// Load probes the embedded catalogs and returns the discovered set. A
// malformed catalog file is skipped with a warning; at least one catalog
// must survive.
func Load(logger *zap.SugaredLogger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	entries, err := fs.ReadDir(catalogFS, "catalogs")
	if err != nil {
		return nil, fmt.Errorf("probing embedded catalogs: %w", err)
	}

	c := &Catalog{
		names: make(map[language.Tag]map[rune]string),
		log:   logger,
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := catalogFS.ReadFile(path.Join("catalogs", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading embedded catalog %s: %w", entry.Name(), err)
		}

		var cf catalogFile
		if err := yaml.Unmarshal(data, &cf); err != nil {
			logger.Warnw("Skipping malformed locale catalog", "file", entry.Name(), "error", err)
			continue
		}
		tag, err := language.Parse(cf.Language)
		if err != nil {
			logger.Warnw("Skipping locale catalog with bad language tag",
				"file", entry.Name(), "language", cf.Language, "error", err)
			continue
		}

		table := make(map[rune]string, len(cf.Characters))
		for hexa, name := range cf.Characters {
			cp, err := strconv.ParseUint(hexa, 16, 32)
			if err != nil {
				logger.Debugw("Skipping bad codepoint key",
					"file", entry.Name(), "key", hexa)
				continue
			}
			table[rune(cp)] = name
		}

		c.names[tag] = table
		c.tags = append(c.tags, tag)
	}

	if len(c.tags) == 0 {
		return nil, errors.New("locale: no usable embedded catalogs")
	}

	sort.Slice(c.tags, func(i, j int) bool {
		return c.tags[i].String() < c.tags[j].String()
	})
	c.matcher = language.NewMatcher(c.tags)

	c.def = c.tags[0]
	if def, err := language.Parse(DefaultTag); err == nil {
		if _, ok := c.names[def]; ok {
			c.def = def
		}
	}
	c.active = c.def

	logger.Debugw("Locale catalogs loaded", "languages", len(c.tags), "default", c.def.String())
	return c, nil
}

// Available returns the discovered language tags, sorted.
func (c *Catalog) Available() []string {
	out := make([]string, len(c.tags))
	for i, tag := range c.tags {
		out[i] = tag.String()
	}
	return out
}

// Supported reports whether id names a discovered language exactly. The
// empty identifier is not itself supported; callers treat it as "use the
// default" before consulting this.
func (c *Catalog) Supported(id string) bool {
	tag, err := language.Parse(id)
	if err != nil {
		return false
	}
	_, ok := c.names[tag]
	return ok
}

// Apply selects the active language. An empty id resets to the default.
// Regional variants resolve to their base catalog when the match is
// confident (fr-CA selects fr); anything weaker is an error and leaves the
// active language unchanged.
func (c *Catalog) Apply(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == "" {
		c.active = c.def
		return nil
	}

	tag, err := language.Parse(id)
	if err != nil {
		return fmt.Errorf("locale: parsing language %q: %w", id, err)
	}

	_, idx, conf := c.matcher.Match(tag)
	if conf < language.High {
		return fmt.Errorf("locale: language %q not supported", id)
	}

	c.active = c.tags[idx]
	return nil
}

// Active returns the active language tag string.
func (c *Catalog) Active() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active.String()
}

// Describe returns the localized character name for cp. The active catalog
// is consulted first, then the default language. ok is false when neither
// has an entry.
func (c *Catalog) Describe(cp rune) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if table, ok := c.names[c.active]; ok {
		if name, ok := table[cp]; ok {
			return name, true
		}
	}
	if c.active != c.def {
		if table, ok := c.names[c.def]; ok {
			if name, ok := table[cp]; ok {
				return name, true
			}
		}
	}
	return "", false
}
