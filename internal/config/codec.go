package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// sectionGlobal is the single section the settings file uses.
const sectionGlobal = "global"

// readSection reads the [global] table from path. A missing or malformed
// file yields nil, never an error: the typed settings fall back to their
// defaults. Scalars of any TOML type are stringified so the settings can
// coerce them.
func readSection(path string, log *zap.SugaredLogger) map[string]string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnw("Unreadable settings file", "path", path, "error", err)
		}
		return nil
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		log.Warnw("Malformed settings file", "path", path, "error", err)
		return nil
	}

	global, ok := doc[sectionGlobal].(map[string]any)
	if !ok {
		return nil
	}

	section := make(map[string]string, len(global))
	for k, v := range global {
		section[k] = stringify(v)
	}
	return section
}

// stringify renders a TOML scalar the way the typed parsers expect it.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// writeSection writes the [global] table to path, creating the directory
// if needed. Keys come out sorted, so saves are deterministic.
func writeSection(path string, section map[string]string) error {
	data, err := toml.Marshal(map[string]map[string]string{sectionGlobal: section})
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
