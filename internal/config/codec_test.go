package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestReadSection(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("missing file", func(t *testing.T) {
		got := readSection(filepath.Join(t.TempDir(), "absent.toml"), log)
		if got != nil {
			t.Errorf("readSection() = %v, want nil", got)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		if err := os.WriteFile(path, []byte("[global\nnot toml ==="), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		if got := readSection(path, log); got != nil {
			t.Errorf("readSection() = %v, want nil", got)
		}
	})

	t.Run("no global section", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		if err := os.WriteFile(path, []byte("[other]\nx = 1\n"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		if got := readSection(path, log); got != nil {
			t.Errorf("readSection() = %v, want nil", got)
		}
	})

	t.Run("stringifies scalars", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		content := strings.Join([]string{
			"[global]",
			`compose_key = "VK.Menu"`,
			"reset_delay = 500",
			"case_insensitive = true",
			"wibble = 3",
		}, "\n")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		got := readSection(path, log)
		want := map[string]string{
			"compose_key":      "VK.Menu",
			"reset_delay":      "500",
			"case_insensitive": "true",
			"wibble":           "3",
		}
		if len(got) != len(want) {
			t.Fatalf("readSection() = %v, want %v", got, want)
		}
		for k, v := range want {
			if got[k] != v {
				t.Errorf("readSection()[%q] = %q, want %q", k, got[k], v)
			}
		}
	})
}

func TestWriteSectionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.toml")
	section := map[string]string{
		"compose_key": "VK.RightAlt",
		"reset_delay": "-1",
		"language":    "fr",
	}

	if err := writeSection(path, section); err != nil {
		t.Fatalf("writeSection() error = %v", err)
	}

	got := readSection(path, zap.NewNop().Sugar())
	if len(got) != len(section) {
		t.Fatalf("round trip = %v, want %v", got, section)
	}
	for k, v := range section {
		if got[k] != v {
			t.Errorf("round trip [%q] = %q, want %q", k, got[k], v)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if !strings.Contains(string(data), "[global]") {
		t.Errorf("file missing [global] header:\n%s", data)
	}
}
