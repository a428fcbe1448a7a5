// Package workspace manages the per-user application directory: the entry
// database, settings, and an optional lexicon override table.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const BaseDirName = "JournalInsights"

type Settings struct {
	DefaultGranularity string `json:"default_granularity"`
	LexiconFile        string `json:"lexicon_file"`
}

func EnsureDefault() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return EnsureAt(filepath.Join(home, BaseDirName))
}

func EnsureAt(base string) (string, error) {
	paths := []string{
		filepath.Join(base, "configs"),
		filepath.Join(base, "reports"),
	}

	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	settingsPath := filepath.Join(base, "configs", "settings.json")
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		defaults := Settings{
			DefaultGranularity: "monthly",
			LexiconFile:        "lexicon.toml",
		}
		raw, marshalErr := json.MarshalIndent(defaults, "", "  ")
		if marshalErr != nil {
			return "", fmt.Errorf("marshal settings: %w", marshalErr)
		}
		if writeErr := os.WriteFile(settingsPath, raw, 0o644); writeErr != nil {
			return "", fmt.Errorf("write settings: %w", writeErr)
		}
	}

	return base, nil
}

// DatabasePath is the sqlite file the store layer uses.
func DatabasePath(base string) string {
	return filepath.Join(base, "journal.db")
}

// LoadSettings reads configs/settings.json, falling back to defaults when
// the file is missing.
func LoadSettings(base string) (Settings, error) {
	raw, err := os.ReadFile(filepath.Join(base, "configs", "settings.json"))
	if os.IsNotExist(err) {
		return Settings{DefaultGranularity: "monthly", LexiconFile: "lexicon.toml"}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}
