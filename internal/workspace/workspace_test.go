package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"journal_insights/internal/lexicon"
)

func TestEnsureAtCreatesLayout(t *testing.T) {
	base := filepath.Join(t.TempDir(), "JournalInsights")
	got, err := EnsureAt(base)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if got != base {
		t.Fatalf("returned base %q, want %q", got, base)
	}

	for _, dir := range []string{"configs", "reports"} {
		if info, statErr := os.Stat(filepath.Join(base, dir)); statErr != nil || !info.IsDir() {
			t.Fatalf("missing workspace dir %s", dir)
		}
	}

	settings, err := LoadSettings(base)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.DefaultGranularity != "monthly" || settings.LexiconFile != "lexicon.toml" {
		t.Fatalf("default settings = %+v", settings)
	}
}

func TestEnsureAtKeepsExistingSettings(t *testing.T) {
	base := filepath.Join(t.TempDir(), "JournalInsights")
	if _, err := EnsureAt(base); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	custom := []byte(`{"default_granularity":"daily","lexicon_file":"words.toml"}`)
	path := filepath.Join(base, "configs", "settings.json")
	if err := os.WriteFile(path, custom, 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if _, err := EnsureAt(base); err != nil {
		t.Fatalf("re-ensure: %v", err)
	}

	settings, err := LoadSettings(base)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.DefaultGranularity != "daily" || settings.LexiconFile != "words.toml" {
		t.Fatalf("settings overwritten: %+v", settings)
	}
}

func TestLoadLexiconWithoutOverride(t *testing.T) {
	base := filepath.Join(t.TempDir(), "JournalInsights")
	if _, err := EnsureAt(base); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	tab, err := LoadLexicon(base, "")
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	if len(tab.Terms(lexicon.LightNegative)) == 0 {
		t.Fatal("missing override file should fall back to the embedded table")
	}
}

func TestLoadLexiconMergesOverride(t *testing.T) {
	base := filepath.Join(t.TempDir(), "JournalInsights")
	if _, err := EnsureAt(base); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	override := "light_negative = [\"meh\", \"blah\"]\n"
	path := filepath.Join(base, "configs", "lexicon.toml")
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	tab, err := LoadLexicon(base, "lexicon.toml")
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	light := tab.Terms(lexicon.LightNegative)
	if len(light) != 2 || light[0] != "meh" {
		t.Fatalf("light_negative = %v, want the override list", light)
	}
	if len(tab.Terms(lexicon.DeepNegative)) == 0 {
		t.Fatal("unlisted categories must keep their defaults")
	}
	if len(lexicon.Default().Terms(lexicon.LightNegative)) == 2 {
		t.Fatal("merge must not mutate the embedded table")
	}
}

func TestArchiveReport(t *testing.T) {
	base := filepath.Join(t.TempDir(), "JournalInsights")
	if _, err := EnsureAt(base); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	saved, err := ArchiveReport(base, "2024-08-01", map[string]int{"entryCount": 3})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if len(saved.ID) != 12 {
		t.Fatalf("id = %q, want a 12-char slug", saved.ID)
	}
	raw, err := os.ReadFile(saved.Path)
	if err != nil {
		t.Fatalf("read archived report: %v", err)
	}
	if !strings.Contains(string(raw), "entryCount") {
		t.Fatalf("archived report body = %s", raw)
	}

	again, err := ArchiveReport(base, "2024-08-01", map[string]int{"entryCount": 4})
	if err != nil {
		t.Fatalf("re-archive: %v", err)
	}
	if again.Path != saved.Path {
		t.Fatal("same label must map to the same archive path")
	}
}
