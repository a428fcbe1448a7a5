package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"journal_insights/internal/lexicon"
)

// LoadLexicon returns the embedded lexicon merged with the workspace
// override file, when one exists. The override lists whole categories:
//
//	light_negative = ["tired", "annoyed"]
//
// A listed category replaces the embedded one; unlisted categories keep
// their defaults. Used for localization and for trimming the vocabulary.
func LoadLexicon(base, file string) (lexicon.Table, error) {
	if file == "" {
		file = "lexicon.toml"
	}
	path := filepath.Join(base, "configs", file)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return lexicon.Default(), nil
	}

	var override map[string][]string
	if _, err := toml.DecodeFile(path, &override); err != nil {
		return nil, fmt.Errorf("parse lexicon override %s: %w", path, err)
	}

	tab := lexicon.Table{}
	for cat, terms := range override {
		tab[lexicon.Category(cat)] = terms
	}
	return lexicon.Default().Merge(tab), nil
}
