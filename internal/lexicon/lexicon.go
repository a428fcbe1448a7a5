// Package lexicon holds the curated term categories and the substring
// counters every aggregation is built on. The tables are static data shipped
// with the binary; callers that need a localized or trimmed vocabulary can
// swap in their own Table.
package lexicon

import (
	_ "embed"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// Category names a closed set of term lists.
type Category string

const (
	LightNegative      Category = "light_negative"
	DeepNegative       Category = "deep_negative"
	Positive           Category = "positive"
	FirstPerson        Category = "first_person"
	OtherPerson        Category = "other_person"
	SelfMonitoring     Category = "self_monitoring"
	PhysicalSymptom    Category = "physical_symptom"
	TaskWork           Category = "task_work"
	Existential        Category = "existential"
	SleepDisruption    Category = "sleep_disruption"
	SensorySymptom     Category = "sensory_symptom"
	Interpersonal      Category = "interpersonal"
	PrecursorCandidate Category = "precursor_candidate"
)

// Table maps each category to its match terms.
type Table map[Category][]string

//go:embed categories.json
var categoriesJSON []byte

var defaultTable = mustLoad()

func mustLoad() Table {
	var t Table
	if err := json.Unmarshal(categoriesJSON, &t); err != nil {
		panic("lexicon: embedded categories are invalid: " + err.Error())
	}
	return t
}

// Default returns the embedded table. Callers must not mutate it; use Merge
// to derive a modified copy.
func Default() Table { return defaultTable }

// Merge returns a copy of t with the categories present in override replaced.
func (t Table) Merge(override Table) Table {
	out := make(Table, len(t))
	for cat, terms := range t {
		out[cat] = terms
	}
	for cat, terms := range override {
		out[cat] = terms
	}
	return out
}

// Terms returns the match terms for a category.
func (t Table) Terms(cat Category) []string { return t[cat] }

// Count sums substring occurrences of every term in the category. A span
// matched by two different terms is counted once per term.
func (t Table) Count(text string, cat Category) int {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)
	total := 0
	for _, term := range t[cat] {
		total += strings.Count(lower, term)
	}
	return total
}

// Rate normalizes a category count to occurrences per 1,000 characters.
// Empty text rates as 0.
func (t Table) Rate(text string, cat Category) float64 {
	return RateFor(t.Count(text, cat), utf8.RuneCountInString(text))
}

// RateFor converts a raw count over charCount characters into a
// per-1,000-character rate.
func RateFor(count, charCount int) float64 {
	if charCount == 0 {
		return 0
	}
	return float64(count) / float64(max(1, charCount)) * 1000
}

// Ratio returns a/(a+b), or 0 when both counts are 0.
func Ratio(a, b int) float64 {
	if a+b == 0 {
		return 0
	}
	return float64(a) / float64(a+b)
}
