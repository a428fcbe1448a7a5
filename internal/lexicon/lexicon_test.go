package lexicon

import (
	"strings"
	"testing"
)

func TestRateEmptyTextIsZero(t *testing.T) {
	tab := Default()
	for cat := range tab {
		if got := tab.Rate("", cat); got != 0 {
			t.Fatalf("rate of empty text for %s = %f, want 0", cat, got)
		}
	}
}

func TestRateIsNonNegative(t *testing.T) {
	tab := Default()
	text := "tired and hopeless, but the coffee was good."
	for cat := range tab {
		if got := tab.Rate(text, cat); got < 0 {
			t.Fatalf("rate for %s = %f, want >= 0", cat, got)
		}
	}
}

func TestDensityEquivalence(t *testing.T) {
	tab := Default()
	short := strings.Repeat("tired", 2) + strings.Repeat("x", 90)  // 2 hits / 100 chars
	long := strings.Repeat("tired", 4) + strings.Repeat("x", 180)  // 4 hits / 200 chars
	a := tab.Rate(short, LightNegative)
	b := tab.Rate(long, LightNegative)
	if a != b {
		t.Fatalf("equal densities normalized differently: %f vs %f", a, b)
	}
	if a != 20 {
		t.Fatalf("rate = %f, want 20 per 1000 chars", a)
	}
}

func TestOverlappingTermsBothCount(t *testing.T) {
	tab := Table{LightNegative: []string{"down", "let down"}}
	if got := tab.Count("she let down her guard", LightNegative); got != 2 {
		t.Fatalf("overlapping terms counted %d times, want 2", got)
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio(0, 0); got != 0 {
		t.Fatalf("Ratio(0,0) = %f, want 0", got)
	}
	if got := Ratio(3, 1); got != 0.75 {
		t.Fatalf("Ratio(3,1) = %f, want 0.75", got)
	}
}

func TestMergeReplacesOnlyListedCategories(t *testing.T) {
	base := Default()
	merged := base.Merge(Table{LightNegative: []string{"meh"}})

	if got := merged.Count("meh tired", LightNegative); got != 1 {
		t.Fatalf("merged light negative count = %d, want 1 (only the override term)", got)
	}
	if got := merged.Count("hopeless", DeepNegative); got != 1 {
		t.Fatalf("merged deep negative lost its defaults")
	}
	if got := base.Count("tired", LightNegative); got != 1 {
		t.Fatalf("merge mutated the default table")
	}
}
