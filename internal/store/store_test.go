package store

import (
	"path/filepath"
	"testing"

	"journal_insights/internal/journal"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	d1, _ := journal.ParseDate("2024-03-01")
	d2, _ := journal.ParseDate("2024-01-15")
	entries := []journal.Entry{
		{ID: "b", Date: d1, Content: "march entry"},
		{ID: "a", Date: d2, Content: "january entry"},
		{ID: "c", Content: "an undated scrap"},
	}

	if err := SaveEntries(dbPath, entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadEntries(dbPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("loaded %d entries, want 3", len(loaded))
	}

	// undated row sorts first on its empty date, then date order
	if loaded[0].ID != "c" || loaded[0].Dated() {
		t.Fatalf("first row = %+v, want the undated entry", loaded[0])
	}
	if loaded[1].ID != "a" || journal.DayKey(loaded[1].Date) != "2024-01-15" {
		t.Fatalf("second row = %+v", loaded[1])
	}
	if loaded[2].ID != "b" || loaded[2].Content != "march entry" {
		t.Fatalf("third row = %+v", loaded[2])
	}
}

func TestSaveEntriesUpserts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	d, _ := journal.ParseDate("2024-05-20")

	if err := SaveEntries(dbPath, []journal.Entry{{ID: "x", Date: d, Content: "first draft"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := SaveEntries(dbPath, []journal.Entry{{ID: "x", Date: d, Content: "revised"}}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	loaded, err := LoadEntries(dbPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Content != "revised" {
		t.Fatalf("loaded = %+v, want the revised row only", loaded)
	}
}

func TestCountEntries(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	d, _ := journal.ParseDate("2024-02-02")

	err := SaveEntries(dbPath, []journal.Entry{
		{ID: "1", Date: d, Content: "dated"},
		{ID: "2", Content: "undated"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	total, dated, err := CountEntries(dbPath)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 2 || dated != 1 {
		t.Fatalf("counts = %d total / %d dated, want 2/1", total, dated)
	}
}
