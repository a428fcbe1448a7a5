// Package store persists journal entries in sqlite for the surrounding
// application. The analytics core never imports it; entries flow in one
// direction, from here into the pipeline.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"journal_insights/internal/journal"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    date TEXT,
    content TEXT NOT NULL
);
`

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// SaveEntries upserts the given entries in one transaction.
func SaveEntries(dbPath string, entries []journal.Entry) error {
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		date := ""
		if e.Dated() {
			date = journal.DayKey(e.Date)
		}
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO entries(id, date, content) VALUES(?,?,?)`,
			e.ID, date, e.Content,
		); err != nil {
			return fmt.Errorf("insert entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// LoadEntries reads every stored entry, dated rows first in date order.
// Rows whose date no longer parses come back undated rather than failing.
func LoadEntries(dbPath string) ([]journal.Entry, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT id, date, content FROM entries ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []journal.Entry
	for rows.Next() {
		var id, date, content string
		if err := rows.Scan(&id, &date, &content); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e := journal.Entry{ID: id, Content: content}
		if date != "" {
			if t, ok := journal.ParseDate(date); ok {
				e.Date = t
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

// CountEntries returns the total and dated row counts.
func CountEntries(dbPath string) (total, dated int, err error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, 0, err
	}
	defer conn.Close()

	if err := conn.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("count entries: %w", err)
	}
	if err := conn.QueryRow(`SELECT COUNT(*) FROM entries WHERE date != ''`).Scan(&dated); err != nil {
		return 0, 0, fmt.Errorf("count dated entries: %w", err)
	}
	return total, dated, nil
}
