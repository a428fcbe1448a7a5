package main

import (
	"flag"
	"log"

	"journal_insights/internal/ingest"
	"journal_insights/internal/store"
	"journal_insights/internal/workspace"
)

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	fs.Parse(flagArgs())

	if fs.NArg() < 1 {
		log.Fatal("usage: jid import <file>")
	}

	base, err := workspace.EnsureDefault()
	if err != nil {
		log.Fatalf("workspace initialization failed: %v", err)
	}

	parsed, err := ingest.ParseFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	if err := store.SaveEntries(workspace.DatabasePath(base), parsed.Entries); err != nil {
		log.Fatalf("save entries: %v", err)
	}

	dated := 0
	for _, e := range parsed.Entries {
		if e.Dated() {
			dated++
		}
	}
	log.Printf("imported %q: %d entries (%d dated)", parsed.Title, len(parsed.Entries), dated)
}
