package main

import (
	"flag"
	"fmt"
	"log"

	"journal_insights/internal/store"
	"journal_insights/internal/workspace"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Parse(flagArgs())

	base, err := workspace.EnsureDefault()
	if err != nil {
		log.Fatalf("workspace initialization failed: %v", err)
	}

	total, dated, err := store.CountEntries(workspace.DatabasePath(base))
	if err != nil {
		log.Fatalf("count entries: %v", err)
	}

	fmt.Printf("workspace:     %s\n", base)
	fmt.Printf("entries:       %d\n", total)
	fmt.Printf("dated entries: %d\n", dated)
	fmt.Printf("undated:       %d (excluded from date-keyed views)\n", total-dated)
}
