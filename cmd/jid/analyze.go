package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"journal_insights/internal/elevation"
	"journal_insights/internal/insight"
	"journal_insights/internal/journal"
	"journal_insights/internal/lexicon"
	"journal_insights/internal/store"
	"journal_insights/internal/workspace"
)

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	out := fs.String("out", "", "write the JSON report to a file instead of stdout")
	gran := fs.String("elevation", "", "elevation granularity: daily, monthly, or yearly (default from settings)")
	workers := fs.Int("workers", 0, "counting workers (0 = one per CPU)")
	archive := fs.Bool("archive", false, "also save the report under the workspace reports directory")
	fs.Parse(flagArgs())

	base, err := workspace.EnsureDefault()
	if err != nil {
		log.Fatalf("workspace initialization failed: %v", err)
	}

	settings, err := workspace.LoadSettings(base)
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}
	tab, err := workspace.LoadLexicon(base, settings.LexiconFile)
	if err != nil {
		log.Fatalf("load lexicon: %v", err)
	}

	entries, err := store.LoadEntries(workspace.DatabasePath(base))
	if err != nil {
		log.Fatalf("load entries: %v", err)
	}
	if len(entries) == 0 {
		log.Fatal("no entries in the workspace database; run 'jid import' first")
	}

	granularity := *gran
	if granularity == "" {
		granularity = settings.DefaultGranularity
	}
	report := buildReport(entries, tab, *workers, granularity)
	emitReport(report, *out)

	if *archive {
		label := time.Now().Format("2006-01-02")
		saved, err := workspace.ArchiveReport(base, label, report)
		if err != nil {
			log.Fatalf("archive report: %v", err)
		}
		log.Printf("report archived at %s", saved.Path)
	}
}

func buildReport(entries []journal.Entry, tab lexicon.Table, workers int, granularity string) insight.Report {
	report := insight.Build(entries, insight.Options{Table: tab, Workers: workers})
	switch granularity {
	case "daily":
		report.Elevation = elevation.BuildDaily(report.Daily)
		report.Resilience = elevation.Scan(report.Elevation)
	case "yearly":
		report.Elevation = elevation.BuildYearly(report.Monthly)
		report.Resilience = elevation.Scan(report.Elevation)
	}
	return report
}

func emitReport(report insight.Report, outPath string) {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}
	if outPath == "" {
		fmt.Println(string(raw))
		return
	}
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		log.Fatalf("write report: %v", err)
	}
	log.Printf("report written to %s", outPath)
}
