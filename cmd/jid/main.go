// Command jid is the journal insights CLI.
//
// Usage:
//
//	jid                  Show help
//	jid import <file>    Import a journal export into the workspace database
//	jid analyze          Run the full analytics pipeline, JSON to stdout
//	jid stats            Entry counts in the workspace database
//	jid demo             Analyze the embedded sample journal
package main

import (
	"fmt"
	"os"
)

const usage = `jid - journal insights CLI

Usage:
  jid <command> [flags]

Commands:
  import <file>   Import a .txt/.md/.docx/.pdf journal export
  analyze         Full analytics report as JSON (flags: -out, -elevation, -workers, -archive)
  stats           Entry counts in the workspace database
  demo            Analyze the embedded sample journal

The workspace lives under ~/JournalInsights; put a configs/lexicon.toml
there to override the built-in term categories.

Run 'jid <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "import":
		runImport()
	case "analyze":
		runAnalyze()
	case "stats":
		runStats()
	case "demo":
		runDemo()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", cmd, usage)
		os.Exit(1)
	}
}
