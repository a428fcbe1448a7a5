package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ArchivedReport locates one saved analysis run under the workspace.
type ArchivedReport struct {
	ID   string
	Root string
	Path string
}

// ArchiveReport saves a report under reports/<id>/report.json, where the id
// is derived from the label. Re-archiving with the same label overwrites the
// previous run.
func ArchiveReport(base, label string, report any) (*ArchivedReport, error) {
	id := labelHash(label)
	root := filepath.Join(base, "reports", id)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(root, "report.json")
	if err := SaveReport(path, report); err != nil {
		return nil, err
	}
	return &ArchivedReport{ID: id, Root: root, Path: path}, nil
}

func SaveReport(path string, report any) error {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func labelHash(label string) string {
	trimmed := strings.TrimSpace(strings.ToLower(label))
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:12]
}
