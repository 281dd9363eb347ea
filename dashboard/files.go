package dashboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/algojj/ci-dashboard/models"
)

// NewSnapshot assembles the machine-readable mirror of a rendered report.
func NewSnapshot(records []models.StatusRecord, counts map[string]int, timestamp string) models.Snapshot {
	return models.Snapshot{
		Timestamp: timestamp,
		Total:     len(records),
		Counts:    counts,
		Repos:     records,
	}
}

// WriteFiles writes index.html and status.json into dir, creating it if
// needed.
func WriteFiles(dir, htmlDoc string, snap models.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	htmlPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(htmlDoc), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", htmlPath, err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	jsonPath := filepath.Join(dir, "status.json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", jsonPath, err)
	}

	return nil
}
