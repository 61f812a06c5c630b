package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"swing-screener-backend/internal/domain"
)

// FileWriter publishes the cycle snapshot as pretty-printed JSON.
// Downstream consumers (the web frontend) poll this file, so a failed
// write is the one error the pipeline treats as fatal.
type FileWriter struct {
	path string
}

func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

func (w *FileWriter) Write(snap domain.Snapshot) error {
	if snap.Signals == nil {
		snap.Signals = []domain.Candidate{}
	}

	b, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(w.path, b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
