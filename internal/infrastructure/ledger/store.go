package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"swing-screener-backend/internal/domain"
)

// MaxEntries bounds the ledger; oldest entries are evicted first.
const MaxEntries = 50

// ledgerFile is the on-disk shape: a single "history" key.
type ledgerFile struct {
	History []domain.LedgerEntry `json:"history"`
}

// FileStore persists the trade ledger as a JSON file. A mutex guards
// the read-modify-write so overlapping cycles cannot interleave.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the stored history. A missing file is an empty ledger;
// an unreadable or corrupt file is reported so the caller can apply
// its recovery policy (treat as empty, bias zero).
func (s *FileStore) Load() ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.LedgerEntry{}, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var f ledgerFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}
	if f.History == nil {
		f.History = []domain.LedgerEntry{}
	}
	return f.History, nil
}

// Save writes the history back, keeping only the most recent
// MaxEntries entries.
func (s *FileStore) Save(entries []domain.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	b, err := json.MarshalIndent(ledgerFile{History: entries}, "", "    ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
