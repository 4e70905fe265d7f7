// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state persists the most recent lint result so it can be shown again later.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bartekus/commitlint/internal/report"
)

// Entry is the result for one linted message.
type Entry struct {
	Source string        `json:"source,omitempty"` // file the message came from; empty for stdin
	Input  string        `json:"input"`
	Report report.Report `json:"report"`
}

// Record is one persisted lint run. It matches <dir>/last-lint.json.
type Record struct {
	HelpURL string  `json:"help_url,omitempty"`
	Entries []Entry `json:"entries"`
}

// Status returns the worst status across the record's entries.
func (r Record) Status() report.Status {
	status := report.StatusPass
	for _, e := range r.Entries {
		switch e.Report.Status {
		case report.StatusFail:
			return report.StatusFail
		case report.StatusWarn:
			status = report.StatusWarn
		}
	}
	return status
}

// Store reads and writes lint state under a base directory (e.g. .git/commitlint).
type Store struct {
	baseDir string
}

// NewStore creates a store at the given base directory.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) lastPath() string {
	return filepath.Join(s.baseDir, "last-lint.json")
}

// ReadLast loads the last record. It returns nil and no error when nothing was stored.
func (s *Store) ReadLast() (*Record, error) {
	f, err := os.Open(s.lastPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening last lint record: %w", err)
	}
	defer func() { _ = f.Close() }()

	var rec Record
	if err := json.NewDecoder(f).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding last lint record: %w", err)
	}
	return &rec, nil
}

// WriteLast replaces the last record.
func (s *Store) WriteLast(rec Record) error {
	if rec.Entries == nil {
		rec.Entries = []Entry{}
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding last lint record: %w", err)
	}
	return atomicWrite(s.lastPath(), append(data, '\n'))
}

// Reset deletes the last record. The directory itself is left in place.
func (s *Store) Reset() error {
	if err := os.Remove(s.lastPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing last lint record: %w", err)
	}
	return nil
}

// atomicWrite writes content to a temp file next to path and renames it into place.
func atomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".last-lint-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving temp file to %s: %w", path, err)
	}
	return nil
}
