package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"autoshorts/types"
)

const recordFile = "metadata.json"

// Store persists the metadata record and anchors all stage artifacts
// under one output directory. Saves are temp-write-then-rename behind a
// file lock, so a concurrent reader never sees a half-written record.
type Store struct {
	dir  string
	path string
	lock *flock.Flock
}

// New ensures the output directory exists and returns a store rooted
// there. Creating an existing directory is a no-op.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &Store{
		dir:  dir,
		path: filepath.Join(dir, recordFile),
		lock: flock.New(filepath.Join(dir, ".metadata.lock")),
	}, nil
}

// Dir returns the output directory artifacts are written into.
func (s *Store) Dir() string {
	return s.dir
}

// ArtifactPath returns the canonical path for a named artifact.
func (s *Store) ArtifactPath(name string) string {
	return filepath.Join(s.dir, name)
}

// Load reads the persisted record. A missing record is the normal
// first-run state and yields an empty record, not an error.
func (s *Store) Load() (*types.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &types.Record{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var rec types.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return &rec, nil
}

// Save serializes the full record and atomically replaces the previous
// one.
func (s *Store) Save(rec *types.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock record: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	tmp := s.path + "." + uuid.NewString()[:8] + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace record: %w", err)
	}
	return nil
}
