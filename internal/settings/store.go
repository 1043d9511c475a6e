// Package settings persists the user-facing configuration: the listening
// flag, the target path set, and the debug flag. The file is YAML, written
// atomically, and re-sanitized on every load and every save.
package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/walexbarnes/nosey-web-sdk/internal/model"
	"github.com/walexbarnes/nosey-web-sdk/internal/paths"
)

// fileData is the on-disk YAML structure.
type fileData struct {
	IsListening bool     `yaml:"isListening"`
	TargetPaths []string `yaml:"targetPaths"`
	DebugMode   bool     `yaml:"debugMode"`
}

// Store owns the persisted configuration. Target paths never reach the
// extraction logic without passing through paths.Sanitize: the sanitizer is
// applied when loading from disk and again before every save, since the
// denylist may evolve between versions.
type Store struct {
	mu   sync.RWMutex
	path string // empty for an ephemeral store
	d    fileData
}

// Open loads the store from the given file, creating defaults when the file
// does not exist. Settings are durable across sessions; nothing is cleared
// on load.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		d: fileData{
			IsListening: true,
			TargetPaths: paths.Sanitize(nil),
		},
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(raw, &s.d); err != nil {
		return nil, err
	}
	s.d.TargetPaths = paths.Sanitize(s.d.TargetPaths)

	return s, nil
}

// Ephemeral returns an in-memory store seeded with the given target paths.
// Saves are no-ops; used by replay and tests.
func Ephemeral(targetPaths []string) *Store {
	return &Store{
		d: fileData{
			IsListening: true,
			TargetPaths: paths.Sanitize(targetPaths),
		},
	}
}

// IsListening reports whether capture is enabled.
func (s *Store) IsListening() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.d.IsListening
}

// SetListening sets the listening flag and persists it.
func (s *Store) SetListening(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.IsListening = v
	return s.saveLocked()
}

// DebugMode reports whether debug logging is enabled.
func (s *Store) DebugMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.d.DebugMode
}

// SetDebugMode sets the debug flag and persists it.
func (s *Store) SetDebugMode(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.DebugMode = v
	return s.saveLocked()
}

// TargetPaths returns a copy of the current sanitized path set.
func (s *Store) TargetPaths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.d.TargetPaths))
	copy(out, s.d.TargetPaths)
	return out
}

// SetTargetPaths sanitizes and persists a new path set, returning the
// sanitized result.
func (s *Store) SetTargetPaths(raw []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.d.TargetPaths = paths.Sanitize(raw)
	if err := s.saveLocked(); err != nil {
		return nil, err
	}

	out := make([]string, len(s.d.TargetPaths))
	copy(out, s.d.TargetPaths)
	return out, nil
}

// Snapshot returns the configuration for a status response. The request
// counter is supplied by the caller.
func (s *Store) Snapshot(requestCounter int64) model.StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tp := make([]string, len(s.d.TargetPaths))
	copy(tp, s.d.TargetPaths)

	return model.StatusSnapshot{
		IsListening:    s.d.IsListening,
		TargetPaths:    tp,
		DebugMode:      s.d.DebugMode,
		RequestCounter: requestCounter,
	}
}

// saveLocked writes the settings file atomically: temp file, then rename.
// Caller holds s.mu. The path set is re-sanitized on the way out.
func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}

	s.d.TargetPaths = paths.Sanitize(s.d.TargetPaths)

	raw, err := yaml.Marshal(s.d)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// reload re-reads the settings file, used when an external process (the
// popup) writes it. Read errors leave the current state untouched.
func (s *Store) reload() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var d fileData
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return
	}
	d.TargetPaths = paths.Sanitize(d.TargetPaths)

	s.mu.Lock()
	s.d = d
	s.mu.Unlock()
}
