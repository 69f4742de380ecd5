// internal/store/file.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/user/prflow/internal/types"
)

// ErrCorrupt reports that the persisted event file exists but cannot be
// parsed as an event sequence. Callers must surface it; the store never
// silently resets a corrupt file.
var ErrCorrupt = errors.New("event store corrupt")

// DefaultCapacity is the retention cap applied when none is configured.
const DefaultCapacity = 100

// FileStore is a JSON-file-backed, capacity-bounded event log. The file
// holds one JSON array of events, oldest first, and is replaced
// wholesale on every append via temp file + rename so that a reader in
// another process sees either the old sequence or the new one, never a
// mix. Appends are serialized under a write lock; the whole-file
// read-modify-write therefore cannot drop a concurrent append.
type FileStore struct {
	path     string
	capacity int
	mu       sync.RWMutex
}

// NewFileStore creates a file-backed store at path, keeping at most
// capacity events. capacity <= 0 selects DefaultCapacity.
func NewFileStore(path string, capacity int) *FileStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &FileStore{path: path, capacity: capacity}
}

// Path returns the file path used by this store.
func (s *FileStore) Path() string {
	return s.path
}

// Append adds event as the newest entry, evicting the oldest entries
// beyond the capacity, and persists the resulting sequence atomically.
func (s *FileStore) Append(_ context.Context, event *types.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.load()
	if err != nil {
		return err
	}

	events = append(events, event)
	if len(events) > s.capacity {
		events = events[len(events)-s.capacity:]
	}
	return s.save(events)
}

// ReadAll returns the full sequence in chronological order. A store
// that has never been written reads as empty, not as an error.
func (s *FileStore) ReadAll(_ context.Context) ([]*types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events, err := s.load()
	if err != nil {
		return nil, err
	}
	if events == nil {
		return []*types.Event{}, nil
	}
	return events, nil
}

// load reads the JSON file and returns the event list. Returns nil if
// the file doesn't exist.
func (s *FileStore) load() ([]*types.Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read events file: %w", err)
	}

	var events []*types.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return events, nil
}

// save writes the event list to disk using atomic write (temp file +
// rename). Caller must hold the write lock.
func (s *FileStore) save(events []*types.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create events dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp events file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp events file: %w", err)
	}
	return nil
}
