package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrMalformedCatalog marks a backing file whose contents do not parse as a
// JSON course list. It propagates to the caller uncaught; there is no repair
// or retry path.
var ErrMalformedCatalog = errors.New("malformed catalog file")

// FileStore keeps the whole catalog in a single JSON file. Nothing is cached:
// every read parses the full file, every append rewrites it. A missing file
// is an empty catalog, not an error.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) LoadAll(ctx context.Context) ([]Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readAll()
}

// Append loads the full catalog, adds c at the end, and rewrites the file
// with indented JSON. The write lock serializes the read-modify-write so
// overlapping appends take turns instead of losing updates.
func (s *FileStore) Append(ctx context.Context, c Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.readAll()
	if err != nil {
		return err
	}
	courses = append(courses, c)

	raw, err := json.MarshalIndent(courses, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

func (s *FileStore) FindByCode(ctx context.Context, code string) (Course, bool, error) {
	courses, err := s.LoadAll(ctx)
	if err != nil {
		return Course{}, false, err
	}
	for _, c := range courses {
		if c.Code == code {
			return c, true, nil
		}
	}
	return Course{}, false, nil
}

// readAll expects the caller to hold at least a read lock.
func (s *FileStore) readAll() ([]Course, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []Course{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var courses []Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	return courses, nil
}
