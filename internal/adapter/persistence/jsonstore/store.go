package jsonstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// jsonstore persists each collection as one pretty-printed JSON file under a
// data directory, rewritten wholesale on every mutation. A per-collection
// mutex serializes writers within the process; there is no cross-process
// locking and no partial update.

type collection[T any] struct {
	path string
	mu   sync.Mutex
}

func newCollection[T any](dataDir, file string) *collection[T] {
	return &collection[T]{path: filepath.Join(dataDir, file)}
}

// load reads the whole collection, creating an empty file on first access.
// Callers must hold c.mu when they intend to write back.
func (c *collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := c.store(nil); err != nil {
			return nil, err
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *collection[T]) store(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// singleton is the same contract for collections holding one object
// (settings, credentials) instead of an array.
type singleton[T any] struct {
	path string
	mu   sync.Mutex
}

func newSingleton[T any](dataDir, file string) *singleton[T] {
	return &singleton[T]{path: filepath.Join(dataDir, file)}
}

// load returns the stored record and whether it existed on disk.
func (s *singleton[T]) load() (T, bool, error) {
	var v T
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

func (s *singleton[T]) store(v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
