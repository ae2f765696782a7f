// Package store provides the persistent JSON tables backing the engine.
// Every table is a single JSON file rewritten atomically on each mutation,
// so a crash never leaves a half-written file behind.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
)

// Table provides synchronized access to a JSON file holding a string-keyed map.
// All mutations persist immediately via a temp-file rename.
type Table[T any] struct {
	path string
	name string
	mu   sync.RWMutex
	data map[string]T
}

// NewTable opens (or creates) the table file under dir.
// A missing file starts the table empty; an unreadable file is logged and
// also starts empty, matching the recovery behavior of the rest of the engine.
func NewTable[T any](dir, name string) (*Table[T], error) {
	t := &Table[T]{
		path: filepath.Join(dir, name+".json"),
		name: name,
		data: make(map[string]T),
	}

	raw, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("leyendo tabla %s: %w", name, err)
	}

	if err := json.Unmarshal(raw, &t.data); err != nil {
		logger.Warn(fmt.Sprintf("Tabla '%s' corrupta, empezando vacía: %v", name, err), "Store")
		t.data = make(map[string]T)
	}

	return t, nil
}

// Get returns the value for key
func (t *Table[T]) Get(key string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.data[key]
	return v, ok
}

// All returns a copy of the table contents
func (t *Table[T]) All() map[string]T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]T, len(t.data))
	for k, v := range t.data {
		out[k] = v
	}
	return out
}

// Keys returns the sorted keys of the table
func (t *Table[T]) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.data))
	for k := range t.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.data)
}

// Set stores value under key and persists the table
func (t *Table[T]) Set(key string, value T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data[key] = value
	return t.save()
}

// Delete removes key and persists the table. Deleting a missing key is a no-op.
func (t *Table[T]) Delete(key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.data[key]; !ok {
		return nil
	}
	delete(t.data, key)
	return t.save()
}

// Update applies fn to the value under key inside the table lock and persists
// the result. fn receives the current value (zero if absent) and whether the
// key existed. Returning an error from fn aborts without persisting.
func (t *Table[T]) Update(key string, fn func(current T, exists bool) (T, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, exists := t.data[key]
	next, err := fn(current, exists)
	if err != nil {
		return err
	}

	t.data[key] = next
	return t.save()
}

// Replace swaps the whole table contents and persists
func (t *Table[T]) Replace(data map[string]T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data = make(map[string]T, len(data))
	for k, v := range data {
		t.data[k] = v
	}
	return t.save()
}

// save writes the table to disk atomically. Caller must hold the write lock.
func (t *Table[T]) save() error {
	raw, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("serializando tabla %s: %w", t.name, err)
	}
	return atomicWrite(t.path, raw)
}

// atomicWrite replaces path with data via a temp file and rename,
// so readers never observe a partial file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
