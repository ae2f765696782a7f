package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
)

// Document provides synchronized access to a JSON file holding a single value,
// used for files that are not keyed tables (engine config, activity log).
type Document[T any] struct {
	path string
	name string
	mu   sync.RWMutex
	data T
}

// NewDocument opens (or creates) the document file under dir.
// initial is used when the file is missing or unreadable.
func NewDocument[T any](dir, name string, initial T) (*Document[T], error) {
	d := &Document[T]{
		path: filepath.Join(dir, name+".json"),
		name: name,
		data: initial,
	}

	raw, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, fmt.Errorf("leyendo documento %s: %w", name, err)
	}

	if err := json.Unmarshal(raw, &d.data); err != nil {
		logger.Warn(fmt.Sprintf("Documento '%s' corrupto, usando valores por defecto: %v", name, err), "Store")
		d.data = initial
	}

	return d, nil
}

// Get returns the current document value
func (d *Document[T]) Get() T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data
}

// Set replaces the document value and persists it
func (d *Document[T]) Set(value T) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.data = value
	return d.save()
}

// Update applies fn to the value inside the document lock and persists the
// result. Returning an error from fn aborts without persisting.
func (d *Document[T]) Update(fn func(current T) (T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next, err := fn(d.data)
	if err != nil {
		return err
	}

	d.data = next
	return d.save()
}

// save writes the document to disk atomically. Caller must hold the write lock.
func (d *Document[T]) save() error {
	raw, err := json.MarshalIndent(d.data, "", "  ")
	if err != nil {
		return fmt.Errorf("serializando documento %s: %w", d.name, err)
	}
	return atomicWrite(d.path, raw)
}
