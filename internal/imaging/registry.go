package imaging

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps image names to the grids they hold.
//
// The registry owns every grid stored in it. Transforms read source grids through
// Get, compute a fresh grid, and install it with Put. A grid returned by Get must
// be treated as read-only; it is shared with every other reader.
//
// Registry is safe for concurrent use by multiple goroutines. A single lock guards
// the whole map, so a transform's destination (or all of rgbSplit's destinations)
// becomes visible atomically: either the full result is installed or nothing is.
//
// # Memory Management
//
// Entries are never removed. Names are overwritten on collision (last write wins),
// which is what reloading an image under the same name relies on.
//
// # Example Usage
//
//	reg := imaging.NewRegistry()
//	reg.Put("koala", grid)
//	if err := imaging.HorizontalFlip(reg, "koala", "koala-flipped"); err != nil {
//	    return err
//	}
type Registry struct {
	mu     sync.RWMutex
	images map[string]*Grid
}

// NewRegistry creates an empty registry ready for use.
func NewRegistry() *Registry {
	return &Registry{
		images: make(map[string]*Grid),
	}
}

// Put stores g under name, replacing any existing entry.
func (r *Registry) Put(name string, g *Grid) {
	r.mu.Lock()
	r.images[name] = g
	r.mu.Unlock()
}

// putAll installs several entries under one lock acquisition.
func (r *Registry) putAll(entries map[string]*Grid) {
	r.mu.Lock()
	for name, g := range entries {
		r.images[name] = g
	}
	r.mu.Unlock()
}

// Get returns the grid registered under name.
//
// # Errors
//
//   - Returns an error wrapping ErrImageNotFound if name is not registered.
func (r *Registry) Get(name string) (*Grid, error) {
	r.mu.RLock()
	g, ok := r.images[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrImageNotFound, name)
	}
	return g, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	_, ok := r.images[name]
	r.mu.RUnlock()
	return ok
}

// Names returns every registered name in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.images))
	for name := range r.images {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of registered images.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.images)
}
