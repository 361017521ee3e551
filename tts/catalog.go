package tts

import (
	"context"
	"sync"
)

// Catalog holds the host voice list. It starts empty and is resolved
// exactly once, after which Ready is closed.
type Catalog struct {
	once  sync.Once
	ready chan struct{}

	mu     sync.RWMutex
	voices []Voice
	err    error
}

// NewCatalog returns an unresolved catalog.
func NewCatalog() *Catalog {
	return &Catalog{ready: make(chan struct{})}
}

// LoadCatalog resolves a new catalog in the background with the result
// of load.
func LoadCatalog(ctx context.Context, load func(context.Context) ([]Voice, error)) *Catalog {
	c := NewCatalog()
	go func() {
		voices, err := load(ctx)
		c.Resolve(voices, err)
	}()
	return c
}

// Resolve sets the catalog contents and closes Ready. Only the first call
// has an effect; it reports whether this call resolved the catalog.
func (c *Catalog) Resolve(voices []Voice, err error) bool {
	resolved := false
	c.once.Do(func() {
		c.mu.Lock()
		c.voices = append([]Voice(nil), voices...)
		c.err = err
		c.mu.Unlock()
		close(c.ready)
		resolved = true
	})
	return resolved
}

// Voices returns a copy of the voice list.
func (c *Catalog) Voices() []Voice {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Voice(nil), c.voices...)
}

// Len returns the number of voices.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.voices)
}

// Err returns the error from loading the catalog, if any.
func (c *Catalog) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Ready is closed once the catalog is resolved.
func (c *Catalog) Ready() <-chan struct{} {
	return c.ready
}

// Loaded reports whether the catalog has been resolved.
func (c *Catalog) Loaded() bool {
	return isClosed(c.ready)
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
