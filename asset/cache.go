package asset

import (
	"context"
	"strings"
	"sync"
)

// LoaderFor returns an HTTPLoader for http(s) URLs and a FileLoader for
// anything else.
func LoaderFor(src string) Loader {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return HTTPLoader{URL: src}
	}
	return FileLoader{Path: src}
}

// Cache memoizes images by source. The zero value is ready to use. It is
// safe for concurrent use; two goroutines asking for the same uncached
// source may both load it.
type Cache struct {
	mu     sync.RWMutex
	images map[string]*Image
	// Loader builds the loader for a source; nil means LoaderFor.
	Loader func(src string) Loader
}

func NewCache() *Cache {
	return &Cache{images: make(map[string]*Image)}
}

// Get returns the cached image for src, loading it on first use. Failed
// loads are not cached.
func (c *Cache) Get(ctx context.Context, src string) (*Image, error) {
	c.mu.RLock()
	img, ok := c.images[src]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	newLoader := c.Loader
	if newLoader == nil {
		newLoader = LoaderFor
	}
	img, err := newLoader(src).Load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.images == nil {
		c.images = make(map[string]*Image)
	}
	c.images[src] = img
	c.mu.Unlock()
	return img, nil
}

// Len reports the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear drops every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = nil
	c.mu.Unlock()
}
