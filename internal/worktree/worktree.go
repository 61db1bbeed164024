// Package worktree measures current on-disk file sizes in a checkout,
// for comparison against historical sizes.
package worktree

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// collector gathers file sizes from concurrent fastwalk callbacks using a
// mutex.
type collector struct {
	mu    sync.Mutex
	sizes map[string]int64
}

// add records a file. Protected by a mutex since fastwalk calls the
// callback from multiple goroutines concurrently.
func (c *collector) add(path string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sizes[path] = size
}

// Sizes returns the size of every regular file under root, keyed by its
// slash-separated path relative to root. The .git directory is skipped, as
// are unreadable entries.
func Sizes(root string) (map[string]int64, error) {
	c := &collector{sizes: make(map[string]int64)}

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	//nolint:varnamelen // d is standard for DirEntry
	err := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Silently skip errors
		}

		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		c.add(filepath.ToSlash(rel), info.Size())

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", root, err)
	}

	return c.sizes, nil
}
