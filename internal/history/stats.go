package history

import (
	"sync"
	"time"
)

// Entry is one line of the final report.
type Entry struct {
	// Path is the aggregation key: a repository-relative file path, or its
	// parent directory in directory mode.
	Path string
	// Size is the cumulative on-disk size of every historical blob charged
	// to this path.
	Size int64
	// WorktreeSize is the path's current size in the working tree. Only
	// meaningful when InWorktree is true.
	WorktreeSize int64
	// InWorktree reports whether the path exists in the current checkout.
	InWorktree bool
}

// Report holds the aggregated result of a history scan.
type Report struct {
	// Entries is sorted ascending by Size.
	Entries []Entry
	// TotalBytes is the sum of all reported sizes.
	TotalBytes int64
	// ObjectCount is the number of distinct blob objects resolved.
	ObjectCount int
	// DirectoryMode indicates aggregation by parent directory.
	DirectoryMode bool
	// WorktreeMode indicates the working-tree comparison column is populated.
	WorktreeMode bool
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration
}

// Options configures a history scan and CLI behavior.
type Options struct {
	// Paths restricts the scan to the given repository paths (empty = all).
	Paths []string
	// DirsMode aggregates by parent directory instead of individual files.
	DirsMode bool
	// MinSize drops aggregated entries smaller than this many bytes.
	MinSize int64
	// Top keeps only the N largest entries (0 = all).
	Top int
	// Worktree adds each path's current working-tree size to the report.
	Worktree bool
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// progress counts resolved blob objects. The size resolver's read loop
// updates it while the reporter goroutine samples it, so access is
// protected by a mutex.
type progress struct {
	mu      sync.Mutex
	objects int64
	bytes   int64
}

func (p *progress) add(size int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.objects++
	p.bytes += size
}

func (p *progress) snapshot() (objects, bytes int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.objects, p.bytes
}
