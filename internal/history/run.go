package history

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/codebling/git-fatfiles/internal/worktree"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		//nolint:forbidigo // Debug output to console
		fmt.Printf(format, args...)
	}
}

// startProgressReporter invokes hook(objects, bytes) on each tick until ctx
// is done.
func startProgressReporter(ctx context.Context, prog *progress, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(prog.snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run scans the repository history and returns the aggregated report.
// It enumerates every reachable object (restricted to opt.Paths if any),
// resolves per-object disk sizes, and sums them per file or, if
// opt.DirsMode is set, per parent directory.
//
// Warnings for files that cannot be charged to a directory go to stderr.
// Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Report, error) {
	log := logger{enabled: opt.Debug}

	repo, err := openRepo()
	if err != nil {
		return nil, err
	}

	root, err := repo.topLevel(ctx)
	if err != nil {
		return nil, err
	}

	log.printf("[debug]: repository root: %s\n", root)
	log.printf("[debug]: path filters:\n")

	for _, p := range opt.Paths {
		log.printf("[debug]:   - %s\n", p)
	}

	start := time.Now()

	assoc, err := repo.enumerateObjects(ctx, opt.Paths)
	if err != nil {
		return nil, err
	}

	log.printf("[debug]: %d objects enumerated\n", len(assoc))

	ids := make([]string, 0, len(assoc))
	for id := range assoc {
		ids = append(ids, id)
	}

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := &progress{}
	startProgressReporter(ctx, prog, progressHook, opt.ProgressInterval)

	sizes, err := repo.resolveSizes(ctx, ids, prog.add)
	if err != nil {
		return nil, err
	}

	log.printf("[debug]: %d blobs resolved\n", len(sizes))

	totals := aggregate(assoc, sizes, opt.DirsMode, os.Stderr)

	report := buildReport(totals, opt)
	report.ObjectCount = len(sizes)

	if opt.Worktree {
		files, err := worktree.Sizes(root)
		if err != nil {
			return nil, err
		}

		attachWorktree(report, files, opt.DirsMode)
	}

	report.Elapsed = time.Since(start)

	return report, nil
}
