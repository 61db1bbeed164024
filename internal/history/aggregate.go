package history

import (
	"fmt"
	"io"
	"path"
	"sort"
)

// aggregate joins resolved sizes back to the paths they were recorded at
// and sums them per aggregation key. Object IDs present only in assoc are
// trees and contribute nothing.
//
// In directory mode each file is charged to its parent directory. A file
// with no parent (already at the repository root) is skipped with a warning
// on warn; the run continues.
func aggregate(assoc map[string]string, sizes map[string]int64, dirsMode bool, warn io.Writer) map[string]int64 {
	totals := make(map[string]int64)

	for id, size := range sizes {
		key := assoc[id]

		if dirsMode {
			parent := path.Dir(key)
			if parent == "." {
				fmt.Fprintf(warn, "File has no parent directory: %s\n", key)

				continue
			}

			key = parent
		}

		totals[key] += size
	}

	return totals
}

// buildReport turns the aggregated totals into a report sorted ascending by
// size, applying the min-size and top-N trims.
func buildReport(totals map[string]int64, opt Options) *Report {
	entries := make([]Entry, 0, len(totals))

	for p, size := range totals {
		if size < opt.MinSize {
			continue
		}

		entries = append(entries, Entry{Path: p, Size: size})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Size < entries[j].Size
	})

	if opt.Top > 0 && len(entries) > opt.Top {
		entries = entries[len(entries)-opt.Top:]
	}

	var total int64
	for _, e := range entries {
		total += e.Size
	}

	return &Report{
		Entries:       entries,
		TotalBytes:    total,
		DirectoryMode: opt.DirsMode,
	}
}

// attachWorktree fills in the current working-tree size for every report
// entry whose path still exists. files maps repository-relative file paths
// to their current sizes; in directory mode they are collapsed with the
// same parent-directory rule as the historical sizes.
func attachWorktree(report *Report, files map[string]int64, dirsMode bool) {
	totals := files

	if dirsMode {
		totals = make(map[string]int64, len(files))

		for p, size := range files {
			if parent := path.Dir(p); parent != "." {
				totals[parent] += size
			}
		}
	}

	for i := range report.Entries {
		if size, ok := totals[report.Entries[i].Path]; ok {
			report.Entries[i].WorktreeSize = size
			report.Entries[i].InWorktree = true
		}
	}

	report.WorktreeMode = true
}
