package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/codebling/git-fatfiles/internal/history"
)

// sizeColumnWidth is the fixed width of a size column. A humanized size is
// at most eight cells ("1023 MiB"; humanize rolls over at 1024), so ten
// keeps the path column aligned.
const sizeColumnWidth = 10

// Render returns the report as text, one line per aggregation key,
// ascending by size. In worktree mode a second column carries the path's
// current on-disk size, blank when the path is gone from the checkout.
func Render(report *history.Report) string {
	var b strings.Builder

	for _, e := range report.Entries {
		fmt.Fprintf(&b, "%-*s", sizeColumnWidth, humanize.IBytes(uint64(e.Size))) //nolint:gosec // Sizes are non-negative

		if report.WorktreeMode {
			now := ""
			if e.InWorktree {
				now = humanize.IBytes(uint64(e.WorktreeSize)) //nolint:gosec // Sizes are non-negative
			}

			fmt.Fprintf(&b, "%-*s", sizeColumnWidth, now)
		}

		b.WriteString(e.Path)
		b.WriteByte('\n')
	}

	return b.String()
}
