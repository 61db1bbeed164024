package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/codebling/git-fatfiles/internal/history"
)

// progressPrinter returns a progress callback that rewrites a single status
// line on w in place.
func progressPrinter(w io.Writer) func(objects, bytes int64) {
	return func(objects, bytes int64) {
		msg := fmt.Sprintf("Resolving… %d objects, %s",
			objects, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
		fmt.Fprintf(w, "\r\033[2K%s\r", msg)
	}
}

func logic(options history.Options) error {
	enableProgress := !options.Debug && isatty.IsTerminal(os.Stderr.Fd())

	ctx := context.Background()

	// Simple progress callback that prints directly to stderr
	var progressHook func(objects, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = progressPrinter(os.Stderr)
	}

	report, err := history.Run(ctx, options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	_, err = io.WriteString(os.Stdout, Render(report))

	return err
}
