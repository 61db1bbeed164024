package history

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

const (
	// batchCheckFormat makes cat-file answer each object ID on its stdin
	// with "<id> <type> <size-on-disk>" on its stdout.
	batchCheckFormat = "--batch-check=%(objectname) %(objecttype) %(objectsize:disk)"

	blobType = "blob"
)

// resolveSizes streams ids through a single git cat-file subprocess and
// returns the on-disk size of every blob among them. Non-blob objects
// (trees, commits, tags) are dropped. onBlob, if non-nil, is called with
// each blob's size as it is read.
//
// cat-file's stdin and stdout are both bounded pipes: writing every request
// before reading any response can deadlock once the output buffer fills.
// A goroutine therefore owns the write side while the calling goroutine
// reads; stdin is closed after the last request, which lets cat-file finish
// its output and the read loop terminate. Both sides are joined before the
// sizes are considered final, and a writer failure is fatal.
func (r *repo) resolveSizes(ctx context.Context, ids []string, onBlob func(int64)) (map[string]int64, error) {
	if len(ids) == 0 {
		return map[string]int64{}, nil
	}

	cmd := exec.CommandContext(ctx, r.git, "cat-file", batchCheckFormat)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening git cat-file input: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening git cat-file output: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting git cat-file: %w", err)
	}

	writeDone := make(chan error, 1)

	go func() {
		writeDone <- writeObjectIDs(stdin, ids)
	}()

	sizes, readErr := readObjectSizes(stdout, onBlob)
	if readErr != nil {
		// The writer may still be blocked on a full stdin pipe that
		// cat-file, in turn blocked on its unread stdout, no longer
		// drains. Kill the subprocess so the pending writes fail with
		// EPIPE and the join below cannot hang.
		_ = cmd.Process.Kill()
	}

	writeErr := <-writeDone
	waitErr := cmd.Wait()

	switch {
	case readErr != nil:
		return nil, readErr
	case writeErr != nil:
		return nil, writeErr
	case waitErr != nil:
		return nil, fmt.Errorf("git cat-file: %w: %s", waitErr, strings.TrimSpace(stderr.String()))
	}

	return sizes, nil
}

// writeObjectIDs feeds every ID as one request line and closes the stream
// to signal end of input.
func writeObjectIDs(w io.WriteCloser, ids []string) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing git cat-file input: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(w)

	for _, id := range ids {
		if _, werr := fmt.Fprintln(bw, id); werr != nil {
			return fmt.Errorf("writing object id to git cat-file: %w", werr)
		}
	}

	if ferr := bw.Flush(); ferr != nil {
		return fmt.Errorf("writing object ids to git cat-file: %w", ferr)
	}

	return nil
}

// readObjectSizes consumes "<id> <type> <size>" response lines until EOF,
// keeping blobs only.
func readObjectSizes(r io.Reader, onBlob func(int64)) (map[string]int64, error) {
	sizes := make(map[string]int64)

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()

		fields := strings.Split(line, " ")
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed git cat-file entry %q", line)
		}

		if fields[1] != blobType {
			continue
		}

		size, err := strconv.ParseUint(fields[2], 10, 63)
		if err != nil {
			return nil, fmt.Errorf("parsing object size in %q: %w", line, err)
		}

		sizes[fields[0]] = int64(size)

		if onBlob != nil {
			onBlob(int64(size))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading git cat-file output: %w", err)
	}

	return sizes, nil
}
