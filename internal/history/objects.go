package history

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// maxLineSize bounds a single rev-list output line. Paths can be long but
// never anywhere near this.
const maxLineSize = 1024 * 1024

// enumerateObjects asks git rev-list for every object reachable from any
// revision, optionally restricted to the given paths, and returns the
// object-ID-to-path association map.
//
// When the same blob was recorded under several paths across history, the
// last path observed wins: the map is keyed by object ID. This mirrors the
// reference tool and means a path that held the same content as a later one
// is charged nothing for it.
func (r *repo) enumerateObjects(ctx context.Context, paths []string) (map[string]string, error) {
	args := []string{"rev-list", "--all", "--objects"}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}

	cmd := exec.CommandContext(ctx, r.git, args...)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening git rev-list output: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting git rev-list: %w", err)
	}

	assoc, parseErr := parseAssociations(stdout)
	if parseErr != nil {
		// rev-list may still be blocked writing into the full, unread
		// pipe. Drain it to EOF so Wait cannot hang.
		_, _ = io.Copy(io.Discard, stdout)
	}

	waitErr := cmd.Wait()
	if parseErr != nil {
		return nil, parseErr
	}

	if waitErr != nil {
		return nil, fmt.Errorf("git rev-list: %w: %s", waitErr, strings.TrimSpace(stderr.String()))
	}

	return assoc, nil
}

// parseAssociations reads rev-list --objects output, one association per
// line. Bare object IDs (commits) carry no path and are skipped; any other
// line without a separating space means an incompatible git and aborts.
func parseAssociations(r io.Reader) (map[string]string, error) {
	assoc := make(map[string]string)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		id, repoPath, ok := strings.Cut(line, " ")
		if !ok {
			if isObjectID(line) {
				continue
			}

			return nil, fmt.Errorf("malformed rev-list entry %q", line)
		}

		// Last write wins when an ID recurs.
		assoc[id] = repoPath
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading git rev-list output: %w", err)
	}

	return assoc, nil
}

// isObjectID reports whether s is a full SHA-1 or SHA-256 object ID as
// printed by git (lowercase hex).
func isObjectID(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}

	return true
}
