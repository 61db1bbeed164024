// Package history computes the cumulative on-disk size that each path has
// consumed over the entire history of a git repository.
//
// It enumerates every object reachable from any revision with git rev-list,
// resolves per-object disk sizes through a single long-lived git cat-file
// subprocess, and aggregates the sizes per file or per parent directory.
package history
