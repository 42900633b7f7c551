package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxConflictAttempts bounds the disambiguation counter. When it is
// exhausted the last generated candidate is kept even if it still
// collides; the mover's pre-move existence check reports the collision
// instead of overwriting. A variable so tests can lower it.
var maxConflictAttempts = 10000

// ResolveConflicts rewrites destinations in place so that no two moves
// in the batch share a destination and no destination points at a path
// that already exists on disk. Entries are processed in batch order and
// in-place entries (Source == Dest) are left untouched. Colliding
// destinations receive a " (n)" suffix before the extension, n starting
// at 1. Callers must supply a deterministically ordered batch to get
// reproducible output.
func ResolveConflicts(moves []PlannedMove) {
	claimed := make(map[string]struct{}, len(moves))

	for i := range moves {
		m := &moves[i]
		if m.InPlace() {
			continue
		}

		candidate := m.Dest
		counter := 1

		for pathExists(candidate) || isClaimed(claimed, candidate) {
			candidate = numberedCandidate(m.Dest, counter)
			if counter >= maxConflictAttempts {
				// Keep the last candidate; the mover reports a
				// collision at execution time if it still exists.
				break
			}
			counter++
		}

		if candidate != m.Dest {
			m.Dest = candidate
			m.FileName = filepath.Base(candidate)
		}

		claimed[candidate] = struct{}{}
	}
}

// numberedCandidate inserts " (n)" before dest's extension.
func numberedCandidate(dest string, n int) string {
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(filepath.Base(dest), ext)

	var name string
	if ext == "" {
		name = fmt.Sprintf("%s (%d)", stem, n)
	} else {
		name = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}

	return filepath.Join(filepath.Dir(dest), name)
}

func isClaimed(claimed map[string]struct{}, path string) bool {
	_, ok := claimed[path]
	return ok
}

// pathExists checks for any entry at path, including dangling symlinks.
func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
