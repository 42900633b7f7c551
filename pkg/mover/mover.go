// Package mover executes resolved planned moves. A move is an atomic
// rename when source and destination share a filesystem; cross-device
// moves fall back to copy, size verification, then source deletion.
// The source file is never deleted before the copy is verified, and an
// occupied destination is never overwritten.
package mover

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tagmv/pkg/planner"
)

// ErrDestExists is returned when the destination is occupied at
// execution time even though it was free when the batch was planned.
var ErrDestExists = errors.New("destination already exists")

// VerifyError reports a byte-count mismatch after a cross-device copy.
// The incomplete destination copy has been removed and the source is
// untouched.
type VerifyError struct {
	Source   string
	Dest     string
	Expected int64
	Copied   int64
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("copy verification failed for %s: expected %d bytes, copied %d",
		e.Source, e.Expected, e.Copied)
}

// Replaceable so tests can simulate cross-device and short-copy failures.
var (
	renameFunc = os.Rename
	copyFunc   = copyFile
)

// ExecuteMove performs one resolved move. An in-place entry
// (Source == Dest) succeeds without touching the filesystem. The
// destination's parent directory is created as needed, and destination
// existence is re-checked immediately before moving so a file that
// appeared after planning is reported (via ErrDestExists) rather than
// overwritten.
func ExecuteMove(m *planner.PlannedMove) error {
	if m.InPlace() {
		return nil
	}

	parent := filepath.Dir(m.Dest)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", parent, err)
	}

	if _, err := os.Lstat(m.Dest); err == nil {
		return fmt.Errorf("%w (appeared after planning): %s", ErrDestExists, m.Dest)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check destination %s: %w", m.Dest, err)
	}

	err := renameFunc(m.Source, m.Dest)
	if err == nil {
		return nil
	}

	// Only cross-device failures get the copy fallback; everything
	// else is surfaced as-is for this entry.
	if !isCrossDevice(err) {
		return fmt.Errorf("move %s -> %s: %w", m.Source, m.Dest, err)
	}

	return moveAcrossDevices(m.Source, m.Dest)
}

// moveAcrossDevices copies source to dest, verifies the copied byte
// count against the source size recorded before the copy, and only
// then removes the source.
func moveAcrossDevices(source, dest string) error {
	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("read source metadata %s: %w", source, err)
	}

	copied, err := copyFunc(source, dest)
	if err != nil {
		return fmt.Errorf("copy %s -> %s: %w", source, dest, err)
	}

	if copied != info.Size() {
		_ = os.Remove(dest)
		return &VerifyError{
			Source:   source,
			Dest:     dest,
			Expected: info.Size(),
			Copied:   copied,
		}
	}

	if err := os.Remove(source); err != nil {
		return fmt.Errorf("remove source %s: %w", source, err)
	}

	return nil
}

// copyFile copies source to a new file at dest and returns the number
// of bytes written. The destination is created exclusively: the
// pre-move existence check has already established it is free, so a
// file appearing mid-flight fails the copy instead of being clobbered,
// and that foreign file is left alone. A partial copy that copyFile
// itself created is removed on failure. The destination is synced
// before close so a verified copy is durable by the time the source is
// deleted.
func copyFile(source, dest string) (int64, error) {
	in, err := os.Open(source)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}

	copied, err := io.Copy(out, in)
	if err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(dest)
		return copied, err
	}

	return copied, nil
}
