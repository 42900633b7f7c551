//go:build unix

package mover

import (
	"errors"
	"os"
	"syscall"
)

// isCrossDevice reports whether err is an EXDEV rename failure.
func isCrossDevice(err error) bool {
	if errors.Is(err, syscall.EXDEV) {
		return true
	}
	var le *os.LinkError
	return errors.As(err, &le) && errors.Is(le.Err, syscall.EXDEV)
}
