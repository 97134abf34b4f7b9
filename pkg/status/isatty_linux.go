//go:build linux

package status

import (
	"os"

	"golang.org/x/sys/unix"
)

// isatty reports whether f refers to a terminal
func isatty(f *os.File) bool {
	if f == nil {
		return false
	}
	_, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS) // #nosec G115 -- file descriptors fit in int
	return err == nil
}
