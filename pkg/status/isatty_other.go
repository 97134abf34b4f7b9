//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package status

import "os"

// isatty reports false where terminal detection is not implemented
func isatty(f *os.File) bool {
	return false
}
