//go:build linux

package fs

import (
	"errors"
	"os"

	"github.com/babarot/rsycle/internal/core"
	"golang.org/x/sys/unix"
)

// renameNoReplace renames atomically and fails if newpath exists.
// Filesystems without RENAME_NOREPLACE fall back to a check then rename.
func renameNoReplace(oldpath, newpath string) error {
	err := unix.Renameat2(unix.AT_FDCWD, oldpath, unix.AT_FDCWD, newpath, unix.RENAME_NOREPLACE)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EEXIST):
		return core.ErrDestinationExists
	case errors.Is(err, unix.ENOSYS), errors.Is(err, unix.EINVAL):
		return checkAndRename(oldpath, newpath)
	default:
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}
}
