package fs

import (
	"os"

	"github.com/babarot/rsycle/internal/core"
)

func checkAndRename(oldpath, newpath string) error {
	if _, err := os.Lstat(newpath); err == nil {
		return core.ErrDestinationExists
	}
	return os.Rename(oldpath, newpath)
}
