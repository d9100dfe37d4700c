package fs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/babarot/rsycle/internal/core"
	cp "github.com/otiai10/copy"
)

// ErrCrossDevice indicates that source and destination live on different filesystems
var ErrCrossDevice = errors.New("cross-device move")

// MoveOptions specifies options for move operations
type MoveOptions struct {
	AllowCrossDev bool // Fall back to copy and delete across filesystems
}

// Move renames src to dst without ever replacing an existing dst.
//
// A missing src yields core.ErrSourceNotFound, an existing dst yields
// core.ErrDestinationExists and every other failure wraps core.ErrMoveFailed.
// The parent directory of dst must already exist.
func Move(src, dst string, opts MoveOptions) error {
	if src == "" || dst == "" {
		return &MoveError{Op: "validate", Src: src, Dst: dst, Err: core.ErrMoveFailed}
	}

	if _, err := os.Lstat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &MoveError{Op: "stat", Src: src, Dst: dst, Err: core.ErrSourceNotFound}
		}
		return &MoveError{Op: "stat", Src: src, Dst: dst, Err: fmt.Errorf("%w: %w", core.ErrMoveFailed, err)}
	}

	same, err := isSamePartition(src, dst)
	if err != nil {
		slog.Debug("partition check failed, trying rename anyway", "src", src, "dst", dst, "error", err)
		same = true
	}

	if same {
		slog.Debug("renaming", "from", src, "to", dst)
		if err := renameNoReplace(src, dst); err != nil {
			if errors.Is(err, core.ErrDestinationExists) {
				return &MoveError{Op: "rename", Src: src, Dst: dst, Err: err}
			}
			return &MoveError{Op: "rename", Src: src, Dst: dst, Err: fmt.Errorf("%w: %w", core.ErrMoveFailed, err)}
		}
		return nil
	}

	if !opts.AllowCrossDev {
		return &MoveError{Op: "rename", Src: src, Dst: dst, Err: fmt.Errorf("%w: %w", core.ErrMoveFailed, ErrCrossDevice)}
	}

	slog.Debug("different partitions detected, falling back to copy-and-delete", "from", src, "to", dst)
	return copyAndDelete(src, dst)
}

// copyAndDelete copies a file or directory and then deletes the original
func copyAndDelete(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: core.ErrDestinationExists}
	}

	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
		Sync:          true,
	}
	if err := cp.Copy(src, dst, opts); err != nil {
		_ = os.RemoveAll(dst)
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: fmt.Errorf("%w: %w", core.ErrMoveFailed, err)}
	}

	if err := os.RemoveAll(src); err != nil {
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			return &MoveError{
				Op:  "cleanup",
				Src: src,
				Dst: dst,
				Err: fmt.Errorf("%w: failed to remove both source and destination: %v, %v", core.ErrMoveFailed, err, rmErr),
			}
		}
		return &MoveError{Op: "remove_source", Src: src, Dst: dst, Err: fmt.Errorf("%w: %w", core.ErrMoveFailed, err)}
	}

	return nil
}
