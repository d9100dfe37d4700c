package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/babarot/rsycle/internal/core"
)

// IsUnsafePath checks if the given path is unsafe to recycle
func IsUnsafePath(path string) (bool, error) {
	// First check the original path before any normalization
	// This preserves the original input like "." or ".."
	originalBase := filepath.Base(path)
	if originalBase == "." || originalBase == ".." {
		return true, nil
	}

	cleaned := filepath.Clean(path)
	if cleaned == string(filepath.Separator) {
		return true, nil
	}

	if strings.HasPrefix(path, "//") {
		return true, nil
	}

	return false, nil
}

// Resolver turns user supplied names into absolute canonical paths.
type Resolver struct {
	// Dir is the directory relative names are joined to.
	// The process working directory is used when empty.
	Dir string
}

// NewResolver returns a Resolver rooted at dir
func NewResolver(dir string) *Resolver {
	return &Resolver{Dir: dir}
}

// Resolve returns the canonical absolute path for name.
//
// Elements are applied one at a time against the physical directory tree, so
// ".." steps out of the directory a symlink points to rather than the one the
// link lives in. The final element is kept as is, so a symlink is recycled
// itself and not its target. For a missing path a zero-byte placeholder is
// created, resolved and removed again, yielding the path the file would have
// if it existed.
func (r *Resolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", core.NewOpError("resolve", name, core.ErrNotResolvable)
	}

	path := name
	if !filepath.IsAbs(path) {
		dir := r.Dir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", core.NewOpError("resolve", name, fmt.Errorf("%w: %w", core.ErrNotResolvable, err))
			}
			dir = wd
		}
		if !filepath.IsAbs(dir) {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return "", core.NewOpError("resolve", name, fmt.Errorf("%w: %w", core.ErrNotResolvable, err))
			}
			dir = abs
		}
		// no filepath.Join here: it would collapse ".." lexically
		path = dir + string(filepath.Separator) + path
	}

	path, err := physical(path)
	if err != nil {
		return "", core.NewOpError("resolve", name, fmt.Errorf("%w: %w", core.ErrNotResolvable, err))
	}

	if _, err := os.Lstat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", core.NewOpError("resolve", name, fmt.Errorf("%w: %w", core.ErrNotResolvable, err))
	}

	resolved, err := resolveMissing(path)
	if err != nil {
		return "", core.NewOpError("resolve", name, fmt.Errorf("%w: %w", core.ErrNotResolvable, err))
	}
	return resolved, nil
}

// physical walks the absolute path element by element. Every element but the
// last is resolved through symlinks before the next one is applied.
func physical(path string) (string, error) {
	vol := filepath.VolumeName(path)
	cur := vol + string(filepath.Separator)
	elems := strings.FieldsFunc(path[len(vol):], func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})

	for i, elem := range elems {
		switch elem {
		case ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
			continue
		}
		next := filepath.Join(cur, elem)
		if i == len(elems)-1 {
			return next, nil
		}
		resolved, err := filepath.EvalSymlinks(next)
		if err != nil {
			return "", err
		}
		cur = resolved
	}
	return cur, nil
}

func resolveMissing(path string) (string, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", fmt.Errorf("create placeholder: %w", err)
	}
	f.Close()
	defer os.Remove(path)

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("canonicalize placeholder: %w", err)
	}
	return resolved, nil
}
