package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/babarot/rsycle/internal/bin"
	"github.com/babarot/rsycle/internal/core"
	"github.com/babarot/rsycle/internal/fs"
	"github.com/babarot/rsycle/internal/history"
)

// Config holds everything the engine needs; nothing is read from the environment
type Config struct {
	// BinDir is the bin directory. It is created if missing.
	BinDir string

	// WorkDir is the directory relative names are resolved against.
	// The process working directory is used when empty.
	WorkDir string

	// AllowCrossDevice enables copy-and-delete when a move crosses filesystems
	AllowCrossDevice bool

	// Now stamps new entries; time.Now when nil
	Now func() time.Time
}

// Engine runs the recycle, restore, list and empty operations
type Engine struct {
	resolver *fs.Resolver
	store    *bin.Store
	log      *history.Log
	now      func() time.Time
}

// New creates the bin directory if needed and returns an Engine over it
func New(cfg Config) (*Engine, error) {
	if cfg.BinDir == "" {
		return nil, fmt.Errorf("bin directory is not configured")
	}
	abs, err := filepath.Abs(cfg.BinDir)
	if err != nil {
		return nil, fmt.Errorf("bin directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0700); err != nil {
		return nil, fmt.Errorf("create bin directory: %w", err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve bin directory: %w", err)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	slog.Debug("engine initialized", "bin", root)
	return &Engine{
		resolver: fs.NewResolver(cfg.WorkDir),
		store: bin.NewStore(root,
			bin.WithReserved(history.FileName),
			bin.WithCrossDevice(cfg.AllowCrossDevice),
			bin.WithClock(now),
		),
		log: history.New(filepath.Join(root, history.FileName)),
		now: now,
	}, nil
}

// BinDir returns the canonical bin directory
func (e *Engine) BinDir() string {
	return e.store.Root()
}

// Resolve turns a user supplied name into the canonical path the engine works with
func (e *Engine) Resolve(name string) (string, error) {
	return e.resolver.Resolve(name)
}

// ensure re-creates the bin directory when something removed it between runs
func (e *Engine) ensure() error {
	return e.store.Init()
}

// overlapsBin reports whether path is the bin, lies inside it, or contains it
func (e *Engine) overlapsBin(path string) bool {
	root := e.store.Root()
	if path == root {
		return true
	}
	return isWithin(path, root) || isWithin(root, path)
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel)
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:2] == ".." && os.IsPathSeparator(rel[2])
}

func errOverlap(path string) error {
	return core.NewOpError("recycle", path, fmt.Errorf("%w: path is or contains the bin", core.ErrMoveFailed))
}
