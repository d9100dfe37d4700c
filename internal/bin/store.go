package bin

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/babarot/rsycle/internal/core"
	"github.com/babarot/rsycle/internal/fs"
)

// maxAttempts bounds the search for a free entry name when the same base
// name is recycled several times within one second
const maxAttempts = 64

const readBatch = 64

// Store is the bin directory: it owns every entry placed in it
type Store struct {
	root     string
	now      func() time.Time
	move     fs.MoveOptions
	reserved []string
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used to stamp new entries
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithCrossDevice allows copy-and-delete moves across filesystems
func WithCrossDevice(allow bool) Option {
	return func(s *Store) {
		s.move.AllowCrossDev = allow
	}
}

// WithReserved excludes the given file names from enumeration and purge
func WithReserved(names ...string) Option {
	return func(s *Store) {
		s.reserved = append(s.reserved, names...)
	}
}

// NewStore creates a Store rooted at root
func NewStore(root string, opts ...Option) *Store {
	s := &Store{
		root: root,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the bin directory
func (s *Store) Root() string {
	return s.root
}

// Init creates the bin directory if it does not exist
func (s *Store) Init() error {
	if err := os.MkdirAll(s.root, 0700); err != nil {
		return core.NewOpError("init", s.root, err)
	}
	return nil
}

// Next picks the entry a source would be placed under without moving
// anything. The timestamp is the current second, bumped until the name is free.
func (s *Store) Next(source string) (Entry, error) {
	if _, err := os.Lstat(source); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, core.NewOpError("place", source, core.ErrSourceNotFound)
		}
		return Entry{}, core.NewOpError("place", source, fmt.Errorf("%w: %w", core.ErrMoveFailed, err))
	}

	base := filepath.Base(source)
	secs := s.now().Unix()
	for i := int64(0); i < maxAttempts; i++ {
		name := core.EntryName(base, secs+i)
		path := filepath.Join(s.root, name)
		if _, err := os.Lstat(path); errors.Is(err, os.ErrNotExist) {
			return newEntry(s.root, name, false), nil
		}
	}
	return Entry{}, core.NewOpError("place", source, core.ErrDestinationExists)
}

// PlaceAt moves source into the bin under the given entry
func (s *Store) PlaceAt(source string, e Entry) error {
	if err := fs.Move(source, e.Path, s.move); err != nil {
		return core.NewOpError("place", source, err)
	}
	slog.Debug("placed in bin", "source", source, "entry", e.Path)
	return nil
}

// Place moves source into the bin as <base>.<now>
func (s *Store) Place(source string) (Entry, error) {
	var err error
	for range maxAttempts {
		var e Entry
		e, err = s.Next(source)
		if err != nil {
			return Entry{}, err
		}
		err = s.PlaceAt(source, e)
		if err == nil {
			return s.Stat(e.Path)
		}
		if !errors.Is(err, core.ErrDestinationExists) {
			return Entry{}, err
		}
		slog.Debug("entry name taken, retrying", "entry", e.Path)
	}
	return Entry{}, err
}

// Stat returns the entry at path, which must lie inside the bin
func (s *Store) Stat(path string) (Entry, error) {
	if filepath.Dir(path) != filepath.Clean(s.root) {
		return Entry{}, core.NewOpError("stat", path, core.ErrEntryMissing)
	}
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, core.NewOpError("stat", path, core.ErrEntryMissing)
		}
		return Entry{}, core.NewOpError("stat", path, err)
	}
	return newEntry(s.root, filepath.Base(path), info.IsDir()), nil
}

// Exists reports whether path is an entry currently held in the bin
func (s *Store) Exists(path string) bool {
	_, err := s.Stat(path)
	return err == nil
}

// Withdraw moves an entry out of the bin to destination.
// An existing destination is never overwritten.
func (s *Store) Withdraw(entryPath, destination string) error {
	if _, err := os.Lstat(destination); err == nil {
		return core.NewOpError("withdraw", destination, core.ErrDestinationOccupied)
	}
	if _, err := s.Stat(entryPath); err != nil {
		return core.NewOpError("withdraw", entryPath, core.ErrEntryMissing)
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		return core.NewOpError("withdraw", destination, fmt.Errorf("%w: %w", core.ErrMoveFailed, err))
	}

	err := fs.Move(entryPath, destination, s.move)
	switch {
	case err == nil:
		slog.Debug("withdrawn from bin", "entry", entryPath, "destination", destination)
		return nil
	case errors.Is(err, core.ErrDestinationExists):
		return core.NewOpError("withdraw", destination, core.ErrDestinationOccupied)
	case errors.Is(err, core.ErrSourceNotFound):
		return core.NewOpError("withdraw", entryPath, core.ErrEntryMissing)
	default:
		return core.NewOpError("withdraw", entryPath, err)
	}
}

// Enumerate lazily walks the bin directory once, yielding every entry
// except reserved files. A missing bin yields nothing.
func (s *Store) Enumerate() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		dir, err := os.Open(s.root)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				yield(Entry{}, core.NewOpError("enumerate", s.root, err))
			}
			return
		}
		defer dir.Close()

		for {
			dirents, err := dir.ReadDir(readBatch)
			for _, d := range dirents {
				if slices.Contains(s.reserved, d.Name()) {
					continue
				}
				if !yield(newEntry(s.root, d.Name(), d.IsDir()), nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Entry{}, core.NewOpError("enumerate", s.root, err))
				return
			}
		}
	}
}

// PurgeAll permanently deletes every entry. A failure on one entry does not
// stop the others; all failures are reported in a *core.PurgeError.
func (s *Store) PurgeAll() error {
	_, err := s.Purge(nil)
	return err
}

// Purge permanently deletes the entries match selects, or every entry when
// match is nil, and returns how many were deleted. Failures are collected
// the same way as in PurgeAll.
func (s *Store) Purge(match func(Entry) bool) (int, error) {
	var entries []Entry
	for e, err := range s.Enumerate() {
		if err != nil {
			return 0, err
		}
		if match == nil || match(e) {
			entries = append(entries, e)
		}
	}

	var (
		purged   int
		failures []core.PurgeFailure
	)
	for _, e := range entries {
		if err := purge(e); err != nil {
			slog.Error("failed to purge entry", "entry", e.Path, "error", err)
			failures = append(failures, core.PurgeFailure{Path: e.Path, Err: err})
			continue
		}
		purged++
		slog.Debug("purged", "entry", e.Path)
	}

	if len(failures) > 0 {
		return purged, &core.PurgeError{Failures: failures}
	}
	return purged, nil
}

func purge(e Entry) error {
	if e.IsDir {
		return os.RemoveAll(e.Path)
	}
	return os.Remove(e.Path)
}
