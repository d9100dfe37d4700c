package bin

import (
	"path/filepath"
	"time"

	"github.com/babarot/rsycle/internal/core"
)

// Entry is a file or directory held in the bin, named <base>.<unix-seconds>
type Entry struct {
	// Name is the file name of the entry inside the bin
	Name string

	// Path is the absolute path of the entry
	Path string

	// Base is the original base name of the recycled file
	Base string

	// Timestamp is the relocation time in seconds since the unix epoch
	Timestamp int64

	// Managed is false for names without a timestamp suffix;
	// such entries were not placed by rsycle
	Managed bool

	// IsDir reports whether the entry is a directory
	IsDir bool
}

// RecycledAt returns when the entry was relocated
func (e Entry) RecycledAt() time.Time {
	return core.EntryTime(e.Timestamp)
}

func newEntry(root, name string, isDir bool) Entry {
	e := Entry{
		Name:  name,
		Path:  filepath.Join(root, name),
		IsDir: isDir,
	}
	if base, secs, ok := core.ParseEntryName(name); ok {
		e.Base = base
		e.Timestamp = secs
		e.Managed = true
	}
	return e
}
