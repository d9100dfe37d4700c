package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotResolvable indicates that a name cannot be turned into a canonical path,
	// usually because its parent directory is missing or not writable
	ErrNotResolvable = errors.New("path not resolvable")

	// ErrFileNotFound indicates that the file to recycle does not exist
	ErrFileNotFound = errors.New("no such file or directory")

	// ErrSourceNotFound indicates that the source of a move does not exist
	ErrSourceNotFound = errors.New("source file not found")

	// ErrDestinationExists indicates a bin entry name collision
	ErrDestinationExists = errors.New("destination already exists")

	// ErrDestinationOccupied indicates that something already lives at the restore destination
	ErrDestinationOccupied = errors.New("there is a file in the way")

	// ErrEntryMissing indicates that the bin entry no longer exists
	ErrEntryMissing = errors.New("bin entry is missing")

	// ErrMoveFailed indicates a failed rename, e.g. across devices or without permission
	ErrMoveFailed = errors.New("move failed")

	// ErrLogWrite indicates that a relocation record could not be persisted
	ErrLogWrite = errors.New("failed to write relocation log")

	// ErrNoSuchRecord indicates that the relocation log has no record for the path
	ErrNoSuchRecord = errors.New("no such record in relocation log")

	// ErrNoMatchingEntry indicates that records exist but none of their entries is in the bin
	ErrNoMatchingEntry = errors.New("no matching entry in bin")

	// ErrCanceled is returned by a chooser when the operator backs out
	ErrCanceled = errors.New("canceled")
)

// OpError wraps an error with the operation and the path it failed on
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError creates a new OpError
func NewOpError(op, path string, err error) error {
	return &OpError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// PurgeFailure is a single bin entry that could not be deleted
type PurgeFailure struct {
	Path string
	Err  error
}

// PurgeError reports every entry a purge could not delete
type PurgeError struct {
	Failures []PurgeFailure
}

func (e *PurgeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d entries could not be purged:", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n  * %s: %v", f.Path, f.Err)
	}
	return b.String()
}

func (e *PurgeError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Paths returns the paths that failed to be purged
func (e *PurgeError) Paths() []string {
	paths := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		paths = append(paths, f.Path)
	}
	return paths
}
