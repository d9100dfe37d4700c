package history

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/babarot/rsycle/internal/core"
	"github.com/samber/lo"
)

// FileName is the name of the relocation log inside the bin directory
const FileName = ".log"

// Record maps an original path to the path it was relocated to in the bin
type Record struct {
	Original  string
	Relocated string
}

// Timestamp returns the relocation time embedded in the relocated path
func (r Record) Timestamp() (int64, bool) {
	_, secs, ok := core.ParseEntryName(filepath.Base(r.Relocated))
	return secs, ok
}

// Log is the append-only relocation log.
// Rows are CSV encoded (original, relocated) pairs without a header.
type Log struct {
	path string
}

// New returns a Log persisted at path
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the location of the log file
func (l *Log) Path() string {
	return l.path
}

// Append writes one record and syncs it to stable storage before returning.
// The record is written with a single write call so concurrent readers never
// observe half a row.
func (l *Log) Append(original, relocated string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{original, relocated}); err != nil {
		return core.NewOpError("append", l.path, fmt.Errorf("%w: %w", core.ErrLogWrite, err))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return core.NewOpError("append", l.path, fmt.Errorf("%w: %w", core.ErrLogWrite, err))
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return core.NewOpError("append", l.path, fmt.Errorf("%w: %w", core.ErrLogWrite, err))
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return core.NewOpError("append", l.path, fmt.Errorf("%w: %w", core.ErrLogWrite, err))
	}
	if err := f.Sync(); err != nil {
		return core.NewOpError("append", l.path, fmt.Errorf("%w: %w", core.ErrLogWrite, err))
	}
	if err := f.Close(); err != nil {
		return core.NewOpError("append", l.path, fmt.Errorf("%w: %w", core.ErrLogWrite, err))
	}

	slog.Debug("relocation recorded", "original", original, "relocated", relocated)
	return nil
}

// Records returns every record in log order. A missing log has no records.
func (l *Log) Records() ([]Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, core.NewOpError("read", l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.NewOpError("read", l.path, err)
		}
		records = append(records, Record{Original: row[0], Relocated: row[1]})
	}
	return records, nil
}

// FindByOriginal returns every relocated path recorded for original, oldest first
func (l *Log) FindByOriginal(original string) ([]string, error) {
	records, err := l.Records()
	if err != nil {
		return nil, err
	}
	matched := lo.Filter(records, func(r Record, _ int) bool {
		return r.Original == original
	})
	return lo.Map(matched, func(r Record, _ int) string {
		return r.Relocated
	}), nil
}

// FindByRelocated returns the original path recorded for relocated.
// When several records match, the last one wins.
func (l *Log) FindByRelocated(relocated string) (string, error) {
	index, err := l.Index()
	if err != nil {
		return "", err
	}
	original, ok := index[relocated]
	if !ok {
		return "", core.NewOpError("lookup", relocated, core.ErrNoSuchRecord)
	}
	return original, nil
}

// Index maps each relocated path to its original path, later records winning
func (l *Log) Index() (map[string]string, error) {
	records, err := l.Records()
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(records))
	for _, r := range records {
		index[r.Relocated] = r.Original
	}
	return index, nil
}

// Latest returns the relocated path with the numerically largest embedded
// timestamp among the records for original. Log order does not matter.
func (l *Log) Latest(original string) (string, error) {
	candidates, err := l.candidates(original)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", core.NewOpError("lookup", original, core.ErrNoSuchRecord)
	}
	latest := lo.MaxBy(candidates, func(a, b candidate) bool {
		return a.secs > b.secs
	})
	return latest.path, nil
}

// Candidates returns the relocated paths recorded for original, newest
// embedded timestamp first. Paths without a timestamp suffix are skipped.
func (l *Log) Candidates(original string) ([]string, error) {
	candidates, err := l.candidates(original)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, core.NewOpError("lookup", original, core.ErrNoSuchRecord)
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		switch {
		case a.secs > b.secs:
			return -1
		case a.secs < b.secs:
			return 1
		}
		return 0
	})
	return lo.Map(candidates, func(c candidate, _ int) string {
		return c.path
	}), nil
}

type candidate struct {
	path string
	secs int64
}

func (l *Log) candidates(original string) ([]candidate, error) {
	relocated, err := l.FindByOriginal(original)
	if err != nil {
		return nil, err
	}
	var candidates []candidate
	for _, path := range relocated {
		secs, ok := Record{Original: original, Relocated: path}.Timestamp()
		if !ok {
			slog.Warn("skipping record without timestamp suffix", "relocated", path)
			continue
		}
		candidates = append(candidates, candidate{path: path, secs: secs})
	}
	return candidates, nil
}

// Truncate discards every record
func (l *Log) Truncate() error {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return core.NewOpError("truncate", l.path, fmt.Errorf("%w: %w", core.ErrLogWrite, err))
	}
	defer f.Close()
	if err := f.Sync(); err != nil {
		return core.NewOpError("truncate", l.path, fmt.Errorf("%w: %w", core.ErrLogWrite, err))
	}
	slog.Debug("relocation log truncated", "path", l.path)
	return nil
}
