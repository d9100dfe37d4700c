package engine

import (
	"iter"
	"time"

	"github.com/babarot/rsycle/internal/bin"
)

// Item is a held entry together with the path it was recycled from
type Item struct {
	bin.Entry

	// Original is empty when the relocation log has no record for the entry
	Original string
}

// Current returns where the item lives now
func (i Item) Current() string {
	return i.Path
}

// GetName returns the original base name
func (i Item) GetName() string {
	return i.Base
}

// GetPath returns the path inside the bin
func (i Item) GetPath() string {
	return i.Path
}

// GetDeletedAt returns when the item was recycled
func (i Item) GetDeletedAt() time.Time {
	return i.RecycledAt()
}

// List yields every managed entry in the bin with its original path.
// Names without a timestamp suffix are skipped. Each call re-reads the bin
// and the relocation log, so the sequence can be ranged over repeatedly.
func (e *Engine) List() iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		index, err := e.log.Index()
		if err != nil {
			yield(Item{}, err)
			return
		}
		for entry, err := range e.store.Enumerate() {
			if err != nil {
				yield(Item{}, err)
				return
			}
			if !entry.Managed {
				continue
			}
			if !yield(Item{Entry: entry, Original: index[entry.Path]}, nil) {
				return
			}
		}
	}
}

// Items collects List into a slice
func (e *Engine) Items() ([]Item, error) {
	var items []Item
	for item, err := range e.List() {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
