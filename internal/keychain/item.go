package keychain

import (
	"time"

	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// unixTime converts a container timestamp in seconds; zero stays the zero time.
func unixTime(seconds int64) time.Time {
	if seconds == 0 {
		return time.Time{}
	}
	return time.Unix(seconds, 0).UTC()
}

type indexEntry[T any] struct {
	item   types.Item
	record T
}

// itemIndex keeps items in load order and by normalized UUID. A later record with the
// same UUID replaces the earlier one in place.
type itemIndex[T any] struct {
	order   []string
	entries map[string]indexEntry[T]
}

func newItemIndex[T any](capacity int) *itemIndex[T] {
	return &itemIndex[T]{
		order:   make([]string, 0, capacity),
		entries: make(map[string]indexEntry[T], capacity),
	}
}

func (x *itemIndex[T]) add(item types.Item, record T) {
	key := NormalizeUUID(item.UUID)
	if _, dup := x.entries[key]; !dup {
		x.order = append(x.order, key)
	}
	x.entries[key] = indexEntry[T]{item: item, record: record}
}

func (x *itemIndex[T]) items() []types.Item {
	out := make([]types.Item, 0, len(x.order))
	for _, key := range x.order {
		out = append(out, x.entries[key].item)
	}
	return out
}

func (x *itemIndex[T]) lookup(uuid string) (indexEntry[T], bool) {
	entry, ok := x.entries[NormalizeUUID(uuid)]
	return entry, ok
}
