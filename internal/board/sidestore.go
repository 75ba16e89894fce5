package board

import (
	"sort"

	"github.com/nhle/kanban-board/internal/model"
)

// SideStore holds per-task, per-column lists (comments, attachments,
// labels). An entry exists only while it is non-empty.
type SideStore[T any] struct {
	name    string
	entries map[model.SideKey][]T
}

// NewSideStore creates an empty store. name is used in log output.
func NewSideStore[T any](name string) *SideStore[T] {
	return &SideStore[T]{
		name:    name,
		entries: make(map[model.SideKey][]T),
	}
}

// Name returns the store name.
func (s *SideStore[T]) Name() string {
	return s.name
}

// Get returns a copy of the items under key.
func (s *SideStore[T]) Get(key model.SideKey) []T {
	return append([]T(nil), s.entries[key]...)
}

// Has reports whether key has an entry.
func (s *SideStore[T]) Has(key model.SideKey) bool {
	_, ok := s.entries[key]
	return ok
}

// Len returns the number of keys with an entry.
func (s *SideStore[T]) Len() int {
	return len(s.entries)
}

// Keys returns every key with an entry, sorted by task then column.
func (s *SideStore[T]) Keys() []model.SideKey {
	keys := make([]model.SideKey, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].TaskID != keys[j].TaskID {
			return keys[i].TaskID < keys[j].TaskID
		}
		return keys[i].ColumnID < keys[j].ColumnID
	})
	return keys
}

// Append adds items to the end of the list under key.
func (s *SideStore[T]) Append(key model.SideKey, items ...T) {
	if len(items) == 0 {
		return
	}
	next := append(s.Get(key), items...)
	s.entries[key] = next
}

// Set replaces the list under key. An empty list removes the entry.
func (s *SideStore[T]) Set(key model.SideKey, items []T) {
	if len(items) == 0 {
		delete(s.entries, key)
		return
	}
	s.entries[key] = append([]T(nil), items...)
}

// RemoveAt deletes the item at index under key. The entry is dropped when
// it becomes empty. Out-of-range indexes are ignored.
func (s *SideStore[T]) RemoveAt(key model.SideKey, index int) (T, bool) {
	var zero T
	items, ok := s.entries[key]
	if !ok || index < 0 || index >= len(items) {
		return zero, false
	}

	removed := items[index]
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:index]...)
	next = append(next, items[index+1:]...)
	s.Set(key, next)

	return removed, true
}

// Rekey renames the entry for taskID from one column to another. Nothing
// happens when the columns are equal or there is no entry to move. The
// list itself is carried over unchanged.
func (s *SideStore[T]) Rekey(taskID string, from, to model.ColumnID) bool {
	if from == to {
		return false
	}
	oldKey := model.KeyFor(taskID, from)
	items, ok := s.entries[oldKey]
	if !ok {
		return false
	}
	delete(s.entries, oldKey)
	s.entries[model.KeyFor(taskID, to)] = items
	return true
}
