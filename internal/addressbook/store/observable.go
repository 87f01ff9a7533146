package store

import (
	"iter"
	"slices"
)

// ChangeKind describes what a committed mutation did to a list.
type ChangeKind int

const (
	// Added means New was appended at Index.
	Added ChangeKind = iota + 1
	// Removed means Old was removed from Index.
	Removed
	// Replaced means Old at Index was replaced by New.
	Replaced
	// Reset means the whole list was swapped.
	Reset
	// Sorted means the list was reordered.
	Sorted
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Replaced:
		return "replaced"
	case Reset:
		return "reset"
	case Sorted:
		return "sorted"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after a mutation commits.
// Index, Old and New are only meaningful for Added, Removed and Replaced.
type Change[T any] struct {
	Kind  ChangeKind
	Index int
	Old   T
	New   T
}

// View is a live, read-only window onto a UniqueList. It has no mutating
// methods; all writes go through the owning list.
type View[T Element[T]] struct {
	list *UniqueList[T]
}

func (v View[T]) Len() int {
	return len(v.list.items)
}

// At returns the element at zero-based index i. It panics if i is out of range.
func (v View[T]) At(i int) T {
	return v.list.items[i]
}

// Items returns a snapshot copy of the elements in order.
func (v View[T]) Items() []T {
	return slices.Clone(v.list.items)
}

// All iterates the elements in order.
func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range v.list.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Subscribe registers fn for change notifications and returns a function
// that removes the subscription.
func (v View[T]) Subscribe(fn func(Change[T])) (unsubscribe func()) {
	l := v.list
	l.nextSub++
	id := l.nextSub
	if l.subscribers == nil {
		l.subscribers = make(map[uint64]func(Change[T]))
	}
	l.subscribers[id] = fn
	return func() {
		delete(l.subscribers, id)
	}
}

func (l *UniqueList[T]) notify(c Change[T]) {
	ids := make([]uint64, 0, len(l.subscribers))
	for id := range l.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := l.subscribers[id]; ok {
			fn(c)
		}
	}
}
