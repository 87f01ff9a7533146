// Package store holds the in-memory record store: the uniqueness-enforcing
// lists and the AddressBook aggregate that composes them.
//
// The store is single-writer. Callers that serve concurrent requests must
// serialise mutations themselves; contains-then-insert is not atomic here.
package store

import (
	"fmt"
	"slices"

	e "github.com/gartstein/connectify/internal/addressbook/errors"
	"github.com/gartstein/connectify/internal/addressbook/models"
	"github.com/google/uuid"
)

// Element is what a UniqueList can hold.
type Element[T any] interface {
	IsSame(other T) bool
	Equals(other T) bool
	Key() string
	Handle() uuid.UUID
	WithHandle(handle uuid.UUID) T
}

// UniqueList is an ordered list in which no two elements are IsSame.
// Every failed operation leaves contents and order unchanged.
type UniqueList[T Element[T]] struct {
	items       []T
	subscribers map[uint64]func(Change[T])
	nextSub     uint64
}

type (
	UniquePersonList  = UniqueList[models.Person]
	UniqueCompanyList = UniqueList[models.Company]
)

func NewUniquePersonList() *UniquePersonList {
	return &UniquePersonList{}
}

func NewUniqueCompanyList() *UniqueCompanyList {
	return &UniqueCompanyList{}
}

func (l *UniqueList[T]) indexOf(item T) int {
	return slices.IndexFunc(l.items, item.IsSame)
}

// Contains reports whether an element with the same identity as item exists.
func (l *UniqueList[T]) Contains(item T) bool {
	return l.indexOf(item) >= 0
}

// Add appends item. It fails with ErrDuplicate if the identity is taken.
func (l *UniqueList[T]) Add(item T) error {
	if l.Contains(item) {
		return fmt.Errorf("%w: %s", e.ErrDuplicate, item.Key())
	}
	l.items = append(l.items, item)
	l.notify(Change[T]{Kind: Added, Index: len(l.items) - 1, New: item})
	return nil
}

// SetElement replaces the element with target's identity by edited.
// It fails with ErrNotFound if target is absent and with ErrDuplicate if
// edited collides with an element other than target. When the identity is
// unchanged the stored handle is kept.
func (l *UniqueList[T]) SetElement(target, edited T) error {
	idx := l.indexOf(target)
	if idx < 0 {
		return fmt.Errorf("%w: %s", e.ErrNotFound, target.Key())
	}
	old := l.items[idx]
	if !old.IsSame(edited) && l.Contains(edited) {
		return fmt.Errorf("%w: %s", e.ErrDuplicate, edited.Key())
	}
	if old.IsSame(edited) {
		edited = edited.WithHandle(old.Handle())
	}
	l.items[idx] = edited
	l.notify(Change[T]{Kind: Replaced, Index: idx, Old: old, New: edited})
	return nil
}

// Remove deletes the element with item's identity, or fails with ErrNotFound.
func (l *UniqueList[T]) Remove(item T) error {
	idx := l.indexOf(item)
	if idx < 0 {
		return fmt.Errorf("%w: %s", e.ErrNotFound, item.Key())
	}
	old := l.items[idx]
	l.items = slices.Delete(l.items, idx, idx+1)
	l.notify(Change[T]{Kind: Removed, Index: idx, Old: old})
	return nil
}

// SetAll replaces the whole list. It fails with ErrDuplicateList if items
// holds two elements with the same identity.
func (l *UniqueList[T]) SetAll(items []T) error {
	if err := checkUnique(items); err != nil {
		return err
	}
	l.items = slices.Clone(items)
	l.notify(Change[T]{Kind: Reset})
	return nil
}

func checkUnique[T Element[T]](items []T) error {
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if items[i].IsSame(items[j]) {
				return fmt.Errorf("%w: %s", e.ErrDuplicateList, items[i].Key())
			}
		}
	}
	return nil
}

// Sort reorders the list stably by cmp.
func (l *UniqueList[T]) Sort(cmp func(a, b T) int) {
	slices.SortStableFunc(l.items, cmp)
	l.notify(Change[T]{Kind: Sorted})
}

// View returns the observable read-only view of the list.
func (l *UniqueList[T]) View() View[T] {
	return View[T]{list: l}
}

// Equals compares both lists element by element, in order.
func (l *UniqueList[T]) Equals(other *UniqueList[T]) bool {
	return slices.EqualFunc(l.items, other.items, func(a, b T) bool { return a.Equals(b) })
}
