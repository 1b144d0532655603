// Package tabhistory records the order tabs were activated in, so closing the
// active tab can fall back to the one used before it.
package tabhistory

import "slices"

// Stack is a most-recent-first list of tab references without duplicates.
type Stack[T comparable] struct {
	items []T
}

// New returns an empty stack.
func New[T comparable]() *Stack[T] {
	return &Stack[T]{}
}

// Push makes tab the most recent entry, dropping any earlier occurrence.
func (s *Stack[T]) Push(tab T) {
	s.items = slices.DeleteFunc(s.items, func(t T) bool { return t == tab })
	s.items = slices.Insert(s.items, 0, tab)
}

// Remove drops tab wherever it is. It reports whether tab was present.
func (s *Stack[T]) Remove(tab T) bool {
	n := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(t T) bool { return t == tab })
	return len(s.items) != n
}

// Current returns the most recent entry, or false when empty.
func (s *Stack[T]) Current() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[0], true
}

// Len returns the number of remembered tabs.
func (s *Stack[T]) Len() int { return len(s.items) }

// Items returns a copy of the entries, most recent first.
func (s *Stack[T]) Items() []T { return slices.Clone(s.items) }
