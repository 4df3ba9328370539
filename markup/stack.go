package markup

import "slices"

// Stack is a value stack with a default that is never popped.
//
// Push returns the value that was current before the push; Pop restores it.
// Popping an empty stack is a no-op, which tolerates unbalanced closing tags.
type Stack[T any] struct {
	def   T
	items []T
}

// NewStack returns a stack whose current value is def.
func NewStack[T any](def T) Stack[T] {
	return Stack[T]{def: def}
}

// Current returns the top of the stack, or the default.
func (s *Stack[T]) Current() T {
	if n := len(s.items); n > 0 {
		return s.items[n-1]
	}
	return s.def
}

// Push makes v current and returns the prior value.
func (s *Stack[T]) Push(v T) T {
	prior := s.Current()
	s.items = append(s.items, v)
	return prior
}

// Pop removes the top value and returns the value now current. It
// reports false when only the default was left.
func (s *Stack[T]) Pop() (T, bool) {
	n := len(s.items)
	if n == 0 {
		return s.def, false
	}
	s.items = s.items[:n-1]
	return s.Current(), true
}

// Depth returns the number of pushed values.
func (s *Stack[T]) Depth() int {
	return len(s.items)
}

// Default returns the bottom value.
func (s *Stack[T]) Default() T {
	return s.def
}

// Reset empties the stack and sets a new default.
func (s *Stack[T]) Reset(def T) {
	s.def = def
	s.items = s.items[:0]
}

// Clone returns an independent copy.
func (s *Stack[T]) Clone() Stack[T] {
	return Stack[T]{def: s.def, items: slices.Clone(s.items)}
}
