package models

// Buffer is an append-only sequence capped at a maximum length.
// Once the cap is exceeded the oldest entries are dropped first.
type Buffer[T any] struct {
	items []T
	max   int
}

// NewBuffer creates a buffer holding at most max items. A max <= 0 means unbounded.
func NewBuffer[T any](max int) *Buffer[T] {
	return &Buffer[T]{max: max}
}

// Append adds items to the end, evicting from the front past the cap
func (b *Buffer[T]) Append(items ...T) {
	b.items = append(b.items, items...)
	if b.max > 0 && len(b.items) > b.max {
		drop := len(b.items) - b.max
		kept := make([]T, b.max)
		copy(kept, b.items[drop:])
		b.items = kept
	}
}

// Items returns a copy of the current contents, oldest first
func (b *Buffer[T]) Items() []T {
	out := make([]T, len(b.items))
	copy(out, b.items)
	return out
}

// Last returns the newest item
func (b *Buffer[T]) Last() (T, bool) {
	var zero T
	if len(b.items) == 0 {
		return zero, false
	}
	return b.items[len(b.items)-1], true
}

// SetLast replaces the newest item
func (b *Buffer[T]) SetLast(item T) bool {
	if len(b.items) == 0 {
		return false
	}
	b.items[len(b.items)-1] = item
	return true
}

// Len returns the number of items held
func (b *Buffer[T]) Len() int {
	return len(b.items)
}

// Cap returns the configured maximum (0 when unbounded)
func (b *Buffer[T]) Cap() int {
	if b.max < 0 {
		return 0
	}
	return b.max
}

// Clone returns an independent copy
func (b *Buffer[T]) Clone() *Buffer[T] {
	return &Buffer[T]{items: b.Items(), max: b.max}
}
