// Package arena is the decoder's object identity cache.
//
// Identities are assigned in creation order starting at 0. A slot is reserved before
// the object's fields are read so nested back-references to a still-incomplete
// object resolve to the same identity.
package arena

import (
	"errors"
	"fmt"

	"github.com/danmuck/skemawire/internal/protocol"
)

var (
	ErrSlotFilled  = errors.New("arena: slot already filled")
	ErrInvalidSlot = errors.New("arena: invalid slot")
)

// Handle is an index into the arena. Nil means "no object".
type Handle int

const Nil Handle = -1

func (h Handle) IsNil() bool {
	return h < 0
}

type slot[T any] struct {
	value  T
	filled bool
}

// Arena is append-only and owned by a single decode.
type Arena[T any] struct {
	slots   []slot[T]
	pending int
}

func New[T any]() *Arena[T] {
	return &Arena[T]{slots: make([]slot[T], 0, 64)}
}

// Reserve allocates the next identity without a value.
func (a *Arena[T]) Reserve() Handle {
	a.slots = append(a.slots, slot[T]{})
	a.pending++
	return Handle(len(a.slots) - 1)
}

// Fill completes a reserved slot. Each slot is filled exactly once.
func (a *Arena[T]) Fill(h Handle, v T) error {
	if h < 0 || int(h) >= len(a.slots) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, h)
	}
	if a.slots[h].filled {
		return fmt.Errorf("%w: %d", ErrSlotFilled, h)
	}
	a.slots[h] = slot[T]{value: v, filled: true}
	a.pending--
	return nil
}

// Resolve returns the slot value; ok is false while the slot is pending or h is out of range.
func (a *Arena[T]) Resolve(h Handle) (T, bool) {
	var zero T
	if h < 0 || int(h) >= len(a.slots) {
		return zero, false
	}
	s := a.slots[h]
	if !s.filled {
		return zero, false
	}
	return s.value, true
}

// BackRef converts a negative wire marker into an existing handle.
// Pending slots are valid targets; unallocated ones are not.
func (a *Arena[T]) BackRef(marker int64) (Handle, error) {
	if marker >= 0 {
		return Nil, fmt.Errorf("%w: marker %d is not a back-reference", ErrInvalidSlot, marker)
	}
	idx := -(marker + 1)
	if idx >= int64(len(a.slots)) {
		return Nil, &protocol.BackReferenceError{Marker: marker, Index: int(idx), Size: len(a.slots)}
	}
	return Handle(idx), nil
}

func (a *Arena[T]) Len() int {
	return len(a.slots)
}

// Pending counts reserved slots not yet filled.
func (a *Arena[T]) Pending() int {
	return a.pending
}

// Values returns the filled values in identity order; pending slots hold the zero value.
func (a *Arena[T]) Values() []T {
	out := make([]T, len(a.slots))
	for i, s := range a.slots {
		out[i] = s.value
	}
	return out
}
