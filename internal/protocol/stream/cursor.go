// Package stream provides the back-to-front cursor over the flat value sequence.
package stream

import (
	"fmt"
	"math"

	"github.com/danmuck/skemawire/internal/protocol"
)

// Cursor pops values from the end of the flat sequence toward the start.
// It never looks ahead and never rewinds.
type Cursor struct {
	values []float64
	pos    int
	table  *StringTable
}

func NewCursor(values []float64, table *StringTable) *Cursor {
	if table == nil {
		table = NewStringTable(nil)
	}
	return &Cursor{values: values, pos: len(values), table: table}
}

// Position is the index of the next value to be consumed plus one; 0 means exhausted.
func (c *Cursor) Position() int {
	return c.pos
}

func (c *Cursor) Len() int {
	return len(c.values)
}

func (c *Cursor) Consumed() int {
	return len(c.values) - c.pos
}

func (c *Cursor) Table() *StringTable {
	return c.table
}

func (c *Cursor) PopRaw() (float64, error) {
	if c.pos <= 0 {
		return 0, &protocol.CursorError{Position: c.pos, Err: protocol.ErrCursorUnderflow}
	}
	c.pos--
	return c.values[c.pos], nil
}

// PopInt pops an integer-valued entry; fractional values are rejected.
func (c *Cursor) PopInt() (int64, error) {
	v, err := c.PopRaw()
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &protocol.CursorError{
			Position: c.pos,
			Err:      fmt.Errorf("%w: %v", protocol.ErrFractionalValue, v),
		}
	}
	return int64(v), nil
}

func (c *Cursor) PopBool() (bool, error) {
	v, err := c.PopRaw()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (c *Cursor) PopDouble() (float64, error) {
	return c.PopRaw()
}

// PopString pops a 1-based string table index; 0 yields an absent string.
func (c *Cursor) PopString() (NullString, error) {
	idx, err := c.PopInt()
	if err != nil {
		return NullString{}, err
	}
	return c.table.Resolve(idx)
}
