package gwt

import (
	"fmt"

	"github.com/danmuck/skemawire/internal/protocol"
	"github.com/danmuck/skemawire/internal/protocol/arena"
)

// readCount pops a collection size and bounds it by what is left on the cursor.
func readCount(d *Decoder, per int) (int, error) {
	n, err := d.cursor.PopInt()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", protocol.ErrNegativeCount, n)
	}
	if n > int64(d.cursor.Position()/per) {
		return 0, &protocol.CursorError{
			Position: d.cursor.Position(),
			Err:      fmt.Errorf("%w: count %d exceeds remaining values", protocol.ErrCursorUnderflow, n),
		}
	}
	return int(n), nil
}

func decodeList(d *Decoder, class string) (Object, error) {
	n, err := readCount(d, 1)
	if err != nil {
		return nil, err
	}
	items := make([]arena.Handle, n)
	for i := range items {
		h, err := d.ReadObject()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items[i] = h
	}
	return &List{Class: class, Items: items}, nil
}

func decodeMap(d *Decoder, class string) (Object, error) {
	n, err := readCount(d, 2)
	if err != nil {
		return nil, err
	}
	m := &Map{Class: class, Keys: make([]arena.Handle, n), Values: make([]arena.Handle, n)}
	for i := 0; i < n; i++ {
		if m.Keys[i], err = d.ReadObject(); err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		if m.Values[i], err = d.ReadObject(); err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
	}
	return m, nil
}

func decodeInteger(d *Decoder, _ string) (Object, error) {
	v, err := d.cursor.PopInt()
	if err != nil {
		return nil, err
	}
	return Int{Value: v}, nil
}

func decodeBoolean(d *Decoder, _ string) (Object, error) {
	v, err := d.cursor.PopBool()
	if err != nil {
		return nil, err
	}
	return Bool{Value: v}, nil
}

func decodeString(d *Decoder, _ string) (Object, error) {
	v, err := d.cursor.PopString()
	if err != nil {
		return nil, err
	}
	return String{Value: v}, nil
}

func decodeEnum(d *Decoder, class string) (Object, error) {
	ord, err := d.cursor.PopInt()
	if err != nil {
		return nil, err
	}
	if ord < 0 {
		return nil, fmt.Errorf("%w: enum ordinal %d", protocol.ErrTypeMismatch, ord)
	}
	return Enum{Class: class, Ordinal: ord}, nil
}
