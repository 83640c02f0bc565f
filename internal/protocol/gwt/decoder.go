package gwt

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/skemawire/internal/protocol"
	"github.com/danmuck/skemawire/internal/protocol/arena"
	"github.com/danmuck/skemawire/internal/protocol/envelope"
	"github.com/danmuck/skemawire/internal/protocol/stream"
)

const DefaultMaxDepth = 512

type Option func(*Decoder)

// WithLocation sets the zone used to interpret field-encoded timestamps.
func WithLocation(loc *time.Location) Option {
	return func(d *Decoder) {
		if loc != nil {
			d.loc = loc
		}
	}
}

func WithMaxDepth(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.maxDepth = n
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(d *Decoder) {
		d.log = l
	}
}

// Decoder runs one decode over one envelope. It is not safe for concurrent use
// and must not be reused.
type Decoder struct {
	cursor   *stream.Cursor
	objects  *arena.Arena[Object]
	reg      *Registry
	loc      *time.Location
	maxDepth int
	depth    int
	log      zerolog.Logger
}

func NewDecoder(env envelope.Envelope, reg *Registry, opts ...Option) *Decoder {
	return newDecoder(env.Cursor(), reg, opts...)
}

func newDecoder(c *stream.Cursor, reg *Registry, opts ...Option) *Decoder {
	if reg == nil {
		reg = DefaultRegistry()
	}
	d := &Decoder{
		cursor:   c,
		objects:  arena.New[Object](),
		reg:      reg,
		loc:      time.UTC,
		maxDepth: DefaultMaxDepth,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads the root object and requires the cursor to end at the start of
// the sequence.
func (d *Decoder) Decode() (*Graph, error) {
	root, err := d.ReadObject()
	if err != nil {
		return nil, err
	}
	if rem := d.cursor.Position(); rem != 0 {
		return nil, &protocol.TrailingValuesError{Remaining: rem}
	}
	g := &Graph{
		Root:     root,
		objects:  d.objects.Values(),
		Consumed: d.cursor.Consumed(),
		Strings:  d.cursor.Table().Entries(),
		Location: d.loc,
	}
	d.log.Debug().
		Int("objects", len(g.objects)).
		Int("consumed", g.Consumed).
		Str("root", g.TypeOf(root).String()).
		Msg("decode complete")
	return g, nil
}

// ReadObject pops an object marker and decodes what it refers to.
// A nil handle means the wire held a null.
func (d *Decoder) ReadObject() (arena.Handle, error) {
	pos := d.cursor.Position()
	marker, err := d.cursor.PopInt()
	if err != nil {
		return arena.Nil, err
	}
	switch {
	case marker == 0:
		return arena.Nil, nil
	case marker < 0:
		return d.objects.BackRef(marker)
	}

	sig, err := d.cursor.Table().Resolve(marker)
	if err != nil {
		return arena.Nil, err
	}
	entry, ok := d.reg.Lookup(sig.String)
	if !ok {
		return arena.Nil, &protocol.UnknownTypeError{Signature: sig.String, Position: pos}
	}
	if d.depth >= d.maxDepth {
		return arena.Nil, fmt.Errorf("%w: limit %d at %s", protocol.ErrDepthExceeded, d.maxDepth, entry.Class)
	}

	h := d.objects.Reserve()
	d.depth++
	obj, err := entry.Decode(d, entry.Class)
	d.depth--
	if err != nil {
		return arena.Nil, fmt.Errorf("%s: %w", shortName(entry.Class), err)
	}
	if err := d.objects.Fill(h, obj); err != nil {
		return arena.Nil, err
	}
	return h, nil
}

func (d *Decoder) Cursor() *stream.Cursor {
	return d.cursor
}

func (d *Decoder) Location() *time.Location {
	return d.loc
}

// Resolve returns a completed object. ok is false for nil handles and for
// objects still being decoded.
func (d *Decoder) Resolve(h arena.Handle) (Object, bool) {
	return d.objects.Resolve(h)
}

// readStruct reads every field of l in order.
func (d *Decoder) readStruct(id TypeID, class string, l *layout) (Struct, error) {
	slots := make([]Slot, len(l.fields))
	for i, fs := range l.fields {
		s := Slot{Index: i, Name: fs.name, Kind: fs.kind, Obj: arena.Nil}
		var err error
		switch fs.kind {
		case KindInt:
			s.Int, err = d.cursor.PopInt()
		case KindDouble:
			s.Float, err = d.cursor.PopDouble()
		case KindBool:
			s.Bool, err = d.cursor.PopBool()
		case KindString:
			s.Str, err = d.cursor.PopString()
		case KindObject:
			s.Obj, err = d.ReadObject()
		case KindEpochMinutes:
			var m int64
			if m, err = d.cursor.PopInt(); err != nil {
				break
			}
			s.Int = m
			if s.Time, err = MinutesTime(m); err == nil {
				s.Time = s.Time.In(d.loc)
			}
		default:
			err = fmt.Errorf("gwt: layout %s: unsupported kind %v", l.name, fs.kind)
		}
		if err != nil {
			return Struct{}, fmt.Errorf("field %d (%s): %w", i, fs.label(), err)
		}
		slots[i] = s
	}
	return Struct{TypeID: id, Class: class, Slots: slots, layout: l}, nil
}

// timeOf reads a timestamp-valued field: either an inline epoch-minutes value
// or a reference to a Timestamp object. Null yields the zero time.
func (d *Decoder) timeOf(s *Struct, name string) (time.Time, error) {
	slot := s.must(name)
	switch slot.Kind {
	case KindEpochMinutes:
		return slot.Time, nil
	case KindObject:
		if slot.Obj.IsNil() {
			return time.Time{}, nil
		}
		obj, ok := d.objects.Resolve(slot.Obj)
		if !ok {
			return time.Time{}, &protocol.TypeMismatchError{Field: shortName(s.Class) + "." + name, Want: TypeTimestamp.String(), Got: "incomplete object"}
		}
		ts, ok := obj.(Timestamp)
		if !ok {
			return time.Time{}, &protocol.TypeMismatchError{Field: shortName(s.Class) + "." + name, Want: TypeTimestamp.String(), Got: obj.Type().String()}
		}
		return ts.Time, nil
	default:
		return time.Time{}, &protocol.TypeMismatchError{Field: shortName(s.Class) + "." + name, Want: TypeTimestamp.String(), Got: slot.Kind.String()}
	}
}

// maybeTime is timeOf for fields that only sometimes carry a timestamp.
func (d *Decoder) maybeTime(s *Struct, name string) (time.Time, bool) {
	t, err := d.timeOf(s, name)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

func shortName(class string) string {
	for i := len(class) - 1; i >= 0; i-- {
		if class[i] == '.' {
			return class[i+1:]
		}
	}
	return class
}
