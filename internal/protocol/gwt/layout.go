package gwt

import (
	"fmt"
	"time"

	"github.com/danmuck/skemawire/internal/protocol/arena"
	"github.com/danmuck/skemawire/internal/protocol/stream"
)

// FieldKind is the primitive read performed for one field.
type FieldKind int

const (
	KindInt FieldKind = iota + 1
	KindDouble
	KindBool
	KindString
	KindObject
	KindEpochMinutes
)

func (k FieldKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindEpochMinutes:
		return "epoch_minutes"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Slot holds one decoded field. Unnamed slots are opaque: read for alignment,
// kept for future projection.
type Slot struct {
	Index int
	Name  string
	Kind  FieldKind
	Int   int64
	Float float64
	Bool  bool
	Str   stream.NullString
	Obj   arena.Handle
	Time  time.Time
}

func (s Slot) Opaque() bool {
	return s.Name == ""
}

type fieldSpec struct {
	name string
	kind FieldKind
}

func named(name string, kind FieldKind) fieldSpec {
	return fieldSpec{name: name, kind: kind}
}

func opaque(kind FieldKind) fieldSpec {
	return fieldSpec{kind: kind}
}

func (f fieldSpec) label() string {
	if f.name == "" {
		return f.kind.String()
	}
	return f.name
}

// layout is a fixed field read order for one class.
type layout struct {
	name   string
	fields []fieldSpec
	index  map[string]int
}

func newLayout(name string, fields ...fieldSpec) *layout {
	l := &layout{name: name, fields: fields, index: make(map[string]int)}
	for i, f := range fields {
		if f.name == "" {
			continue
		}
		if _, dup := l.index[f.name]; dup {
			panic(fmt.Sprintf("gwt: layout %s declares field %q twice", name, f.name))
		}
		l.index[f.name] = i
	}
	return l
}

// withKind copies l, changing the read kind of the named fields.
func (l *layout) withKind(name string, kind FieldKind, fields ...string) *layout {
	out := make([]fieldSpec, len(l.fields))
	copy(out, l.fields)
	for _, f := range fields {
		i, ok := l.index[f]
		if !ok {
			panic(fmt.Sprintf("gwt: layout %s has no field %q", l.name, f))
		}
		out[i].kind = kind
	}
	return newLayout(name, out...)
}

func (l *layout) Len() int {
	return len(l.fields)
}

func concat(parts ...[]fieldSpec) []fieldSpec {
	var out []fieldSpec
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Struct is the generic decoded form of a layout-driven class.
type Struct struct {
	TypeID TypeID
	Class  string
	Slots  []Slot
	layout *layout
}

func (s *Struct) Type() TypeID { return s.TypeID }

// Slot looks up a named field.
func (s *Struct) Slot(name string) (Slot, bool) {
	if s.layout == nil {
		return Slot{}, false
	}
	i, ok := s.layout.index[name]
	if !ok {
		return Slot{}, false
	}
	return s.Slots[i], true
}

// Opaque returns the unnamed slots in read order.
func (s *Struct) Opaque() []Slot {
	var out []Slot
	for _, slot := range s.Slots {
		if slot.Opaque() {
			out = append(out, slot)
		}
	}
	return out
}

func (s *Struct) must(name string) Slot {
	slot, ok := s.Slot(name)
	if !ok {
		panic(fmt.Sprintf("gwt: %s has no field %q", s.Class, name))
	}
	return slot
}

func (s *Struct) str(name string) stream.NullString { return s.must(name).Str }
func (s *Struct) num(name string) int64              { return s.must(name).Int }
func (s *Struct) dbl(name string) float64            { return s.must(name).Float }
func (s *Struct) obj(name string) arena.Handle       { return s.must(name).Obj }
