package gwt

import (
	"time"

	"github.com/danmuck/skemawire/internal/protocol/arena"
)

// Graph is the result of a successful decode. Objects are indexed by identity
// in creation order; shared and circular references resolve to the same handle.
type Graph struct {
	Root     arena.Handle
	Consumed int
	Strings  []string
	Location *time.Location

	objects []Object
}

func (g *Graph) Len() int {
	return len(g.objects)
}

func (g *Graph) Get(h arena.Handle) (Object, bool) {
	if h.IsNil() || int(h) >= len(g.objects) {
		return nil, false
	}
	return g.objects[h], true
}

func (g *Graph) TypeOf(h arena.Handle) TypeID {
	obj, ok := g.Get(h)
	if !ok {
		return TypeUnknown
	}
	return obj.Type()
}

func (g *Graph) RootObject() (Object, bool) {
	return g.Get(g.Root)
}

// OfType returns handles of every object with the given type, in identity order.
func (g *Graph) OfType(id TypeID) []arena.Handle {
	var out []arena.Handle
	for i, obj := range g.objects {
		if obj != nil && obj.Type() == id {
			out = append(out, arena.Handle(i))
		}
	}
	return out
}

// Counts tallies objects per type.
func (g *Graph) Counts() map[TypeID]int {
	out := make(map[TypeID]int)
	for _, obj := range g.objects {
		if obj != nil {
			out[obj.Type()]++
		}
	}
	return out
}

// ListItems returns the items of a List handle; ok is false for anything else.
func (g *Graph) ListItems(h arena.Handle) ([]arena.Handle, bool) {
	obj, ok := g.Get(h)
	if !ok {
		return nil, false
	}
	l, ok := obj.(*List)
	if !ok {
		return nil, false
	}
	return l.Items, true
}

// StringAt returns the value of a String object handle.
func (g *Graph) StringAt(h arena.Handle) (string, bool) {
	obj, ok := g.Get(h)
	if !ok {
		return "", false
	}
	s, ok := obj.(String)
	if !ok || !s.Value.Valid {
		return "", false
	}
	return s.Value.String, true
}

// IntAt returns the value of an Integer object handle.
func (g *Graph) IntAt(h arena.Handle) (int64, bool) {
	obj, ok := g.Get(h)
	if !ok {
		return 0, false
	}
	i, ok := obj.(Int)
	if !ok {
		return 0, false
	}
	return i.Value, true
}
