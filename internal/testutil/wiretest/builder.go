// Package wiretest builds synthetic GWT-RPC payloads for tests.
//
// Values are appended in the order the decoder reads them (an object marker first,
// then its fields). Payload reverses them into wire order, the way the server's
// append-then-reverse-read discipline lays them out.
package wiretest

import (
	"github.com/tidwall/sjson"
)

const DefaultVersion = 7

type Builder struct {
	reads   []float64
	strings []string
	index   map[string]int
	Version int
	Flags   int
}

func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int), Version: DefaultVersion}
}

// Intern adds s to the string table once and returns its 1-based index.
func (b *Builder) Intern(s string) int {
	if idx, ok := b.index[s]; ok {
		return idx
	}
	b.strings = append(b.strings, s)
	idx := len(b.strings)
	b.index[s] = idx
	return idx
}

func (b *Builder) Raw(v float64) *Builder {
	b.reads = append(b.reads, v)
	return b
}

func (b *Builder) Int(v int64) *Builder {
	return b.Raw(float64(v))
}

func (b *Builder) Double(v float64) *Builder {
	return b.Raw(v)
}

func (b *Builder) Bool(v bool) *Builder {
	if v {
		return b.Raw(1)
	}
	return b.Raw(0)
}

// Str appends a string reference.
func (b *Builder) Str(s string) *Builder {
	return b.Raw(float64(b.Intern(s)))
}

// NullStr appends the absent string sentinel.
func (b *Builder) NullStr() *Builder {
	return b.Raw(0)
}

// Object appends the marker for a new object of the given class signature.
func (b *Builder) Object(signature string) *Builder {
	return b.Raw(float64(b.Intern(signature)))
}

// Null appends the "no object" marker.
func (b *Builder) Null() *Builder {
	return b.Raw(0)
}

// BackRef appends a reference to the object with the given identity.
func (b *Builder) BackRef(identity int) *Builder {
	return b.Raw(float64(-(identity + 1)))
}

// Len is the number of flat values written so far.
func (b *Builder) Len() int {
	return len(b.reads)
}

// Values returns the flat sequence in wire order.
func (b *Builder) Values() []float64 {
	out := make([]float64, len(b.reads))
	for i, v := range b.reads {
		out[len(b.reads)-1-i] = v
	}
	return out
}

func (b *Builder) Strings() []string {
	cp := make([]string, len(b.strings))
	copy(cp, b.strings)
	return cp
}

// Body renders the top-level array without a status prefix.
func (b *Builder) Body() []byte {
	out := []byte("[]")
	for _, v := range b.Values() {
		out = mustAppend(out, v)
	}
	table := []byte("[]")
	for _, s := range b.strings {
		table = mustAppend(table, s)
	}
	out, err := sjson.SetRawBytes(out, "-1", table)
	if err != nil {
		panic(err)
	}
	out = mustAppend(out, b.Flags)
	out = mustAppend(out, b.Version)
	return out
}

// Payload renders a //OK response.
func (b *Builder) Payload() []byte {
	return append([]byte("//OK"), b.Body()...)
}

// Exception renders a //EX response with the same body.
func (b *Builder) Exception() []byte {
	return append([]byte("//EX"), b.Body()...)
}

func mustAppend(doc []byte, v any) []byte {
	out, err := sjson.SetBytes(doc, "-1", v)
	if err != nil {
		panic(err)
	}
	return out
}
