// Package envelope splits a raw GWT-RPC response into its flat value sequence,
// string table and metadata using fixed positional rules only.
package envelope

import (
	"bytes"
	"fmt"
	"math"

	"github.com/danmuck/skemawire/internal/protocol"
	"github.com/danmuck/skemawire/internal/protocol/stream"
	"github.com/tidwall/gjson"
)

const (
	PrefixOK        = "//OK"
	PrefixException = "//EX"

	// trailer layout, counted from the end of the top-level array
	trailerVersion = 1
	trailerFlags   = 2
	trailerStrings = 3
)

// Envelope is immutable once parsed and owned by a single decode.
type Envelope struct {
	values  []float64
	strings []string
	Version int
	Flags   int
}

// Parse accepts a //OK payload. A //EX payload yields *protocol.ExceptionError;
// anything else yields *protocol.EnvelopeError.
func Parse(raw []byte) (Envelope, error) {
	content := bytes.TrimSpace(raw)
	if len(content) < len(PrefixOK) {
		return Envelope{}, &protocol.EnvelopeError{Reason: "payload shorter than status prefix", Err: protocol.ErrBadPrefix}
	}
	prefix := string(content[:len(PrefixOK)])
	body := content[len(PrefixOK):]
	switch prefix {
	case PrefixOK:
		return parseBody(body)
	case PrefixException:
		exc := &protocol.ExceptionError{Payload: string(body)}
		if env, err := parseBody(body); err == nil {
			exc.Strings = env.Strings()
		}
		return Envelope{}, exc
	default:
		return Envelope{}, &protocol.EnvelopeError{
			Reason: fmt.Sprintf("status prefix %q", prefix),
			Err:    protocol.ErrBadPrefix,
		}
	}
}

func parseBody(body []byte) (Envelope, error) {
	if !gjson.ValidBytes(body) {
		return Envelope{}, &protocol.EnvelopeError{Reason: "body is not a valid JSON array"}
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return Envelope{}, &protocol.EnvelopeError{Reason: "body is not an array"}
	}
	items := root.Array()
	if len(items) < trailerStrings {
		return Envelope{}, &protocol.EnvelopeError{Reason: fmt.Sprintf("array too short: %d entries", len(items))}
	}

	version, err := integerAt(items, trailerVersion, "version")
	if err != nil {
		return Envelope{}, err
	}
	flags, err := integerAt(items, trailerFlags, "flags")
	if err != nil {
		return Envelope{}, err
	}
	table := items[len(items)-trailerStrings]
	if !table.IsArray() {
		return Envelope{}, &protocol.EnvelopeError{Reason: "string table missing at fixed position"}
	}
	entries := table.Array()
	strs := make([]string, len(entries))
	for i, e := range entries {
		if e.Type != gjson.String {
			return Envelope{}, &protocol.EnvelopeError{Reason: fmt.Sprintf("string table entry %d has type %s", i, e.Type)}
		}
		strs[i] = e.String()
	}

	flat := items[:len(items)-trailerStrings]
	values := make([]float64, len(flat))
	for i, v := range flat {
		switch v.Type {
		case gjson.Number:
			values[i] = v.Num
		case gjson.True:
			values[i] = 1
		case gjson.False, gjson.Null:
			values[i] = 0
		default:
			return Envelope{}, &protocol.EnvelopeError{Reason: fmt.Sprintf("flat value %d has type %s", i, v.Type)}
		}
	}

	return Envelope{values: values, strings: strs, Version: version, Flags: flags}, nil
}

func integerAt(items []gjson.Result, fromEnd int, name string) (int, error) {
	v := items[len(items)-fromEnd]
	if v.Type != gjson.Number {
		return 0, &protocol.EnvelopeError{Reason: fmt.Sprintf("%s is %s, want number", name, v.Type)}
	}
	if v.Num != math.Trunc(v.Num) {
		return 0, &protocol.EnvelopeError{Reason: name, Err: protocol.ErrFractionalValue}
	}
	return int(v.Num), nil
}

// Len is the number of flat values.
func (e Envelope) Len() int {
	return len(e.values)
}

func (e Envelope) Values() []float64 {
	cp := make([]float64, len(e.values))
	copy(cp, e.values)
	return cp
}

func (e Envelope) Strings() []string {
	cp := make([]string, len(e.strings))
	copy(cp, e.strings)
	return cp
}

// Table builds a resolver over the string table.
func (e Envelope) Table() *stream.StringTable {
	return stream.NewStringTable(e.strings)
}

// Cursor returns a fresh cursor positioned at the end of the flat sequence.
func (e Envelope) Cursor() *stream.Cursor {
	return stream.NewCursor(e.Values(), e.Table())
}
