package stream

import "github.com/danmuck/skemawire/internal/protocol"

// NullString is a string table reference that may be absent.
type NullString struct {
	String string
	Valid  bool
}

// Ptr returns nil for an absent string.
func (n NullString) Ptr() *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

// StringTable resolves 1-based indices; index 0 is the absent sentinel.
type StringTable struct {
	entries []string
}

func NewStringTable(entries []string) *StringTable {
	cp := make([]string, len(entries))
	copy(cp, entries)
	return &StringTable{entries: cp}
}

func (t *StringTable) Len() int {
	return len(t.entries)
}

// Resolve maps idx to a table entry. Negative or too-large indices fail.
func (t *StringTable) Resolve(idx int64) (NullString, error) {
	if idx == 0 {
		return NullString{}, nil
	}
	if idx < 0 || idx > int64(len(t.entries)) {
		return NullString{}, &protocol.StringIndexError{Index: idx, Size: len(t.entries)}
	}
	return NullString{String: t.entries[idx-1], Valid: true}, nil
}

// Entries returns a copy of the table.
func (t *StringTable) Entries() []string {
	cp := make([]string, len(t.entries))
	copy(cp, t.entries)
	return cp
}
