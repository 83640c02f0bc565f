package envelope

import (
	"errors"
	"testing"

	"github.com/danmuck/skemawire/internal/protocol"
	"github.com/danmuck/skemawire/internal/testutil/testlog"
	"github.com/danmuck/skemawire/internal/testutil/wiretest"
)

func TestParseSplitsTrailerByPosition(t *testing.T) {
	testlog.Start(t)
	env, err := Parse([]byte(`//OK[3,0,1,["a/1","b"],0,7]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if env.Version != 7 || env.Flags != 0 {
		t.Fatalf("unexpected metadata version=%d flags=%d", env.Version, env.Flags)
	}
	values := env.Values()
	if len(values) != 3 || values[0] != 3 || values[2] != 1 {
		t.Fatalf("unexpected values: %v", values)
	}
	strs := env.Strings()
	if len(strs) != 2 || strs[0] != "a/1" || strs[1] != "b" {
		t.Fatalf("unexpected strings: %v", strs)
	}
}

func TestParseMapsLiteralsToIntegers(t *testing.T) {
	testlog.Start(t)
	env, err := Parse([]byte("  //OK[true,false,null,2.5,[],0,7]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := env.Values()
	want := []float64{1, 0, 0, 2.5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestParseRejectsUnknownPrefix(t *testing.T) {
	testlog.Start(t)
	for _, raw := range []string{`[1,[],0,7]`, `//XX[1,[],0,7]`, ``, `//O`} {
		_, err := Parse([]byte(raw))
		if !errors.Is(err, protocol.ErrMalformedEnvelope) {
			t.Fatalf("%q: expected ErrMalformedEnvelope, got %v", raw, err)
		}
		if !errors.Is(err, protocol.ErrBadPrefix) {
			t.Fatalf("%q: expected ErrBadPrefix, got %v", raw, err)
		}
		if errors.Is(err, protocol.ErrExceptionResponse) {
			t.Fatalf("%q: malformed prefix must not be an exception", raw)
		}
	}
}

func TestParseExceptionCarriesStrings(t *testing.T) {
	testlog.Start(t)
	b := wiretest.NewBuilder()
	b.Object("com.google.gwt.user.client.rpc.IncompatibleRemoteServiceException/3936916533").Str("session expired")
	_, err := Parse(b.Exception())
	if !errors.Is(err, protocol.ErrExceptionResponse) {
		t.Fatalf("expected ErrExceptionResponse, got %v", err)
	}
	if errors.Is(err, protocol.ErrMalformedEnvelope) {
		t.Fatalf("exception must be distinct from envelope error")
	}
	var exc *protocol.ExceptionError
	if !errors.As(err, &exc) {
		t.Fatalf("expected ExceptionError, got %T", err)
	}
	if len(exc.Strings) != 2 || exc.Strings[1] != "session expired" {
		t.Fatalf("unexpected exception strings: %v", exc.Strings)
	}
}

func TestParseExceptionWithUnparseableBody(t *testing.T) {
	testlog.Start(t)
	_, err := Parse([]byte(`//EX not json`))
	var exc *protocol.ExceptionError
	if !errors.As(err, &exc) {
		t.Fatalf("expected ExceptionError, got %v", err)
	}
	if exc.Payload != " not json" || exc.Strings != nil {
		t.Fatalf("unexpected exception: %+v", exc)
	}
}

func TestParseMalformedBodies(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"not json":         `//OK[1,2`,
		"not array":        `//OK{"a":1}`,
		"too short":        `//OK[0,7]`,
		"no string table":  `//OK[1,2,0,7]`,
		"string in values": `//OK["x",[],0,7]`,
		"bad table entry":  `//OK[1,[1],0,7]`,
		"fraction version": `//OK[1,[],0,7.5]`,
		"string flags":     `//OK[1,[],"0",7]`,
	}
	for name, raw := range cases {
		_, err := Parse([]byte(raw))
		if !errors.Is(err, protocol.ErrMalformedEnvelope) {
			t.Fatalf("%s: expected ErrMalformedEnvelope, got %v", name, err)
		}
		if errors.Is(err, protocol.ErrBadPrefix) {
			t.Fatalf("%s: prefix was valid, got %v", name, err)
		}
	}
}

func TestEnvelopeIsImmutable(t *testing.T) {
	testlog.Start(t)
	env, err := Parse([]byte(`//OK[5,["s"],0,7]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	values := env.Values()
	values[0] = 99
	strs := env.Strings()
	strs[0] = "mutated"
	if env.Values()[0] != 5 || env.Strings()[0] != "s" {
		t.Fatalf("envelope mutated through accessor copies")
	}
}

func TestCursorStartsAtEnd(t *testing.T) {
	testlog.Start(t)
	b := wiretest.NewBuilder()
	b.Int(10).Int(20).Str("x")
	env, err := Parse(b.Payload())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c := env.Cursor()
	if c.Position() != env.Len() || env.Len() != 3 {
		t.Fatalf("unexpected start position=%d len=%d", c.Position(), env.Len())
	}
	v, _ := c.PopInt()
	if v != 10 {
		t.Fatalf("expected first read 10, got %d", v)
	}
	_, _ = c.PopInt()
	s, err := c.PopString()
	if err != nil || s.String != "x" {
		t.Fatalf("expected x, got %+v err=%v", s, err)
	}
}
