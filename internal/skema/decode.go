package skema

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/skemawire/internal/observability"
	"github.com/danmuck/skemawire/internal/protocol"
	"github.com/danmuck/skemawire/internal/protocol/envelope"
	"github.com/danmuck/skemawire/internal/protocol/gwt"
)

type Mode string

const (
	ModeSchedule    Mode = "schedule"
	ModeAssignments Mode = "assignments"
	ModeGraph       Mode = "graph"
)

func ParseMode(raw string) (Mode, bool) {
	switch Mode(raw) {
	case ModeSchedule, ModeAssignments, ModeGraph:
		return Mode(raw), true
	default:
		return "", false
	}
}

type Option func(*Decoder)

func WithRegistry(reg *gwt.Registry) Option {
	return func(d *Decoder) {
		if reg != nil {
			d.reg = reg
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(d *Decoder) {
		if loc != nil {
			d.loc = loc
		}
	}
}

func WithMaxDepth(n int) Option {
	return func(d *Decoder) {
		d.maxDepth = n
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(d *Decoder) {
		d.log = l
	}
}

// WithoutMetrics disables Prometheus recording.
func WithoutMetrics() Option {
	return func(d *Decoder) {
		d.metrics = false
	}
}

// Decoder runs raw payloads through envelope parsing, graph decoding and
// projection. It holds no per-payload state and is safe for concurrent use as
// long as its registry is not mutated.
type Decoder struct {
	reg      *gwt.Registry
	loc      *time.Location
	maxDepth int
	log      zerolog.Logger
	metrics  bool
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		reg:      gwt.DefaultRegistry(),
		loc:      time.UTC,
		maxDepth: gwt.DefaultMaxDepth,
		log:      log.With().Str("component", "skema").Logger(),
		metrics:  true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) Registry() *gwt.Registry {
	return d.reg
}

func (d *Decoder) DecodeGraph(raw []byte) (*gwt.Graph, error) {
	start, l := time.Now(), d.callLogger(ModeGraph)
	g, err := d.graph(l, raw)
	d.finish(l, ModeGraph, g, err, start)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// DecodeSchedule returns every lesson in the payload or a single terminal error.
func (d *Decoder) DecodeSchedule(raw []byte) ([]Lesson, error) {
	start, l := time.Now(), d.callLogger(ModeSchedule)
	g, err := d.graph(l, raw)
	var lessons []Lesson
	if err == nil {
		lessons, err = Project(g)
	}
	d.finish(l, ModeSchedule, g, err, start)
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

func (d *Decoder) DecodeAssignments(raw []byte) ([]Assignment, error) {
	start, l := time.Now(), d.callLogger(ModeAssignments)
	g, err := d.graph(l, raw)
	var out []Assignment
	if err == nil {
		out, err = ProjectAssignments(g)
	}
	d.finish(l, ModeAssignments, g, err, start)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// callLogger tags every line of one decode call with a fresh decode_id.
func (d *Decoder) callLogger(mode Mode) zerolog.Logger {
	return d.log.With().Str("decode_id", uuid.NewString()).Str("mode", string(mode)).Logger()
}

func (d *Decoder) graph(l zerolog.Logger, raw []byte) (*gwt.Graph, error) {
	env, err := envelope.Parse(raw)
	if err != nil {
		return nil, err
	}
	l.Debug().
		Int("values", env.Len()).
		Int("strings", len(env.Strings())).
		Int("version", env.Version).
		Int("flags", env.Flags).
		Msg("envelope parsed")
	return gwt.NewDecoder(env, d.reg,
		gwt.WithLocation(d.loc),
		gwt.WithMaxDepth(d.maxDepth),
		gwt.WithLogger(l),
	).Decode()
}

func (d *Decoder) finish(l zerolog.Logger, mode Mode, g *gwt.Graph, err error, start time.Time) {
	elapsed := time.Since(start)
	code := protocol.CodeOf(err)
	if err != nil {
		ev := l.Warn().Str("code", string(code)).Bool("retryable", protocol.Retryable(err))
		var ute *protocol.UnknownTypeError
		if errors.As(err, &ute) {
			ev = ev.Str("signature", ute.Signature)
			if d.metrics {
				observability.RecordUnknownType(gwt.ClassName(ute.Signature))
			}
		}
		ev.Err(err).Msg("decode failed")
	} else {
		l.Debug().Dur("elapsed", elapsed).Msg("decode ok")
	}
	if !d.metrics {
		return
	}
	objects := 0
	if err == nil && g != nil {
		objects = g.Len()
	}
	observability.RecordDecode(string(mode), string(code), objects, elapsed)
}

// DecodeSchedule decodes with a default Decoder.
func DecodeSchedule(raw []byte) ([]Lesson, error) {
	return NewDecoder().DecodeSchedule(raw)
}
