package skema

import (
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/danmuck/skemawire/internal/protocol"
	"github.com/danmuck/skemawire/internal/protocol/arena"
	"github.com/danmuck/skemawire/internal/protocol/gwt"
	"github.com/danmuck/skemawire/internal/protocol/stream"
)

// Lesson is one projected calendar entry.
type Lesson struct {
	ID        int64     `json:"id,omitempty"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Subject   string    `json:"subject"`
	ClassName string    `json:"class_name,omitempty"`
	Rooms     []string  `json:"rooms"`
	Staff     []string  `json:"staff"`
	Remark    *string   `json:"remark,omitempty"`
	Planner   string    `json:"planner,omitempty"`
	Notes     []Note    `json:"notes,omitempty"`
}

// Note is a schedule note matched to a lesson by date and class.
type Note struct {
	ID        int64     `json:"id"`
	ClassName string    `json:"class_name"`
	Date      time.Time `json:"date"`
	Text      string    `json:"text,omitempty"`
	HTML      string    `json:"html,omitempty"`
}

// Project maps the root of a schedule graph to lessons in wire order.
// The root must be a list of events or a schedule wrapping one.
func Project(g *gwt.Graph) ([]Lesson, error) {
	items, err := lessonHandles(g)
	if err != nil {
		return nil, err
	}
	notes := notesByKey(g)

	lessons := make([]Lesson, 0, len(items))
	for i, h := range items {
		if h.IsNil() {
			continue
		}
		ev, ok := object[*gwt.Event](g, h)
		if !ok {
			return nil, mismatch(fmt.Sprintf("lessons[%d]", i), gwt.TypeEvent, g.TypeOf(h))
		}
		lesson, err := projectEvent(g, ev)
		if err != nil {
			return nil, fmt.Errorf("lessons[%d]: %w", i, err)
		}
		if !lesson.Start.IsZero() {
			lesson.Notes = notes[noteKey{day: dayOf(lesson.Start, g.Location), class: lesson.ClassName}]
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

func lessonHandles(g *gwt.Graph) ([]arena.Handle, error) {
	if g.Root.IsNil() {
		return nil, nil
	}
	root, _ := g.RootObject()
	switch r := root.(type) {
	case *gwt.List:
		return r.Items, nil
	case *gwt.Schedule:
		if r.Lessons.IsNil() {
			return nil, nil
		}
		items, ok := g.ListItems(r.Lessons)
		if !ok {
			return nil, mismatch("schedule.lessons", gwt.TypeList, g.TypeOf(r.Lessons))
		}
		return items, nil
	default:
		return nil, &protocol.TypeMismatchError{Field: "root", Want: "list or schedule", Got: g.TypeOf(g.Root).String()}
	}
}

func projectEvent(g *gwt.Graph, ev *gwt.Event) (Lesson, error) {
	rooms, err := names(g, ev.Rooms, "rooms", func(obj gwt.Object) (stream.NullString, bool) {
		r, ok := obj.(*gwt.Room)
		if !ok {
			return stream.NullString{}, false
		}
		return r.Name, true
	}, gwt.TypeRoom)
	if err != nil {
		return Lesson{}, err
	}
	staff, err := names(g, ev.Staff, "staff", func(obj gwt.Object) (stream.NullString, bool) {
		s, ok := obj.(*gwt.Staff)
		if !ok {
			return stream.NullString{}, false
		}
		return s.Name, true
	}, gwt.TypeStaff)
	if err != nil {
		return Lesson{}, err
	}

	l := Lesson{
		Start:     ev.Start,
		End:       ev.End,
		Subject:   text(ev.Subject),
		ClassName: className(g, ev.Activities),
		Rooms:     rooms,
		Staff:     staff,
		Planner:   text(ev.Planner),
	}
	if id, ok := g.IntAt(ev.LessonID); ok {
		l.ID = id
	}
	if ev.Remark.Valid {
		remark := norm.NFC.String(ev.Remark.String)
		l.Remark = &remark
	}
	return l, nil
}

// names flattens a list of name-bearing objects, skipping nulls and absent names.
func names(g *gwt.Graph, h arena.Handle, field string, name func(gwt.Object) (stream.NullString, bool), want gwt.TypeID) ([]string, error) {
	out := []string{}
	if h.IsNil() {
		return out, nil
	}
	items, ok := g.ListItems(h)
	if !ok {
		return nil, mismatch(field, gwt.TypeList, g.TypeOf(h))
	}
	for i, item := range items {
		if item.IsNil() {
			continue
		}
		obj, _ := g.Get(item)
		n, ok := name(obj)
		if !ok {
			return nil, mismatch(fmt.Sprintf("%s[%d]", field, i), want, g.TypeOf(item))
		}
		if n.Valid {
			out = append(out, norm.NFC.String(n.String))
		}
	}
	return out, nil
}

// className is the code of the first activity that has one.
func className(g *gwt.Graph, h arena.Handle) string {
	items, ok := g.ListItems(h)
	if !ok {
		return ""
	}
	for _, item := range items {
		if a, ok := object[*gwt.Activity](g, item); ok && a.Code.Valid && a.Code.String != "" {
			return norm.NFC.String(a.Code.String)
		}
	}
	return ""
}

type noteKey struct {
	day   string
	class string
}

func notesByKey(g *gwt.Graph) map[noteKey][]Note {
	out := make(map[noteKey][]Note)
	for _, h := range g.OfType(gwt.TypeNote) {
		n, ok := object[*gwt.Note](g, h)
		if !ok || n.Date.IsZero() {
			continue
		}
		note := Note{
			ID:        n.ID,
			ClassName: text(n.ClassName),
			Date:      n.Date,
			Text:      text(n.Text),
			HTML:      text(n.HTML),
		}
		key := noteKey{day: dayOf(n.Date, g.Location), class: note.ClassName}
		out[key] = append(out[key], note)
	}
	return out
}

func dayOf(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(time.DateOnly)
}

func text(s stream.NullString) string {
	if !s.Valid {
		return ""
	}
	return norm.NFC.String(s.String)
}

func object[T gwt.Object](g *gwt.Graph, h arena.Handle) (T, bool) {
	var zero T
	obj, ok := g.Get(h)
	if !ok {
		return zero, false
	}
	v, ok := obj.(T)
	return v, ok
}

func mismatch(field string, want, got gwt.TypeID) error {
	return &protocol.TypeMismatchError{Field: field, Want: want.String(), Got: got.String()}
}
