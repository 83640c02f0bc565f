package gwt

import (
	"errors"
	"testing"
	"time"

	"github.com/danmuck/skemawire/internal/protocol"
	"github.com/danmuck/skemawire/internal/testutil/testlog"
	"github.com/danmuck/skemawire/internal/testutil/wiretest"
)

var lessonStart = time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC)

func sampleEvent() wiretest.EventFields {
	return wiretest.EventFields{
		ClassName: "htxr24",
		Remark:    "Husk lommeregner",
		Subject:   "Matematik A",
		Planner:   "KBH",
		Rooms:     []wiretest.RoomFields{{ID: 1, Name: "A1.12"}, {ID: 2, Name: "A1.14"}},
		Staff:     []wiretest.StaffFields{{ID: 9, Name: "Jens Hansen"}},
		LessonID:  4711,
		Start:     lessonStart,
		End:       lessonStart.Add(95 * time.Minute),
	}
}

func TestDecodeEvent(t *testing.T) {
	testlog.Start(t)
	b := wiretest.NewBuilder()
	b.Event(sampleEvent())

	g, err := decodeBuilder(t, b, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ev, ok := mustGet(t, g, g.Root).(*Event)
	if !ok {
		t.Fatalf("expected event root, got %T", mustGet(t, g, g.Root))
	}
	if ev.Subject.String != "Matematik A" || ev.Remark.String != "Husk lommeregner" || ev.Planner.String != "KBH" {
		t.Fatalf("unexpected strings: %+v %+v %+v", ev.Subject, ev.Remark, ev.Planner)
	}
	if !ev.Start.Equal(lessonStart) || !ev.End.Equal(lessonStart.Add(95*time.Minute)) {
		t.Fatalf("unexpected times: %v - %v", ev.Start, ev.End)
	}
	rooms, _ := g.ListItems(ev.Rooms)
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	staff, _ := g.ListItems(ev.Staff)
	if len(staff) != 1 {
		t.Fatalf("expected 1 staff, got %d", len(staff))
	}
	if id, _ := g.IntAt(ev.LessonID); id != 4711 {
		t.Fatalf("expected lesson id 4711, got %d", id)
	}
	if len(ev.Slots) != eventLayout.Len() || len(ev.Opaque()) != 29 {
		t.Fatalf("expected %d slots with 29 opaque, got %d/%d", eventLayout.Len(), len(ev.Slots), len(ev.Opaque()))
	}
	if ev.Type() != TypeEvent {
		t.Fatalf("expected event type, got %v", ev.Type())
	}
}

func TestDecodeEventMinutesVariant(t *testing.T) {
	testlog.Start(t)
	fields := sampleEvent()
	fields.Minutes = true
	b := wiretest.NewBuilder()
	b.Event(fields)

	reg := DefaultRegistry()
	reg.Replace(ClassEvent, TypeEvent, EventMinutesRoutine())
	g, err := decodeBuilder(t, b, reg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ev := mustGet(t, g, g.Root).(*Event)
	if !ev.Start.Equal(lessonStart) {
		t.Fatalf("expected start %v, got %v", lessonStart, ev.Start)
	}
	slot, _ := ev.Slot("start")
	if slot.Kind != KindEpochMinutes || slot.Int != Minutes(lessonStart) {
		t.Fatalf("unexpected start slot: %+v", slot)
	}
}

func TestTimestampFieldTypeMismatch(t *testing.T) {
	testlog.Start(t)
	b := wiretest.NewBuilder()
	b.Object(wiretest.SigNote).Int(1).Str("htxr24").Int(0).Bool(false).
		Str("<p>x</p>").Str("x").
		NullStr().NullStr().Null().NullStr().Null().
		Integer(5).
		Null().Int(0).Int(0).NullStr()

	_, err := decodeBuilder(t, b, nil)
	var tme *protocol.TypeMismatchError
	if !errors.As(err, &tme) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if tme.Field != "SkemaNote2.date" || tme.Got != TypeInteger.String() {
		t.Fatalf("unexpected mismatch detail: %+v", tme)
	}
}

func TestDecodeNote(t *testing.T) {
	testlog.Start(t)
	b := wiretest.NewBuilder()
	b.Note(wiretest.NoteFields{ID: 3, ClassName: "htxr24", HTML: "<b>Lektier</b>", Text: "Lektier", Date: lessonStart})

	g, err := decodeBuilder(t, b, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	n := mustGet(t, g, g.Root).(*Note)
	if n.ID != 3 || n.ClassName.String != "htxr24" || n.HTML.String != "<b>Lektier</b>" || n.Text.String != "Lektier" {
		t.Fatalf("unexpected note: %+v", n)
	}
	if !n.Date.Equal(lessonStart) {
		t.Fatalf("expected note date %v, got %v", lessonStart, n.Date)
	}
}

func TestDecodeSchedule(t *testing.T) {
	testlog.Start(t)
	b := wiretest.NewBuilder()
	b.Schedule([]wiretest.EventFields{sampleEvent(), sampleEvent()}, []wiretest.NoteFields{{ID: 1, ClassName: "htxr24", Text: "x", Date: lessonStart}})

	g, err := decodeBuilder(t, b, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	s, ok := mustGet(t, g, g.Root).(*Schedule)
	if !ok {
		t.Fatalf("expected schedule root")
	}
	lessons, _ := g.ListItems(s.Lessons)
	if len(lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(lessons))
	}
	if len(g.OfType(TypeNote)) != 1 {
		t.Fatalf("expected 1 note, got %d", len(g.OfType(TypeNote)))
	}
}

func TestDecodeAssignmentDeadlineFallback(t *testing.T) {
	testlog.Start(t)
	due := time.Date(2025, time.April, 1, 23, 59, 0, 0, time.UTC)
	deadline := time.Date(2025, time.April, 2, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		task wiretest.TaskFields
		want time.Time
	}{
		{"due", wiretest.TaskFields{ID: 1, Due: due, Deadline: deadline}, due},
		{"deadline", wiretest.TaskFields{ID: 2, Deadline: deadline}, deadline},
		{"none", wiretest.TaskFields{ID: 3}, time.Time{}},
	}
	for _, tc := range cases {
		b := wiretest.NewBuilder()
		b.Assignment(wiretest.AssignmentFields{ContainerID: 77, Status: 0, Task: tc.task})
		g, err := decodeBuilder(t, b, nil)
		if err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		a := mustGet(t, g, g.Root).(*Assignment)
		task := mustGet(t, g, a.Task).(*AssignmentTask)
		if !task.Deadline.Equal(tc.want) {
			t.Fatalf("%s: expected deadline %v, got %v", tc.name, tc.want, task.Deadline)
		}
		if a.ContainerID != 77 {
			t.Fatalf("%s: expected container 77, got %d", tc.name, a.ContainerID)
		}
	}
}

func TestDecodeAssignmentFields(t *testing.T) {
	testlog.Start(t)
	submitted := time.Date(2025, time.March, 30, 18, 5, 0, 0, time.UTC)
	b := wiretest.NewBuilder()
	b.Assignment(wiretest.AssignmentFields{
		SubmittedAt: submitted,
		ContainerID: 12,
		Status:      2,
		Task: wiretest.TaskFields{
			ID: 5, ClassName: "htxr24", Description: "<p>Opgave</p>",
			BudgetHours: 2.5, SpentHours: 1.25, Week: 13,
			Subject: "Fysik B", Title: "Aflevering 4",
		},
		Evaluation: &wiretest.EvaluationFields{ID: 8, Date: submitted, Grade: "10"},
	})

	g, err := decodeBuilder(t, b, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	a := mustGet(t, g, g.Root).(*Assignment)
	if !a.SubmittedAt.Equal(submitted) {
		t.Fatalf("expected submitted %v, got %v", submitted, a.SubmittedAt)
	}
	task := mustGet(t, g, a.Task).(*AssignmentTask)
	if task.BudgetHours != 2.5 || task.SpentHours != 1.25 || task.Week != 13 {
		t.Fatalf("unexpected hours/week: %+v", task)
	}
	if task.Subject.String != "Fysik B" || task.Title.String != "Aflevering 4" {
		t.Fatalf("unexpected subject/title: %q %q", task.Subject.String, task.Title.String)
	}
	ev := mustGet(t, g, a.Evaluation).(*Evaluation)
	if ev.Grade.String != "10" {
		t.Fatalf("expected grade 10, got %q", ev.Grade.String)
	}
	if st := mustGet(t, g, a.Status).(Enum); st.Ordinal != 2 {
		t.Fatalf("expected status ordinal 2, got %d", st.Ordinal)
	}
}

func TestLayoutFieldCounts(t *testing.T) {
	testlog.Start(t)
	cases := map[*layout]int{
		scheduleLayout:       22,
		eventLayout:          38,
		eventMinutesLayout:   38,
		roomLayout:           3,
		staffLayout:          4,
		activityLayout:       5,
		noteLayout:           16,
		absenceCauseLayout:   6,
		deregistrationLayout: 4,
		absenceLayout:        5,
		studentRefLayout:     9,
		teachingRefLayout:    13,
		assignmentLayout:     12,
		assignmentTaskLayout: 20,
		evaluationLayout:     7,
		employeeLayout:       28,
		studentLayout:        39,
		courseSummaryLayout:  3,
	}
	for l, want := range cases {
		if l.Len() != want {
			t.Fatalf("layout %s: expected %d fields, got %d", l.name, want, l.Len())
		}
	}
}

func TestStructRoutineKeepsNamedSlots(t *testing.T) {
	testlog.Start(t)
	b := wiretest.NewBuilder()
	b.Object("dk.uddata.model.undervisningsplan.UndervisningsforloebResume/1").
		Str("Mekanik").UDate(lessonStart).Null()

	g, err := decodeBuilder(t, b, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	s, ok := mustGet(t, g, g.Root).(*Struct)
	if !ok || s.Type() != TypeCourseSummary {
		t.Fatalf("expected course summary struct, got %#v", mustGet(t, g, g.Root))
	}
	title, ok := s.Slot("title")
	if !ok || title.Str.String != "Mekanik" {
		t.Fatalf("unexpected title slot: %+v", title)
	}
	if _, ok := s.Slot("missing"); ok {
		t.Fatalf("expected no slot for unknown name")
	}
}
