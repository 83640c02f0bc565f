package skema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/skemawire/internal/protocol"
	"github.com/danmuck/skemawire/internal/testutil/testlog"
	"github.com/danmuck/skemawire/internal/testutil/wiretest"
)

func TestDecodeAssignments(t *testing.T) {
	testlog.Start(t)
	deadline := time.Date(2025, time.April, 2, 12, 0, 0, 0, time.UTC)
	submitted := time.Date(2025, time.April, 1, 20, 15, 0, 0, time.UTC)

	b := wiretest.NewBuilder()
	b.List(2).
		Assignment(wiretest.AssignmentFields{
			ContainerID: 501,
			Status:      0,
			Task: wiretest.TaskFields{
				ID: 11, ClassName: "htxr24", Subject: "Matematik", Title: "Aflevering 4",
				BudgetHours: 3, Week: 14, Deadline: deadline,
			},
		}).
		Assignment(wiretest.AssignmentFields{
			SubmittedAt: submitted,
			ContainerID: 502,
			Status:      -1,
			Task:        wiretest.TaskFields{ID: 12, Subject: "Fysik", Title: "Rapport"},
			Evaluation:  &wiretest.EvaluationFields{ID: 3, Date: submitted, Grade: "7"},
		})

	out, err := newTestDecoder().DecodeAssignments(b.Payload())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(out))
	}
	open, done := out[0], out[1]
	if open.ID != 11 || open.ContainerID != 501 || open.Subject != "Matematik" || open.Title != "Aflevering 4" {
		t.Fatalf("unexpected first assignment: %+v", open)
	}
	if open.Submitted || open.Status != 0 || open.Grade != nil {
		t.Fatalf("expected open assignment, got %+v", open)
	}
	if open.Deadline == nil || !open.Deadline.Equal(deadline) || open.BudgetHours != 3 || open.Week != 14 {
		t.Fatalf("unexpected deadline/hours: %+v", open)
	}
	if !done.Submitted || done.SubmittedAt == nil || !done.SubmittedAt.Equal(submitted) || done.Status != -1 {
		t.Fatalf("unexpected second assignment: %+v", done)
	}
	if done.Grade == nil || *done.Grade != "7" {
		t.Fatalf("expected grade 7, got %v", done.Grade)
	}
	if open.SubmittedAt != nil || done.Deadline != nil || done.Start != nil {
		t.Fatalf("expected absent dates to stay nil, got %+v / %+v", open, done)
	}
}

func TestAssignmentJSONOmitsAbsentDates(t *testing.T) {
	testlog.Start(t)
	b := wiretest.NewBuilder()
	b.List(1).Assignment(wiretest.AssignmentFields{
		ContainerID: 9,
		Status:      -1,
		Task:        wiretest.TaskFields{ID: 1, Subject: "Dansk", Title: "Essay"},
	})

	out, err := newTestDecoder().DecodeAssignments(b.Payload())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	raw, err := json.Marshal(out[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{"start", "deadline", "submitted_at", "0001-01-01"} {
		if strings.Contains(string(raw), key) {
			t.Fatalf("expected %q to be omitted, got %s", key, raw)
		}
	}
}

func TestProjectAssignmentsRejectsLessons(t *testing.T) {
	testlog.Start(t)
	b := wiretest.NewBuilder()
	b.List(1).Event(wiretest.EventFields{Start: start, End: start.Add(time.Hour)})

	_, err := newTestDecoder().DecodeAssignments(b.Payload())
	if !errors.Is(err, protocol.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
}
