package skema

import (
	"fmt"
	"time"

	"github.com/danmuck/skemawire/internal/protocol/gwt"
)

// Assignment is one projected hand-in.
type Assignment struct {
	ID          int64      `json:"id"`
	ContainerID int64      `json:"container_id"`
	Subject     string     `json:"subject"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ClassName   string     `json:"class_name,omitempty"`
	Week        int64      `json:"week,omitempty"`
	BudgetHours float64    `json:"budget_hours"`
	SpentHours  float64    `json:"spent_hours"`
	Start       *time.Time `json:"start,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Submitted   bool       `json:"submitted"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	// Status is the hand-in status ordinal, -1 when absent.
	Status int64   `json:"status"`
	Grade  *string `json:"grade,omitempty"`
}

// ProjectAssignments maps a root list of hand-ins to assignments in wire order.
func ProjectAssignments(g *gwt.Graph) ([]Assignment, error) {
	if g.Root.IsNil() {
		return nil, nil
	}
	items, ok := g.ListItems(g.Root)
	if !ok {
		return nil, mismatch("root", gwt.TypeList, g.TypeOf(g.Root))
	}
	out := make([]Assignment, 0, len(items))
	for i, h := range items {
		if h.IsNil() {
			continue
		}
		a, ok := object[*gwt.Assignment](g, h)
		if !ok {
			return nil, mismatch(fmt.Sprintf("assignments[%d]", i), gwt.TypeAssignment, g.TypeOf(h))
		}
		rec := Assignment{
			ContainerID: a.ContainerID,
			Submitted:   !a.SubmittedAt.IsZero(),
			SubmittedAt: optionalTime(a.SubmittedAt),
			Status:      -1,
		}
		if st, ok := object[gwt.Enum](g, a.Status); ok {
			rec.Status = st.Ordinal
		}
		if ev, ok := object[*gwt.Evaluation](g, a.Evaluation); ok && ev.Grade.Valid {
			grade := text(ev.Grade)
			rec.Grade = &grade
		}
		if !a.Task.IsNil() {
			task, ok := object[*gwt.AssignmentTask](g, a.Task)
			if !ok {
				return nil, mismatch(fmt.Sprintf("assignments[%d].task", i), gwt.TypeAssignmentTask, g.TypeOf(a.Task))
			}
			rec.ID = task.ID
			rec.Subject = text(task.Subject)
			rec.Title = text(task.Title)
			rec.Description = text(task.Description)
			rec.ClassName = text(task.ClassName)
			rec.Week = task.Week
			rec.BudgetHours = task.BudgetHours
			rec.SpentHours = task.SpentHours
			rec.Start = optionalTime(task.StartDate)
			rec.Deadline = optionalTime(task.Deadline)
		}
		out = append(out, rec)
	}
	return out, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
