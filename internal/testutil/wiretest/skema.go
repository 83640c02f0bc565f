package wiretest

import "time"

// Class signatures as the server sends them, hash suffix included.
const (
	SigArrayList      = "java.util.ArrayList/4159755760"
	SigHashMap        = "java.util.HashMap/1797211028"
	SigInteger        = "java.lang.Integer/3438268394"
	SigBoolean        = "java.lang.Boolean/476441737"
	SigString         = "java.lang.String/2004016611"
	SigUDate          = "dk.uddata.gwt.comm.shared.UDate/1204512312"
	SigSchedule       = "dk.uddata.model.skema.PersSkemaData/3032937395"
	SigEvent          = "dk.uddata.model.skema.SkemaBegivenhed/2245181400"
	SigEventStatus    = "dk.uddata.model.skema.SkemaBegivenhed$Status/1710347310"
	SigRoom           = "dk.uddata.model.skema.SkemaBegivenhed$LokalerISkema/2907335011"
	SigStaff          = "dk.uddata.model.skema.SkemaBegivenhed$MedarbejderISkema/1573398414"
	SigActivity       = "dk.uddata.model.skema.SkemaBegivenhed$AktiviteterISkema/3330232431"
	SigNote           = "dk.uddata.model.skemanoter.SkemaNote2/2631720930"
	SigAssignment     = "dk.uddata.model.opgave.Aflevering/1001826311"
	SigAssignmentTask = "dk.uddata.model.opgave.OpgaveElev/2876612044"
	SigEvaluation     = "dk.uddata.model.opgave.AfleveringBedoemmelse/951200353"
	SigAssignStatus   = "dk.uddata.model.opgave.AfleveringStatus/3588716232"
	SigCourseSummary  = "dk.uddata.model.undervisningsplan.UndervisningsforloebResume/87716153"
)

const udateTag = "UDate:"

// UDate writes a field-encoded date object.
func (b *Builder) UDate(t time.Time) *Builder {
	return b.Object(SigUDate).
		Str(udateTag).
		Int(int64(t.Year() - 1900)).
		Int(int64(t.Month()) - 1).
		Int(int64(t.Day())).
		Int(int64(t.Hour())).
		Int(int64(t.Minute())).
		Int(int64(t.Second()))
}

// UDateOrNull writes a date object, or null for the zero time.
func (b *Builder) UDateOrNull(t time.Time) *Builder {
	if t.IsZero() {
		return b.Null()
	}
	return b.UDate(t)
}

// Minutes writes an inline epoch-minutes value.
func (b *Builder) Minutes(t time.Time) *Builder {
	return b.Int(t.Unix() / 60)
}

// StrOrNull writes a string reference, or the absent marker for "".
func (b *Builder) StrOrNull(s string) *Builder {
	if s == "" {
		return b.NullStr()
	}
	return b.Str(s)
}

// List writes a list header; the caller writes n objects next.
func (b *Builder) List(n int) *Builder {
	return b.Object(SigArrayList).Int(int64(n))
}

func (b *Builder) Integer(v int64) *Builder {
	return b.Object(SigInteger).Int(v)
}

func (b *Builder) Enum(signature string, ordinal int64) *Builder {
	return b.Object(signature).Int(ordinal)
}

func (b *Builder) Room(id int64, name string) *Builder {
	return b.Object(SigRoom).Int(id).StrOrNull(name).Int(0)
}

func (b *Builder) Staff(id int64, name string) *Builder {
	return b.Object(SigStaff).Int(id).StrOrNull(name).Int(0).Null()
}

func (b *Builder) Activity(kind, code string) *Builder {
	return b.Object(SigActivity).Int(1).Int(0).StrOrNull(kind).StrOrNull(code).Int(0)
}

type RoomFields struct {
	ID   int64
	Name string
}

type StaffFields struct {
	ID   int64
	Name string
}

// EventFields are the semantically meaningful event fields; everything else
// is written as zero/null.
type EventFields struct {
	// Signature overrides the event class signature.
	Signature string
	ClassName string
	Remark    string
	Subject   string
	Planner   string
	Rooms     []RoomFields
	Staff     []StaffFields
	LessonID  int64
	Start     time.Time
	End       time.Time
	// Minutes writes start/end inline instead of as date objects.
	Minutes bool
}

func (b *Builder) Event(e EventFields) *Builder {
	if e.Signature != "" {
		b.Object(e.Signature)
	} else {
		b.Object(SigEvent)
	}
	if e.ClassName != "" {
		b.List(1).Activity("HOLD", e.ClassName)
	} else {
		b.Null()
	}
	b.StrOrNull(e.Remark)
	b.NullStr().Bool(false).Int(0).Null().Null().Int(0).Null().Bool(false).Null().Null().Int(0).Null().Int(0)
	b.StrOrNull(e.Subject)
	b.Bool(false).Int(0)
	b.List(len(e.Rooms))
	for _, r := range e.Rooms {
		b.Room(r.ID, r.Name)
	}
	b.Bool(false)
	b.List(len(e.Staff))
	for _, s := range e.Staff {
		b.Staff(s.ID, s.Name)
	}
	b.Bool(false).NullStr().Null().NullStr().Bool(false)
	b.StrOrNull(e.Planner)
	b.Bool(false).Null().Null()
	if e.LessonID != 0 {
		b.Integer(e.LessonID)
	} else {
		b.Null()
	}
	b.Null().NullStr()
	if e.Minutes {
		b.Minutes(e.End).Minutes(e.Start)
	} else {
		b.UDateOrNull(e.End).UDateOrNull(e.Start)
	}
	return b.Null().Int(0).Bool(false)
}

type NoteFields struct {
	ID        int64
	ClassName string
	HTML      string
	Text      string
	Date      time.Time
}

func (b *Builder) Note(n NoteFields) *Builder {
	b.Object(SigNote).Int(n.ID).StrOrNull(n.ClassName).Int(0).Bool(false)
	b.StrOrNull(n.HTML).StrOrNull(n.Text)
	b.NullStr().NullStr().Null().NullStr().Null()
	b.UDateOrNull(n.Date)
	return b.Null().Int(0).Int(0).NullStr()
}

// Schedule writes a schedule root holding the events as its lesson list and
// the notes in a separate list field.
func (b *Builder) Schedule(events []EventFields, notes []NoteFields) *Builder {
	b.Object(SigSchedule).Null().Null().Null()
	b.List(len(events))
	for _, e := range events {
		b.Event(e)
	}
	b.Null().Null().Null().Null()
	b.Int(0).Int(0).Int(0).Int(0).Int(0)
	b.Null().Bool(false).Int(0).Int(0)
	b.Null().Null()
	if len(notes) > 0 {
		b.List(len(notes))
		for _, n := range notes {
			b.Note(n)
		}
	} else {
		b.Null()
	}
	return b.Null().Null()
}

type TaskFields struct {
	ID          int64
	ClassName   string
	Description string
	BudgetHours float64
	SpentHours  float64
	Week        int64
	Subject     string
	Title       string
	Due         time.Time
	Start       time.Time
	Deadline    time.Time
}

func (b *Builder) Task(t TaskFields) *Builder {
	b.Object(SigAssignmentTask)
	b.UDateOrNull(t.Due)
	b.Int(t.ID).StrOrNull(t.ClassName).Null().StrOrNull(t.Description)
	b.Double(t.BudgetHours).Double(t.SpentHours)
	b.Null().Null().Int(t.Week).Null().Int(0).Int(0)
	b.StrOrNull(t.Subject).Bool(false).StrOrNull(t.Title).Null()
	b.UDateOrNull(t.Start).UDateOrNull(t.Deadline)
	return b.Bool(false)
}

type EvaluationFields struct {
	ID    int64
	Date  time.Time
	Grade string
}

type AssignmentFields struct {
	SubmittedAt time.Time
	ContainerID int64
	// Status is the status ordinal; negative writes null.
	Status     int64
	Task       TaskFields
	Evaluation *EvaluationFields
}

func (b *Builder) Assignment(a AssignmentFields) *Builder {
	b.Object(SigAssignment)
	b.UDateOrNull(a.SubmittedAt)
	if ev := a.Evaluation; ev != nil {
		b.Object(SigEvaluation).Int(ev.ID).UDateOrNull(ev.Date).NullStr().StrOrNull(ev.Grade).Int(0).Null().Null()
	} else {
		b.Null()
	}
	b.Int(a.ContainerID).Null().Null().Bool(false).Bool(false).Null()
	b.Task(a.Task)
	b.Null()
	if a.Status >= 0 {
		b.Enum(SigAssignStatus, a.Status)
	} else {
		b.Null()
	}
	return b.Bool(false)
}
