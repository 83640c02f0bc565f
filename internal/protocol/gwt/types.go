package gwt

import (
	"fmt"
	"time"

	"github.com/danmuck/skemawire/internal/protocol/arena"
	"github.com/danmuck/skemawire/internal/protocol/stream"
)

// TypeID identifies a registered decode routine family.
type TypeID int

const (
	TypeUnknown TypeID = iota
	TypeList
	TypeMap
	TypeInteger
	TypeBoolean
	TypeString
	TypeEnum
	TypeTimestamp
	TypeSchedule
	TypeEvent
	TypeRoom
	TypeStaff
	TypeActivity
	TypeNote
	TypeAbsenceCause
	TypeDeregistration
	TypeAbsence
	TypeStudentRef
	TypeTeachingRef
	TypeAssignment
	TypeAssignmentTask
	TypeEvaluation
	TypeEmployee
	TypeStudent
	TypeCourseSummary
)

var typeNames = map[TypeID]string{
	TypeUnknown:        "unknown",
	TypeList:           "list",
	TypeMap:            "map",
	TypeInteger:        "integer",
	TypeBoolean:        "boolean",
	TypeString:         "string",
	TypeEnum:           "enum",
	TypeTimestamp:      "timestamp",
	TypeSchedule:       "schedule",
	TypeEvent:          "event",
	TypeRoom:           "room",
	TypeStaff:          "staff",
	TypeActivity:       "activity",
	TypeNote:           "note",
	TypeAbsenceCause:   "absence_cause",
	TypeDeregistration: "deregistration",
	TypeAbsence:        "absence",
	TypeStudentRef:     "student_ref",
	TypeTeachingRef:    "teaching_ref",
	TypeAssignment:     "assignment",
	TypeAssignmentTask: "assignment_task",
	TypeEvaluation:     "evaluation",
	TypeEmployee:       "employee",
	TypeStudent:        "student",
	TypeCourseSummary:  "course_summary",
}

func (t TypeID) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Object is one materialized value in the decode graph.
type Object interface {
	Type() TypeID
}

// List is an ordered, length-prefixed sequence of object handles.
type List struct {
	Class string
	Items []arena.Handle
}

func (*List) Type() TypeID { return TypeList }

// Map keeps key/value handles in wire order.
type Map struct {
	Class  string
	Keys   []arena.Handle
	Values []arena.Handle
}

func (*Map) Type() TypeID { return TypeMap }

type Int struct {
	Value int64
}

func (Int) Type() TypeID { return TypeInteger }

type Bool struct {
	Value bool
}

func (Bool) Type() TypeID { return TypeBoolean }

type String struct {
	Value stream.NullString
}

func (String) Type() TypeID { return TypeString }

// Enum keeps the ordinal; constant names are not on the wire.
type Enum struct {
	Class   string
	Ordinal int64
}

func (Enum) Type() TypeID { return TypeEnum }

// TimeEncoding records which routine produced a timestamp.
type TimeEncoding int

const (
	EncodingFields TimeEncoding = iota + 1
	EncodingEpochMinutes
)

func (e TimeEncoding) String() string {
	switch e {
	case EncodingFields:
		return "fields"
	case EncodingEpochMinutes:
		return "epoch_minutes"
	default:
		return "none"
	}
}

type Timestamp struct {
	Time     time.Time
	Encoding TimeEncoding
	Tag      stream.NullString
}

func (Timestamp) Type() TypeID { return TypeTimestamp }

// Event is a lesson/calendar entry. Slots in the embedded Struct keep every
// field in read order, including the opaque ones.
type Event struct {
	Struct
	Activities arena.Handle
	Remark     stream.NullString
	Subject    stream.NullString
	Rooms      arena.Handle
	Staff      arena.Handle
	Planner    stream.NullString
	LessonID   arena.Handle
	Start      time.Time
	End        time.Time
}

type Room struct {
	Struct
	ID   int64
	Name stream.NullString
}

type Staff struct {
	Struct
	ID     int64
	Name   stream.NullString
	Nested arena.Handle
}

type Activity struct {
	Struct
	Kind stream.NullString
	Code stream.NullString
}

type Note struct {
	Struct
	ID        int64
	ClassName stream.NullString
	HTML      stream.NullString
	Text      stream.NullString
	Date      time.Time
}

// Schedule is the root object of a schedule response.
type Schedule struct {
	Struct
	Lessons arena.Handle
}

type Assignment struct {
	Struct
	SubmittedAt time.Time
	Evaluation  arena.Handle
	ContainerID int64
	Task        arena.Handle
	Status      arena.Handle
}

type AssignmentTask struct {
	Struct
	ID          int64
	ClassName   stream.NullString
	Description stream.NullString
	BudgetHours float64
	SpentHours  float64
	Week        int64
	Subject     stream.NullString
	Title       stream.NullString
	StartDate   time.Time
	Deadline    time.Time
}

type Evaluation struct {
	Struct
	ID    int64
	Date  time.Time
	Grade stream.NullString
}
