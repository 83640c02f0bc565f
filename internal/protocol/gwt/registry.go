package gwt

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrTypeExists   = errors.New("gwt: type already registered")
	ErrUnknownAlias = errors.New("gwt: alias target not registered")
)

// Routine reads the fields of one object. The class marker has already been
// consumed and the object's identity reserved.
type Routine func(d *Decoder, class string) (Object, error)

// Entry is a registered class.
type Entry struct {
	Class  string
	ID     TypeID
	Decode Routine
}

// Registry maps fully-qualified class names to decode routines.
// It is safe for concurrent lookups once populated.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a class. Names are matched exactly, without the "/hash" suffix.
func (r *Registry) Register(class string, id TypeID, fn Routine) error {
	class = ClassName(class)
	if class == "" || fn == nil {
		return fmt.Errorf("gwt: register %q: class and routine are required", class)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[class]; exists {
		return fmt.Errorf("%w: %s", ErrTypeExists, class)
	}
	r.entries[class] = Entry{Class: class, ID: id, Decode: fn}
	return nil
}

// Replace registers a class, overwriting any existing entry.
func (r *Registry) Replace(class string, id TypeID, fn Routine) {
	class = ClassName(class)
	r.mu.Lock()
	r.entries[class] = Entry{Class: class, ID: id, Decode: fn}
	r.mu.Unlock()
}

// Alias decodes alias with target's routine.
func (r *Registry) Alias(alias, target string) error {
	alias, target = ClassName(alias), ClassName(target)
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[target]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAlias, target)
	}
	if _, exists := r.entries[alias]; exists {
		return fmt.Errorf("%w: %s", ErrTypeExists, alias)
	}
	r.entries[alias] = Entry{Class: alias, ID: e.ID, Decode: e.Decode}
	return nil
}

// Lookup resolves a wire signature ("pkg.Class/123456") to its entry.
func (r *Registry) Lookup(signature string) (Entry, bool) {
	r.mu.RLock()
	e, ok := r.entries[ClassName(signature)]
	r.mu.RUnlock()
	return e, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Classes returns registered class names, sorted.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.entries))
	for name := range r.entries {
		out = append(out, name)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewRegistry()
	for k, v := range r.entries {
		c.entries[k] = v
	}
	return c
}

// ClassName strips the serialization hash from a class signature.
func ClassName(signature string) string {
	if i := strings.IndexByte(signature, '/'); i >= 0 {
		return signature[:i]
	}
	return signature
}

// Wire class names.
const (
	ClassArrayList = "java.util.ArrayList"
	ClassHashMap   = "java.util.HashMap"
	ClassInteger   = "java.lang.Integer"
	ClassBoolean   = "java.lang.Boolean"
	ClassString    = "java.lang.String"
	ClassUDate     = "dk.uddata.gwt.comm.shared.UDate"

	ClassSchedule       = "dk.uddata.model.skema.PersSkemaData"
	ClassEvent          = "dk.uddata.model.skema.SkemaBegivenhed"
	ClassRoom           = "dk.uddata.model.skema.SkemaBegivenhed$LokalerISkema"
	ClassStaff          = "dk.uddata.model.skema.SkemaBegivenhed$MedarbejderISkema"
	ClassActivity       = "dk.uddata.model.skema.SkemaBegivenhed$AktiviteterISkema"
	ClassNote           = "dk.uddata.model.skemanoter.SkemaNote2"
	ClassAbsenceCause   = "dk.uddata.model.skema.Aarstyp"
	ClassDeregistration = "dk.uddata.model.skema.Frareg"
	ClassAbsence        = "dk.uddata.model.skema.Fravk"
	ClassStudentRef     = "dk.uddata.model.bruger.Skemaelev"
	ClassTeachingRef    = "dk.uddata.model.skema.SkemaUvfo"
	ClassAssignment     = "dk.uddata.model.opgave.Aflevering"
	ClassAssignmentTask = "dk.uddata.model.opgave.OpgaveElev"
	ClassEvaluation     = "dk.uddata.model.opgave.AfleveringBedoemmelse"
	ClassEmployee       = "dk.uddata.model.bruger.Medarbejder"
	ClassStudent        = "dk.uddata.model.bruger.Elev"
	ClassCourseSummary  = "dk.uddata.model.undervisningsplan.UndervisningsforloebResume"
)

var enumClasses = []string{
	"dk.uddata.model.skema.SkemaBegivenhed$Status",
	"dk.uddata.model.skema.Aarstyp$AarsagsType",
	"dk.uddata.model.skema.Aarstyp$AmuKode",
	"dk.uddata.model.skema.Aarstyp$Status",
	"dk.uddata.model.skema.Frareg$Status",
	"dk.uddata.model.skema.Fravk$FravkStatus",
	"dk.uddata.model.skema.SkemaTools$FravaStatus",
	"dk.uddata.model.skema.SkemaTools$RegModel",
	"dk.uddata.model.skema.SkemaTools$RegStatus",
	"dk.uddata.model.opgave.AfleveringStatus",
	"dk.uddata.model.opgave.BedoemmelsesForm",
	"dk.uddata.gwt.comm.shared.user.RolleType",
}

type namedRoutine struct {
	id TypeID
	fn Routine
}

// routines are the decode routines selectable by name from configuration.
var routines = map[string]namedRoutine{
	"list":            {TypeList, decodeList},
	"map":             {TypeMap, decodeMap},
	"integer":         {TypeInteger, decodeInteger},
	"boolean":         {TypeBoolean, decodeBoolean},
	"string":          {TypeString, decodeString},
	"enum":            {TypeEnum, decodeEnum},
	"udate":           {TypeTimestamp, decodeUDate},
	"schedule":        {TypeSchedule, decodeSchedule},
	"event":           {TypeEvent, eventRoutine(eventLayout)},
	"event_minutes":   {TypeEvent, eventRoutine(eventMinutesLayout)},
	"room":            {TypeRoom, decodeRoom},
	"staff":           {TypeStaff, decodeStaff},
	"activity":        {TypeActivity, decodeActivity},
	"note":            {TypeNote, decodeNote},
	"absence_cause":   {TypeAbsenceCause, structRoutine(TypeAbsenceCause, absenceCauseLayout)},
	"deregistration":  {TypeDeregistration, structRoutine(TypeDeregistration, deregistrationLayout)},
	"absence":         {TypeAbsence, structRoutine(TypeAbsence, absenceLayout)},
	"student_ref":     {TypeStudentRef, structRoutine(TypeStudentRef, studentRefLayout)},
	"teaching_ref":    {TypeTeachingRef, structRoutine(TypeTeachingRef, teachingRefLayout)},
	"assignment":      {TypeAssignment, decodeAssignment},
	"assignment_task": {TypeAssignmentTask, decodeAssignmentTask},
	"evaluation":      {TypeEvaluation, decodeEvaluation},
	"employee":        {TypeEmployee, structRoutine(TypeEmployee, employeeLayout)},
	"student":         {TypeStudent, structRoutine(TypeStudent, studentLayout)},
	"course_summary":  {TypeCourseSummary, structRoutine(TypeCourseSummary, courseSummaryLayout)},
}

// RoutineByName returns a built-in routine for configuration-driven registration.
func RoutineByName(name string) (TypeID, Routine, bool) {
	r, ok := routines[name]
	if !ok {
		return TypeUnknown, nil, false
	}
	return r.id, r.fn, true
}

// RoutineNames lists the names accepted by RoutineByName, sorted.
func RoutineNames() []string {
	out := make([]string, 0, len(routines))
	for name := range routines {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var defaultTable = []struct {
	class   string
	routine string
}{
	{ClassArrayList, "list"},
	{ClassHashMap, "map"},
	{ClassInteger, "integer"},
	{ClassBoolean, "boolean"},
	{ClassString, "string"},
	{ClassUDate, "udate"},
	{ClassSchedule, "schedule"},
	{ClassEvent, "event"},
	{ClassRoom, "room"},
	{ClassStaff, "staff"},
	{ClassActivity, "activity"},
	{ClassNote, "note"},
	{ClassAbsenceCause, "absence_cause"},
	{ClassDeregistration, "deregistration"},
	{ClassAbsence, "absence"},
	{ClassStudentRef, "student_ref"},
	{ClassTeachingRef, "teaching_ref"},
	{ClassAssignment, "assignment"},
	{ClassAssignmentTask, "assignment_task"},
	{ClassEvaluation, "evaluation"},
	{ClassEmployee, "employee"},
	{ClassStudent, "student"},
	{ClassCourseSummary, "course_summary"},
}

// DefaultRegistry returns a fresh registry holding every known class.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, row := range defaultTable {
		nr := routines[row.routine]
		r.entries[row.class] = Entry{Class: row.class, ID: nr.id, Decode: nr.fn}
	}
	for _, class := range enumClasses {
		r.entries[class] = Entry{Class: class, ID: TypeEnum, Decode: decodeEnum}
	}
	return r
}
