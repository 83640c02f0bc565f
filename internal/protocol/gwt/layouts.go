package gwt

// Field read orders, one row per wire field. Unnamed rows are read for
// alignment only.
var (
	scheduleLayout = newLayout("PersSkemaData",
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		named("lessons", KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindInt),
		opaque(KindInt),
		opaque(KindInt),
		opaque(KindInt),
		opaque(KindInt),
		opaque(KindObject),
		opaque(KindBool),
		opaque(KindInt),
		opaque(KindInt),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
	)

	eventLayout = newLayout("SkemaBegivenhed",
		named("activities", KindObject),
		named("remark", KindString),
		opaque(KindString),
		opaque(KindBool),
		opaque(KindInt),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindInt),
		opaque(KindObject),
		opaque(KindBool),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindInt),
		opaque(KindObject),
		opaque(KindInt),
		named("subject", KindString),
		opaque(KindBool),
		opaque(KindInt),
		named("rooms", KindObject),
		opaque(KindBool),
		named("staff", KindObject),
		opaque(KindBool),
		opaque(KindString),
		opaque(KindObject),
		opaque(KindString),
		opaque(KindBool),
		named("planner", KindString),
		opaque(KindBool),
		opaque(KindObject),
		opaque(KindObject),
		named("lesson_id", KindObject),
		opaque(KindObject),
		opaque(KindString),
		named("end", KindObject),
		named("start", KindObject),
		opaque(KindObject),
		opaque(KindInt),
		opaque(KindBool),
	)

	// eventMinutesLayout is the server variant carrying start/end inline.
	eventMinutesLayout = eventLayout.withKind("SkemaBegivenhed(minutes)", KindEpochMinutes, "end", "start")

	roomLayout = newLayout("LokalerISkema",
		named("id", KindInt),
		named("name", KindString),
		opaque(KindInt),
	)

	staffLayout = newLayout("MedarbejderISkema",
		named("id", KindInt),
		named("name", KindString),
		opaque(KindInt),
		named("nested", KindObject),
	)

	activityLayout = newLayout("AktiviteterISkema",
		opaque(KindInt),
		opaque(KindInt),
		named("kind", KindString),
		named("code", KindString),
		opaque(KindInt),
	)

	noteLayout = newLayout("SkemaNote2",
		named("id", KindInt),
		named("class_name", KindString),
		opaque(KindInt),
		opaque(KindBool),
		named("html", KindString),
		named("text", KindString),
		opaque(KindString),
		opaque(KindString),
		opaque(KindObject),
		opaque(KindString),
		opaque(KindObject),
		named("date", KindObject),
		opaque(KindObject),
		opaque(KindInt),
		opaque(KindInt),
		opaque(KindString),
	)

	absenceCauseLayout = newLayout("Aarstyp",
		named("cause_type", KindObject),
		opaque(KindObject),
		opaque(KindInt),
		named("amu_code", KindObject),
		named("text", KindString),
		named("status", KindObject),
	)

	deregistrationLayout = newLayout("Frareg",
		opaque(KindInt),
		opaque(KindInt),
		opaque(KindInt),
		named("status", KindObject),
	)

	absenceLayout = newLayout("Fravk",
		opaque(KindString),
		opaque(KindString),
		opaque(KindString),
		named("status", KindObject),
		opaque(KindObject),
	)

	studentRefLayout = newLayout("Skemaelev",
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindString),
		opaque(KindObject),
		named("name", KindString),
		opaque(KindObject),
		opaque(KindString),
		opaque(KindString),
	)

	teachingRefLayout = newLayout("SkemaUvfo",
		opaque(KindInt),
		opaque(KindObject),
		opaque(KindObject),
		named("name", KindString),
		opaque(KindInt),
		opaque(KindObject),
		opaque(KindString),
		opaque(KindInt),
		opaque(KindInt),
		opaque(KindInt),
		opaque(KindInt),
		opaque(KindObject),
		opaque(KindObject),
	)

	assignmentLayout = newLayout("Aflevering",
		named("submitted_at", KindObject),
		named("evaluation", KindObject),
		named("container_id", KindInt),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindBool),
		opaque(KindBool),
		opaque(KindObject),
		named("task", KindObject),
		opaque(KindObject),
		named("status", KindObject),
		opaque(KindBool),
	)

	assignmentTaskLayout = newLayout("OpgaveElev",
		named("due", KindObject),
		named("id", KindInt),
		named("class_name", KindString),
		opaque(KindObject),
		named("description", KindString),
		named("budget_hours", KindDouble),
		named("spent_hours", KindDouble),
		opaque(KindObject),
		opaque(KindObject),
		named("week", KindInt),
		opaque(KindObject),
		opaque(KindInt),
		opaque(KindInt),
		named("subject", KindString),
		opaque(KindBool),
		named("title", KindString),
		opaque(KindObject),
		named("start", KindObject),
		named("deadline", KindObject),
		opaque(KindBool),
	)

	evaluationLayout = newLayout("AfleveringBedoemmelse",
		named("id", KindInt),
		named("date", KindObject),
		opaque(KindString),
		named("grade", KindString),
		opaque(KindInt),
		opaque(KindObject),
		opaque(KindObject),
	)

	// userFields is the shared user base, read after the subclass fields.
	userFields = []fieldSpec{
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindString),
		opaque(KindObject),
		opaque(KindString),
		opaque(KindString),
		opaque(KindObject),
		opaque(KindString),
		named("initials", KindString),
		opaque(KindObject),
		named("name", KindString),
		opaque(KindString),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindString),
		opaque(KindString),
		opaque(KindString),
		named("role", KindString),
	}

	employeeLayout = newLayout("Medarbejder", concat([]fieldSpec{
		opaque(KindObject),
		opaque(KindInt),
		opaque(KindInt),
		named("short_initials", KindString),
	}, userFields)...)

	studentLayout = newLayout("Elev", concat([]fieldSpec{
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindBool),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindObject),
		opaque(KindBool),
		opaque(KindObject),
		named("student_number", KindString),
		opaque(KindObject),
		opaque(KindString),
		opaque(KindObject),
		opaque(KindBool),
		named("class_name", KindString),
		opaque(KindObject),
	}, userFields)...)

	courseSummaryLayout = newLayout("UndervisningsforloebResume",
		named("title", KindString),
		named("start", KindObject),
		named("end", KindObject),
	)
)
