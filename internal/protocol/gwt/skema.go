package gwt

// structRoutine decodes a class into a generic *Struct.
func structRoutine(id TypeID, l *layout) Routine {
	return func(d *Decoder, class string) (Object, error) {
		s, err := d.readStruct(id, class, l)
		if err != nil {
			return nil, err
		}
		return &s, nil
	}
}

func decodeSchedule(d *Decoder, class string) (Object, error) {
	s, err := d.readStruct(TypeSchedule, class, scheduleLayout)
	if err != nil {
		return nil, err
	}
	return &Schedule{Struct: s, Lessons: s.obj("lessons")}, nil
}

func eventRoutine(l *layout) Routine {
	return func(d *Decoder, class string) (Object, error) {
		s, err := d.readStruct(TypeEvent, class, l)
		if err != nil {
			return nil, err
		}
		start, err := d.timeOf(&s, "start")
		if err != nil {
			return nil, err
		}
		end, err := d.timeOf(&s, "end")
		if err != nil {
			return nil, err
		}
		return &Event{
			Struct:     s,
			Activities: s.obj("activities"),
			Remark:     s.str("remark"),
			Subject:    s.str("subject"),
			Rooms:      s.obj("rooms"),
			Staff:      s.obj("staff"),
			Planner:    s.str("planner"),
			LessonID:   s.obj("lesson_id"),
			Start:      start,
			End:        end,
		}, nil
	}
}

// EventMinutesRoutine decodes events whose start and end are inline
// epoch-minutes values instead of date objects.
func EventMinutesRoutine() Routine {
	return eventRoutine(eventMinutesLayout)
}

func decodeRoom(d *Decoder, class string) (Object, error) {
	s, err := d.readStruct(TypeRoom, class, roomLayout)
	if err != nil {
		return nil, err
	}
	return &Room{Struct: s, ID: s.num("id"), Name: s.str("name")}, nil
}

func decodeStaff(d *Decoder, class string) (Object, error) {
	s, err := d.readStruct(TypeStaff, class, staffLayout)
	if err != nil {
		return nil, err
	}
	return &Staff{Struct: s, ID: s.num("id"), Name: s.str("name"), Nested: s.obj("nested")}, nil
}

func decodeActivity(d *Decoder, class string) (Object, error) {
	s, err := d.readStruct(TypeActivity, class, activityLayout)
	if err != nil {
		return nil, err
	}
	return &Activity{Struct: s, Kind: s.str("kind"), Code: s.str("code")}, nil
}

func decodeNote(d *Decoder, class string) (Object, error) {
	s, err := d.readStruct(TypeNote, class, noteLayout)
	if err != nil {
		return nil, err
	}
	date, err := d.timeOf(&s, "date")
	if err != nil {
		return nil, err
	}
	return &Note{
		Struct:    s,
		ID:        s.num("id"),
		ClassName: s.str("class_name"),
		HTML:      s.str("html"),
		Text:      s.str("text"),
		Date:      date,
	}, nil
}

func decodeAssignment(d *Decoder, class string) (Object, error) {
	s, err := d.readStruct(TypeAssignment, class, assignmentLayout)
	if err != nil {
		return nil, err
	}
	submitted, err := d.timeOf(&s, "submitted_at")
	if err != nil {
		return nil, err
	}
	return &Assignment{
		Struct:      s,
		SubmittedAt: submitted,
		Evaluation:  s.obj("evaluation"),
		ContainerID: s.num("container_id"),
		Task:        s.obj("task"),
		Status:      s.obj("status"),
	}, nil
}

// decodeAssignmentTask prefers the "due" field for the deadline when it holds a
// date and falls back to the explicit deadline field.
func decodeAssignmentTask(d *Decoder, class string) (Object, error) {
	s, err := d.readStruct(TypeAssignmentTask, class, assignmentTaskLayout)
	if err != nil {
		return nil, err
	}
	start, err := d.timeOf(&s, "start")
	if err != nil {
		return nil, err
	}
	deadline, ok := d.maybeTime(&s, "due")
	if !ok {
		if deadline, err = d.timeOf(&s, "deadline"); err != nil {
			return nil, err
		}
	}
	return &AssignmentTask{
		Struct:      s,
		ID:          s.num("id"),
		ClassName:   s.str("class_name"),
		Description: s.str("description"),
		BudgetHours: s.dbl("budget_hours"),
		SpentHours:  s.dbl("spent_hours"),
		Week:        s.num("week"),
		Subject:     s.str("subject"),
		Title:       s.str("title"),
		StartDate:   start,
		Deadline:    deadline,
	}, nil
}

func decodeEvaluation(d *Decoder, class string) (Object, error) {
	s, err := d.readStruct(TypeEvaluation, class, evaluationLayout)
	if err != nil {
		return nil, err
	}
	date, err := d.timeOf(&s, "date")
	if err != nil {
		return nil, err
	}
	return &Evaluation{Struct: s, ID: s.num("id"), Date: date, Grade: s.str("grade")}, nil
}
