package model

import (
	"encoding/json"
	"strconv"
)

// Flag флаг, который бэкенд присылает то как bool, то как число.
// Любое число > 0 считается истиной
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		*f = false
		return nil
	case "true":
		*f = true
		return nil
	case "false":
		*f = false
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		// Незнакомое значение трактуем как "не нарушает", а не как сбой
		*f = false
		return nil
	}
	*f = Flag(n > 0)
	return nil
}

func (f Flag) Bool() bool { return bool(f) }

// Assignment назначение: преподаватель ведёт дисциплину у группы
// в пространстве в одном или нескольких слотах расписания.
// Назначение без слотов валидно — оно просто не попадает в сетку
type Assignment struct {
	ID           int64  `json:"id"`
	ScheduleID   int64  `json:"schedule_id,omitempty"`
	TeacherID    int64  `json:"teacher_id"`
	SubjectID    int64  `json:"subject_id"`
	SpaceID      int64  `json:"space_id,omitempty"`
	ClassGroupID int64  `json:"class_group_id"`
	Duration     int    `json:"duration,omitempty"` // в целых часах
	Violates     Flag   `json:"violates_availability"`

	Schedule   *Schedule   `json:"schedule,omitempty"`
	Schedules  []Schedule  `json:"schedules,omitempty"`
	Teacher    *User       `json:"teacher,omitempty"`
	Subject    *Subject    `json:"subject,omitempty"`
	Space      *Space      `json:"space,omitempty"`
	ClassGroup *ClassGroup `json:"classGroup,omitempty"`
}

// UnmarshalJSON нормализует назначение при декодировании: плоские поля вида
// "teacher.full_name" поднимаются во вложенные объекты, одиночный schedule
// попадает в общий список. Дальше по коду живёт только вложенная форма
func (a *Assignment) UnmarshalJSON(data []byte) error {
	type alias Assignment
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Assignment(aux)
	a.normalize(raw)
	return nil
}

func (a *Assignment) normalize(raw map[string]json.RawMessage) {
	if a.Teacher == nil {
		if name, ok := rawString(raw, "teacher.full_name"); ok {
			a.Teacher = &User{ID: a.TeacherID, FullName: name}
		}
	}
	if a.Subject == nil {
		if name, ok := rawString(raw, "subject.name"); ok {
			a.Subject = &Subject{ID: a.SubjectID, Name: name}
		}
	}
	if a.Space == nil {
		if name, ok := rawString(raw, "space.name"); ok {
			a.Space = &Space{ID: a.SpaceID, Name: name}
		}
	}
	if a.ClassGroup == nil {
		name, hasName := rawString(raw, "classGroup.name")
		courseID, hasCourse := rawInt(raw, "classGroup.course_id")
		shiftID, hasShift := rawInt(raw, "classGroup.shift_id")
		if hasName || hasCourse || hasShift {
			a.ClassGroup = &ClassGroup{ID: a.ClassGroupID, Name: name, CourseID: courseID, ShiftID: shiftID}
		}
	}
	if a.Schedule == nil {
		weekday, hasDay := rawString(raw, "schedule.weekday")
		start, hasStart := rawString(raw, "schedule.start_time")
		end, _ := rawString(raw, "schedule.end_time")
		if hasDay && hasStart {
			a.Schedule = &Schedule{ID: a.ScheduleID, Weekday: weekday, StartTime: start, EndTime: end}
		}
	}
	if len(a.Schedules) == 0 && a.Schedule != nil {
		a.Schedules = []Schedule{*a.Schedule}
	}
}

func rawString(raw map[string]json.RawMessage, key string) (string, bool) {
	data, ok := raw[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}

func rawInt(raw map[string]json.RawMessage, key string) (int64, bool) {
	data, ok := raw[key]
	if !ok {
		return 0, false
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, false
	}
	return n, true
}
