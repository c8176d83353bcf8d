package model

// ClassGroup учебная группа. Курс и смена могут прийти как вложенные
// объекты или как плоские id — авторитетно первое непустое значение
type ClassGroup struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Semester     string  `json:"semester,omitempty"`
	Module       string  `json:"module,omitempty"`
	StudentCount int     `json:"student_count,omitempty"`
	ShiftID      int64   `json:"shift_id,omitempty"`
	CourseID     int64   `json:"course_id,omitempty"`
	Shift        *Shift  `json:"shift,omitempty"`
	Course       *Course `json:"course,omitempty"`
}

// CourseRef возвращает id курса: сперва вложенный объект, потом плоское поле
func (g *ClassGroup) CourseRef() int64 {
	if g.Course != nil && g.Course.ID != 0 {
		return g.Course.ID
	}
	return g.CourseID
}

// ShiftRef возвращает id смены по тому же правилу, что и CourseRef
func (g *ClassGroup) ShiftRef() int64 {
	if g.Shift != nil && g.Shift.ID != 0 {
		return g.Shift.ID
	}
	return g.ShiftID
}
