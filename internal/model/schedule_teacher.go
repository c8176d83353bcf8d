package model

// ScheduleTeacher связь "преподаватель доступен в слоте".
// Инвариант бэкенда: не больше одной связи на пару (teacher_id, schedule_id)
type ScheduleTeacher struct {
	ID         int64     `json:"id"`
	ScheduleID int64     `json:"schedule_id"`
	TeacherID  int64     `json:"teacher_id"`
	Schedule   *Schedule `json:"schedule,omitempty"`
	Teacher    *User     `json:"teacher,omitempty"`
}
