package state

// Session хранит выбор пользователя между нажатиями кнопок:
// преподавателя для матрицы доступности и черновик фильтра сетки
type Session struct {
	SelectedTeacherID   int64
	SelectedTeacherName string

	// Черновик фильтра расписания, заполняется по шагам
	CourseID     int64
	ClassGroupID int64
	ShiftID      int64

	// Подписка на уведомления о ходе оптимизации
	NotifyTasks bool
}

// FilterComplete сообщает, выбраны ли курс и группа
func (s *Session) FilterComplete() bool {
	return s.CourseID != 0 && s.ClassGroupID != 0
}

// ResetFilter сбрасывает черновик фильтра
func (s *Session) ResetFilter() {
	s.CourseID = 0
	s.ClassGroupID = 0
	s.ShiftID = 0
}
