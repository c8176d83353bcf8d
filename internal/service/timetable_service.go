package service

import (
	"sort"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
)

// Weekdays фиксированный порядок колонок сетки. Воскресенье в сетку
// не входит: слот с неизвестным днём молча отбрасывается
var Weekdays = []string{
	model.WeekdayMonday,
	model.WeekdayTuesday,
	model.WeekdayWednesday,
	model.WeekdayThursday,
	model.WeekdayFriday,
	model.WeekdaySaturday,
}

// TimetableFilter активный выбор пользователя. Курс и группа обязательны,
// смена опциональна (0 — все смены)
type TimetableFilter struct {
	CourseID     int64
	ClassGroupID int64
	ShiftID      int64
}

// Complete сообщает, достаточно ли фильтра для построения сетки
func (f TimetableFilter) Complete() bool {
	return f.CourseID != 0 && f.ClassGroupID != 0
}

// Matches проверяет назначение по контракту фильтра:
// курс группы, сама группа и, если выбрана, смена группы
func (f TimetableFilter) Matches(a *model.Assignment) bool {
	if a.ClassGroup == nil {
		return false
	}
	if a.ClassGroup.CourseRef() != f.CourseID {
		return false
	}

	groupID := a.ClassGroup.ID
	if groupID == 0 {
		groupID = a.ClassGroupID
	}
	if groupID != f.ClassGroupID {
		return false
	}

	if f.ShiftID != 0 && a.ClassGroup.ShiftRef() != f.ShiftID {
		return false
	}
	return true
}

// FilterAssignments оставляет назначения, попадающие под фильтр,
// сохраняя исходный порядок
func FilterAssignments(assignments []model.Assignment, f TimetableFilter) []model.Assignment {
	matched := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if f.Matches(&a) {
			matched = append(matched, a)
		}
	}
	return matched
}

// GridEntry одна запись в ячейке сетки
type GridEntry struct {
	Subject              string `json:"subject"`
	Teacher              string `json:"teacher"`
	Space                string `json:"space"`
	ClassGroup           string `json:"classGroup"`
	ViolatesAvailability bool   `json:"violatesAvailability"`
}

// TimetableGrid сетка "день недели x временной слот". В ячейке может
// лежать больше одной записи — так видно двойное бронирование
type TimetableGrid struct {
	TimeSlots []string                          `json:"timeSlots"` // отсортированные ключи строк
	Cells     map[string]map[string][]GridEntry `json:"cells"`     // weekday -> slot -> записи
}

// BuildTimetableGrid сворачивает назначения в сетку.
// Чистая функция: одинаковый вход даёт одинаковый результат,
// порядок записей в ячейке повторяет порядок обхода входа
func BuildTimetableGrid(assignments []model.Assignment) *TimetableGrid {
	// Собираем множество временных слотов по всем расписаниям входа
	slotSet := make(map[string]struct{})
	for _, a := range assignments {
		for _, s := range a.Schedules {
			slotSet[s.SlotKey()] = struct{}{}
		}
	}

	// Лексикографическая сортировка ключей "HH:MM - HH:MM"
	// совпадает с хронологической
	timeSlots := make([]string, 0, len(slotSet))
	for slot := range slotSet {
		timeSlots = append(timeSlots, slot)
	}
	sort.Strings(timeSlots)

	// Пустые ячейки для всего кросс-произведения дней и слотов
	cells := make(map[string]map[string][]GridEntry, len(Weekdays))
	for _, day := range Weekdays {
		row := make(map[string][]GridEntry, len(timeSlots))
		for _, slot := range timeSlots {
			row[slot] = []GridEntry{}
		}
		cells[day] = row
	}

	for _, a := range assignments {
		entry := GridEntry{
			ViolatesAvailability: a.Violates.Bool(),
		}
		if a.Subject != nil {
			entry.Subject = a.Subject.Name
		}
		if a.Teacher != nil {
			entry.Teacher = a.Teacher.FullName
		}
		if a.Space != nil {
			entry.Space = a.Space.Name
		}
		if a.ClassGroup != nil {
			entry.ClassGroup = a.ClassGroup.Name
		}

		for _, s := range a.Schedules {
			row, ok := cells[s.Weekday]
			if !ok {
				// Неожиданный день недели — запись отбрасывается без ошибки
				continue
			}
			key := s.SlotKey()
			if _, ok := row[key]; !ok {
				continue
			}
			row[key] = append(row[key], entry)
		}
	}

	return &TimetableGrid{TimeSlots: timeSlots, Cells: cells}
}

// Empty сообщает, что под фильтр не попало ни одного размещаемого назначения
func (g *TimetableGrid) Empty() bool {
	return len(g.TimeSlots) == 0
}

// Entries возвращает записи ячейки (nil для незнакомых ключей)
func (g *TimetableGrid) Entries(weekday, slot string) []GridEntry {
	row, ok := g.Cells[weekday]
	if !ok {
		return nil
	}
	return row[slot]
}

// CellViolates истинно, если хотя бы одна запись ячейки нарушает доступность
func (g *TimetableGrid) CellViolates(weekday, slot string) bool {
	for _, entry := range g.Entries(weekday, slot) {
		if entry.ViolatesAvailability {
			return true
		}
	}
	return false
}
