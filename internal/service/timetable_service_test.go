package service

import (
	"testing"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(id int64, weekday, start, end string) model.Schedule {
	return model.Schedule{ID: id, Weekday: weekday, StartTime: start, EndTime: end}
}

func assignment(id int64, groupID, courseID, shiftID int64, violates bool, slots ...model.Schedule) model.Assignment {
	return model.Assignment{
		ID:           id,
		ClassGroupID: groupID,
		Violates:     model.Flag(violates),
		Subject:      &model.Subject{Name: "Cálculo"},
		Teacher:      &model.User{FullName: "Ana"},
		Space:        &model.Space{Name: "Sala 1"},
		ClassGroup: &model.ClassGroup{
			ID:       groupID,
			Name:     "Turma",
			CourseID: courseID,
			ShiftID:  shiftID,
		},
		Schedules: slots,
	}
}

func TestBuildGridCompleteness(t *testing.T) {
	assignments := []model.Assignment{
		assignment(1, 1, 1, 0, false,
			slot(1, "monday", "08:00:00", "10:00:00"),
			slot(2, "wednesday", "10:00:00", "12:00:00")),
		assignment(2, 1, 1, 0, false,
			slot(3, "friday", "14:00:00", "16:00:00")),
	}

	grid := BuildTimetableGrid(assignments)
	require.Equal(t, []string{"08:00 - 10:00", "10:00 - 12:00", "14:00 - 16:00"}, grid.TimeSlots)

	// Каждая пара (день, слот), встречающаяся во входе, присутствует
	// в сетке и содержит свою запись
	require.Len(t, grid.Entries("monday", "08:00 - 10:00"), 1)
	require.Len(t, grid.Entries("wednesday", "10:00 - 12:00"), 1)
	require.Len(t, grid.Entries("friday", "14:00 - 16:00"), 1)

	// Кросс-произведение инициализировано: пустые ячейки существуют
	for _, day := range Weekdays {
		for _, ts := range grid.TimeSlots {
			require.NotNil(t, grid.Entries(day, ts), "cell %s/%s", day, ts)
		}
	}
	assert.Empty(t, grid.Entries("tuesday", "08:00 - 10:00"))
}

func TestBuildGridDeterminism(t *testing.T) {
	a := assignment(1, 1, 1, 0, false, slot(1, "monday", "08:00:00", "10:00:00"))
	b := assignment(2, 1, 1, 0, true, slot(2, "monday", "10:00:00", "12:00:00"))
	c := assignment(3, 1, 1, 0, false, slot(3, "tuesday", "08:00:00", "10:00:00"))

	first := BuildTimetableGrid([]model.Assignment{a, b, c})
	second := BuildTimetableGrid([]model.Assignment{a, b, c})
	require.Equal(t, first, second)

	// Иной порядок входа меняет только порядок записей внутри ячейки,
	// набор ключей и содержимое по ключам совпадают
	permuted := BuildTimetableGrid([]model.Assignment{c, b, a})
	require.Equal(t, first.TimeSlots, permuted.TimeSlots)
	for _, day := range Weekdays {
		for _, ts := range first.TimeSlots {
			require.ElementsMatch(t, first.Entries(day, ts), permuted.Entries(day, ts))
		}
	}
}

// Два назначения в одном слоте одного дня — двойное бронирование:
// одна ячейка, две записи, ячейка помечена как нарушающая
func TestBuildGridDoubleBooking(t *testing.T) {
	assignments := []model.Assignment{
		assignment(1, 1, 1, 0, false, slot(1, "monday", "08:00:00", "10:00:00")),
		assignment(2, 1, 1, 0, true, slot(2, "monday", "08:00:00", "10:00:00")),
	}

	grid := BuildTimetableGrid(assignments)
	require.Equal(t, []string{"08:00 - 10:00"}, grid.TimeSlots)

	entries := grid.Entries("monday", "08:00 - 10:00")
	require.Len(t, entries, 2)
	require.False(t, entries[0].ViolatesAvailability)
	require.True(t, entries[1].ViolatesAvailability)
	require.True(t, grid.CellViolates("monday", "08:00 - 10:00"))
}

func TestBuildGridUnknownWeekdayDropped(t *testing.T) {
	assignments := []model.Assignment{
		assignment(1, 1, 1, 0, false, slot(1, "sunday", "08:00:00", "10:00:00")),
		assignment(2, 1, 1, 0, false, slot(2, "monday", "08:00:00", "10:00:00")),
	}

	grid := BuildTimetableGrid(assignments)
	// Слот воскресенья участвует в наборе строк, но записи не размещается
	require.Len(t, grid.Entries("monday", "08:00 - 10:00"), 1)
	require.Nil(t, grid.Entries("sunday", "08:00 - 10:00"))
}

func TestBuildGridEmptyInput(t *testing.T) {
	grid := BuildTimetableGrid(nil)
	require.True(t, grid.Empty())
	require.Empty(t, grid.TimeSlots)
}

// Назначение с длительностью, но без слотов не попадает в сетку
func TestBuildGridUnscheduledAssignment(t *testing.T) {
	unscheduled := assignment(1, 1, 1, 0, false)
	unscheduled.Duration = 4

	grid := BuildTimetableGrid([]model.Assignment{unscheduled})
	require.True(t, grid.Empty())
}

func TestFilterPrecision(t *testing.T) {
	// 3 группы на 2 курсах, по назначению на каждую комбинацию
	input := []model.Assignment{
		assignment(1, 1, 1, 0, false, slot(1, "monday", "08:00:00", "10:00:00")),  // courseA, group1
		assignment(2, 2, 1, 0, false, slot(2, "monday", "08:00:00", "10:00:00")),  // courseA, group2
		assignment(3, 3, 2, 0, false, slot(3, "tuesday", "08:00:00", "10:00:00")), // courseB, group3
	}

	f := TimetableFilter{CourseID: 1, ClassGroupID: 1}
	matched := FilterAssignments(input, f)
	require.Len(t, matched, 1)
	require.Equal(t, int64(1), matched[0].ID)
}

func TestFilterShiftOptional(t *testing.T) {
	morning := assignment(1, 1, 1, 10, false, slot(1, "monday", "08:00:00", "10:00:00"))
	evening := assignment(2, 1, 1, 20, false, slot(2, "monday", "19:00:00", "21:00:00"))
	input := []model.Assignment{morning, evening}

	all := FilterAssignments(input, TimetableFilter{CourseID: 1, ClassGroupID: 1})
	require.Len(t, all, 2)

	onlyMorning := FilterAssignments(input, TimetableFilter{CourseID: 1, ClassGroupID: 1, ShiftID: 10})
	require.Len(t, onlyMorning, 1)
	require.Equal(t, int64(1), onlyMorning[0].ID)
}

// Курс группы может прийти вложенным объектом или плоским полем;
// вложенный авторитетнее
func TestFilterNestedCourseWins(t *testing.T) {
	a := assignment(1, 1, 0, 0, false, slot(1, "monday", "08:00:00", "10:00:00"))
	a.ClassGroup.CourseID = 99
	a.ClassGroup.Course = &model.Course{ID: 1}

	matched := FilterAssignments([]model.Assignment{a}, TimetableFilter{CourseID: 1, ClassGroupID: 1})
	require.Len(t, matched, 1)
}

func TestFilterComplete(t *testing.T) {
	require.False(t, TimetableFilter{}.Complete())
	require.False(t, TimetableFilter{CourseID: 1}.Complete())
	require.True(t, TimetableFilter{CourseID: 1, ClassGroupID: 2}.Complete())
}
