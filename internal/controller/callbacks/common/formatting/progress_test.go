package formatting

import (
	"testing"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	require.Equal(t, "░░░░░░░░░░ 0%", ProgressBar(0))
	require.Equal(t, "▓▓▓▓░░░░░░ 40%", ProgressBar(40))
	require.Equal(t, "▓▓▓▓▓▓▓▓▓▓ 100%", ProgressBar(100))
	// Значения вне диапазона обрезаются
	require.Equal(t, "░░░░░░░░░░ 0%", ProgressBar(-5))
	require.Equal(t, "▓▓▓▓▓▓▓▓▓▓ 100%", ProgressBar(140))
}

func TestTaskStatusLine(t *testing.T) {
	require.Contains(t, TaskStatusLine(nil), "ещё не было")

	processing := &model.Task{ID: 42, Status: model.TaskStatusProcessing, Progress: 55}
	line := TaskStatusLine(processing)
	require.Contains(t, line, "#42")
	require.Contains(t, line, "55%")

	msg := "solver crashed"
	failed := &model.Task{ID: 43, Status: model.TaskStatusFailed, ErrorMessage: &msg}
	require.Contains(t, TaskStatusLine(failed), "solver crashed")
}

func TestWeekdayName(t *testing.T) {
	require.Equal(t, "Понедельник", WeekdayName(model.WeekdayMonday))
	require.Equal(t, "Сб", WeekdayShort(model.WeekdaySaturday))
	// Неизвестный ключ отдаётся как есть
	require.Equal(t, "someday", WeekdayName("someday"))
}
