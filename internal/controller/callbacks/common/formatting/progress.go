package formatting

import (
	"fmt"
	"strings"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
)

const progressBarWidth = 10

// ProgressBar рисует текстовую полосу прогресса: ▓▓▓▓░░░░░░ 40%
func ProgressBar(progress int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := progress * progressBarWidth / 100
	return strings.Repeat("▓", filled) + strings.Repeat("░", progressBarWidth-filled) +
		fmt.Sprintf(" %d%%", progress)
}

// TaskStatusLine строка статуса задачи оптимизации для сообщения
func TaskStatusLine(task *model.Task) string {
	if task == nil {
		return "Задач оптимизации ещё не было"
	}
	switch task.Status {
	case model.TaskStatusProcessing:
		return fmt.Sprintf("⚙️ Оптимизация #%d выполняется\n%s", task.ID, ProgressBar(task.Progress))
	case model.TaskStatusCompleted:
		return fmt.Sprintf("✅ Оптимизация #%d завершена", task.ID)
	case model.TaskStatusFailed:
		msg := ""
		if task.ErrorMessage != nil && *task.ErrorMessage != "" {
			msg = "\n" + *task.ErrorMessage
		}
		return fmt.Sprintf("❌ Оптимизация #%d завершилась ошибкой%s", task.ID, msg)
	default:
		return fmt.Sprintf("Оптимизация #%d: %s", task.ID, task.Status)
	}
}
