package controller

import (
	"context"

	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/common/formatting"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/state"
	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// TaskNotifier рассылает изменения статуса задачи оптимизации
// пользователям, запустившим её. Вызывается из цикла опроса трекера
type TaskNotifier struct {
	bot      *bot.Bot
	sessions *state.Manager
	logger   *zap.Logger
}

func NewTaskNotifier(botInstance *bot.Bot, sessions *state.Manager, logger *zap.Logger) *TaskNotifier {
	return &TaskNotifier{
		bot:      botInstance,
		sessions: sessions,
		logger:   logger,
	}
}

// Notify отправляет свежий статус задачи всем подписчикам.
// Терминальный статус снимает подписку: следующая задача
// потребует нового запуска
func (n *TaskNotifier) Notify(task *model.Task) {
	if task == nil {
		return
	}

	text := formatting.TaskStatusLine(task)
	for _, telegramID := range n.sessions.Subscribers() {
		_, err := n.bot.SendMessage(context.Background(), &bot.SendMessageParams{
			ChatID: telegramID,
			Text:   text,
		})
		if err != nil {
			n.logger.Warn("Failed to notify task subscriber",
				zap.Int64("telegram_id", telegramID),
				zap.Error(err))
		}
		if task.Terminal() {
			n.sessions.Update(telegramID, func(s *state.Session) { s.NotifyTasks = false })
		}
	}
}
