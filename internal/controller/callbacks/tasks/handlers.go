package tasks

import (
	"context"
	"fmt"

	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/callbacktypes"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/common"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/common/formatting"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/common/keyboard"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Callback data оптимизации
const (
	Run    = "opt_run"
	Status = "opt_status"
)

// HandleRun отправляет запрос на запуск оптимизации.
// Пока задача выполняется, повторный запуск отклоняется
func HandleRun(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if h.Identity != nil && !h.Identity.IsAdmin() {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Запуск оптимизации доступен только администратору")
		return
	}

	if h.Tracker.IsProcessing() {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "⏳ Оптимизация уже выполняется")
		return
	}

	ticket, err := h.Tracker.Submit(ctx)
	if err != nil {
		h.Logger.Error("Failed to submit optimization", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	// Подписываем пользователя на уведомления о ходе задачи
	h.Sessions.Update(callback.From.ID, func(s *state.Session) { s.NotifyTasks = true })

	common.AnswerCallback(ctx, b, callback.ID, "🚀 Оптимизация запущена")
	showStatus(ctx, b, callback, h,
		fmt.Sprintf("🚀 Оптимизация запущена\nЗадача #%d (%s)", ticket.TaskID, ticket.CorrelationID))
}

// HandleStatus показывает последний известный статус задачи,
// предварительно форсировав перечитывание
func HandleStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	h.Tracker.Refresh()
	common.AnswerCallback(ctx, b, callback.ID, "")
	showStatus(ctx, b, callback, h, formatting.TaskStatusLine(h.Tracker.Snapshot()))
}

// StatusKeyboard кнопки экрана статуса: обновление и повторный запуск
func StatusKeyboard(processing bool) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	kb.Row(keyboard.Button("🔄 Обновить статус", Status))
	if !processing {
		kb.Row(keyboard.Button("🚀 Запустить оптимизацию", Run))
	}
	return kb.Build()
}

func showStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, text string) {
	message := common.GetMessageFromCallback(callback)
	if message == nil {
		return
	}

	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      message.Chat.ID,
		MessageID:   message.ID,
		Text:        text,
		ReplyMarkup: StatusKeyboard(h.Tracker.IsProcessing()),
	})
	if err != nil {
		h.Logger.Warn("Failed to edit task status screen", zap.Error(err))
	}
}
