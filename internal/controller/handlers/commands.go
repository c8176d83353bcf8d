package handlers

import (
	"context"

	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/availability"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/common/formatting"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/tasks"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/timetable"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	welcomeText := "👋 Привет!\n\n" +
		"Это административный бот расписания.\n\n" +
		"Доступные команды:\n" +
		"/availability - Доступность преподавателей\n" +
		"/timetable - Сетка расписания группы\n" +
		"/optimize - Запуск и статус оптимизации\n" +
		"/help - Справка"

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/availability - Выбрать преподавателя и отметить слоты,\n" +
		"в которые он может вести занятия. Снятие отметки требует\n" +
		"подтверждения.\n\n" +
		"/timetable - Построить сетку расписания: курс, группа,\n" +
		"при желании смена. Занятия с нарушением доступности\n" +
		"преподавателя подсвечиваются.\n\n" +
		"/optimize - Запустить подбор расписания и следить за ходом\n" +
		"задачи. Во время выполнения статус обновляется сам.\n\n" +
		"/cancel - Сбросить текущий выбор"

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleAvailability обрабатывает команду /availability
func (h *Handlers) HandleAvailability(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	availability.ShowTeacherPicker(ctx, b, update.Message.Chat.ID, h.deps)
}

// HandleTimetable обрабатывает команду /timetable
func (h *Handlers) HandleTimetable(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	timetable.ShowCoursePicker(ctx, b, update.Message.Chat.ID, h.deps)
}

// HandleOptimize обрабатывает команду /optimize
func (h *Handlers) HandleOptimize(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.deps.Tracker.Refresh()
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        formatting.TaskStatusLine(h.deps.Tracker.Snapshot()),
		ReplyMarkup: tasks.StatusKeyboard(h.deps.Tracker.IsProcessing()),
	})
}

// HandleCancel обрабатывает команду /cancel - сброс текущего выбора
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.deps.Sessions.Clear(telegramID)
	h.deps.Matrices.Drop(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Выбор сброшен.\n\nИспользуйте /help для просмотра доступных команд.",
	})
}
