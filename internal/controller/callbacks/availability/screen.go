package availability

import (
	"context"
	"fmt"

	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/callbacktypes"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/common/formatting"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/common/keyboard"
	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Callback data матрицы доступности
const (
	PickTeacher = "av_teacher:" // av_teacher:15
	Toggle      = "av_toggle:"  // av_toggle:slot_id
	Confirm     = "av_confirm"
	Cancel      = "av_cancel"
	EditMode    = "av_edit"
	Reload      = "av_reload"
)

// teacherPageLimit преподавателей в списке выбора
const teacherPageLimit = 50

// ShowTeacherPicker отправляет список преподавателей для выбора матрицы
func ShowTeacherPicker(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler) {
	teachers, err := h.API.ListTeachers(ctx, teacherPageLimit)
	if err != nil {
		h.Logger.Error("Failed to list teachers", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось загрузить список преподавателей. Попробуйте позже.",
		})
		return
	}

	if len(teachers) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Преподаватели не найдены.",
		})
		return
	}

	kb := keyboard.NewBuilder()
	for _, t := range teachers {
		kb.Row(keyboard.Button(t.FullName, fmt.Sprintf("%s%d", PickTeacher, t.ID)))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "👩‍🏫 Выберите преподавателя для настройки доступности:",
		ReplyMarkup: kb.Build(),
	})
}

// MatrixScreen текст и клавиатура экрана матрицы для текущей фазы
func MatrixScreen(m *service.AvailabilityMatrix, teacherName string) (string, *models.InlineKeyboardMarkup) {
	if _, pending := m.PendingSlot(); pending {
		text := fmt.Sprintf("⚠️ Убрать доступность преподавателя %s в этом слоте?", teacherName)
		kb := keyboard.NewBuilder().
			Row(
				keyboard.Button("🗑 Да, убрать", Confirm),
				keyboard.Button("Отмена", Cancel),
			).
			Build()
		return text, kb
	}

	mode := "просмотр"
	modeButton := "✏️ Редактировать"
	if m.EditMode() {
		mode = "редактирование"
		modeButton = "👁 Только просмотр"
	}

	text := fmt.Sprintf(
		"🗓 Доступность: %s\nСлотов отмечено: %d\nРежим: %s",
		teacherName, m.Total(), mode,
	)

	kb := keyboard.NewBuilder()
	for _, row := range m.Rows() {
		buttons := []models.InlineKeyboardButton{
			keyboard.Button(formatting.WeekdayShort(row.Weekday), "noop"),
		}
		for _, cell := range row.Cells {
			mark := "⬜"
			if cell.Linked {
				mark = "✅"
			}
			buttons = append(buttons, keyboard.Button(
				mark+" "+formatting.SlotLabel(&cell.Slot),
				fmt.Sprintf("%s%d", Toggle, cell.Slot.ID),
			))
		}
		kb.Row(buttons...)
	}
	kb.Row(
		keyboard.Button(modeButton, EditMode),
		keyboard.Button("🔄 Обновить", Reload),
	)

	return text, kb.Build()
}
