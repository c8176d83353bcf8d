package callbacks

import (
	"context"
	"strings"

	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/availability"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/callbacktypes"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/common"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/tasks"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/timetable"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Матрица доступности =====
	case strings.HasPrefix(data, availability.PickTeacher):
		availability.HandlePickTeacher(ctx, b, callback, h)
	case strings.HasPrefix(data, availability.Toggle):
		availability.HandleToggle(ctx, b, callback, h)
	case data == availability.Confirm:
		availability.HandleConfirm(ctx, b, callback, h)
	case data == availability.Cancel:
		availability.HandleCancel(ctx, b, callback, h)
	case data == availability.EditMode:
		availability.HandleEditMode(ctx, b, callback, h)
	case data == availability.Reload:
		availability.HandleReload(ctx, b, callback, h)

	// ===== Сетка расписания =====
	case strings.HasPrefix(data, timetable.PickCourse):
		timetable.HandleCourse(ctx, b, callback, h)
	case strings.HasPrefix(data, timetable.PickGroup):
		timetable.HandleGroup(ctx, b, callback, h)
	case strings.HasPrefix(data, timetable.PickShift):
		timetable.HandleShift(ctx, b, callback, h)
	case data == timetable.Restart:
		timetable.HandleRestart(ctx, b, callback, h)

	// ===== Оптимизация =====
	case data == tasks.Run:
		tasks.HandleRun(ctx, b, callback, h)
	case data == tasks.Status:
		tasks.HandleStatus(ctx, b, callback, h)

	case data == "noop":
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
