package availability

import (
	"context"

	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/callbacktypes"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/common"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/state"
	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlePickTeacher загружает матрицу выбранного преподавателя
func HandlePickTeacher(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	teacherID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse teacher ID", zap.Error(err), zap.String("data", callback.Data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	teachers, err := h.API.ListTeachers(ctx, teacherPageLimit)
	if err != nil {
		h.Logger.Error("Failed to list teachers", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	teacherName := ""
	for _, t := range teachers {
		if t.ID == teacherID {
			teacherName = t.FullName
			break
		}
	}

	matrix := service.NewAvailabilityMatrix(h.API, teacherID, h.Logger)
	if err := matrix.Load(ctx); err != nil {
		h.Logger.Error("Failed to load availability matrix",
			zap.Int64("teacher_id", teacherID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	telegramID := callback.From.ID
	h.Matrices.Put(telegramID, matrix)
	h.Sessions.Update(telegramID, func(s *state.Session) {
		s.SelectedTeacherID = teacherID
		s.SelectedTeacherName = teacherName
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
	redrawMatrix(ctx, b, callback, h, matrix)
}

// HandleToggle переключает ячейку слота
func HandleToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	slotID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse slot ID", zap.Error(err), zap.String("data", callback.Data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	matrix, ok := h.Matrices.Matrix(callback.From.ID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMatrix))
		return
	}

	outcome, err := matrix.Toggle(ctx, slotID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	switch outcome {
	case service.ToggleCreated:
		common.AnswerCallback(ctx, b, callback.ID, "✅ Слот отмечен доступным")
	case service.ToggleNeedsConfirm:
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
	redrawMatrix(ctx, b, callback, h, matrix)
}

// HandleConfirm подтверждает удаление связи
func HandleConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	matrix, ok := h.Matrices.Matrix(callback.From.ID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMatrix))
		return
	}

	if err := matrix.ConfirmDelete(ctx); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		redrawMatrix(ctx, b, callback, h, matrix)
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "🗑 Доступность убрана")
	redrawMatrix(ctx, b, callback, h, matrix)
}

// HandleCancel отменяет неподтверждённое удаление
func HandleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	matrix, ok := h.Matrices.Matrix(callback.From.ID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMatrix))
		return
	}

	matrix.CancelDelete()
	common.AnswerCallback(ctx, b, callback.ID, "Отменено")
	redrawMatrix(ctx, b, callback, h, matrix)
}

// HandleEditMode переключает режим просмотр/редактирование
func HandleEditMode(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	matrix, ok := h.Matrices.Matrix(callback.From.ID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMatrix))
		return
	}

	matrix.SetEditMode(!matrix.EditMode())
	common.AnswerCallback(ctx, b, callback.ID, "")
	redrawMatrix(ctx, b, callback, h, matrix)
}

// HandleReload перечитывает каталог и связи с сервера
func HandleReload(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	matrix, ok := h.Matrices.Matrix(callback.From.ID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMatrix))
		return
	}

	if err := matrix.Load(ctx); err != nil {
		h.Logger.Error("Failed to reload availability matrix", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "🔄 Обновлено")
	redrawMatrix(ctx, b, callback, h, matrix)
}

// redrawMatrix перерисовывает экран матрицы поверх исходного сообщения
func redrawMatrix(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, matrix *service.AvailabilityMatrix) {
	message := common.GetMessageFromCallback(callback)
	if message == nil {
		return
	}

	session := h.Sessions.Session(callback.From.ID)
	text, kb := MatrixScreen(matrix, session.SelectedTeacherName)

	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      message.Chat.ID,
		MessageID:   message.ID,
		Text:        text,
		ReplyMarkup: kb,
	})
	if err != nil {
		h.Logger.Warn("Failed to redraw availability screen", zap.Error(err))
	}
}
