package timetable

import (
	"bytes"
	"context"
	"fmt"

	"github.com/TeamSamavisa/solara-admin-bot/internal/api"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/callbacktypes"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/common"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/common/keyboard"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/state"
	"github.com/TeamSamavisa/solara-admin-bot/internal/render"
	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Callback data сетки расписания
const (
	PickCourse = "tt_course:" // tt_course:2
	PickGroup  = "tt_group:"  // tt_group:5
	PickShift  = "tt_shift:"  // tt_shift:1, tt_shift:0 — все смены
	Restart    = "tt_restart"
)

const (
	catalogueLimit   = 100
	assignmentsLimit = 500
)

// ShowCoursePicker первый шаг фильтра: выбор курса
func ShowCoursePicker(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler) {
	courses, err := h.API.ListCourses(ctx, catalogueLimit)
	if err != nil {
		h.Logger.Error("Failed to list courses", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось загрузить список курсов. Попробуйте позже.",
		})
		return
	}

	if len(courses) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Курсы не найдены.",
		})
		return
	}

	kb := keyboard.NewBuilder()
	for _, c := range courses {
		kb.Row(keyboard.Button(c.Name, fmt.Sprintf("%s%d", PickCourse, c.ID)))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "📚 Шаг 1/3. Выберите курс:",
		ReplyMarkup: kb.Build(),
	})
}

// HandleCourse второй шаг: выбор группы курса
func HandleCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	courseID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	groups, err := h.API.ListClassGroups(ctx, courseID, catalogueLimit)
	if err != nil {
		h.Logger.Error("Failed to list class groups", zap.Int64("course_id", courseID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if len(groups) == 0 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "У курса нет групп")
		return
	}

	h.Sessions.Update(callback.From.ID, func(s *state.Session) {
		s.ResetFilter()
		s.CourseID = courseID
	})

	kb := keyboard.NewBuilder()
	for _, g := range groups {
		kb.Row(keyboard.Button(g.Name, fmt.Sprintf("%s%d", PickGroup, g.ID)))
	}
	kb.Row(keyboard.Button("⬅️ Сначала", Restart))

	common.AnswerCallback(ctx, b, callback.ID, "")
	editScreen(ctx, b, callback, h, "👥 Шаг 2/3. Выберите группу:", kb.Build())
}

// HandleGroup третий шаг: выбор смены (необязательный)
func HandleGroup(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	shifts, err := h.API.ListShifts(ctx, catalogueLimit)
	if err != nil {
		h.Logger.Error("Failed to list shifts", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.Sessions.Update(callback.From.ID, func(s *state.Session) {
		s.ClassGroupID = groupID
		s.ShiftID = 0
	})

	kb := keyboard.NewBuilder()
	kb.Row(keyboard.Button("Все смены", PickShift+"0"))
	for _, sh := range shifts {
		kb.Row(keyboard.Button(sh.Name, fmt.Sprintf("%s%d", PickShift, sh.ID)))
	}
	kb.Row(keyboard.Button("⬅️ Сначала", Restart))

	common.AnswerCallback(ctx, b, callback.ID, "")
	editScreen(ctx, b, callback, h, "🕐 Шаг 3/3. Выберите смену:", kb.Build())
}

// HandleShift собирает сетку по фильтру и отправляет её картинкой
func HandleShift(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	shiftID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	telegramID := callback.From.ID
	h.Sessions.Update(telegramID, func(s *state.Session) { s.ShiftID = shiftID })
	session := h.Sessions.Session(telegramID)

	if !session.FilterComplete() {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Сначала выберите курс и группу")
		return
	}

	filter := service.TimetableFilter{
		CourseID:     session.CourseID,
		ClassGroupID: session.ClassGroupID,
		ShiftID:      session.ShiftID,
	}

	assignments, err := h.API.ListAssignments(ctx, api.AssignmentQuery{
		ClassGroupID: filter.ClassGroupID,
		Limit:        assignmentsLimit,
	})
	if err != nil {
		h.Logger.Error("Failed to list assignments", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	grid := service.BuildTimetableGrid(service.FilterAssignments(assignments, filter))
	if grid.Empty() {
		common.AnswerCallback(ctx, b, callback.ID, "")
		editScreen(ctx, b, callback, h,
			"По выбранному фильтру занятий нет.",
			keyboard.NewBuilder().Row(keyboard.Button("⬅️ Сначала", Restart)).Build())
		return
	}

	title := gridTitle(ctx, h, session)
	img, err := render.GridImage(grid, title)
	if err != nil {
		h.Logger.Error("Failed to render timetable image", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось построить изображение")
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
	message := common.GetMessageFromCallback(callback)
	if message == nil {
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: message.Chat.ID,
		Photo: &models.InputFileUpload{
			Filename: "timetable.png",
			Data:     bytes.NewReader(img),
		},
		Caption: title,
	})
	if err != nil {
		h.Logger.Error("Failed to send timetable image", zap.Error(err))
	}
}

// HandleRestart сбрасывает фильтр и начинает выбор заново
func HandleRestart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	h.Sessions.Update(callback.From.ID, func(s *state.Session) { s.ResetFilter() })
	common.AnswerCallback(ctx, b, callback.ID, "")

	message := common.GetMessageFromCallback(callback)
	if message == nil {
		return
	}
	ShowCoursePicker(ctx, b, message.Chat.ID, h)
}

// gridTitle подпись сетки по выбранной группе
func gridTitle(ctx context.Context, h *callbacktypes.Handler, session state.Session) string {
	groups, err := h.API.ListClassGroups(ctx, session.CourseID, catalogueLimit)
	if err != nil {
		return "Расписание"
	}
	for _, g := range groups {
		if g.ID == session.ClassGroupID {
			return "Расписание: " + g.Name
		}
	}
	return "Расписание"
}

func editScreen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, text string, kb *models.InlineKeyboardMarkup) {
	message := common.GetMessageFromCallback(callback)
	if message == nil {
		return
	}
	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      message.Chat.ID,
		MessageID:   message.ID,
		Text:        text,
		ReplyMarkup: kb,
	})
	if err != nil {
		h.Logger.Warn("Failed to edit timetable screen", zap.Error(err))
	}
}
