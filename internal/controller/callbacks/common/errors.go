package common

import (
	"errors"

	"github.com/TeamSamavisa/solara-admin-bot/internal/api"
	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNoMatrix      = errors.New("no availability matrix selected")
	ErrNoTeacher     = errors.New("teacher not selected")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var apiErr *api.Error
	switch {
	case errors.Is(err, service.ErrMutationInFlight):
		return "⏳ Предыдущая операция ещё выполняется, подождите"
	case errors.Is(err, service.ErrNothingPending):
		return "❌ Нет удаления, ожидающего подтверждения"
	case errors.Is(err, service.ErrSlotUnknown):
		return "❌ Слот не найден в каталоге"
	case errors.Is(err, ErrNoMatrix), errors.Is(err, ErrNoTeacher):
		return "❌ Сначала выберите преподавателя: /availability"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.As(err, &apiErr):
		// Сервер присылает человекочитаемое сообщение
		return "❌ " + apiErr.Message
	default:
		return "❌ Произошла ошибка"
	}
}
