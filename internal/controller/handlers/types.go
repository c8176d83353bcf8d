package handlers

import (
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/callbacktypes"
)

// Handlers содержит все зависимости для обработки команд.
// Командные обработчики делят зависимости с callback handlers:
// и те и другие работают с одними и теми же сессиями и матрицами
type Handlers struct {
	deps *callbacktypes.Handler
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{deps: deps}
}
