package callbacktypes

import (
	"github.com/TeamSamavisa/solara-admin-bot/internal/api"
	"github.com/TeamSamavisa/solara-admin-bot/internal/auth"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/state"
	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	API      *api.Client
	Tracker  *service.TaskTracker
	Identity *auth.Identity

	Sessions *state.Manager
	Matrices *state.MatrixRegistry
	Logger   *zap.Logger
}
