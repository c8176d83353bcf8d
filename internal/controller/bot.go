package controller

import (
	"context"

	"github.com/TeamSamavisa/solara-admin-bot/internal/api"
	"github.com/TeamSamavisa/solara-admin-bot/internal/auth"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/callbacks/callbacktypes"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/handlers"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller/state"
	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	deps     *callbacktypes.Handler
	sessions *state.Manager
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	apiClient *api.Client,
	tracker *service.TaskTracker,
	identity *auth.Identity,
	logger *zap.Logger,
) *BotController {
	// Сессии и матрицы делят командные и callback обработчики
	sessions := state.NewManager()

	deps := &callbacktypes.Handler{
		API:      apiClient,
		Tracker:  tracker,
		Identity: identity,
		Sessions: sessions,
		Matrices: state.NewMatrixRegistry(),
		Logger:   logger,
	}

	return &BotController{
		bot:      botInstance,
		handlers: handlers.NewHandlers(deps),
		deps:     deps,
		sessions: sessions,
		logger:   logger,
	}
}

// Sessions менеджер сессий, нужен для подписки трекера на уведомления
func (c *BotController) Sessions() *state.Manager {
	return c.sessions
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/availability", bot.MatchTypeExact, c.handlers.HandleAvailability)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/timetable", bot.MatchTypeExact, c.handlers.HandleTimetable)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/optimize", bot.MatchTypeExact, c.handlers.HandleOptimize)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

func (c *BotController) handleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	callbacks.Route(ctx, b, update.CallbackQuery, c.deps)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "availability", Description: "🗓 Доступность преподавателей"},
		{Command: "timetable", Description: "📋 Сетка расписания группы"},
		{Command: "optimize", Description: "⚙️ Оптимизация расписания"},
		{Command: "cancel", Description: "↩️ Сбросить текущий выбор"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
