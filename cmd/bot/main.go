package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TeamSamavisa/solara-admin-bot/internal/api"
	"github.com/TeamSamavisa/solara-admin-bot/internal/app"
	"github.com/TeamSamavisa/solara-admin-bot/internal/auth"
	"github.com/TeamSamavisa/solara-admin-bot/internal/config"
	"github.com/TeamSamavisa/solara-admin-bot/internal/controller"
	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
	"github.com/TeamSamavisa/solara-admin-bot/internal/web"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("🚀 Starting timetabling admin bot",
		zap.String("environment", cfg.Environment),
		zap.String("api_url", cfg.APIURL))

	// Личность бота по его API токену: роли нужны, чтобы ограничить
	// запуск оптимизации. Пустой токен — анонимный доступ
	var identity *auth.Identity
	if cfg.APIToken != "" {
		identity, err = auth.FromToken(cfg.APIToken)
		if err != nil {
			logger.Warn("Failed to parse API token identity", zap.Error(err))
		} else {
			logger.Info("✅ API identity resolved",
				zap.Int64("user_id", identity.UserID),
				zap.Strings("roles", identity.Roles))
		}
	}

	apiClient := api.NewClient(cfg.APIURL, cfg.APITimeout, func() string { return cfg.APIToken }, logger)

	tracker := service.NewTaskTracker(apiClient, logger,
		service.WithPollInterval(cfg.PollInterval))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create telegram bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, apiClient, tracker, identity, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Failed to register command menu", zap.Error(err))
	}

	// Уведомления о ходе оптимизации идут из цикла опроса трекера
	notifier := controller.NewTaskNotifier(b, botController.Sessions(), logger)
	tracker.OnUpdate(notifier.Notify)
	tracker.Start(ctx)
	defer tracker.Stop()

	// Печатная витрина расписания
	webServer := web.NewServer(cfg.HTTPAddr, apiClient, tracker, logger)
	go func() {
		if err := webServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Web server failed", zap.Error(err))
			cancel()
		}
	}()

	logger.Info("✅ Bot is up")
	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := webServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Web server shutdown failed", zap.Error(err))
	}

	logger.Info("👋 Bot stopped")
}
