package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/config"
	"github.com/aliskhannn/quizmentor/internal/delivery/telegram"
	"github.com/aliskhannn/quizmentor/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/quizmentor/internal/infra/postgres/repository"
	"github.com/aliskhannn/quizmentor/internal/logger"
	"github.com/aliskhannn/quizmentor/internal/repository"
	"github.com/aliskhannn/quizmentor/internal/service"
	"github.com/aliskhannn/quizmentor/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Play a quiz"},
		{Command: "categories", Description: "List quiz categories"},
		{Command: "stats", Description: "Show your level and records"},
		{Command: "history", Description: "Show your last quizzes"},
		{Command: "stop", Description: "Leave the running quiz"},
		{Command: "reset", Description: "Delete your results"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	questionRepo, err := repository.NewQuestionRepository(cfg.QuestionsPath)
	if err != nil {
		lg.Fatal("failed to load questions", zap.String("path", cfg.QuestionsPath), zap.Error(err))
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		lg.Fatal("database is not configured", zap.Error(err))
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	tr := postgres.NewTransactor(pool)
	userRepo := pgrepo.NewUserRepository(pool)

	sessions := storage.NewSessionStorage()

	userService := service.NewUserService(userRepo, lg)
	resultService := service.NewResultService(tr, pool)
	quizService := service.NewQuizService(questionRepo, resultService, sessions, cfg.Engine, lg)
	janitor := service.NewJanitor(sessions, cfg.Janitor.Schedule, cfg.Janitor.IdleTTL, lg)

	handler := telegram.NewHandler(bot, lg, userService, quizService, resultService)
	quizService.SetNotifier(handler)

	go func() {
		if err := janitor.Start(ctx); err != nil {
			lg.Error("session janitor failed", zap.Error(err))
		}
	}()

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped with error", zap.Error(err))
	}

	quizService.Shutdown()
	lg.Info("shutdown complete")
}
