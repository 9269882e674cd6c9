package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Spok95/fitness-tracker/internal/app"
	"github.com/Spok95/fitness-tracker/internal/bot"
	"github.com/Spok95/fitness-tracker/internal/config"
	"github.com/Spok95/fitness-tracker/internal/db"
	"github.com/Spok95/fitness-tracker/internal/jobs"
	"github.com/Spok95/fitness-tracker/internal/logging"
	"github.com/Spok95/fitness-tracker/internal/observability"
	"github.com/Spok95/fitness-tracker/internal/students"
	"github.com/Spok95/fitness-tracker/internal/web"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения:", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()
	logger := lg.Base

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, cfg.Release)
	if err != nil {
		logger.Warn("sentry init failed", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := db.OpenStore(ctx, cfg.DBDriver, cfg.DatabaseURL, lg.Named("db"))
	if err != nil {
		observability.CaptureErr(err)
		logger.Fatal("store", zap.String("driver", string(cfg.DBDriver)), zap.Error(err))
	}
	defer closeStore()

	svc := students.NewService(store, lg.Named("students"))

	runner := jobs.New(ctx, lg.Named("jobs"))
	runner.Every(cfg.StatsRefresh, "stats_refresh", jobs.StatsRefresh(store))

	router := web.NewRouter(svc, web.Options{
		Log:         lg.Named("http"),
		Location:    cfg.Location,
		CORSOrigins: cfg.CORSOrigins,
	})
	srv, err := app.StartHTTP(ctx, cfg.HTTPAddr, router, lg.Named("http"))
	if err != nil {
		logger.Fatal("http listen", zap.String("addr", cfg.HTTPAddr), zap.Error(err))
	}

	if cfg.BotToken != "" {
		startBot(ctx, cfg, svc, lg.Named("bot"))
	} else {
		logger.Info("BOT_TOKEN is empty, telegram front-end disabled")
	}

	<-ctx.Done()
	logger.Info("shutting down")
	<-srv.Done()
}

func startBot(ctx context.Context, cfg *config.Config, svc *students.Service, logger *zap.Logger) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		// веб продолжает работать без бота
		observability.CaptureErr(err)
		logger.Error("telegram init failed", zap.Error(err))
		return
	}
	logger.Info("bot started", zap.String("username", api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	b := bot.New(api, svc, cfg.IsAdmin, logger)
	go b.Run(ctx, updates)
}
