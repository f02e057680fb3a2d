package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/tradepost/backend/internal/api/http"
	"github.com/tradepost/backend/internal/cache"
	"github.com/tradepost/backend/internal/config"
	"github.com/tradepost/backend/internal/db"
	"github.com/tradepost/backend/internal/queue/asynqserver"
	queueClient "github.com/tradepost/backend/internal/queue/client"
	"github.com/tradepost/backend/internal/repository"
	"github.com/tradepost/backend/internal/server"
	"github.com/tradepost/backend/internal/service"
	"github.com/tradepost/backend/internal/worker"
	"github.com/tradepost/backend/pkg/auth"
	"github.com/tradepost/backend/pkg/logger"
	"github.com/tradepost/backend/pkg/notify"
	"github.com/tradepost/backend/pkg/otp"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.Setup(cfg.Env, cfg.LogLevel)
	defer func() { _ = appLogger.Sync() }()

	logger.Info("starting trust engine api", zap.String("env", cfg.Env))

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err = dbMySQL.Close(); err != nil {
			logger.Error("error when closing", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}

	emailSender, err := notify.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Pass)
	if err != nil {
		logger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	smsSender, err := notify.NewSevenSMSSender(cfg.SMS.APIKey, cfg.SMS.From, cfg.SMS.BaseURL)
	if err != nil {
		logger.Error("sms sender creation failed", zap.Error(err))
		return
	}

	sender := notify.NewDispatcher(emailSender, smsSender, cfg.Verification.DispatchTimeout)

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Error("auth manager creation err", zap.Error(err))
		return
	}

	otpGenerator := otp.NewGOTPGenerator()

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Repos:        repos,
		Sender:       sender,
		OtpGenerator: otpGenerator,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// Queue client for enqueueing notification tasks
	asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	restoreClient := queueClient.SetClient(asynqClient)
	defer restoreClient()

	// Background workers: queue consumers and the re-verification sweep
	workers := worker.NewWorkers(worker.Deps{
		Redis:    redisClient,
		Services: services,
		Sender:   sender,
		Config:   cfg,
	})

	queueSrv, queueMux := asynqserver.New(cfg.Cache, workers)
	go func() {
		if err := queueSrv.Run(queueMux); err != nil {
			logger.Error("error occurred while running queue server", zap.Error(err))
		}
	}()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go workers.Reverifier.Run(sweepCtx)

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started")

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	stopSweep()
	queueSrv.Shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	logger.Info("app stopped")
}
