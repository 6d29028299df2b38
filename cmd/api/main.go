package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/arneor/sales-tracker-api/infrastructure/integrator/google/sheetsclient"
	"github.com/arneor/sales-tracker-api/infrastructure/repository"
	"github.com/arneor/sales-tracker-api/internal/api"
	"github.com/arneor/sales-tracker-api/internal/appstate"
	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/scheduler"
	"github.com/arneor/sales-tracker-api/internal/usecases/authenticating"
	"github.com/arneor/sales-tracker-api/internal/usecases/tracking"
	"github.com/arneor/sales-tracker-api/pkg/cache"
	"github.com/arneor/sales-tracker-api/pkg/log"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sheetCache := cache.NewWithTTL(cfg.Cache.TTL)

	tokenManager := sheetsclient.NewTokenManager(cfg, log.L)
	sheetsClient := sheetsclient.NewClient(cfg, tokenManager)

	userRepo := repository.NewUserRepository(sheetsClient, sheetCache, cfg, log.L)
	saleRepo := repository.NewSaleRepository(sheetsClient, sheetCache, cfg, log.L)
	targetRepo := repository.NewTargetRepository(sheetsClient, sheetCache, cfg, log.L)

	initializer := repository.NewSheetInitializer(sheetsClient, userRepo, sheetCache, cfg, log.L)
	if err := initializer.EnsureSheets(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao preparar as abas da planilha, seguindo mesmo assim")
	} else {
		logrus.Info("Abas da planilha verificadas com sucesso")
	}

	authenticator := authenticating.NewService(tokenManager, sheetCache, cfg, log.L)
	trackingService := tracking.NewService(userRepo, saleRepo, targetRepo, sheetCache, log.L)

	state := appstate.NewController(cfg, log.L)

	sheetSyncService := scheduler.NewSheetSyncService(
		userRepo,
		saleRepo,
		targetRepo,
		state,
		sheetCache,
		cfg,
		log.L,
	)

	if err := sheetSyncService.Start(); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização da planilha")
	} else {
		logrus.Info("Agendador de sincronização da planilha iniciado com sucesso")
	}
	defer sheetSyncService.Stop()

	server, err := api.New(
		cfg,
		authenticator,
		trackingService,
		state,
		sheetSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
