package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stadium-designer/internal/analysis"
	"stadium-designer/internal/config"
	"stadium-designer/internal/handler"
	"stadium-designer/internal/request"
	"stadium-designer/internal/service"
	sharedLogger "stadium-designer/shared/logger"
)

func main() {
	// --- 1. Загрузка конфигурации ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// --- 2. Инициализация логгера ---
	logger, err := sharedLogger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Не удалось инициализировать логгер: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	logger.Info("Starting stadium designer server...",
		zap.String("env", cfg.AppEnv),
		zap.String("analysis_transport", cfg.Analysis.Transport),
		zap.Duration("analysis_timeout", cfg.Analysis.Timeout),
	)

	// --- 3. Клиент воркера анализа ---
	executor, err := analysis.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize analysis executor", zap.Error(err))
	}
	defer func() {
		if err := executor.Close(); err != nil {
			logger.Error("Failed to close analysis executor", zap.Error(err))
		}
	}()

	// --- 4. Сервис и обработчики ---
	builder := request.NewBuilder(cfg.AssetsDir, logger)
	visualizationService := service.NewVisualizationService(builder, executor, service.Options{
		ExecutableKey: cfg.Analysis.ExecutableKey,
		Timeout:       cfg.Analysis.Timeout,
	}, logger)
	visualizationHandler := handler.NewVisualizationHandler(visualizationService, logger)

	// --- 5. Gin ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.AppEnv == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := newRouter(cfg, visualizationHandler, logger)

	// --- 6. HTTP сервер ---
	// WriteTimeout должен покрывать ожидание воркера
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Analysis.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- 7. Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Analysis.Timeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
