// @title           Notes API
// @version         1.0
// @description     Multi-tenant notes API with cookie auth, categories and field-level updates.
// @host            localhost:8080
// @BasePath        /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ghislainnkundayezu/notes-app-api/internal/app"
	"github.com/ghislainnkundayezu/notes-app-api/internal/config"

	_ "github.com/ghislainnkundayezu/notes-app-api/docs"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	logger.Info("config loaded, connecting to DB and Redis")

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("app init", zap.Error(err))
	}
	logger.Info("app ready, starting HTTP server")
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown", zap.Error(err))
	}

	if err := application.Close(ctx); err != nil {
		logger.Fatal("app close", zap.Error(err))
	}
}
