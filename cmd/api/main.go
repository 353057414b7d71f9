package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"imagestudio/internal/http/handlers"
	"imagestudio/internal/http/httpapi"
	"imagestudio/internal/infra"
	"imagestudio/internal/providers/gemini"
	"imagestudio/internal/session"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := gemini.NewClient(ctx, gemini.Options{
		APIKey:       cfg.GeminiAPIKey,
		AnalyzeModel: cfg.GeminiAnalyzeModel,
		EditModel:    cfg.GeminiEditModel,
		Logger:       logger.With().Str("component", "gemini").Logger(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create gemini client")
	}

	registry := session.NewRegistry(client, cfg.SessionIdleTimeout, logger.With().Str("component", "sessions").Logger())
	go registry.Run(ctx, cfg.SessionSweepInterval)

	app := handlers.NewApp(registry, logger, cfg.UploadMaxBytes)
	router := httpapi.NewRouter(app, logger, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
