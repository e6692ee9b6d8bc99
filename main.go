package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"softskill-server/internal/api"
	"softskill-server/internal/clients"
	"softskill-server/internal/config"
	"softskill-server/internal/interview"
	"softskill-server/internal/metrics"
	"softskill-server/internal/resume"
	"softskill-server/internal/server"
	"softskill-server/internal/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// .env is optional: real deployments inject the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Info("loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}
	if cfg.Gemini.APIKey == "" {
		log.Warn("GEMINI_API_KEY is not set, model calls will fail")
	}

	bank, err := config.LoadBank(cfg.Interview.QuestionBankPath)
	if err != nil {
		log.Fatalf("loading question bank %s: %v", cfg.Interview.QuestionBankPath, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := storage.Connect(ctx, cfg.Mongo.URI)
	cancel()
	if err != nil {
		log.Fatalf("connecting to mongodb: %v", err)
	}
	store := storage.New(client.Database(cfg.Mongo.Database))
	log.WithField("database", cfg.Mongo.Database).Info("connected to mongodb")

	model, err := api.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("initializing gemini client: %v", err)
	}

	transcriber := clients.NewTranscriber(cfg.Services.TranscriberURL)
	emotion := clients.NewEmotionClassifier(cfg.Services.EmotionURL)
	stats := metrics.New()

	resumeSvc := resume.New(store, model, stats)
	interviewSvc := interview.New(store, model, transcriber, resumeSvc, bank, cfg.Interview.TechnicalCount, stats)

	e := echo.New()
	e.HideBanner = true
	srv := server.New(resumeSvc, interviewSvc, transcriber, emotion, stats, log)
	srv.Register(e)

	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("http server listening")
		if err := e.Start(cfg.Server.Addr); err != nil {
			log.WithError(err).Info("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	_ = client.Disconnect(shutdownCtx)
	log.Info("server stopped")
}
