package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/examprep/internal/api"
	"github.com/vytor/examprep/internal/config"
	"github.com/vytor/examprep/internal/db"
	"github.com/vytor/examprep/internal/jobs"
	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/progress"
	"github.com/vytor/examprep/internal/questions"
	"github.com/vytor/examprep/internal/repository/sqlite"
	"github.com/vytor/examprep/internal/services"
	"github.com/vytor/examprep/internal/worker"
)

const janitorInterval = time.Minute

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogColors),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("ExamPrep Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("exam_duration=%s", cfg.ExamDuration)
	log.Debug("timer_interval=%s", cfg.TimerInterval)
	log.Debug("persist_queue_size=%d", cfg.PersistQueueSize)
	log.Debug("set_page_size=%d", cfg.SetPageSize)
	log.Debug("full_exam_size=%d", cfg.FullExamSize)
	log.Debug("mastery_review_threshold=%d", cfg.MasteryReviewThreshold)
	log.Debug("session_idle_ttl=%s", cfg.SessionIdleTTL)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	failureLog := log.WithPrefix("failure")
	onFailure := models.FailureFunc(func(f models.Failure) {
		failureLog.WithFields(map[string]any{"op": f.Op, "key": f.Key}).Error("%v", f.Err)
	})

	// Repositories
	questionRepo := sqlite.NewQuestionRepository(database.DB)
	activityRepo := sqlite.NewActivityRepository(database.DB)
	masteryRepo := sqlite.NewMasteryRepository(database.DB)
	store := progress.NewStore(sqlite.NewKeyValueStore(database.DB))

	// Question supply
	bank := questions.NewBank(questionRepo, cfg.FullExamSize, nil)
	loader := questions.NewLoader(bank,
		questions.WithPageSize(cfg.SetPageSize),
		questions.WithFailureFunc(onFailure),
	)

	// A single worker keeps persistence writes in submission order.
	persistPool := worker.NewPool(1, cfg.PersistQueueSize)
	persistQueue := jobs.NewWorkerQueue(persistPool, store, activityRepo, onFailure)

	// Initialize services
	simulationService := services.NewSimulationService(loader, store, persistQueue, services.SimulationConfig{
		ExamDuration:  cfg.ExamDuration,
		TimerInterval: cfg.TimerInterval,
		IdleTTL:       cfg.SessionIdleTTL,
		OnFailure:     onFailure,
	})
	activityService := services.NewActivityService(activityRepo)
	progressService := services.NewProgressService(store)
	vocabularyService := services.NewVocabularyService(masteryRepo, cfg.MasteryReviewThreshold)

	srv := &api.Server{
		SimulationService: simulationService,
		ActivityService:   activityService,
		ProgressService:   progressService,
		VocabularyService: vocabularyService,
		DB:                database,
		RequestTimeout:    15 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	persistPool.Start(ctx)
	go simulationService.RunJanitor(ctx, janitorInterval)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("closing sessions")
	simulationService.Shutdown(shutdownCtx)

	// Pending writes are drained before the worker context is cancelled.
	log.Debug("draining persistence queue (%d pending)", persistPool.QueueSize())
	persistPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("ExamPrep Server Stopped")
	log.Info("===========================================")
}
