package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vijayakumarsahana16-san/phishproof/internal/adapter/http/router"
	"github.com/vijayakumarsahana16-san/phishproof/internal/adapter/repository/csvfile"
	rediscache "github.com/vijayakumarsahana16-san/phishproof/internal/adapter/repository/redis"
	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/repository"
	"github.com/vijayakumarsahana16-san/phishproof/internal/infrastructure/cache"
	"github.com/vijayakumarsahana16-san/phishproof/internal/infrastructure/config"
	"github.com/vijayakumarsahana16-san/phishproof/internal/infrastructure/logger"
	"github.com/vijayakumarsahana16-san/phishproof/internal/infrastructure/metrics"
	"github.com/vijayakumarsahana16-san/phishproof/internal/infrastructure/ml"
	"github.com/vijayakumarsahana16-san/phishproof/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.Server.Mode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Train once before accepting requests; failures leave the model untrained
	trainer := usecase.NewTrainerUsecase(
		csvfile.NewSampleSource(cfg.Model.DataPath),
		ml.NewTrainer(ml.Options{
			NGramMin:        cfg.Model.NGramMin,
			NGramMax:        cfg.Model.NGramMax,
			RemoveStopWords: cfg.Model.StopWords,
			C:               cfg.Model.C,
			MaxIterations:   cfg.Model.MaxIterations,
			BalanceClasses:  cfg.Model.BalanceClasses,
		}),
		log,
	)
	outcome := trainer.Train(context.Background())
	if !outcome.Report.IsTrained() {
		log.Warn("Serving without a model", zap.String("reason", outcome.Report.Reason))
	}

	// Initialize Redis (optional, continue without it)
	var redisClient *redis.Client
	var verdictCache repository.VerdictCache
	if cfg.Redis.Enabled && outcome.Report.IsTrained() {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
			verdictCache = rediscache.NewVerdictCache(redisClient, cfg.Redis.TTL, outcome.Report.Model)
		}
	}

	detector := usecase.NewDetectorUsecase(outcome, verdictCache, m, log)

	r := router.Setup(router.Options{
		Detector:    detector,
		Redis:       redisClient,
		Logger:      log,
		Metrics:     m,
		Gatherer:    reg,
		AllowOrigin: cfg.CORS.AllowOrigin,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  2 * cfg.Server.ReadTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}
