package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/bootstrap"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/config"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/observability/logging"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("worker", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker_metrics_server_error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeResumeUploaded(ctx, func(handlerCtx context.Context, resumeID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		if resume, getErr := app.Resumes.GetByID(processCtx, resumeID); getErr == nil {
			workerMetrics.ObserveQueueLag("worker", time.Since(resume.CreatedAt))
		}

		workerMetrics.StartResume()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, resumeID)
		workerMetrics.FinishResume("worker", time.Since(start), processErr)
		return processErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
