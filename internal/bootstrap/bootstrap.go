package bootstrap

import (
	"context"
	"fmt"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/config"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/ports"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/usecase"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/infrastructure/extractor/pdftext"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/infrastructure/nlp"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/infrastructure/queue/nats"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/infrastructure/repository/postgres"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/infrastructure/resilience"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue   ports.MessageQueue
	Resumes ports.ResumeRepository

	UploadUC  ports.ResumeUploader
	SubmitUC  ports.JobDescriptionSubmitter
	AnalyzeUC ports.BatchAnalyzer
	ExportUC  ports.ReportExporter
	ProcessUC ports.ResumeProcessor

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	resumes := postgres.NewResumeRepository(db)
	jobDescriptions := postgres.NewJobDescriptionRepository(db)
	reports := postgres.NewReportRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	vocab, err := nlp.LoadVocabulary(cfg.SkillsFile)
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, fmt.Errorf("load skills vocabulary: %w", err)
	}
	engine := nlp.NewEngine(vocab, cfg.MaxSkillsDisplayed)

	extractor := pdftext.NewExtractor(storage)

	uploadUC := usecase.NewUploadResumeUseCase(resumes, storage, queue)
	submitUC := usecase.NewSubmitJobDescriptionUseCase(jobDescriptions)
	analyzeUC := usecase.NewAnalyzeUseCase(resumes, reports, extractor, engine)
	exportUC := usecase.NewExportReportUseCase(reports)
	processUC := usecase.NewProcessResumeUseCase(resumes, extractor)

	return &App{
		Config:  cfg,
		Queue:   queue,
		Resumes: resumes,

		UploadUC:  uploadUC,
		SubmitUC:  submitUC,
		AnalyzeUC: analyzeUC,
		ExportUC:  exportUC,
		ProcessUC: processUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
