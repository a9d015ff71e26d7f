package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/ports"
)

const (
	msgExtractFailed    = "Could not extract text from PDF"
	msgPreprocessFailed = "Could not preprocess resume text"
)

type AnalyzeUseCase struct {
	resumes   ports.ResumeRepository
	reports   ports.ReportRepository
	extractor ports.TextExtractor
	engine    ports.MatchEngine
}

func NewAnalyzeUseCase(
	resumes ports.ResumeRepository,
	reports ports.ReportRepository,
	extractor ports.TextExtractor,
	engine ports.MatchEngine,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		resumes:   resumes,
		reports:   reports,
		extractor: extractor,
		engine:    engine,
	}
}

// Analyze scores every requested resume against the job description. Resumes
// are processed sequentially and failures stay local: one unreadable PDF
// becomes an error result while the rest of the batch proceeds. Result
// ordering matches the request ordering.
func (uc *AnalyzeUseCase) Analyze(
	ctx context.Context,
	jobDescription string,
	files []domain.UploadedFile,
) (*domain.Report, error) {
	if len(files) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "analyze", errors.New("no resume files specified for analysis"))
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "analyze", errors.New("no job description provided for analysis"))
	}
	if !uc.engine.Usable(jobDescription) {
		return nil, domain.WrapError(domain.ErrInvalidInput, "analyze", errors.New("could not process the job description"))
	}

	results := make([]domain.AnalysisResult, 0, len(files))
	analyzed := 0

	for _, file := range files {
		name := displayName(file)

		text, err := uc.resumeText(ctx, file)
		if err != nil {
			results = append(results, domain.ErrorResult(name, msgExtractFailed))
			continue
		}

		match, err := uc.engine.Match(jobDescription, text)
		if err != nil {
			results = append(results, domain.ErrorResult(name, msgPreprocessFailed))
			continue
		}

		results = append(results, domain.SuccessResult(name, match))
		analyzed++
	}

	if analyzed == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "analyze", errors.New("no valid resumes could be processed"))
	}

	report := &domain.Report{
		ID:             uuid.NewString(),
		JobDescription: jobDescription,
		Requested:      len(files),
		Analyzed:       analyzed,
		Results:        results,
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}
	return report, nil
}

// resumeText prefers the worker's extraction cache and falls back to
// synchronous extraction, so analysis works whether or not the worker ran.
func (uc *AnalyzeUseCase) resumeText(ctx context.Context, file domain.UploadedFile) (string, error) {
	key := storageKey(file)
	if key == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "resolve resume", errors.New("missing stored name"))
	}

	if resume, err := uc.resumes.GetByStoredName(ctx, key); err == nil {
		if resume.Status == domain.StatusReady && resume.ExtractedText != "" {
			return resume.ExtractedText, nil
		}
	}

	text, err := uc.extractor.Extract(ctx, key)
	if err != nil {
		return "", fmt.Errorf("extract resume text: %w", err)
	}
	return text, nil
}

func displayName(file domain.UploadedFile) string {
	if file.OriginalName != "" {
		return file.OriginalName
	}
	if file.Path != "" {
		return filepath.Base(file.Path)
	}
	return file.StoredName
}

func storageKey(file domain.UploadedFile) string {
	if file.StoredName != "" {
		return file.StoredName
	}
	if file.Path != "" {
		return filepath.Base(file.Path)
	}
	return ""
}
