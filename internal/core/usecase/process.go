package usecase

import (
	"context"
	"fmt"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/ports"
)

// ProcessResumeUseCase is the worker-side pipeline: extract a stored resume's
// text once and cache it so later analyze calls skip PDF parsing.
type ProcessResumeUseCase struct {
	repo      ports.ResumeRepository
	extractor ports.TextExtractor
}

func NewProcessResumeUseCase(
	repo ports.ResumeRepository,
	extractor ports.TextExtractor,
) *ProcessResumeUseCase {
	return &ProcessResumeUseCase{
		repo:      repo,
		extractor: extractor,
	}
}

func (uc *ProcessResumeUseCase) ProcessByID(ctx context.Context, resumeID string) error {
	if err := uc.repo.UpdateStatus(ctx, resumeID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	if err := uc.extractAndCache(ctx, resumeID); err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, resumeID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.UpdateStatus(ctx, resumeID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *ProcessResumeUseCase) extractAndCache(ctx context.Context, resumeID string) error {
	resume, err := uc.repo.GetByID(ctx, resumeID)
	if err != nil {
		return fmt.Errorf("fetch resume by id: %w", err)
	}

	text, err := uc.extractor.Extract(ctx, resume.StoredName)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	if err := uc.repo.SaveExtractedText(ctx, resume.ID, text); err != nil {
		return fmt.Errorf("cache extracted text: %w", err)
	}
	return nil
}
