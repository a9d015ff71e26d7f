package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/ports"
)

type SubmitJobDescriptionUseCase struct {
	repo ports.JobDescriptionRepository
}

func NewSubmitJobDescriptionUseCase(repo ports.JobDescriptionRepository) *SubmitJobDescriptionUseCase {
	return &SubmitJobDescriptionUseCase{repo: repo}
}

func (uc *SubmitJobDescriptionUseCase) Submit(ctx context.Context, text string) (*domain.JobDescription, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "submit job description", errors.New("job description cannot be empty"))
	}

	jd := &domain.JobDescription{
		ID:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, jd); err != nil {
		return nil, fmt.Errorf("store job description: %w", err)
	}
	return jd, nil
}
