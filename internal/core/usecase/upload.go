package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/ports"
)

type UploadResumeUseCase struct {
	repo    ports.ResumeRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewUploadResumeUseCase(
	repo ports.ResumeRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *UploadResumeUseCase {
	return &UploadResumeUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

// Upload validates, stores and registers one resume PDF. Stored names are
// random so concurrent uploads of equally named files never collide.
func (uc *UploadResumeUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.Resume, error) {
	if err := validatePDF(filename, mimeType); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	storedName := strings.ReplaceAll(uuid.NewString(), "-", "") + ".pdf"
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storedName, body); err != nil {
		return nil, fmt.Errorf("save resume to storage: %w", err)
	}

	resume := &domain.Resume{
		ID:           id,
		OriginalName: sanitizeFilename(filename),
		StoredName:   storedName,
		StoragePath:  uc.storage.Path(storedName),
		MimeType:     mimeType,
		Status:       domain.StatusUploaded,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Create(ctx, resume); err != nil {
		return nil, fmt.Errorf("create resume metadata: %w", err)
	}

	// The worker's text cache is advisory; analysis extracts synchronously
	// when the event is lost, so a queue outage must not fail the upload.
	if err := uc.queue.PublishResumeUploaded(ctx, resume.ID); err != nil {
		slog.Warn("publish_resume_uploaded_failed", "resume_id", resume.ID, "error", err)
	}

	return resume, nil
}

func validatePDF(filename, mimeType string) error {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return domain.WrapError(domain.ErrInvalidInput, "validate upload", fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename)))
	}
	switch strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0])) {
	case "", "application/pdf", "application/octet-stream":
		return nil
	default:
		return domain.WrapError(domain.ErrInvalidInput, "validate upload", errors.New("content type is not application/pdf"))
	}
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_', r == ' ':
			return r
		default:
			return '_'
		}
	}, base)
	if strings.TrimSpace(base) == "" {
		return "resume.pdf"
	}
	return base
}
