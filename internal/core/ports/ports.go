package ports

import (
	"context"
	"io"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *domain.Resume) error
	GetByID(ctx context.Context, id string) (*domain.Resume, error)
	GetByStoredName(ctx context.Context, storedName string) (*domain.Resume, error)
	UpdateStatus(ctx context.Context, id string, status domain.ResumeStatus, errMessage string) error
	SaveExtractedText(ctx context.Context, id, text string) error
}

type JobDescriptionRepository interface {
	Create(ctx context.Context, jd *domain.JobDescription) error
}

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
}

type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Path reports the location clients see in UploadedFile.Path.
	Path(key string) string
}

type MessageQueue interface {
	PublishResumeUploaded(ctx context.Context, resumeID string) error
	SubscribeResumeUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

type TextExtractor interface {
	Extract(ctx context.Context, storageKey string) (string, error)
}

// MatchEngine computes a deterministic match between a job description and a
// resume text. Same inputs always yield the same Match.
type MatchEngine interface {
	// Usable reports whether text still contains tokens after preprocessing.
	Usable(text string) bool
	Match(jobDescription, resumeText string) (domain.Match, error)
}
