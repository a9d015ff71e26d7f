package ports

import (
	"context"
	"io"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
)

// ResumeUploader is the inbound contract for resume upload orchestration.
type ResumeUploader interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Resume, error)
}

// JobDescriptionSubmitter stores a submitted job description for later reuse.
type JobDescriptionSubmitter interface {
	Submit(ctx context.Context, text string) (*domain.JobDescription, error)
}

// BatchAnalyzer is the inbound contract for scoring a resume batch against a
// job description.
type BatchAnalyzer interface {
	Analyze(ctx context.Context, jobDescription string, files []domain.UploadedFile) (*domain.Report, error)
}

// ReportExporter renders a persisted report in a downloadable format.
type ReportExporter interface {
	Export(ctx context.Context, reportID, format string) (*domain.Export, error)
}

// ResumeProcessor is the inbound contract for asynchronous text extraction.
type ResumeProcessor interface {
	ProcessByID(ctx context.Context, resumeID string) error
}
