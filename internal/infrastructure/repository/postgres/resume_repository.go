package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
)

type ResumeRepository struct {
	db *sql.DB
}

func NewResumeRepository(db *sql.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

func (r *ResumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO resumes (
	id, original_name, stored_name, storage_path, mime_type, status, extracted_text, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		resume.ID, resume.OriginalName, resume.StoredName, resume.StoragePath, resume.MimeType,
		string(resume.Status), resume.ExtractedText, resume.Error, resume.CreatedAt, resume.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	return r.get(ctx, "id", id)
}

func (r *ResumeRepository) GetByStoredName(ctx context.Context, storedName string) (*domain.Resume, error) {
	return r.get(ctx, "stored_name", storedName)
}

func (r *ResumeRepository) get(ctx context.Context, column, value string) (*domain.Resume, error) {
	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`
SELECT id, original_name, stored_name, storage_path, mime_type, status, extracted_text, error_message, created_at, updated_at
FROM resumes
WHERE %s = $1
`, column), value)

	var resume domain.Resume
	var status string

	err := row.Scan(
		&resume.ID, &resume.OriginalName, &resume.StoredName, &resume.StoragePath, &resume.MimeType,
		&status, &resume.ExtractedText, &resume.Error, &resume.CreatedAt, &resume.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrResumeNotFound, "get resume", fmt.Errorf("%s=%s", column, value))
		}
		return nil, fmt.Errorf("scan resume: %w", err)
	}
	resume.Status = domain.ResumeStatus(status)
	return &resume, nil
}

func (r *ResumeRepository) UpdateStatus(ctx context.Context, id string, status domain.ResumeStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE resumes
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update resume status: %w", err)
	}
	return r.requireRow(res, id)
}

func (r *ResumeRepository) SaveExtractedText(ctx context.Context, id, text string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE resumes
SET extracted_text = $2, updated_at = $3
WHERE id = $1
`, id, text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save extracted text: %w", err)
	}
	return r.requireRow(res, id)
}

func (r *ResumeRepository) requireRow(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrResumeNotFound, "update resume", fmt.Errorf("id=%s", id))
	}
	return nil
}
