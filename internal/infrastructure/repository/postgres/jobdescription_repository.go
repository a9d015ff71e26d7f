package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
)

type JobDescriptionRepository struct {
	db *sql.DB
}

func NewJobDescriptionRepository(db *sql.DB) *JobDescriptionRepository {
	return &JobDescriptionRepository{db: db}
}

func (r *JobDescriptionRepository) Create(ctx context.Context, jd *domain.JobDescription) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO job_descriptions (id, body, created_at)
VALUES ($1,$2,$3)
`, jd.ID, jd.Text, jd.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert job description: %w", err)
	}
	return nil
}
