package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	resultsJSON, err := json.Marshal(report.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO reports (id, job_description, requested, analyzed, results, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`,
		report.ID, report.JobDescription, report.Requested, report.Analyzed, resultsJSON, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, job_description, requested, analyzed, results, created_at
FROM reports
WHERE id = $1
`, id)

	var report domain.Report
	var resultsRaw []byte

	err := row.Scan(&report.ID, &report.JobDescription, &report.Requested, &report.Analyzed, &resultsRaw, &report.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrReportNotFound, "get report", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}

	if err := json.Unmarshal(resultsRaw, &report.Results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}
	return &report, nil
}
