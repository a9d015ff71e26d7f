package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/ports"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var exportHeader = []string{"resume", "status", "match_score", "key_strengths", "missing_skills", "feedback", "message"}

type ExportReportUseCase struct {
	reports ports.ReportRepository
}

func NewExportReportUseCase(reports ports.ReportRepository) *ExportReportUseCase {
	return &ExportReportUseCase{reports: reports}
}

// Export renders a stored report as a CSV or XLSX download. The output always
// carries one header row plus one row per result.
func (uc *ExportReportUseCase) Export(ctx context.Context, reportID, format string) (*domain.Export, error) {
	if format == "" {
		format = FormatCSV
	}

	report, err := uc.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		data, err := renderCSV(report)
		if err != nil {
			return nil, err
		}
		return &domain.Export{
			Filename:    fmt.Sprintf("report_%s.csv", report.ID),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case FormatXLSX:
		data, err := renderXLSX(report)
		if err != nil {
			return nil, err
		}
		return &domain.Export{
			Filename:    fmt.Sprintf("report_%s.xlsx", report.ID),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "export report", fmt.Errorf("unsupported format: %s", format))
	}
}

func renderCSV(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, result := range report.Results {
		if err := w.Write(resultRow(result)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(report *domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}
	for i, result := range report.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx cell name: %w", err)
		}
		row := resultRow(result)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write xlsx row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func resultRow(result domain.AnalysisResult) []string {
	score := ""
	if result.MatchScore != nil {
		score = strconv.FormatFloat(*result.MatchScore, 'f', 1, 64)
	}
	return []string{
		result.Resume,
		string(result.Status),
		score,
		strings.Join(result.KeyStrengths, "; "),
		strings.Join(result.MissingSkills, "; "),
		result.Feedback,
		result.Message,
	}
}
