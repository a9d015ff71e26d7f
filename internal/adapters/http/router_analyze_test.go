package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
)

func analyzedReport() *domain.Report {
	score := 61.5
	return &domain.Report{
		ID:             "rep1",
		JobDescription: "python role",
		Requested:      2,
		Analyzed:       1,
		Results: []domain.AnalysisResult{
			{
				Resume:        "alice.pdf",
				Status:        domain.ResultSuccess,
				MatchScore:    &score,
				KeyStrengths:  []string{"python"},
				MissingSkills: []string{"docker"},
				Feedback:      "Candidate shows strength in 1 key areas.",
			},
			{
				Resume:  "broken.pdf",
				Status:  domain.ResultError,
				Message: "Could not extract text from PDF",
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func analyzeRequest(payload string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/analyzer/analyze", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAnalyzeEndpointSuccess(t *testing.T) {
	handler := newTestRouter(&uploaderFake{}, analyzerStub{report: analyzedReport()}, exporterStub{})

	req := analyzeRequest(`{
		"job_description": "python role",
		"resume_files": [
			{"original_name": "alice.pdf", "stored_name": "a.pdf", "path": "data/resumes/a.pdf"},
			{"original_name": "broken.pdf", "stored_name": "b.pdf", "path": "data/resumes/b.pdf"}
		]
	}`)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var resp struct {
		Status   string                  `json:"status"`
		Message  string                  `json:"message"`
		ReportID string                  `json:"report_id"`
		Results  []domain.AnalysisResult `json:"results"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ReportID != "rep1" {
		t.Fatalf("expected report id, got %+v", resp)
	}
	if resp.Message != "Successfully analyzed 1 resume(s)" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Resume != "alice.pdf" || resp.Results[1].Resume != "broken.pdf" {
		t.Fatalf("unexpected result order: %+v", resp.Results)
	}
	if resp.Results[1].MatchScore != nil {
		t.Fatalf("error result must not carry a match score")
	}
}

func TestAnalyzeEndpointEmptyFiles(t *testing.T) {
	handler := newTestRouter(&uploaderFake{}, analyzerStub{report: analyzedReport()}, exporterStub{})

	req := analyzeRequest(`{"job_description": "python role", "resume_files": []}`)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "No resume files specified for analysis" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestAnalyzeEndpointMissingJobDescription(t *testing.T) {
	handler := newTestRouter(&uploaderFake{}, analyzerStub{report: analyzedReport()}, exporterStub{})

	req := analyzeRequest(`{"job_description": " ", "resume_files": [{"stored_name": "a.pdf"}]}`)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "No job description provided for analysis" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestAnalyzeEndpointMapsInvalidInput(t *testing.T) {
	stub := analyzerStub{err: domain.WrapError(domain.ErrInvalidInput, "analyze", errors.New("no valid resumes could be processed"))}
	handler := newTestRouter(&uploaderFake{}, stub, exporterStub{})

	req := analyzeRequest(`{"job_description": "python role", "resume_files": [{"stored_name": "a.pdf"}]}`)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "no valid resumes could be processed" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestAnalyzeEndpointMapsTemporaryError(t *testing.T) {
	stub := analyzerStub{err: domain.WrapError(domain.ErrTemporary, "analyze", errors.New("database is down"))}
	handler := newTestRouter(&uploaderFake{}, stub, exporterStub{})

	req := analyzeRequest(`{"job_description": "python role", "resume_files": [{"stored_name": "a.pdf"}]}`)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestAnalyzeEndpointMalformedJSON(t *testing.T) {
	handler := newTestRouter(&uploaderFake{}, analyzerStub{report: analyzedReport()}, exporterStub{})

	req := analyzeRequest(`{not json`)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "No data provided" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}
