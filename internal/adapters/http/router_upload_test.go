package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/config"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
)

type uploaderFake struct {
	uploads int
}

func (f *uploaderFake) Upload(_ context.Context, filename, mimeType string, body io.Reader) (*domain.Resume, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, domain.WrapError(domain.ErrInvalidInput, "validate upload", io.EOF)
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	}

	f.uploads++
	now := time.Now().UTC()
	return &domain.Resume{
		ID:           "res-1",
		OriginalName: filename,
		StoredName:   "abc123.pdf",
		StoragePath:  "data/resumes/abc123.pdf",
		MimeType:     mimeType,
		Status:       domain.StatusUploaded,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

type submitterFake struct{}

func (submitterFake) Submit(_ context.Context, text string) (*domain.JobDescription, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "submit job description", io.EOF)
	}
	return &domain.JobDescription{ID: "jd1234", Text: text, CreatedAt: time.Now().UTC()}, nil
}

type analyzerStub struct {
	report *domain.Report
	err    error
}

func (f analyzerStub) Analyze(context.Context, string, []domain.UploadedFile) (*domain.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type exporterStub struct {
	export *domain.Export
	err    error
}

func (f exporterStub) Export(context.Context, string, string) (*domain.Export, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.export, nil
}

func newTestRouter(uploader *uploaderFake, analyzer analyzerStub, exporter exporterStub) http.Handler {
	return NewRouter(
		config.Config{MaxUploadBytes: 16 << 20},
		uploader,
		submitterFake{},
		analyzer,
		exporter,
	).Handler()
}

func multipartBody(t *testing.T, filenames ...string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, name := range filenames {
		part, err := writer.CreateFormFile("resumes", name)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := part.Write([]byte("%PDF-1.4 test")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestHealthzEndpoint(t *testing.T) {
	handler := newTestRouter(&uploaderFake{}, analyzerStub{}, exporterStub{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestUploadResumesSuccess(t *testing.T) {
	uploader := &uploaderFake{}
	handler := newTestRouter(uploader, analyzerStub{}, exporterStub{})

	body, contentType := multipartBody(t, "alice.pdf", "bob.pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/analyzer/upload-resumes", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if uploader.uploads != 2 {
		t.Fatalf("expected 2 uploads, got %d", uploader.uploads)
	}

	var resp struct {
		Status  string                `json:"status"`
		Message string                `json:"message"`
		Files   []domain.UploadedFile `json:"files"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("expected success status, got %q", resp.Status)
	}
	if len(resp.Files) != 2 {
		t.Fatalf("expected 2 file descriptors, got %d", len(resp.Files))
	}
	if resp.Files[0].StoredName == "" || resp.Files[0].Path == "" {
		t.Fatalf("expected stored name and path, got %+v", resp.Files[0])
	}
}

func TestUploadResumesSkipsNonPDF(t *testing.T) {
	uploader := &uploaderFake{}
	handler := newTestRouter(uploader, analyzerStub{}, exporterStub{})

	body, contentType := multipartBody(t, "notes.txt", "alice.pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/analyzer/upload-resumes", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if uploader.uploads != 1 {
		t.Fatalf("expected only the pdf to be stored, got %d uploads", uploader.uploads)
	}
}

func TestUploadResumesAllInvalid(t *testing.T) {
	handler := newTestRouter(&uploaderFake{}, analyzerStub{}, exporterStub{})

	body, contentType := multipartBody(t, "notes.txt")
	req := httptest.NewRequest(http.MethodPost, "/api/analyzer/upload-resumes", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "No valid PDF files were uploaded" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestUploadResumesMissingField(t *testing.T) {
	handler := newTestRouter(&uploaderFake{}, analyzerStub{}, exporterStub{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("other", "value"); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyzer/upload-resumes", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestSubmitJobDescriptionSuccess(t *testing.T) {
	handler := newTestRouter(&uploaderFake{}, analyzerStub{}, exporterStub{})

	payload := bytes.NewBufferString(`{"job_description":"Senior Python engineer"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/analyzer/submit-job-description", payload)
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	var resp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["jd_id"] != "jd1234" {
		t.Fatalf("expected jd_id, got %+v", resp)
	}
	if resp["job_description"] != "Senior Python engineer" {
		t.Fatalf("expected echoed job description, got %+v", resp)
	}
}

func TestSubmitJobDescriptionEmpty(t *testing.T) {
	handler := newTestRouter(&uploaderFake{}, analyzerStub{}, exporterStub{})

	payload := bytes.NewBufferString(`{"job_description":"   "}`)
	req := httptest.NewRequest(http.MethodPost, "/api/analyzer/submit-job-description", payload)
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "Job description cannot be empty" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestSubmitJobDescriptionMissingKey(t *testing.T) {
	handler := newTestRouter(&uploaderFake{}, analyzerStub{}, exporterStub{})

	payload := bytes.NewBufferString(`{"other":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/analyzer/submit-job-description", payload)
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "No job description provided" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	handler := newTestRouter(&uploaderFake{}, analyzerStub{}, exporterStub{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id header")
	}
}
