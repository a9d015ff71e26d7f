package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dineshhh-06/ai-powered-resume-screening/internal/config"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/domain"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/core/ports"
	"github.com/dineshhh-06/ai-powered-resume-screening/internal/observability/metrics"
)

const backpressureAcquireTimeout = 2 * time.Second

type Router struct {
	cfg       config.Config
	uploader  ports.ResumeUploader
	submitter ports.JobDescriptionSubmitter
	analyzer  ports.BatchAnalyzer
	exporter  ports.ReportExporter
	metrics   *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	uploader ports.ResumeUploader,
	submitter ports.JobDescriptionSubmitter,
	analyzer ports.BatchAnalyzer,
	exporter ports.ReportExporter,
) *Router {
	return &Router{
		cfg:       cfg,
		uploader:  uploader,
		submitter: submitter,
		analyzer:  analyzer,
		exporter:  exporter,
	}
}

func (rt *Router) WithMetrics(m *metrics.HTTPServerMetrics) *Router {
	rt.metrics = m
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/analyzer/upload-resumes", rt.uploadResumes)
	mux.HandleFunc("/api/analyzer/submit-job-description", rt.submitJobDescription)
	mux.HandleFunc("/api/analyzer/analyze", rt.analyze)
	mux.HandleFunc("/api/analyzer/reports/", rt.exportReport)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = requestValidationMiddleware(handler)
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, backpressureAcquireTimeout)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware("api", handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadResumes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("method not allowed"))
		return
	}

	if rt.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("Upload exceeds the size limit"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("No resume files provided"))
		return
	}

	headers := r.MultipartForm.File["resumes"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("No resume files provided"))
		return
	}
	if headers[0].Filename == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("No resume files selected"))
		return
	}

	uploaded := make([]domain.UploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("Could not read uploaded file"))
			return
		}

		resume, err := rt.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			// Files with a wrong extension or content type are skipped the
			// same way unreadable batch entries are skipped at analyze time.
			if domain.IsKind(err, domain.ErrInvalidInput) {
				continue
			}
			writeJSON(w, mapErrorToHTTPStatus(err), errorResponse(err.Error()))
			return
		}
		uploaded = append(uploaded, resume.File())
	}

	if len(uploaded) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("No valid PDF files were uploaded"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": fmt.Sprintf("Successfully uploaded %d resume(s)", len(uploaded)),
		"files":   uploaded,
	})
}

func (rt *Router) submitJobDescription(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("method not allowed"))
		return
	}

	var req struct {
		JobDescription *string `json:"job_description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.JobDescription == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("No job description provided"))
		return
	}
	if strings.TrimSpace(*req.JobDescription) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("Job description cannot be empty"))
		return
	}

	jd, err := rt.submitter.Submit(r.Context(), *req.JobDescription)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), errorResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "success",
		"message":         "Job description received",
		"jd_id":           jd.ID,
		"job_description": jd.Text,
	})
}

func (rt *Router) analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("method not allowed"))
		return
	}

	var req struct {
		ResumeFiles    []domain.UploadedFile `json:"resume_files"`
		JobDescription string                `json:"job_description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("No data provided"))
		return
	}
	if len(req.ResumeFiles) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("No resume files specified for analysis"))
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("No job description provided for analysis"))
		return
	}

	start := time.Now()
	report, err := rt.analyzer.Analyze(r.Context(), req.JobDescription, req.ResumeFiles)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), errorResponse(analyzeErrorMessage(err)))
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordAnalysisBatch(
			"api",
			report.Requested,
			report.Analyzed,
			report.Requested-report.Analyzed,
			time.Since(start),
		)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"message":   fmt.Sprintf("Successfully analyzed %d resume(s)", report.Analyzed),
		"report_id": report.ID,
		"results":   report.Results,
	})
}

func (rt *Router) exportReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("method not allowed"))
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/analyzer/reports/")
	reportID, ok := strings.CutSuffix(rest, "/export")
	if !ok || reportID == "" || strings.Contains(reportID, "/") {
		writeJSON(w, http.StatusNotFound, errorResponse("not found"))
		return
	}

	format := r.URL.Query().Get("format")
	export, err := rt.exporter.Export(r.Context(), reportID, format)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), errorResponse(err.Error()))
		return
	}

	if rt.metrics != nil {
		if format == "" {
			format = "csv"
		}
		rt.metrics.RecordExport("api", format)
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)
}

// analyzeErrorMessage strips operation prefixes so API consumers see the
// human-facing validation message, not the internal wrap chain.
func analyzeErrorMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}

func errorResponse(message string) map[string]string {
	return map[string]string{
		"status":  "error",
		"message": message,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
