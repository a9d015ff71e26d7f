package httpadapter

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var openapiSpec []byte

var (
	openapiRouterOnce sync.Once
	openapiRouter     routers.Router
)

func loadOpenAPIRouter() routers.Router {
	openapiRouterOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openapiSpec)
		if err != nil {
			slog.Error("openapi_spec_load_failed", "error", err)
			return
		}
		if err := doc.Validate(loader.Context); err != nil {
			slog.Error("openapi_spec_invalid", "error", err)
			return
		}
		router, err := legacyrouter.NewRouter(doc)
		if err != nil {
			slog.Error("openapi_router_build_failed", "error", err)
			return
		}
		openapiRouter = router
	})
	return openapiRouter
}

// requestValidationMiddleware rejects requests that do not match the
// published API contract before they reach a handler. Multipart bodies are
// exempt from body validation, the upload handler streams them itself.
func requestValidationMiddleware(next http.Handler) http.Handler {
	router := loadOpenAPIRouter()
	if router == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, pathParams, err := router.FindRoute(r)
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorResponse("not found"))
			return
		}

		options := &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		}
		var raw []byte
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			options.ExcludeRequestBody = true
		} else if r.Body != nil && r.Body != http.NoBody {
			var readErr error
			raw, readErr = io.ReadAll(r.Body)
			if readErr != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse("could not read request body"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
			Options:    options,
		}
		if err := openapi3filter.ValidateRequest(context.Background(), input); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse(validationMessage(r.URL.Path)))
			return
		}

		// Validation consumes the body; replay it for the handler.
		if raw != nil {
			r.Body = io.NopCloser(bytes.NewReader(raw))
		}
		next.ServeHTTP(w, r)
	})
}

// validationMessage keeps schema rejections aligned with the messages
// handlers produce for the same class of bad input.
func validationMessage(path string) string {
	switch path {
	case "/api/analyzer/submit-job-description":
		return "No job description provided"
	case "/api/analyzer/analyze":
		return "No data provided"
	default:
		return "invalid request"
	}
}
