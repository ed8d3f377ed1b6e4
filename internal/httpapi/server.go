package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riandyrn/otelchi"

	"entityd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Extract(ctx context.Context, req types.ExtractionRequest) (types.ExtractionResponse, error)
	Ready() bool
}

// routerName is the server name reported on tracing spans.
const routerName = "entityd"

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(otelchi.Middleware(routerName, otelchi.WithChiRoutes(r), otelchi.WithRequestMethodInSpanName(true)))
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Post("/extract_entities", extractHandler(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// extractHandler serves POST /extract_entities.
//
//	@Summary		Extract named entities
//	@Description	Runs the loaded model over text and returns entities, optionally nouns and noun chunks.
//	@Tags			extraction
//	@Accept			json
//	@Produce		json
//	@Param			request	body		types.ExtractionRequest	true	"Text and flags"
//	@Success		200		{object}	types.ExtractionResponse
//	@Failure		413		{object}	types.ErrorResponse
//	@Failure		415		{object}	types.ErrorResponse
//	@Failure		422		{object}	types.ValidationErrorResponse
//	@Failure		500		{object}	types.ErrorResponse
//	@Router			/extract_entities [post]
func extractHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lvl := requestLogLevel(r)

		if !isJSONContentType(r.Header.Get("Content-Type")) {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			logRequestEnd(r, lvl, http.StatusUnsupportedMediaType, start, nil)
			return
		}
		if maxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		req, issues, err := decodeExtractionRequest(r.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
				logRequestEnd(r, lvl, http.StatusRequestEntityTooLarge, start, err)
				return
			}
			writeJSONError(w, http.StatusBadRequest, "failed to read request body")
			logRequestEnd(r, lvl, http.StatusBadRequest, start, err)
			return
		}
		if len(issues) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, types.ValidationErrorResponse{Detail: issues}, nil)
			logRequestEnd(r, lvl, http.StatusUnprocessableEntity, start, nil)
			return
		}
		logRequestStart(r, lvl, len(*req.Text))

		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		resp, err := svc.Extract(joinedCtx, req)
		if err != nil {
			// If context was canceled (client disconnect), just return.
			if r.Context().Err() != nil {
				logRequestEnd(r, lvl, 0, start, err)
				return
			}
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			logRequestEnd(r, lvl, http.StatusInternalServerError, start, err)
			return
		}

		var echo io.Writer
		if lvl >= LevelDebug {
			echo = &loggingLineWriter{prefix: "extract> "}
		}
		writeJSON(w, http.StatusOK, resp, echo)
		logRequestEnd(r, lvl, http.StatusOK, start, nil)
	}
}

// isJSONContentType accepts application/json in any case, with parameters.
// A request without a Content-Type is read as JSON.
func isJSONContentType(ct string) bool {
	mt, _, _ := strings.Cut(ct, ";")
	mt = strings.TrimSpace(mt)
	return mt == "" || strings.EqualFold(mt, "application/json")
}

// writeJSON encodes v with status; a non-nil echo also receives the encoded body.
func writeJSON(w http.ResponseWriter, status int, v any, echo io.Writer) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := io.Writer(w)
	if echo != nil {
		out = io.MultiWriter(w, echo)
	}
	_ = json.NewEncoder(out).Encode(v)
}
