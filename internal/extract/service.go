// Package extract turns a parsed document into an extraction response and
// contains every failure of that path within the request that caused it.
package extract

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"entityd/internal/nlp"
	"entityd/pkg/types"
)

// Service owns the process-wide backend handle. It is safe for concurrent use:
// the backend is read-only after construction and no other state is shared.
type Service struct {
	backend nlp.Backend
	log     zerolog.Logger
	tracer  trace.Tracer
	ready   atomic.Bool
}

// New wraps an initialized backend. The service reports ready immediately
// because backends are loaded before New is called.
func New(backend nlp.Backend, log zerolog.Logger) *Service {
	s := &Service{
		backend: backend,
		log:     log.With().Str("component", "extract").Str("backend", backend.Name()).Logger(),
		tracer:  otel.Tracer("entityd/internal/extract"),
	}
	s.ready.Store(true)
	return s
}

// Ready reports whether requests can be served.
func (s *Service) Ready() bool { return s.ready.Load() }

// BackendName returns the name of the wrapped backend.
func (s *Service) BackendName() string { return s.backend.Name() }

// Close marks the service not ready and releases the backend.
func (s *Service) Close() error {
	s.ready.Store(false)
	return s.backend.Close()
}

// Extract runs the model over req.Text and maps the result. Any error or
// panic from the backend or the mapper is returned as *ExtractionError.
func (s *Service) Extract(ctx context.Context, req types.ExtractionRequest) (types.ExtractionResponse, error) {
	var text string
	if req.Text != nil {
		text = *req.Text
	}
	backend := s.backend.Name()
	ctx, span := s.tracer.Start(ctx, "extract.analyze", trace.WithAttributes(
		attribute.String("nlp.backend", backend),
		attribute.Int("nlp.text_bytes", len(text)),
		attribute.Bool("nlp.extract_nouns", req.ExtractNouns),
		attribute.Bool("nlp.extract_noun_chunks", req.ExtractNounChunks),
	))
	defer span.End()

	start := time.Now()
	resp, err := s.run(ctx, text, Flags{Nouns: req.ExtractNouns, NounChunks: req.ExtractNounChunks})
	extractDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
	if err != nil {
		kind := "error"
		if err.Panicked {
			kind = "panic"
		}
		extractFailures.WithLabelValues(backend, kind).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return types.ExtractionResponse{}, err
	}
	for _, e := range resp.Entities {
		entitiesTotal.WithLabelValues(e.Label).Inc()
	}
	span.SetAttributes(attribute.Int("nlp.entities", len(resp.Entities)))
	return resp, nil
}

func (s *Service) run(ctx context.Context, text string, flags Flags) (resp types.ExtractionResponse, xerr *ExtractionError) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("extraction panicked")
			xerr = &ExtractionError{Backend: s.backend.Name(), Panicked: true, Err: fmt.Errorf("%v", r)}
		}
	}()
	doc, err := s.backend.Analyze(ctx, text)
	if err != nil {
		return types.ExtractionResponse{}, &ExtractionError{Backend: s.backend.Name(), Err: err}
	}
	return BuildResponse(doc, flags), nil
}
