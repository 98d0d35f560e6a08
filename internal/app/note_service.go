// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/notekeeper/internal/domain"
	"github.com/jsamuelsen/notekeeper/internal/platform/metrics"
	"github.com/jsamuelsen/notekeeper/internal/ports"
)

const tracerName = "github.com/jsamuelsen/notekeeper/internal/app"

// Operation names used for spans, metrics, and logs.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// NoteService orchestrates note use cases. Each method performs exactly one
// store call; handlers never talk to the store directly.
type NoteService struct {
	store   ports.NoteStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// NoteServiceConfig contains dependencies for the note service.
type NoteServiceConfig struct {
	Store ports.NoteStore

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is optional; nil disables Prometheus recording.
	Metrics *metrics.Metrics

	// Tracer defaults to the global OpenTelemetry tracer provider.
	Tracer trace.Tracer
}

// NewNoteService creates a note service. It panics if no store is given.
func NewNoteService(cfg NoteServiceConfig) *NoteService {
	if cfg.Store == nil {
		panic("app: NoteService requires a Store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &NoteService{
		store:   cfg.Store,
		logger:  logger,
		metrics: cfg.Metrics,
		tracer:  tracer,
	}
}

// ListNotes returns every note in insertion order.
func (s *NoteService) ListNotes(ctx context.Context) (notes []domain.Note, err error) {
	ctx, done := s.begin(ctx, OpList)
	defer func() { done(err) }()

	notes, err = s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list notes", slog.Any("error", err))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.NotesListed.Set(float64(len(notes)))
	}

	return notes, nil
}

// GetNote returns a single note.
func (s *NoteService) GetNote(ctx context.Context, id int64) (note domain.Note, err error) {
	ctx, done := s.begin(ctx, OpGet, attribute.Int64("note.id", id))
	defer func() { done(err) }()

	note, err = s.store.Get(ctx, id)
	if err != nil {
		s.logFailure(ctx, OpGet, id, err)
		return domain.Note{}, err
	}

	return note, nil
}

// CreateNote validates the input and stores a new note.
func (s *NoteService) CreateNote(ctx context.Context, in domain.NoteInput) (note domain.Note, err error) {
	ctx, done := s.begin(ctx, OpCreate)
	defer func() { done(err) }()

	if err = in.Validate(); err != nil {
		return domain.Note{}, err
	}

	note, err = s.store.Create(ctx, in)
	if err != nil {
		s.logFailure(ctx, OpCreate, 0, err)
		return domain.Note{}, err
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("note.id", note.ID))
	s.logger.InfoContext(ctx, "note created",
		slog.Int64("note_id", note.ID),
		slog.Int("title_len", len(note.Title)),
		slog.Int("content_len", len(note.Content)),
	)

	return note, nil
}

// UpdateNote validates the input and replaces the note's title and content.
func (s *NoteService) UpdateNote(ctx context.Context, id int64, in domain.NoteInput) (note domain.Note, err error) {
	ctx, done := s.begin(ctx, OpUpdate, attribute.Int64("note.id", id))
	defer func() { done(err) }()

	if err = in.Validate(); err != nil {
		return domain.Note{}, err
	}

	note, err = s.store.Update(ctx, id, in)
	if err != nil {
		s.logFailure(ctx, OpUpdate, id, err)
		return domain.Note{}, err
	}

	s.logger.InfoContext(ctx, "note updated", slog.Int64("note_id", note.ID))

	return note, nil
}

// DeleteNote removes the note and returns it as it was.
func (s *NoteService) DeleteNote(ctx context.Context, id int64) (note domain.Note, err error) {
	ctx, done := s.begin(ctx, OpDelete, attribute.Int64("note.id", id))
	defer func() { done(err) }()

	note, err = s.store.Delete(ctx, id)
	if err != nil {
		s.logFailure(ctx, OpDelete, id, err)
		return domain.Note{}, err
	}

	s.logger.InfoContext(ctx, "note deleted", slog.Int64("note_id", note.ID))

	return note, nil
}

// begin starts a span for op and returns a func that ends it and records
// the outcome.
func (s *NoteService) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "NoteService."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)

	return ctx, func(err error) {
		result := Result(err)
		span.SetAttributes(attribute.String("note.result", result))

		// Client mistakes are not span errors.
		if result == metrics.ResultUnavailable || result == metrics.ResultError {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()

		if s.metrics != nil {
			s.metrics.ObserveNoteOp(op, result, time.Since(start))
		}
	}
}

func (s *NoteService) logFailure(ctx context.Context, op string, id int64, err error) {
	attrs := []any{slog.String("operation", op), slog.Any("error", err)}
	if id != 0 {
		attrs = append(attrs, slog.Int64("note_id", id))
	}

	if domain.IsNotFound(err) {
		s.logger.InfoContext(ctx, "note not found", attrs...)
		return
	}

	if domain.IsCanceled(err) {
		s.logger.WarnContext(ctx, "note operation abandoned", attrs...)
		return
	}

	s.logger.ErrorContext(ctx, "note operation failed", attrs...)
}

// Result classifies an operation error into a metrics result label.
func Result(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case domain.IsValidation(err):
		return metrics.ResultInvalid
	case domain.IsNotFound(err):
		return metrics.ResultNotFound
	case domain.IsCanceled(err):
		return metrics.ResultCanceled
	case domain.IsUnavailable(err):
		return metrics.ResultUnavailable
	default:
		return metrics.ResultError
	}
}
