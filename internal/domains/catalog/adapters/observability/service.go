package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
	catalogports "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateBook(ctx context.Context, book *catalogdomain.Book) (*catalogdomain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateBook",
		trace.WithAttributes(attribute.String("book.title", book.Title)))
	defer span.End()

	result, err := s.inner.CreateBook(ctx, book)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create book", slog.String("book.title", book.Title))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "book created", slog.String("book.id", result.ID.String()), slog.String("book.title", result.Title))
	return result, nil
}

func (s *Service) ListBooks(ctx context.Context) ([]*catalogdomain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListBooks")
	defer span.End()

	result, err := s.inner.ListBooks(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list books")
	}
	span.SetAttributes(attribute.Int("catalog.size", len(result)))
	return result, nil
}

func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*catalogdomain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetBook",
		trace.WithAttributes(attribute.String("book.id", id.String())))
	defer span.End()

	result, err := s.inner.GetBook(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load book", slog.String("book.id", id.String()))
	}
	return result, nil
}

func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, patch catalogports.BookPatch) (*catalogdomain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateBook",
		trace.WithAttributes(attribute.String("book.id", id.String())))
	defer span.End()

	result, err := s.inner.UpdateBook(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update book", slog.String("book.id", id.String()))
	}
	s.logInfo(ctx, "book updated", slog.String("book.id", result.ID.String()))
	return result, nil
}

func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) (*catalogdomain.Book, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteBook",
		trace.WithAttributes(attribute.String("book.id", id.String())))
	defer span.End()

	result, err := s.inner.DeleteBook(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to delete book", slog.String("book.id", id.String()))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "book deleted", slog.String("book.id", id.String()))
	return result, nil
}

func (s *Service) CountBooks(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CountBooks")
	defer span.End()

	count, err := s.inner.CountBooks(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count books")
	}
	span.SetAttributes(attribute.Int64("catalog.total", count))
	return count, nil
}

func (s *Service) CountTrendingBooks(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CountTrendingBooks")
	defer span.End()

	count, err := s.inner.CountTrendingBooks(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count trending books")
	}
	span.SetAttributes(attribute.Int64("catalog.trending", count))
	return count, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	booksCreated metric.Int64Counter
	booksDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	booksCreated, _ := m.Int64Counter("catalog.service.books_created", metric.WithDescription("Number of books created"))
	booksDeleted, _ := m.Int64Counter("catalog.service.books_deleted", metric.WithDescription("Number of books deleted"))
	return serviceMetrics{booksCreated: booksCreated, booksDeleted: booksDeleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.booksCreated != nil {
		m.booksCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.booksDeleted != nil {
		m.booksDeleted.Add(ctx, 1)
	}
}

var _ catalogports.Service = (*Service)(nil)
