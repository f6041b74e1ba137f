package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	reportingports "github.com/inkwell-labs/bookstore-api/internal/domains/reporting/ports"
)

const tracerName = "github.com/inkwell-labs/bookstore-api/internal/domains/reporting/adapters/observability/service"

// Service decorates the reporting service with tracing and logging.
type Service struct {
	inner  reportingports.Service
	tracer trace.Tracer
	logger *slog.Logger
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

func New(inner reportingports.Service, opts ...Option) reportingports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
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

func (s *Service) ComputeStats(ctx context.Context) (*reportingports.StatsSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "ReportingService.ComputeStats")
	defer span.End()

	snapshot, err := s.inner.ComputeStats(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to compute stats",
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("stats.total_orders", snapshot.TotalOrders),
		attribute.Float64("stats.total_sales", snapshot.TotalSales),
		attribute.Int64("stats.total_books", snapshot.TotalBooks),
	)
	return snapshot, nil
}

var _ reportingports.Service = (*Service)(nil)
