package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/inkwell-labs/bookstore-api/internal/domains/orders/domain"
	ordersports "github.com/inkwell-labs/bookstore-api/internal/domains/orders/ports"
)

const tracerName = "github.com/inkwell-labs/bookstore-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) CreateOrder(ctx context.Context, order *ordersdomain.Order) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(attribute.Int("order.book_refs", len(order.BookIDs))))
	defer span.End()

	result, err := s.inner.CreateOrder(ctx, order)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order")
	}
	s.metrics.recordCreated(ctx, result.TotalPrice)
	s.logInfo(ctx, "order created",
		slog.String("order.id", result.ID.String()),
		slog.Float64("order.total_price", result.TotalPrice))
	return result, nil
}

func (s *Service) FindOrdersByEmail(ctx context.Context, email string) ([]ordersports.ExpandedOrder, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.FindOrdersByEmail")
	defer span.End()

	result, err := s.inner.FindOrdersByEmail(ctx, email)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to look up orders by email")
	}
	span.SetAttributes(attribute.Int("orders.matched", len(result)))
	return result, nil
}

func (s *Service) CountOrders(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CountOrders")
	defer span.End()

	count, err := s.inner.CountOrders(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count orders")
	}
	span.SetAttributes(attribute.Int64("orders.total", count))
	return count, nil
}

func (s *Service) SumTotalPrice(ctx context.Context) (float64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.SumTotalPrice")
	defer span.End()

	sum, err := s.inner.SumTotalPrice(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to sum order revenue")
	}
	span.SetAttributes(attribute.Float64("orders.revenue", sum))
	return sum, nil
}

func (s *Service) GroupByMonth(ctx context.Context) ([]ordersports.MonthlyBucket, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GroupByMonth")
	defer span.End()

	buckets, err := s.inner.GroupByMonth(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to bucket orders by month")
	}
	span.SetAttributes(attribute.Int("orders.month_buckets", len(buckets)))
	return buckets, nil
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
	ordersCreated metric.Int64Counter
	orderRevenue  metric.Float64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.orders_created", metric.WithDescription("Number of orders created"))
	orderRevenue, _ := m.Float64Counter("orders.service.revenue", metric.WithDescription("Revenue from created orders"))
	return serviceMetrics{ordersCreated: ordersCreated, orderRevenue: orderRevenue}
}

func (m serviceMetrics) recordCreated(ctx context.Context, total float64) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1)
	}
	if m.orderRevenue != nil {
		m.orderRevenue.Add(ctx, total)
	}
}

var _ ordersports.Service = (*Service)(nil)
