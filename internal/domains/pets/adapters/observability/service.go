package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	pettypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/ports"
)

const tracerName = "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/adapters/observability/service"

// Service decorates a pets application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// ListPets returns every listing.
func (s *Service) ListPets(ctx context.Context) ([]*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListPets")
	defer span.End()

	s.logInfo(ctx, "listing pets")
	result, err := s.inner.ListPets(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pets")
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	s.logInfo(ctx, "listed pets", slog.Int("count", len(result)))
	return result, nil
}

// AddPet records intake of a new pet.
func (s *Service) AddPet(ctx context.Context, input pettypes.AddPetInput) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.AddPet", attribute.String("pet.species", input.Species))
	defer span.End()

	s.logInfo(ctx, "adding pet", slog.String("species", input.Species))
	result, err := s.inner.AddPet(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add pet", slog.String("species", input.Species))
	}
	if result != nil && result.Pet != nil {
		span.SetAttributes(attribute.Int64("pet.id", result.Pet.ID))
		s.metrics.recordCreated(ctx, result.Pet.Species)
		s.logInfo(ctx, "pet added", slog.Int64("pet.id", result.Pet.ID), slog.String("species", string(result.Pet.Species)))
	}
	return result, nil
}

// GetPet loads a single pet.
func (s *Service) GetPet(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetPet", attribute.Int64("pet.id", input.ID))
	defer span.End()

	result, err := s.inner.GetPet(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet", slog.Int64("pet.id", input.ID))
	}
	s.logInfo(ctx, "pet loaded", slog.Int64("pet.id", input.ID))
	return result, nil
}

// EditPet updates the listing fields of a pet.
func (s *Service) EditPet(ctx context.Context, input pettypes.EditPetInput) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.EditPet",
		attribute.Int64("pet.id", input.ID),
		attribute.Bool("pet.available", input.Available),
	)
	defer span.End()

	s.logInfo(ctx, "editing pet", slog.Int64("pet.id", input.ID))
	result, err := s.inner.EditPet(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to edit pet", slog.Int64("pet.id", input.ID))
	}
	if result != nil && result.Pet != nil {
		s.metrics.recordListingUpdated(ctx, result.Pet.Available)
		s.logInfo(ctx, "pet edited", slog.Int64("pet.id", result.Pet.ID), slog.Bool("available", result.Pet.Available))
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	petsCreated    metric.Int64Counter
	listingUpdated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	petsCreated, _ := m.Int64Counter("pets.service.created", metric.WithDescription("Number of pets taken in"))
	listingUpdated, _ := m.Int64Counter("pets.service.listing_updated", metric.WithDescription("Number of listing edits"))
	return serviceMetrics{
		petsCreated:    petsCreated,
		listingUpdated: listingUpdated,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, species domain.Species) {
	addCounter(ctx, m.petsCreated, 1, attribute.String("pet.species", string(species)))
}

func (m serviceMetrics) recordListingUpdated(ctx context.Context, available bool) {
	addCounter(ctx, m.listingUpdated, 1, attribute.Bool("pet.available", available))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
