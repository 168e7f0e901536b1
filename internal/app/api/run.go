package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	adoptserver "github.com/Apurer/go-gin-adoption-agency/go"

	petsmemory "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/adapters/memory"
	petsobs "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/adapters/observability"
	petsgorm "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/adapters/persistence/gormstore"
	petsworkflows "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/adapters/workflows"
	petsapp "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application"
	petsports "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/ports"
	"github.com/Apurer/go-gin-adoption-agency/internal/platform/database"
	"github.com/Apurer/go-gin-adoption-agency/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-adoption-agency/internal/platform/observability"
)

const serviceName = "adoption-agency"

// Run boots the adoption site with observability, storage, and workflows wired.
// It blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, ObservabilityOptions(cfg, serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, err := OpenPetStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	petService := NewPetService(store.Repository, instruments)
	var petWorkflows petsports.WorkflowOrchestrator = petsworkflows.NewInlinePetWorkflows(petService)
	if cfg.TemporalEnabled {
		temporalClient, err := ConnectTemporalClient(cfg, instruments)
		if err != nil {
			logger.Warn("Temporal workflows unavailable, running inline AddPet", slog.String("error", err.Error()))
		} else {
			defer temporalClient.Close()
			petWorkflows = petsworkflows.NewTemporalPetWorkflows(temporalClient)
			logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
		}
	}

	handlers := adoptserver.ApiHandleFunctions{
		PetAPI:    adoptserver.NewPetAPI(petService, petWorkflows),
		HealthAPI: adoptserver.NewHealthAPI(store.Ping),
	}
	router := adoptserver.NewRouter(handlers,
		otelgin.Middleware(serviceName, otelgin.WithTracerProvider(instruments.TracerProvider)),
		adoptserver.RequestID(),
		adoptserver.RequestLogger(logger),
	)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("adoption site listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("adoption site exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down adoption site")
		return server.Shutdown(shutdownCtx)
	}
}

// ObservabilityOptions projects the config onto the observability bootstrap.
func ObservabilityOptions(cfg Config, service string) platformobservability.Options {
	return platformobservability.Options{
		ServiceName:  service,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		LogFile:      cfg.LogFile,
		Exporter:     cfg.TraceExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
	}
}

// NewPetService builds the pets use cases wrapped in tracing, logging, and metrics.
func NewPetService(repo petsports.Repository, instruments *platformobservability.Instruments) petsports.Service {
	return petsobs.New(
		petsapp.NewService(repo),
		petsobs.WithLogger(instruments.Logger),
		petsobs.WithTracer(instruments.Tracer("internal.pets.application")),
		petsobs.WithMeter(instruments.Meter("internal.pets.application")),
	)
}

// PetStore is the repository selected by config plus its connection, if any.
type PetStore struct {
	Repository petsports.Repository
	db         *gorm.DB
}

// OpenPetStore selects the repository named by ADOPT_DATABASE_DRIVER and applies the schema.
func OpenPetStore(ctx context.Context, cfg Config, logger *slog.Logger) (*PetStore, error) {
	if cfg.DatabaseDriver == database.DriverMemory {
		logger.Warn("using in-memory pet repository; listings are lost on restart")
		return &PetStore{Repository: petsmemory.NewRepository()}, nil
	}
	db, err := database.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DatabaseDriver, err)
	}
	if err := migrations.Run(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("migrate %s: %w", cfg.DatabaseDriver, err)
	}
	logger.Info("pet repository configured", slog.String("driver", cfg.DatabaseDriver))
	return &PetStore{Repository: petsgorm.NewRepository(db), db: db}, nil
}

// Ping reports whether the backing database answers. The memory store always does.
func (s *PetStore) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database connection, if any.
func (s *PetStore) Close() {
	if s == nil || s.db == nil {
		return
	}
	_ = database.Close(s.db)
}

// ConnectTemporalClient dials Temporal with tracing and structured logging.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
