package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-adoption-agency/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-adoption-agency/internal/platform/observability"
	petactivities "github.com/Apurer/go-gin-adoption-agency/internal/platform/temporal/activities/pets"
	petworkflows "github.com/Apurer/go-gin-adoption-agency/internal/platform/temporal/workflows/pets"
)

func main() {
	ctx := context.Background()
	const serviceName = "adoption-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, api.ObservabilityOptions(cfg, serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, err := api.OpenPetStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("worker failed to open pet store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()
	petActivities := petactivities.NewActivities(api.NewPetService(store.Repository, instruments))

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, petworkflows.ListingTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(petworkflows.ListingWorkflow, workflow.RegisterOptions{Name: petworkflows.ListingWorkflowName})
	w.RegisterActivityWithOptions(petActivities.PersistPet, activity.RegisterOptions{Name: petactivities.PersistPetActivityName})

	logger.Info("worker listening", slog.String("taskQueue", petworkflows.ListingTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
