package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	petstypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/ports"
	petworkflows "github.com/Apurer/go-gin-adoption-agency/internal/platform/temporal/workflows/pets"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalPetWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlinePetWorkflows)(nil)
)

// TemporalPetWorkflows starts pet workflows on a Temporal cluster.
type TemporalPetWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalPetWorkflows wires a Temporal client into the orchestrator.
func NewTemporalPetWorkflows(c client.Client) *TemporalPetWorkflows {
	return &TemporalPetWorkflows{client: c, taskQueue: petworkflows.ListingTaskQueue}
}

// CreatePet starts the listing workflow and waits for the persisted projection.
func (o *TemporalPetWorkflows) CreatePet(ctx context.Context, input petstypes.AddPetInput) (*petstypes.PetProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal pet workflows not configured")
	}
	traceID := workflowTraceID(ctx)
	options := client.StartWorkflowOptions{
		ID:                    buildListingWorkflowID(traceID),
		TaskQueue:             o.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		petworkflows.ListingWorkflowName,
		petworkflows.ListingWorkflowInput{Command: input, TraceID: traceID},
	)
	if err != nil {
		return nil, err
	}
	var projection petstypes.PetProjection
	if err := run.Get(ctx, &projection); err != nil {
		return nil, err
	}
	return &projection, nil
}

// InlinePetWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlinePetWorkflows struct {
	service ports.Service
}

// NewInlinePetWorkflows wraps the pets service for synchronous execution.
func NewInlinePetWorkflows(service ports.Service) *InlinePetWorkflows {
	return &InlinePetWorkflows{service: service}
}

// CreatePet delegates to the application service without durable orchestration.
func (o *InlinePetWorkflows) CreatePet(ctx context.Context, input petstypes.AddPetInput) (*petstypes.PetProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline pet workflows not configured")
	}
	return o.service.AddPet(ctx, input)
}

// Workflow ids are unique per submission.
func buildListingWorkflowID(traceID string) string {
	if traceID == "" {
		return fmt.Sprintf("pet-listing-%s", uuid.NewString())
	}
	return fmt.Sprintf("pet-listing-%s-%s", traceID, uuid.NewString()[:8])
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
