package pets

import (
	"go.temporal.io/sdk/workflow"

	petstypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-agency/internal/platform/temporal/sequences"
)

const (
	// ListingWorkflowName is the public identifier for registering the workflow.
	ListingWorkflowName = "pets.workflows.Listing"
	// ListingTaskQueue is the queue consumed by the worker processing pet workflows.
	ListingTaskQueue = "PET_LISTING"
)

// ListingWorkflowInput captures the intake payload for a new listing.
type ListingWorkflowInput struct {
	Command petstypes.AddPetInput
	TraceID string
}

// ListingWorkflow persists a newly taken-in pet.
func ListingWorkflow(ctx workflow.Context, input ListingWorkflowInput) (*petstypes.PetProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ListingWorkflow started", withTraceID(input.TraceID, "name", input.Command.Name)...)
	projection, err := sequences.RunPetPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("ListingWorkflow failed", withTraceID(input.TraceID, "name", input.Command.Name, "error", err)...)
		return nil, err
	}
	if projection != nil && projection.Pet != nil {
		logger.Info("ListingWorkflow completed", withTraceID(input.TraceID, "petId", projection.Pet.ID)...)
	}
	return projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
