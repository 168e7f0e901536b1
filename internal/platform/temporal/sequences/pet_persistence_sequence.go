package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	petstypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	petactivities "github.com/Apurer/go-gin-adoption-agency/internal/platform/temporal/activities/pets"
)

// PersistActivityOptions runs the persistence activity exactly once; a failed
// insert is reported back to the caller rather than retried.
var PersistActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 30 * time.Second,
	RetryPolicy: &temporal.RetryPolicy{
		MaximumAttempts: 1,
	},
}

// RunPetPersistenceSequence executes the activity that stores a new pet listing.
func RunPetPersistenceSequence(ctx workflow.Context, input petstypes.AddPetInput) (*petstypes.PetProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("pet persistence sequence started", "name", input.Name)

	var projection petstypes.PetProjection
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, PersistActivityOptions), petactivities.PersistPetActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("pet persistence sequence failed", "name", input.Name, "error", err)
		return nil, err
	}
	if projection.Pet != nil {
		logger.Info("pet persistence sequence persisted", "petId", projection.Pet.ID)
	}
	return &projection, nil
}
