package workflows

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	petmemory "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/adapters/memory"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application"
	petstypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
	petworkflows "github.com/Apurer/go-gin-adoption-agency/internal/platform/temporal/workflows/pets"
)

func TestInlinePetWorkflows_CreatePet(t *testing.T) {
	orchestrator := NewInlinePetWorkflows(application.NewService(petmemory.NewRepository()))

	projection, err := orchestrator.CreatePet(context.Background(), petstypes.AddPetInput{Name: "Tom", Species: "cat"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), projection.Pet.ID)
}

func TestInlinePetWorkflows_Unconfigured(t *testing.T) {
	var orchestrator *InlinePetWorkflows
	_, err := orchestrator.CreatePet(context.Background(), petstypes.AddPetInput{})
	require.Error(t, err)
}

func TestBuildListingWorkflowID(t *testing.T) {
	withoutTrace := buildListingWorkflowID("")
	assert.True(t, strings.HasPrefix(withoutTrace, "pet-listing-"))
	assert.NotEqual(t, withoutTrace, buildListingWorkflowID(""))

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "request")
	defer span.End()
	traceID := workflowTraceID(ctx)
	require.NotEmpty(t, traceID)
	assert.Contains(t, buildListingWorkflowID(traceID), traceID)
}

func TestTemporalPetWorkflows_CreatePet(t *testing.T) {
	temporalClient := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	input := petstypes.AddPetInput{Name: "Rex", Species: "dog"}

	temporalClient.On("ExecuteWorkflow",
		mock.Anything,
		mock.MatchedBy(func(options client.StartWorkflowOptions) bool {
			return options.TaskQueue == petworkflows.ListingTaskQueue &&
				options.WorkflowIDReusePolicy == enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE &&
				strings.HasPrefix(options.ID, "pet-listing-")
		}),
		petworkflows.ListingWorkflowName,
		petworkflows.ListingWorkflowInput{Command: input},
	).Return(run, nil).Once()
	run.On("Get", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(1).(*petstypes.PetProjection)
			out.Pet = &domain.Pet{ID: 12, Name: "Rex", Species: domain.SpeciesDog, Available: true}
		}).
		Return(nil).Once()

	projection, err := NewTemporalPetWorkflows(temporalClient).CreatePet(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(12), projection.Pet.ID)
	assert.Equal(t, "Rex", projection.Pet.Name)
	assert.True(t, projection.Pet.Available)

	temporalClient.AssertExpectations(t)
	run.AssertExpectations(t)
}

func TestTemporalPetWorkflows_StartFailure(t *testing.T) {
	temporalClient := &mocks.Client{}
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("namespace not found")).Once()

	_, err := NewTemporalPetWorkflows(temporalClient).CreatePet(context.Background(), petstypes.AddPetInput{Name: "Rex", Species: "dog"})
	require.EqualError(t, err, "namespace not found")
	temporalClient.AssertExpectations(t)
}
