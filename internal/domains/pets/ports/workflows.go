package ports

import (
	"context"

	pettypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations required by the pets bounded context.
type WorkflowOrchestrator interface {
	CreatePet(ctx context.Context, input pettypes.AddPetInput) (*pettypes.PetProjection, error)
}
