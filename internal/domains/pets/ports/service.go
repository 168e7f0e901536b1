package ports

import (
	"context"

	pettypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
type Service interface {
	ListPets(ctx context.Context) ([]*pettypes.PetProjection, error)
	AddPet(ctx context.Context, input pettypes.AddPetInput) (*pettypes.PetProjection, error)
	GetPet(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
	EditPet(ctx context.Context, input pettypes.EditPetInput) (*pettypes.PetProjection, error)
}
