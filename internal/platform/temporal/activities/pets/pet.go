package pets

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	petstypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	petsports "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/ports"
)

// PersistPetActivityName persists a new pet listing.
const PersistPetActivityName = "pets.activities.PersistPet"

// Activities groups activities that operate on the pets bounded context.
type Activities struct {
	service petsports.Service
}

// NewActivities wires the pets service into the Temporal activities bundle.
func NewActivities(service petsports.Service) *Activities {
	return &Activities{service: service}
}

// PersistPet stores a new pet and returns its projection.
func (a *Activities) PersistPet(ctx context.Context, input petstypes.AddPetInput) (*petstypes.PetProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("pet persist activity not initialized", "name", input.Name)
		return nil, errors.New("pet persist activity not initialized")
	}
	logger.Info("PersistPet activity started", "name", input.Name, "species", input.Species)
	projection, err := a.service.AddPet(ctx, input)
	if err != nil {
		logger.Error("PersistPet activity failed", "name", input.Name, "error", err)
		return nil, err
	}
	if projection != nil && projection.Pet != nil {
		logger.Info("PersistPet activity completed", "petId", projection.Pet.ID)
	}
	return projection, nil
}
