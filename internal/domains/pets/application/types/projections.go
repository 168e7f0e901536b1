package types

import (
	"time"

	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
)

// PetMetadata captures infrastructure timestamps associated with a persisted pet.
type PetMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PetProjection transports a domain entity together with its persistence metadata.
type PetProjection struct {
	Pet      *domain.Pet
	Metadata PetMetadata
}

// NewPetProjection wraps a pet with persistence metadata.
func NewPetProjection(pet *domain.Pet, createdAt, updatedAt time.Time) *PetProjection {
	if pet == nil {
		return nil
	}
	return &PetProjection{
		Pet: pet,
		Metadata: PetMetadata{
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
}
