package ports

import (
	"context"
	"errors"

	pettypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
)

var ErrNotFound = errors.New("pet not found")

// Repository is the storage port for pet listings.
type Repository interface {
	// Insert stores a new pet and assigns its identifier.
	Insert(ctx context.Context, pet *domain.Pet) (*pettypes.PetProjection, error)
	// Update persists the listing fields (photo url, notes, availability) of an existing pet.
	// It returns the stored row without a second read, or ErrNotFound when no row matches pet.ID.
	Update(ctx context.Context, pet *domain.Pet) (*pettypes.PetProjection, error)
	GetByID(ctx context.Context, id int64) (*pettypes.PetProjection, error)
	List(ctx context.Context) ([]*pettypes.PetProjection, error)
}
