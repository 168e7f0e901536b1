package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	pettypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu     sync.RWMutex
	pets   map[int64]*storedPet
	nextID int64
	now    func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata pettypes.PetMetadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		pets: map[int64]*storedPet{},
		now:  time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Insert assigns the next identifier and stores a copy of the pet.
func (r *Repository) Insert(_ context.Context, pet *domain.Pet) (*pettypes.PetProjection, error) {
	if pet == nil {
		return nil, errors.New("cannot insert nil pet")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := clonePet(pet)
	stored.ID = r.nextID
	timestamp := r.now()
	entry := &storedPet{
		pet:      stored,
		metadata: pettypes.PetMetadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	r.pets[stored.ID] = entry
	pet.ID = stored.ID
	return projectionCopy(entry), nil
}

// Update overwrites the listing fields of an existing pet.
func (r *Repository) Update(_ context.Context, pet *domain.Pet) (*pettypes.PetProjection, error) {
	if pet == nil {
		return nil, errors.New("cannot update nil pet")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.pets[pet.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	entry.pet.PhotoURL = pet.PhotoURL
	entry.pet.Notes = pet.Notes
	entry.pet.Available = pet.Available
	entry.metadata.UpdatedAt = r.now()
	return projectionCopy(entry), nil
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*pettypes.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// List returns all pets ordered by identifier, which matches insertion order.
func (r *Repository) List(_ context.Context) ([]*pettypes.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*pettypes.PetProjection, 0, len(r.pets))
	for _, entry := range r.pets {
		list = append(list, projectionCopy(entry))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Pet.ID < list[j].Pet.ID })
	return list, nil
}

func projectionCopy(entry *storedPet) *pettypes.PetProjection {
	return &pettypes.PetProjection{
		Pet:      clonePet(entry.pet),
		Metadata: entry.metadata,
	}
}

func clonePet(p *domain.Pet) *domain.Pet {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Age != nil {
		age := *p.Age
		clone.Age = &age
	}
	return &clone
}
