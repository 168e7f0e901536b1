package application

import (
	"context"

	types "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/ports"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// ListPets returns every listing in storage order.
func (s *Service) ListPets(ctx context.Context) ([]*types.PetProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// AddPet validates the intake fields and stores a new, available pet.
func (s *Service) AddPet(ctx context.Context, input types.AddPetInput) (*types.PetProjection, error) {
	pet, err := domain.NewPet(input.Name, domain.Species(input.Species), input.PhotoURL, input.Age, input.Notes)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Insert(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetPet loads a single pet.
func (s *Service) GetPet(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

// EditPet overwrites the listing fields of an existing pet.
func (s *Service) EditPet(ctx context.Context, input types.EditPetInput) (*types.PetProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := projection.Pet.EditListing(input.PhotoURL, input.Notes, input.Available); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, projection.Pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
