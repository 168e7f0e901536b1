package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/ports"
	"github.com/Apurer/go-gin-adoption-agency/internal/platform/database"
	"github.com/Apurer/go-gin-adoption-agency/internal/platform/migrations"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func intPtr(v int) *int { return &v }

func TestRepository_InsertAndGetByID(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	pet, err := domain.NewPet("Rex", domain.SpeciesDog, "https://example.com/rex.jpg", intPtr(3), "")
	require.NoError(t, err)

	saved, err := repo.Insert(ctx, pet)
	require.NoError(t, err)
	require.NotZero(t, saved.Pet.ID)
	assert.Equal(t, saved.Pet.ID, pet.ID)

	loaded, err := repo.GetByID(ctx, saved.Pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", loaded.Pet.Name)
	assert.Equal(t, domain.SpeciesDog, loaded.Pet.Species)
	assert.Equal(t, "https://example.com/rex.jpg", loaded.Pet.PhotoURL)
	require.NotNil(t, loaded.Pet.Age)
	assert.Equal(t, 3, *loaded.Pet.Age)
	assert.Empty(t, loaded.Pet.Notes)
	assert.True(t, loaded.Pet.Available)
}

func TestRepository_OptionalColumnsStoredAsNull(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository(db)
	ctx := context.Background()

	pet, err := domain.NewPet("Spike", domain.SpeciesPorcupine, "", nil, "")
	require.NoError(t, err)
	saved, err := repo.Insert(ctx, pet)
	require.NoError(t, err)

	var nulls int64
	require.NoError(t, db.Table("pets").
		Where("id = ? AND photo_url IS NULL AND age IS NULL AND notes IS NULL", saved.Pet.ID).
		Count(&nulls).Error)
	assert.Equal(t, int64(1), nulls)
}

func TestRepository_UpdateWritesListingColumnsOnly(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return base }
	ctx := context.Background()

	pet, err := domain.NewPet("Tom", domain.SpeciesCat, "", intPtr(5), "indoor")
	require.NoError(t, err)
	saved, err := repo.Insert(ctx, pet)
	require.NoError(t, err)

	repo.now = func() time.Time { return base.Add(time.Hour) }
	changed := *saved.Pet
	changed.Name = "Renamed"
	changed.Species = domain.SpeciesDog
	changed.Age = intPtr(9)
	changed.PhotoURL = "https://example.com/tom.jpg"
	changed.Notes = "outdoor"
	changed.Available = false

	updated, err := repo.Update(ctx, &changed)
	require.NoError(t, err)
	assert.Equal(t, "Tom", updated.Pet.Name)
	assert.Equal(t, domain.SpeciesCat, updated.Pet.Species)
	assert.Equal(t, 5, *updated.Pet.Age)
	assert.Equal(t, "https://example.com/tom.jpg", updated.Pet.PhotoURL)
	assert.Equal(t, "outdoor", updated.Pet.Notes)
	assert.False(t, updated.Pet.Available)
	assert.True(t, updated.Metadata.UpdatedAt.After(updated.Metadata.CreatedAt))
	assert.True(t, updated.Metadata.CreatedAt.Equal(base))
}

func TestRepository_UpdateDoesNotRereadRow(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository(db)
	ctx := context.Background()

	pet, err := domain.NewPet("Tom", domain.SpeciesCat, "", nil, "")
	require.NoError(t, err)
	saved, err := repo.Insert(ctx, pet)
	require.NoError(t, err)

	var queries int
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:count_queries", func(*gorm.DB) {
		queries++
	}))
	t.Cleanup(func() { _ = db.Callback().Query().Remove("test:count_queries") })

	require.NoError(t, saved.Pet.EditListing("https://example.com/tom.jpg", "lap cat", true))
	updated, err := repo.Update(ctx, saved.Pet)
	require.NoError(t, err)
	assert.Zero(t, queries)
	assert.Equal(t, "Tom", updated.Pet.Name)
	assert.Equal(t, "https://example.com/tom.jpg", updated.Pet.PhotoURL)
	assert.Equal(t, "lap cat", updated.Pet.Notes)
}

func TestRepository_UpdateMissingPet(t *testing.T) {
	repo := NewRepository(setupSQLite(t))

	pet, err := domain.NewPet("Ghost", domain.SpeciesCat, "", nil, "")
	require.NoError(t, err)
	pet.ID = 404

	_, err = repo.Update(context.Background(), pet)
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = repo.GetByID(context.Background(), 404)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListOrderedByID(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		pet, err := domain.NewPet(name, domain.SpeciesDog, "", nil, "")
		require.NoError(t, err)
		_, err = repo.Insert(ctx, pet)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{list[0].Pet.Name, list[1].Pet.Name, list[2].Pet.Name})
}

func TestRepository_Uninitialized(t *testing.T) {
	var repo *Repository
	_, err := repo.List(context.Background())
	require.Error(t, err)
}
