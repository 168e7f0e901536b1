package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pettypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets through GORM. It works against any dialector the
// platform database package opens (postgres or sqlite). The caller owns the DB lifecycle.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository wires a GORM-backed repository. Schema is applied by the migrations package.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

type petRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `gorm:"column:name"`
	Species   string    `gorm:"column:species"`
	PhotoURL  *string   `gorm:"column:photo_url"`
	Age       *int      `gorm:"column:age"`
	Notes     *string   `gorm:"column:notes"`
	Available bool      `gorm:"column:available"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

func newPetRecord(p *domain.Pet) petRecord {
	rec := petRecord{
		ID:        p.ID,
		Name:      p.Name,
		Species:   string(p.Species),
		PhotoURL:  nullableString(p.PhotoURL),
		Notes:     nullableString(p.Notes),
		Available: p.Available,
	}
	if p.Age != nil {
		age := *p.Age
		rec.Age = &age
	}
	return rec
}

// Insert stores a new pet and lets the database assign its identifier.
func (r *Repository) Insert(ctx context.Context, pet *domain.Pet) (*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot insert nil pet")
	}
	record := newPetRecord(pet)
	record.ID = 0
	timestamp := r.now().UTC()
	record.CreatedAt = timestamp
	record.UpdatedAt = timestamp
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	pet.ID = record.ID
	return toProjection(&record), nil
}

// Update writes the listing columns of an existing row in a single statement and
// returns the row as stored. Name, species and age are never part of the statement.
func (r *Repository) Update(ctx context.Context, pet *domain.Pet) (*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot update nil pet")
	}
	record := newPetRecord(pet)
	var stored petRecord
	result := r.db.WithContext(ctx).
		Model(&stored).
		Clauses(clause.Returning{}).
		Where("id = ?", pet.ID).
		Updates(map[string]any{
			"photo_url":  record.PhotoURL,
			"notes":      record.Notes,
			"available":  record.Available,
			"updated_at": r.now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return toProjection(&stored), nil
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// List returns every persisted pet ordered by primary key.
func (r *Repository) List(ctx context.Context) ([]*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*pettypes.PetProjection, 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("gorm repository not initialized")
	}
	return nil
}

func toProjection(record *petRecord) *pettypes.PetProjection {
	pet := &domain.Pet{
		ID:        record.ID,
		Name:      record.Name,
		Species:   domain.Species(record.Species),
		Available: record.Available,
	}
	if record.PhotoURL != nil {
		pet.PhotoURL = *record.PhotoURL
	}
	if record.Notes != nil {
		pet.Notes = *record.Notes
	}
	if record.Age != nil {
		age := *record.Age
		pet.Age = &age
	}
	return pettypes.NewPetProjection(pet, record.CreatedAt, record.UpdatedAt)
}

func nullableString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
