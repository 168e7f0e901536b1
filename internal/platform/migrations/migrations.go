package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the pets table.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&petRecord{})
}

// Pet schema mirrors the gormstore adapter.
type petRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `gorm:"column:name;not null"`
	Species   string    `gorm:"column:species;type:varchar(32);not null;index"`
	PhotoURL  *string   `gorm:"column:photo_url"`
	Age       *int      `gorm:"column:age"`
	Notes     *string   `gorm:"column:notes"`
	Available bool      `gorm:"column:available;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }
