package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supermarket represents one physical store location.
type Supermarket struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name      string     `gorm:"column:name;not null"`
	Address   string     `gorm:"column:address;not null"`
	Latitude  float64    `gorm:"column:latitude;type:numeric(9,6);not null"`
	Longitude float64    `gorm:"column:longitude;type:numeric(9,6);not null"`
	ManagerID *uuid.UUID `gorm:"column:manager_id;type:uuid"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key when the caller did not.
func (m *Supermarket) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
