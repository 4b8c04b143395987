package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Offer is a time-windowed price overlay on a stocking. An offer is active
// while EndDate is null or in the future; closing one stamps EndDate to the
// closing time. Rows are never deleted.
type Offer struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SupermarketID uuid.UUID       `gorm:"column:supermarket_id;type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	OriginalPrice decimal.Decimal `gorm:"column:original_price;type:numeric(10,2);not null"`
	OfferPrice    decimal.Decimal `gorm:"column:offer_price;type:numeric(10,2);not null"`
	EndDate       *time.Time      `gorm:"column:end_date"`
	Description   string          `gorm:"column:description;not null"`
	Product       *Product        `gorm:"foreignKey:ProductID"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns the primary key when the caller did not.
func (m *Offer) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
