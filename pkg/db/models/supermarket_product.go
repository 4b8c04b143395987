package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SupermarketProduct records one supermarket's stocking of one product:
// price, remaining quantity, and the currently mirrored offer state.
type SupermarketProduct struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	SupermarketID uuid.UUID        `gorm:"column:supermarket_id;type:uuid;not null;uniqueIndex:idx_supermarket_product"`
	ProductID     uuid.UUID        `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_supermarket_product"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	Quantity      int              `gorm:"column:quantity;not null"`
	OnOffer       bool             `gorm:"column:on_offer;not null;default:false"`
	OfferPrice    *decimal.Decimal `gorm:"column:offer_price;type:numeric(10,2)"`
	Product       *Product         `gorm:"foreignKey:ProductID"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key when the caller did not.
func (m *SupermarketProduct) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
