package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase is an append-only ledger row; never mutated or deleted.
type Purchase struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	SupermarketID uuid.UUID       `gorm:"column:supermarket_id;type:uuid;not null"`
	ProductID     uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity      int             `gorm:"column:quantity;not null"`
	PricePerUnit  decimal.Decimal `gorm:"column:price_per_unit;type:numeric(10,2);not null"`
	TotalPrice    decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null"`
	OnOffer       bool            `gorm:"column:on_offer;not null;default:false"`
	Product       *Product        `gorm:"foreignKey:ProductID"`
	Supermarket   *Supermarket    `gorm:"foreignKey:SupermarketID"`
	PurchasedAt   time.Time       `gorm:"column:purchased_at;autoCreateTime"`
}

// BeforeCreate assigns the primary key when the caller did not.
func (m *Purchase) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
