package purchases

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/offerte-app/offerte-backend/pkg/db/models"
)

// Request carries the quantity for a purchase attempt.
type Request struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// Receipt is the wire shape confirming a completed purchase.
type Receipt struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	OnOffer      bool            `json:"on_offer"`
}

// HistoryItem is one row of a customer's purchase history.
type HistoryItem struct {
	ID              uuid.UUID       `json:"id"`
	SupermarketID   uuid.UUID       `json:"supermarket_id"`
	SupermarketName string          `json:"supermarket_name,omitempty"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	Quantity        int             `json:"quantity"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	OnOffer         bool            `json:"on_offer"`
	PurchasedAt     time.Time       `json:"purchased_at"`
}

// ToHistoryItem maps a stored purchase (with associations preloaded) onto its
// wire shape.
func ToHistoryItem(p *models.Purchase) HistoryItem {
	item := HistoryItem{
		ID:            p.ID,
		SupermarketID: p.SupermarketID,
		ProductID:     p.ProductID,
		Quantity:      p.Quantity,
		PricePerUnit:  p.PricePerUnit,
		TotalPrice:    p.TotalPrice,
		OnOffer:       p.OnOffer,
		PurchasedAt:   p.PurchasedAt,
	}
	if p.Supermarket != nil {
		item.SupermarketName = p.Supermarket.Name
	}
	if p.Product != nil {
		item.ProductName = p.Product.Name
	}
	return item
}

// ToHistoryItems maps purchases onto wire shapes.
func ToHistoryItems(items []models.Purchase) []HistoryItem {
	out := make([]HistoryItem, 0, len(items))
	for i := range items {
		out = append(out, ToHistoryItem(&items[i]))
	}
	return out
}
