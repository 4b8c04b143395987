package offers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/offerte-app/offerte-backend/pkg/db/models"
)

// GenerateRequest tunes one generation run; zero fields fall back to the
// configured defaults.
type GenerateRequest struct {
	NumOffers    int `json:"num_offers" validate:"gte=0"`
	DiscountMin  int `json:"discount_min" validate:"gte=0,lte=100"`
	DiscountMax  int `json:"discount_max" validate:"gte=0,lte=100"`
	DaysDuration int `json:"days_duration" validate:"gte=0"`
}

// GenerateResult reports how many offers one run produced.
type GenerateResult struct {
	SupermarketID uuid.UUID
	Created       int
}

// Response is the wire shape for a single offer.
type Response struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	OfferPrice      decimal.Decimal `json:"offer_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Description     string          `json:"description"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToResponse maps a stored offer onto its wire shape, computing the discount
// percentage on read.
func ToResponse(o *models.Offer, now time.Time) Response {
	resp := Response{
		ID:            o.ID,
		ProductID:     o.ProductID,
		OriginalPrice: o.OriginalPrice,
		OfferPrice:    o.OfferPrice,
		Description:   o.Description,
		EndDate:       o.EndDate,
		Active:        o.EndDate == nil || !o.EndDate.Before(now),
		CreatedAt:     o.CreatedAt,
	}
	if o.Product != nil {
		resp.ProductName = o.Product.Name
	}
	if o.OriginalPrice.IsPositive() {
		ratio := o.OfferPrice.Div(o.OriginalPrice)
		resp.DiscountPercent = decimal.NewFromInt(1).Sub(ratio).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return resp
}

// ToResponses maps a slice of offers onto wire shapes.
func ToResponses(items []models.Offer, now time.Time) []Response {
	out := make([]Response, 0, len(items))
	for i := range items {
		out = append(out, ToResponse(&items[i], now))
	}
	return out
}
