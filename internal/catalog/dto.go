package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/offerte-app/offerte-backend/pkg/db/models"
)

// AddProductRequest is the payload for creating a catalog entry.
type AddProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Barcode     *string `json:"barcode"`
}

// StockRequest attaches a product to a supermarket with price and quantity.
type StockRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"gte=0"`
}

// ProductResponse is the wire shape for a catalog entry.
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Barcode     *string   `json:"barcode,omitempty"`
}

// StockingResponse is the wire shape for a supermarket's stocked product.
type StockingResponse struct {
	ID         uuid.UUID        `json:"id"`
	ProductID  uuid.UUID        `json:"product_id"`
	Name       string           `json:"name"`
	Category   *string          `json:"category,omitempty"`
	Price      decimal.Decimal  `json:"price"`
	Quantity   int              `json:"quantity"`
	OnOffer    bool             `json:"on_offer"`
	OfferPrice *decimal.Decimal `json:"offer_price,omitempty"`
}

// ToProductResponse maps a stored product onto its wire shape.
func ToProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Barcode:     p.Barcode,
	}
}

// ToProductResponses maps a slice of products onto wire shapes.
func ToProductResponses(items []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for i := range items {
		out = append(out, ToProductResponse(&items[i]))
	}
	return out
}

// ToStockingResponse maps a stocking row (with product preloaded) onto its wire shape.
func ToStockingResponse(sp *models.SupermarketProduct) StockingResponse {
	resp := StockingResponse{
		ID:         sp.ID,
		ProductID:  sp.ProductID,
		Price:      sp.Price,
		Quantity:   sp.Quantity,
		OnOffer:    sp.OnOffer,
		OfferPrice: sp.OfferPrice,
	}
	if sp.Product != nil {
		resp.Name = sp.Product.Name
		resp.Category = sp.Product.Category
	}
	return resp
}

// ToStockingResponses maps stocking rows onto wire shapes.
func ToStockingResponses(items []models.SupermarketProduct) []StockingResponse {
	out := make([]StockingResponse, 0, len(items))
	for i := range items {
		out = append(out, ToStockingResponse(&items[i]))
	}
	return out
}
