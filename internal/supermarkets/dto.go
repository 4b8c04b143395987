package supermarkets

import (
	"github.com/google/uuid"

	"github.com/offerte-app/offerte-backend/pkg/db/models"
)

// CreateRequest is the payload for registering a new supermarket.
type CreateRequest struct {
	Name      string     `json:"name" validate:"required"`
	Address   string     `json:"address" validate:"required"`
	Latitude  *float64   `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64   `json:"longitude" validate:"required,gte=-180,lte=180"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

// Response is the wire shape for a single supermarket.
type Response struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	ManagerID *uuid.UUID `json:"manager_id,omitempty"`
}

// ToResponse maps a stored supermarket onto its wire shape.
func ToResponse(m *models.Supermarket) Response {
	return Response{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		ManagerID: m.ManagerID,
	}
}

// ToResponses maps a slice of supermarkets onto wire shapes.
func ToResponses(items []models.Supermarket) []Response {
	out := make([]Response, 0, len(items))
	for i := range items {
		out = append(out, ToResponse(&items[i]))
	}
	return out
}
