package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/pkg/db"
	"github.com/offerte-app/offerte-backend/pkg/db/models"
	"github.com/offerte-app/offerte-backend/pkg/enums"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
)

type catalogRepository interface {
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateStocking(ctx context.Context, sp *models.SupermarketProduct) (*models.SupermarketProduct, error)
	ListStockings(ctx context.Context, supermarketID uuid.UUID) ([]models.SupermarketProduct, error)
}

type managementAuthorizer interface {
	AuthorizeManagement(ctx context.Context, supermarketID, actorID uuid.UUID, actorRole enums.Role) (*models.Supermarket, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supermarket, error)
}

// Service owns the global product catalog and per-supermarket stockings.
type Service struct {
	repo         catalogRepository
	supermarkets managementAuthorizer
}

// ServiceParams bundles the dependencies for the catalog service.
type ServiceParams struct {
	Repo         catalogRepository
	Supermarkets managementAuthorizer
}

// NewService wires the catalog service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if params.Supermarkets == nil {
		return nil, fmt.Errorf("supermarket service is required")
	}
	return &Service{repo: params.Repo, supermarkets: params.Supermarkets}, nil
}

// AddProduct creates a catalog entry, rejecting barcode collisions.
func (s *Service) AddProduct(ctx context.Context, req AddProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}

	created, err := s.repo.CreateProduct(ctx, &models.Product{
		Name:        name,
		Description: req.Description,
		Category:    req.Category,
		Barcode:     normalizeBarcode(req.Barcode),
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

// ListProducts returns the full catalog.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	items, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return items, nil
}

// Stock attaches a product to a supermarket. The actor must manage the store,
// the product must exist, and the pair must not already be stocked.
func (s *Service) Stock(ctx context.Context, supermarketID, actorID uuid.UUID, actorRole enums.Role, req StockRequest) (*models.SupermarketProduct, error) {
	if !req.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if req.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	if _, err := s.supermarkets.AuthorizeManagement(ctx, supermarketID, actorID, actorRole); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindProductByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	created, err := s.repo.CreateStocking(ctx, &models.SupermarketProduct{
		SupermarketID: supermarketID,
		ProductID:     req.ProductID,
		Price:         req.Price.Round(2),
		Quantity:      req.Quantity,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "already stocked")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create stocking")
	}
	return created, nil
}

// ListStockings returns a supermarket's stocked products, 404 on unknown store.
func (s *Service) ListStockings(ctx context.Context, supermarketID uuid.UUID) ([]models.SupermarketProduct, error) {
	if _, err := s.supermarkets.GetByID(ctx, supermarketID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListStockings(ctx, supermarketID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stockings")
	}
	return items, nil
}

func normalizeBarcode(barcode *string) *string {
	if barcode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*barcode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
