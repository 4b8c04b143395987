package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/pkg/db/models"
)

// Repository handles product and stocking persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct persists a new catalog entry.
func (r *Repository) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// FindProductByID loads a product by its UUID.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns all catalog entries ordered by name.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountProducts returns the total number of catalog entries.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateStocking persists a supermarket-product row. The unique index on the
// pair surfaces duplicates as a constraint violation.
func (r *Repository) CreateStocking(ctx context.Context, sp *models.SupermarketProduct) (*models.SupermarketProduct, error) {
	if err := r.db.WithContext(ctx).Create(sp).Error; err != nil {
		return nil, err
	}
	return sp, nil
}

// ListStockings returns a supermarket's stocked products with the catalog
// entry preloaded.
func (r *Repository) ListStockings(ctx context.Context, supermarketID uuid.UUID) ([]models.SupermarketProduct, error) {
	var items []models.SupermarketProduct
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("supermarket_id = ?", supermarketID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
