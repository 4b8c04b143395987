package offers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/pkg/db/models"
)

// Repository handles offer persistence and the offer state mirrored onto
// stocking rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to offer operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ExpireActive closes every still-active offer for the supermarket by
// stamping its end date to now.
func (r *Repository) ExpireActive(ctx context.Context, supermarketID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("supermarket_id = ? AND (end_date IS NULL OR end_date > ?)", supermarketID, now).
		Update("end_date", now).Error
}

// ClearStockingOffers resets the offer mirror on all of a supermarket's
// stocking rows.
func (r *Repository) ClearStockingOffers(ctx context.Context, supermarketID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.SupermarketProduct{}).
		Where("supermarket_id = ?", supermarketID).
		Updates(map[string]any{"on_offer": false, "offer_price": nil}).Error
}

// SampleStockings picks up to limit stocked products uniformly at random.
func (r *Repository) SampleStockings(ctx context.Context, supermarketID uuid.UUID, limit int) ([]models.SupermarketProduct, error) {
	var items []models.SupermarketProduct
	err := r.db.WithContext(ctx).
		Where("supermarket_id = ?", supermarketID).
		Order("RANDOM()").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create persists an offer row.
func (r *Repository) Create(ctx context.Context, o *models.Offer) (*models.Offer, error) {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

// MarkStockingOnOffer mirrors an active offer price onto the stocking row.
func (r *Repository) MarkStockingOnOffer(ctx context.Context, stockingID uuid.UUID, offerPrice decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.SupermarketProduct{}).
		Where("id = ?", stockingID).
		Updates(map[string]any{"on_offer": true, "offer_price": offerPrice}).Error
}

// ListWithProduct returns a supermarket's offers with products preloaded,
// deepest discount first; activeOnly restricts to offers still valid at now.
func (r *Repository) ListWithProduct(ctx context.Context, supermarketID uuid.UUID, activeOnly bool, now time.Time) ([]models.Offer, error) {
	query := r.db.WithContext(ctx).
		Preload("Product").
		Where("supermarket_id = ?", supermarketID)
	if activeOnly {
		query = query.Where("end_date IS NULL OR end_date >= ?", now)
	}

	var items []models.Offer
	if err := query.Order("(1 - offer_price/original_price) DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountActiveBySupermarket returns the number of offers valid at now for one
// supermarket.
func (r *Repository) CountActiveBySupermarket(ctx context.Context, supermarketID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("supermarket_id = ? AND (end_date IS NULL OR end_date >= ?)", supermarketID, now).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
