package purchases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/pkg/db/models"
)

// Repository handles purchase persistence and the stock movements they cause.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to purchase operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindStocking loads the stocking row for a (supermarket, product) pair with
// the catalog entry preloaded.
func (r *Repository) FindStocking(ctx context.Context, supermarketID, productID uuid.UUID) (*models.SupermarketProduct, error) {
	var sp models.SupermarketProduct
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("supermarket_id = ? AND product_id = ?", supermarketID, productID).
		First(&sp).Error
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

// BestActiveOfferPrice returns the lowest offer price currently valid for the
// pair, or nil when no offer applies. Lowest wins if overlapping offers slip
// through the generation path.
func (r *Repository) BestActiveOfferPrice(ctx context.Context, supermarketID, productID uuid.UUID, now time.Time) (*decimal.Decimal, error) {
	var offer models.Offer
	err := r.db.WithContext(ctx).
		Where("supermarket_id = ? AND product_id = ? AND (end_date IS NULL OR end_date >= ?)", supermarketID, productID, now).
		Order("offer_price asc").
		First(&offer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	price := offer.OfferPrice
	return &price, nil
}

// DecrementStock conditionally debits quantity from the stocking row. It
// reports false when the row no longer holds enough stock, leaving the row
// untouched.
func (r *Repository) DecrementStock(ctx context.Context, stockingID uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SupermarketProduct{}).
		Where("id = ? AND quantity >= ?", stockingID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Create appends a purchase ledger row.
func (r *Repository) Create(ctx context.Context, p *models.Purchase) (*models.Purchase, error) {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListByUser returns a customer's purchases newest first, capped at limit.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Purchase, error) {
	var items []models.Purchase
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Supermarket").
		Where("user_id = ?", userID).
		Order("purchased_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
