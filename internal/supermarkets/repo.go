package supermarkets

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/pkg/db/models"
)

// Repository handles supermarket persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to supermarket operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create persists a new supermarket row.
func (r *Repository) Create(ctx context.Context, m *models.Supermarket) (*models.Supermarket, error) {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// FindByID loads a supermarket by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Supermarket, error) {
	var m models.Supermarket
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all supermarkets ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Supermarket, error) {
	var items []models.Supermarket
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByManager returns the supermarkets owned by the given manager.
func (r *Repository) ListByManager(ctx context.Context, managerID uuid.UUID) ([]models.Supermarket, error) {
	var items []models.Supermarket
	if err := r.db.WithContext(ctx).Where("manager_id = ?", managerID).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the total number of supermarkets.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Supermarket{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
