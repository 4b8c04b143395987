package purchases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/pkg/db"
	"github.com/offerte-app/offerte-backend/pkg/db/models"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
	"github.com/offerte-app/offerte-backend/pkg/logger"
	"github.com/offerte-app/offerte-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service executes purchases and serves purchase history.
type Service struct {
	db   txRunner
	repo *Repository
	logg *logger.Logger
	now  func() time.Time
}

// ServiceParams bundles the dependencies for the purchase service.
type ServiceParams struct {
	DB     *db.Client
	Repo   *Repository
	Logger *logger.Logger
}

// NewService wires the purchase service.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("purchase repository is required")
	}
	return &Service{
		db:   params.DB,
		repo: params.Repo,
		logg: params.Logger,
		now:  time.Now,
	}, nil
}

// Purchase debits stock and appends a ledger row in one transaction. The
// conditional decrement keeps quantity from ever going negative, even when
// concurrent purchases race past the initial stock check.
func (s *Service) Purchase(ctx context.Context, userID, supermarketID, productID uuid.UUID, qty int) (*Receipt, error) {
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	var receipt *Receipt
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := s.now()

		stocking, err := repo.FindStocking(ctx, supermarketID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not stocked")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stocking")
		}

		if qty > stocking.Quantity {
			return pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock").
				WithDetails(map[string]any{"available_quantity": stocking.Quantity})
		}

		offerPrice, err := repo.BestActiveOfferPrice(ctx, supermarketID, productID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
		}

		unitPrice := stocking.Price
		onOffer := false
		if offerPrice != nil {
			unitPrice = *offerPrice
			onOffer = true
		}
		totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(2)

		debited, err := repo.DecrementStock(ctx, stocking.ID, qty)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
		}
		if !debited {
			return pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock").
				WithDetails(map[string]any{"available_quantity": stocking.Quantity})
		}

		if _, err := repo.Create(ctx, &models.Purchase{
			UserID:        userID,
			SupermarketID: supermarketID,
			ProductID:     productID,
			Quantity:      qty,
			PricePerUnit:  unitPrice,
			TotalPrice:    totalPrice,
			OnOffer:       onOffer,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create purchase")
		}

		productName := ""
		if stocking.Product != nil {
			productName = stocking.Product.Name
		}
		receipt = &Receipt{
			ProductID:    productID,
			ProductName:  productName,
			Quantity:     qty,
			PricePerUnit: unitPrice,
			TotalPrice:   totalPrice,
			OnOffer:      onOffer,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"supermarket_id": supermarketID.String(),
			"product_id":     productID.String(),
			"quantity":       qty,
			"on_offer":       receipt.OnOffer,
		})
		s.logg.Info(logCtx, "purchase.completed")
	}

	return receipt, nil
}

// History returns the customer's purchases, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]HistoryItem, error) {
	items, err := s.repo.ListByUser(ctx, userID, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchases")
	}
	return ToHistoryItems(items), nil
}
