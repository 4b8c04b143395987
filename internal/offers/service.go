package offers

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/pkg/config"
	"github.com/offerte-app/offerte-backend/pkg/db"
	"github.com/offerte-app/offerte-backend/pkg/db/models"
	"github.com/offerte-app/offerte-backend/pkg/enums"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
	"github.com/offerte-app/offerte-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type supermarketGateway interface {
	AuthorizeManagement(ctx context.Context, supermarketID, actorID uuid.UUID, actorRole enums.Role) (*models.Supermarket, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supermarket, error)
}

// Service generates and lists time-bounded discount offers.
type Service struct {
	db           txRunner
	repo         *Repository
	supermarkets supermarketGateway
	defaults     config.OffersConfig
	logg         *logger.Logger

	// intn is swappable so tests can pin the sampled discounts.
	intn func(n int) int
	now  func() time.Time
}

// ServiceParams bundles the dependencies for the offer service.
type ServiceParams struct {
	DB           *db.Client
	Repo         *Repository
	Supermarkets supermarketGateway
	Defaults     config.OffersConfig
	Logger       *logger.Logger
}

// NewService wires the offer engine.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("offer repository is required")
	}
	if params.Supermarkets == nil {
		return nil, fmt.Errorf("supermarket service is required")
	}
	return &Service{
		db:           params.DB,
		repo:         params.Repo,
		supermarkets: params.Supermarkets,
		defaults:     params.Defaults,
		logg:         params.Logger,
		intn:         rand.IntN,
		now:          time.Now,
	}, nil
}

// Generate expires the supermarket's active offers and creates a fresh random
// batch in a single transaction. The actor must manage the supermarket.
func (s *Service) Generate(ctx context.Context, supermarketID, actorID uuid.UUID, actorRole enums.Role, req GenerateRequest) (*GenerateResult, error) {
	if _, err := s.supermarkets.AuthorizeManagement(ctx, supermarketID, actorID, actorRole); err != nil {
		return nil, err
	}

	params, err := s.resolveParams(req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	endDate := now.Add(time.Duration(params.DaysDuration) * 24 * time.Hour)
	created := 0

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := repo.ExpireActive(ctx, supermarketID, now); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire offers")
		}
		if err := repo.ClearStockingOffers(ctx, supermarketID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear stocking offers")
		}

		stockings, err := repo.SampleStockings(ctx, supermarketID, params.NumOffers)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sample stockings")
		}

		for i := range stockings {
			stocking := &stockings[i]
			discount := params.DiscountMin + s.intn(params.DiscountMax-params.DiscountMin+1)
			offerPrice := discountedPrice(stocking.Price, discount)

			end := endDate
			offer := &models.Offer{
				SupermarketID: supermarketID,
				ProductID:     stocking.ProductID,
				OriginalPrice: stocking.Price,
				OfferPrice:    offerPrice,
				EndDate:       &end,
				Description:   fmt.Sprintf("Special offer: %d%% off", discount),
			}
			if _, err := repo.Create(ctx, offer); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create offer")
			}
			if err := repo.MarkStockingOnOffer(ctx, stocking.ID, offerPrice); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark stocking")
			}
			created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithSupermarketID(ctx, supermarketID.String())
		s.logg.Info(s.logg.WithFields(logCtx, map[string]any{"created": created}), "offers.generated")
	}

	return &GenerateResult{SupermarketID: supermarketID, Created: created}, nil
}

type generateParams struct {
	NumOffers    int
	DiscountMin  int
	DiscountMax  int
	DaysDuration int
}

func (s *Service) resolveParams(req GenerateRequest) (generateParams, error) {
	params := generateParams{
		NumOffers:    req.NumOffers,
		DiscountMin:  req.DiscountMin,
		DiscountMax:  req.DiscountMax,
		DaysDuration: req.DaysDuration,
	}
	if params.NumOffers <= 0 {
		params.NumOffers = s.defaults.NumOffers
	}
	if params.DiscountMin <= 0 {
		params.DiscountMin = s.defaults.DiscountMin
	}
	if params.DiscountMax <= 0 {
		params.DiscountMax = s.defaults.DiscountMax
	}
	if params.DaysDuration <= 0 {
		params.DaysDuration = s.defaults.DaysDuration
	}

	if params.DiscountMin > params.DiscountMax {
		return generateParams{}, pkgerrors.New(pkgerrors.CodeValidation, "discount_min cannot exceed discount_max")
	}
	if params.DiscountMax > 100 {
		return generateParams{}, pkgerrors.New(pkgerrors.CodeValidation, "discount_max cannot exceed 100")
	}
	return params, nil
}

// ListResult pairs a supermarket with its offers for the public listing.
type ListResult struct {
	Supermarket *models.Supermarket
	Offers      []Response
	Timestamp   time.Time
}

// List returns the supermarket's offers, 404 on unknown supermarket.
func (s *Service) List(ctx context.Context, supermarketID uuid.UUID, activeOnly bool) (*ListResult, error) {
	market, err := s.supermarkets.GetByID(ctx, supermarketID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items, err := s.repo.ListWithProduct(ctx, supermarketID, activeOnly, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers")
	}

	return &ListResult{
		Supermarket: market,
		Offers:      ToResponses(items, now),
		Timestamp:   now,
	}, nil
}

// CountActive reports the supermarket's currently valid offer count.
func (s *Service) CountActive(ctx context.Context, supermarketID uuid.UUID) (int64, error) {
	count, err := s.repo.CountActiveBySupermarket(ctx, supermarketID, s.now())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count offers")
	}
	return count, nil
}

func discountedPrice(price decimal.Decimal, discount int) decimal.Decimal {
	factor := decimal.NewFromInt(int64(100 - discount)).Div(decimal.NewFromInt(100))
	return price.Mul(factor).Round(2)
}
