package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offerte-app/offerte-backend/internal/catalog"
	"github.com/offerte-app/offerte-backend/internal/supermarkets"
	"github.com/offerte-app/offerte-backend/pkg/db/models"
	"github.com/offerte-app/offerte-backend/pkg/enums"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
)

type userLister interface {
	List(ctx context.Context) ([]models.User, error)
}

type supermarketLister interface {
	List(ctx context.Context) ([]models.Supermarket, error)
	ListByManager(ctx context.Context, managerID uuid.UUID) ([]models.Supermarket, error)
}

type productLister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type offerCounter interface {
	CountActive(ctx context.Context, supermarketID uuid.UUID) (int64, error)
}

// ActorRef identifies the user a dashboard was built for.
type ActorRef struct {
	ID   uuid.UUID  `json:"id"`
	Role enums.Role `json:"role"`
}

// UserInfo is the admin-visible view of an account.
type UserInfo struct {
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     enums.Role `json:"role"`
}

// SupermarketWithOffers decorates a supermarket with its live offer count for
// the customer dashboard.
type SupermarketWithOffers struct {
	supermarkets.Response
	ActiveOffers int64 `json:"active_offers"`
}

// Payload is the role-shaped dashboard body.
type Payload struct {
	User         ActorRef                  `json:"user"`
	Supermarkets any                       `json:"supermarkets,omitempty"`
	Users        []UserInfo                `json:"users,omitempty"`
	Products     []catalog.ProductResponse `json:"products,omitempty"`
	Stats        map[string]int64          `json:"stats"`
}

// Service assembles role-conditioned dashboard views.
type Service struct {
	users        userLister
	supermarkets supermarketLister
	products     productLister
	offers       offerCounter
}

// ServiceParams bundles the dependencies for the dashboard service.
type ServiceParams struct {
	Users        userLister
	Supermarkets supermarketLister
	Products     productLister
	Offers       offerCounter
}

// NewService wires the dashboard service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Users == nil || params.Supermarkets == nil || params.Products == nil || params.Offers == nil {
		return nil, fmt.Errorf("all dashboard dependencies are required")
	}
	return &Service{
		users:        params.Users,
		supermarkets: params.Supermarkets,
		products:     params.Products,
		offers:       params.Offers,
	}, nil
}

// Build produces the dashboard payload for the session's role.
func (s *Service) Build(ctx context.Context, userID uuid.UUID, role enums.Role) (*Payload, error) {
	payload := &Payload{
		User:  ActorRef{ID: userID, Role: role},
		Stats: map[string]int64{},
	}

	switch role {
	case enums.RoleAdmin:
		return s.buildAdmin(ctx, payload)
	case enums.RoleManager:
		return s.buildManager(ctx, payload, userID)
	case enums.RoleCustomer:
		return s.buildCustomer(ctx, payload)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown role")
	}
}

func (s *Service) buildAdmin(ctx context.Context, payload *Payload) (*Payload, error) {
	markets, err := s.supermarkets.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supermarkets")
	}
	accounts, err := s.users.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	userInfos := make([]UserInfo, 0, len(accounts))
	for _, u := range accounts {
		userInfos = append(userInfos, UserInfo{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role})
	}

	payload.Supermarkets = supermarkets.ToResponses(markets)
	payload.Users = userInfos
	payload.Products = catalog.ToProductResponses(products)
	payload.Stats["supermarket_count"] = int64(len(markets))
	payload.Stats["user_count"] = int64(len(accounts))
	payload.Stats["product_count"] = int64(len(products))
	return payload, nil
}

func (s *Service) buildManager(ctx context.Context, payload *Payload, managerID uuid.UUID) (*Payload, error) {
	markets, err := s.supermarkets.ListByManager(ctx, managerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list managed supermarkets")
	}
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	payload.Supermarkets = supermarkets.ToResponses(markets)
	payload.Products = catalog.ToProductResponses(products)
	payload.Stats["managed_supermarkets"] = int64(len(markets))
	payload.Stats["available_products"] = int64(len(products))
	return payload, nil
}

func (s *Service) buildCustomer(ctx context.Context, payload *Payload) (*Payload, error) {
	markets, err := s.supermarkets.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supermarkets")
	}

	decorated := make([]SupermarketWithOffers, 0, len(markets))
	var withOffers int64
	for i := range markets {
		count, err := s.offers.CountActive(ctx, markets[i].ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			withOffers++
		}
		decorated = append(decorated, SupermarketWithOffers{
			Response:     supermarkets.ToResponse(&markets[i]),
			ActiveOffers: count,
		})
	}

	payload.Supermarkets = decorated
	payload.Stats["supermarkets_with_offers"] = withOffers
	return payload, nil
}
