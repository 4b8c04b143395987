package supermarkets

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/pkg/db/models"
	"github.com/offerte-app/offerte-backend/pkg/enums"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
)

type supermarketRepository interface {
	Create(ctx context.Context, m *models.Supermarket) (*models.Supermarket, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supermarket, error)
	List(ctx context.Context) ([]models.Supermarket, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service owns supermarket lifecycle and management authorization.
type Service struct {
	repo  supermarketRepository
	users userFinder
}

// ServiceParams bundles the dependencies for the supermarket service.
type ServiceParams struct {
	Repo  supermarketRepository
	Users userFinder
}

// NewService wires the supermarket service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("supermarket repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user finder is required")
	}
	return &Service{repo: params.Repo, users: params.Users}, nil
}

// Create registers a supermarket. A manager creating a store without naming a
// manager becomes its manager; an explicit manager reference must exist and
// hold the manager role.
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, req CreateRequest) (*models.Supermarket, error) {
	managerID := req.ManagerID
	if managerID == nil && actorRole == enums.RoleManager {
		id := actorID
		managerID = &id
	}

	if managerID != nil {
		manager, err := s.users.FindByID(ctx, *managerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "manager not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load manager")
		}
		if manager.Role != enums.RoleManager {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "referenced user is not a manager")
		}
	}

	created, err := s.repo.Create(ctx, &models.Supermarket{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		ManagerID: managerID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supermarket")
	}
	return created, nil
}

// GetByID loads a single supermarket.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Supermarket, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supermarket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supermarket")
	}
	return m, nil
}

// List returns every supermarket.
func (s *Service) List(ctx context.Context) ([]models.Supermarket, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supermarkets")
	}
	return items, nil
}

// AuthorizeManagement loads the supermarket and checks the actor may manage
// it: admins always, managers only when they own it. Unknown supermarkets
// surface as not-found before any forbidden decision.
func (s *Service) AuthorizeManagement(ctx context.Context, supermarketID, actorID uuid.UUID, actorRole enums.Role) (*models.Supermarket, error) {
	m, err := s.GetByID(ctx, supermarketID)
	if err != nil {
		return nil, err
	}
	if actorRole == enums.RoleAdmin {
		return m, nil
	}
	if actorRole == enums.RoleManager && m.ManagerID != nil && *m.ManagerID == actorID {
		return m, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the manager of this supermarket")
}
