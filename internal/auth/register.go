package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/internal/users"
	"github.com/offerte-app/offerte-backend/pkg/config"
	"github.com/offerte-app/offerte-backend/pkg/db"
	"github.com/offerte-app/offerte-backend/pkg/db/models"
	"github.com/offerte-app/offerte-backend/pkg/enums"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
	"github.com/offerte-app/offerte-backend/pkg/security"
)

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	User UserSummary
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RegisterService creates new accounts.
type RegisterService struct {
	db          txRunner
	users       *users.Repository
	passwordCfg config.PasswordConfig
}

// RegisterServiceParams bundles the dependencies for account creation.
type RegisterServiceParams struct {
	DB             *db.Client
	UserRepo       *users.Repository
	PasswordConfig config.PasswordConfig
}

// NewRegisterService wires the registration flow.
func NewRegisterService(params RegisterServiceParams) (*RegisterService, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &RegisterService{
		db:          params.DB,
		users:       params.UserRepo,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Register creates a user with a hashed password, rejecting duplicate usernames.
func (s *RegisterService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	role, err := enums.ParseRole(req.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be one of admin, manager, customer")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.users.WithTx(tx)

		if _, err := repo.FindByUsername(ctx, req.Username); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
		}

		user := &models.User{
			Username:     req.Username,
			PasswordHash: hash,
			Role:         role,
			Email:        req.Email,
		}
		created, err = repo.Create(ctx, user)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "username already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResult{
		User: UserSummary{
			ID:       created.ID,
			Username: created.Username,
			Role:     created.Role,
		},
	}, nil
}
