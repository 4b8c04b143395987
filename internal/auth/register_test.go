package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/internal/users"
	"github.com/offerte-app/offerte-backend/pkg/db/models"
	"github.com/offerte-app/offerte-backend/pkg/enums"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
	"github.com/offerte-app/offerte-backend/pkg/security"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newRegisterTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:register_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate users: %v", err)
	}
	return db
}

func newRegisterService(t *testing.T, db *gorm.DB) *RegisterService {
	t.Helper()
	return &RegisterService{
		db:          gormTxRunner{db: db},
		users:       users.NewRepository(db),
		passwordCfg: testPasswordConfig,
	}
}

func TestRegisterCreatesUser(t *testing.T) {
	t.Parallel()

	db := newRegisterTestDB(t)
	svc := newRegisterService(t, db)

	result, err := svc.Register(context.Background(), RegisterRequest{
		Username: "luigi",
		Password: "secret-pw",
		Role:     "manager",
		Email:    "luigi@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "luigi", result.User.Username)
	assert.Equal(t, enums.RoleManager, result.User.Role)
	assert.NotEqual(t, uuid.Nil, result.User.ID)

	var stored models.User
	require.NoError(t, db.First(&stored, "username = ?", "luigi").Error)
	assert.NotEqual(t, "secret-pw", stored.PasswordHash)

	ok, err := security.VerifyPassword("secret-pw", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	db := newRegisterTestDB(t)
	svc := newRegisterService(t, db)

	req := RegisterRequest{
		Username: "peach",
		Password: "secret-pw",
		Role:     "customer",
		Email:    "peach@example.com",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterInvalidRole(t *testing.T) {
	t.Parallel()

	db := newRegisterTestDB(t)
	svc := newRegisterService(t, db)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "bowser",
		Password: "secret-pw",
		Role:     "overlord",
		Email:    "bowser@example.com",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
