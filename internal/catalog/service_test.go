package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/internal/supermarkets"
	"github.com/offerte-app/offerte-backend/internal/users"
	"github.com/offerte-app/offerte-backend/pkg/db/models"
	"github.com/offerte-app/offerte-backend/pkg/enums"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Supermarket{},
		&models.Product{},
		&models.SupermarketProduct{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newCatalogService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	marketSvc, err := supermarkets.NewService(supermarkets.ServiceParams{
		Repo:  supermarkets.NewRepository(db),
		Users: users.NewRepository(db),
	})
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{
		Repo:         NewRepository(db),
		Supermarkets: marketSvc,
	})
	require.NoError(t, err)
	return svc
}

func seedSupermarket(t *testing.T, db *gorm.DB, managerID *uuid.UUID) *models.Supermarket {
	t.Helper()
	m := &models.Supermarket{
		Name:      "Esselunga Centro",
		Address:   "Via Roma 1",
		Latitude:  45.07,
		Longitude: 7.69,
		ManagerID: managerID,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func strPtr(s string) *string { return &s }

func TestAddProductBarcodeCollision(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, AddProductRequest{Name: "Pasta Barilla 500g", Barcode: strPtr("8076809513753")})
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, AddProductRequest{Name: "Pasta copy", Barcode: strPtr("8076809513753")})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "duplicate product", typed.Message())
}

func TestAddProductAllowsMissingBarcode(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, AddProductRequest{Name: "Mele Golden"})
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, AddProductRequest{Name: "Pere Abate"})
	require.NoError(t, err)

	items, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestStockDuplicatePair(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	market := seedSupermarket(t, db, nil)
	product, err := svc.AddProduct(ctx, AddProductRequest{Name: "Latte intero 1L"})
	require.NoError(t, err)

	req := StockRequest{
		ProductID: product.ID,
		Price:     decimal.RequireFromString("1.49"),
		Quantity:  30,
	}
	_, err = svc.Stock(ctx, market.ID, uuid.New(), enums.RoleAdmin, req)
	require.NoError(t, err)

	_, err = svc.Stock(ctx, market.ID, uuid.New(), enums.RoleAdmin, req)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "already stocked", typed.Message())
}

func TestStockRequiresManagedSupermarket(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	owner := uuid.New()
	market := seedSupermarket(t, db, &owner)
	product, err := svc.AddProduct(ctx, AddProductRequest{Name: "Olio EVO 750ml"})
	require.NoError(t, err)

	req := StockRequest{
		ProductID: product.ID,
		Price:     decimal.RequireFromString("7.90"),
		Quantity:  10,
	}

	_, err = svc.Stock(ctx, market.ID, uuid.New(), enums.RoleManager, req)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	_, err = svc.Stock(ctx, market.ID, owner, enums.RoleManager, req)
	require.NoError(t, err)
}

func TestStockValidation(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	market := seedSupermarket(t, db, nil)

	_, err := svc.Stock(ctx, market.ID, uuid.New(), enums.RoleAdmin, StockRequest{
		ProductID: uuid.New(),
		Price:     decimal.Zero,
		Quantity:  5,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Stock(ctx, market.ID, uuid.New(), enums.RoleAdmin, StockRequest{
		ProductID: uuid.New(),
		Price:     decimal.RequireFromString("2.00"),
		Quantity:  1,
	})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListStockingsJoinsProduct(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	market := seedSupermarket(t, db, nil)
	product, err := svc.AddProduct(ctx, AddProductRequest{Name: "Caffè Lavazza", Category: strPtr("beverages")})
	require.NoError(t, err)

	_, err = svc.Stock(ctx, market.ID, uuid.New(), enums.RoleAdmin, StockRequest{
		ProductID: product.ID,
		Price:     decimal.RequireFromString("4.35"),
		Quantity:  12,
	})
	require.NoError(t, err)

	items, err := svc.ListStockings(ctx, market.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Caffè Lavazza", items[0].Product.Name)
	assert.Equal(t, 12, items[0].Quantity)

	_, err = svc.ListStockings(ctx, uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
