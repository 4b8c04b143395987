package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerte-app/offerte-backend/internal/supermarkets"
	"github.com/offerte-app/offerte-backend/pkg/db/models"
	"github.com/offerte-app/offerte-backend/pkg/enums"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
)

type stubUsers struct {
	users []models.User
}

func (s *stubUsers) List(context.Context) ([]models.User, error) {
	return s.users, nil
}

type stubMarkets struct {
	all []models.Supermarket
}

func (s *stubMarkets) List(context.Context) ([]models.Supermarket, error) {
	return s.all, nil
}

func (s *stubMarkets) ListByManager(_ context.Context, managerID uuid.UUID) ([]models.Supermarket, error) {
	var owned []models.Supermarket
	for _, m := range s.all {
		if m.ManagerID != nil && *m.ManagerID == managerID {
			owned = append(owned, m)
		}
	}
	return owned, nil
}

type stubProducts struct {
	products []models.Product
}

func (s *stubProducts) ListProducts(context.Context) ([]models.Product, error) {
	return s.products, nil
}

type stubOffers struct {
	counts map[uuid.UUID]int64
}

func (s *stubOffers) CountActive(_ context.Context, supermarketID uuid.UUID) (int64, error) {
	return s.counts[supermarketID], nil
}

func buildFixtureService(t *testing.T, managerID uuid.UUID) (*Service, []models.Supermarket) {
	t.Helper()

	marketA := models.Supermarket{ID: uuid.New(), Name: "Esselunga Centro", ManagerID: &managerID}
	marketB := models.Supermarket{ID: uuid.New(), Name: "Coop Nord"}

	svc, err := NewService(ServiceParams{
		Users: &stubUsers{users: []models.User{
			{ID: uuid.New(), Username: "admin", Email: "admin@example.com", Role: enums.RoleAdmin},
			{ID: managerID, Username: "manager", Email: "manager@example.com", Role: enums.RoleManager},
		}},
		Supermarkets: &stubMarkets{all: []models.Supermarket{marketA, marketB}},
		Products: &stubProducts{products: []models.Product{
			{ID: uuid.New(), Name: "Pasta"},
			{ID: uuid.New(), Name: "Latte"},
			{ID: uuid.New(), Name: "Pane"},
		}},
		Offers: &stubOffers{counts: map[uuid.UUID]int64{marketA.ID: 2}},
	})
	require.NoError(t, err)
	return svc, []models.Supermarket{marketA, marketB}
}

func TestBuildAdmin(t *testing.T) {
	t.Parallel()

	svc, _ := buildFixtureService(t, uuid.New())
	adminID := uuid.New()

	payload, err := svc.Build(context.Background(), adminID, enums.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, adminID, payload.User.ID)
	assert.Equal(t, enums.RoleAdmin, payload.User.Role)
	assert.Len(t, payload.Users, 2)
	assert.Len(t, payload.Products, 3)
	assert.Equal(t, int64(2), payload.Stats["supermarket_count"])
	assert.Equal(t, int64(2), payload.Stats["user_count"])
	assert.Equal(t, int64(3), payload.Stats["product_count"])

	markets, ok := payload.Supermarkets.([]supermarkets.Response)
	require.True(t, ok)
	assert.Len(t, markets, 2)
}

func TestBuildManagerSeesOnlyOwned(t *testing.T) {
	t.Parallel()

	managerID := uuid.New()
	svc, fixtures := buildFixtureService(t, managerID)

	payload, err := svc.Build(context.Background(), managerID, enums.RoleManager)
	require.NoError(t, err)

	markets, ok := payload.Supermarkets.([]supermarkets.Response)
	require.True(t, ok)
	require.Len(t, markets, 1)
	assert.Equal(t, fixtures[0].ID, markets[0].ID)
	assert.Empty(t, payload.Users)
	assert.Equal(t, int64(1), payload.Stats["managed_supermarkets"])
	assert.Equal(t, int64(3), payload.Stats["available_products"])
}

func TestBuildCustomerCountsOffers(t *testing.T) {
	t.Parallel()

	svc, fixtures := buildFixtureService(t, uuid.New())

	payload, err := svc.Build(context.Background(), uuid.New(), enums.RoleCustomer)
	require.NoError(t, err)

	markets, ok := payload.Supermarkets.([]SupermarketWithOffers)
	require.True(t, ok)
	require.Len(t, markets, 2)

	byID := map[uuid.UUID]int64{}
	for _, m := range markets {
		byID[m.ID] = m.ActiveOffers
	}
	assert.Equal(t, int64(2), byID[fixtures[0].ID])
	assert.Equal(t, int64(0), byID[fixtures[1].ID])
	assert.Equal(t, int64(1), payload.Stats["supermarkets_with_offers"])
	assert.Empty(t, payload.Users)
	assert.Empty(t, payload.Products)
}

func TestBuildUnknownRole(t *testing.T) {
	t.Parallel()

	svc, _ := buildFixtureService(t, uuid.New())

	_, err := svc.Build(context.Background(), uuid.New(), enums.Role("ghost"))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}
