package supermarkets

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte-backend/pkg/db/models"
	"github.com/offerte-app/offerte-backend/pkg/enums"
	pkgerrors "github.com/offerte-app/offerte-backend/pkg/errors"
)

type stubRepo struct {
	byID    map[uuid.UUID]*models.Supermarket
	created []*models.Supermarket
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[uuid.UUID]*models.Supermarket{}}
}

func (s *stubRepo) Create(_ context.Context, m *models.Supermarket) (*models.Supermarket, error) {
	m.ID = uuid.New()
	s.byID[m.ID] = m
	s.created = append(s.created, m)
	return m, nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Supermarket, error) {
	if m, ok := s.byID[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(_ context.Context) ([]models.Supermarket, error) {
	items := make([]models.Supermarket, 0, len(s.byID))
	for _, m := range s.byID {
		items = append(items, *m)
	}
	return items, nil
}

type stubUserFinder struct {
	users map[uuid.UUID]*models.User
}

func (s *stubUserFinder) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newService(t *testing.T, repo *stubRepo, users *stubUserFinder) *Service {
	t.Helper()
	if users == nil {
		users = &stubUserFinder{users: map[uuid.UUID]*models.User{}}
	}
	svc, err := NewService(ServiceParams{Repo: repo, Users: users})
	require.NoError(t, err)
	return svc
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateManagerDefaultsToActor(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	managerID := uuid.New()
	users := &stubUserFinder{users: map[uuid.UUID]*models.User{
		managerID: {ID: managerID, Role: enums.RoleManager},
	}}
	svc := newService(t, repo, users)

	created, err := svc.Create(context.Background(), managerID, enums.RoleManager, CreateRequest{
		Name:      "Esselunga Centro",
		Address:   "Via Roma 1",
		Latitude:  floatPtr(45.07),
		Longitude: floatPtr(7.69),
	})
	require.NoError(t, err)
	require.NotNil(t, created.ManagerID)
	assert.Equal(t, managerID, *created.ManagerID)
}

func TestCreateAdminWithoutManagerLeavesUnassigned(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	svc := newService(t, repo, nil)

	created, err := svc.Create(context.Background(), uuid.New(), enums.RoleAdmin, CreateRequest{
		Name:      "Coop Nord",
		Address:   "Corso Francia 10",
		Latitude:  floatPtr(45.08),
		Longitude: floatPtr(7.65),
	})
	require.NoError(t, err)
	assert.Nil(t, created.ManagerID)
}

func TestCreateRejectsUnknownManager(t *testing.T) {
	t.Parallel()

	svc := newService(t, newStubRepo(), nil)
	ghost := uuid.New()

	_, err := svc.Create(context.Background(), uuid.New(), enums.RoleAdmin, CreateRequest{
		Name:      "Coop Nord",
		Address:   "Corso Francia 10",
		Latitude:  floatPtr(45.08),
		Longitude: floatPtr(7.65),
		ManagerID: &ghost,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateRejectsNonManagerReference(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	users := &stubUserFinder{users: map[uuid.UUID]*models.User{
		customerID: {ID: customerID, Role: enums.RoleCustomer},
	}}
	svc := newService(t, newStubRepo(), users)

	_, err := svc.Create(context.Background(), uuid.New(), enums.RoleAdmin, CreateRequest{
		Name:      "Coop Nord",
		Address:   "Corso Francia 10",
		Latitude:  floatPtr(45.08),
		Longitude: floatPtr(7.65),
		ManagerID: &customerID,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGetByIDNotFound(t *testing.T) {
	t.Parallel()

	svc := newService(t, newStubRepo(), nil)

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAuthorizeManagement(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	svc := newService(t, repo, nil)

	owner := uuid.New()
	market := &models.Supermarket{Name: "Pam Local", Address: "Via Po 3", ManagerID: &owner}
	created, err := repo.Create(context.Background(), market)
	require.NoError(t, err)

	t.Run("admin always allowed", func(t *testing.T) {
		_, err := svc.AuthorizeManagement(context.Background(), created.ID, uuid.New(), enums.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("owning manager allowed", func(t *testing.T) {
		_, err := svc.AuthorizeManagement(context.Background(), created.ID, owner, enums.RoleManager)
		assert.NoError(t, err)
	})

	t.Run("other manager forbidden", func(t *testing.T) {
		_, err := svc.AuthorizeManagement(context.Background(), created.ID, uuid.New(), enums.RoleManager)
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
	})

	t.Run("unknown supermarket is not found before forbidden", func(t *testing.T) {
		_, err := svc.AuthorizeManagement(context.Background(), uuid.New(), owner, enums.RoleManager)
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	})
}
