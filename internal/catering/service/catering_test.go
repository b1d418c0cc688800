package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cateringerrors "bukid/internal/catering/errors"
	"bukid/internal/catering/validator"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

const (
	testPackageID = "64f1b2a3c4d5e6f7a8b9c0a1"
	testDishID    = "64f1b2a3c4d5e6f7a8b9c0a2"
	missingDishID = "64f1b2a3c4d5e6f7a8b9c0a3"
)

type mockPackageRepo struct {
	pkg *model.Package
}

func (m *mockPackageRepo) Create(ctx context.Context, pkg *model.Package) error {
	pkg.ID = testPackageID
	m.pkg = pkg
	return nil
}

func (m *mockPackageRepo) FindByID(ctx context.Context, id string) (*model.Package, error) {
	if m.pkg == nil {
		return nil, cateringerrors.ErrPackageNotFound
	}
	return m.pkg, nil
}

func (m *mockPackageRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Package, error) {
	if m.pkg == nil {
		return nil, nil
	}
	return []*model.Package{m.pkg}, nil
}

func (m *mockPackageRepo) Count(ctx context.Context) (int64, error) { return 1, nil }

func (m *mockPackageRepo) Update(ctx context.Context, id string, pkg *model.Package) error {
	m.pkg = pkg
	return nil
}

func (m *mockPackageRepo) Delete(ctx context.Context, id string) error { return nil }

type mockDishRepo struct {
	dishes map[string]*model.Dish
}

func (m *mockDishRepo) Create(ctx context.Context, dish *model.Dish) error {
	dish.ID = testDishID
	if m.dishes == nil {
		m.dishes = map[string]*model.Dish{}
	}
	m.dishes[dish.ID] = dish
	return nil
}

func (m *mockDishRepo) FindByID(ctx context.Context, id string) (*model.Dish, error) {
	dish, ok := m.dishes[id]
	if !ok {
		return nil, cateringerrors.ErrDishNotFound
	}
	return dish, nil
}

func (m *mockDishRepo) FindByIDs(ctx context.Context, ids []string) ([]*model.Dish, error) {
	var out []*model.Dish
	for _, id := range ids {
		if dish, ok := m.dishes[id]; ok {
			out = append(out, dish)
		}
	}
	return out, nil
}

func (m *mockDishRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Dish, error) {
	var out []*model.Dish
	for _, dish := range m.dishes {
		out = append(out, dish)
	}
	return out, nil
}

func (m *mockDishRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.dishes)), nil
}

func (m *mockDishRepo) Update(ctx context.Context, id string, dish *model.Dish) error { return nil }

func (m *mockDishRepo) Delete(ctx context.Context, id string) error { return nil }

func cateringConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		Location:     time.UTC,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestCatering(t *testing.T, packages *mockPackageRepo, dishes *mockDishRepo) CateringService {
	t.Helper()
	cfg := cateringConfig(t)
	return NewCateringService(packages, dishes, validator.NewCateringValidator(cfg.Log), cfg)
}

func lechonKawali() *model.Dish {
	return &model.Dish{
		ID:       testDishID,
		Name:     "Lechon Kawali",
		Category: "main",
		Price:    450,
	}
}

func TestCreatePackage_VerifiesDishReferences(t *testing.T) {
	packages := &mockPackageRepo{}
	dishes := &mockDishRepo{dishes: map[string]*model.Dish{testDishID: lechonKawali()}}
	svc := newTestCatering(t, packages, dishes)

	pkg := &model.Package{
		Name:         "Wedding Premier",
		Category:     "WEDDING",
		PricePerHead: 850,
		DishIDs:      []string{testDishID},
	}
	err := svc.CreatePackage(context.Background(), pkg)
	require.NoError(t, err)

	assert.Equal(t, testPackageID, pkg.ID)
	assert.Equal(t, "wedding", pkg.Category, "category is lowercased")
}

func TestCreatePackage_UnknownDishRejected(t *testing.T) {
	packages := &mockPackageRepo{}
	dishes := &mockDishRepo{dishes: map[string]*model.Dish{testDishID: lechonKawali()}}
	svc := newTestCatering(t, packages, dishes)

	pkg := &model.Package{
		Name:         "Wedding Premier",
		Category:     "wedding",
		PricePerHead: 850,
		DishIDs:      []string{testDishID, missingDishID},
	}
	err := svc.CreatePackage(context.Background(), pkg)
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Nil(t, packages.pkg, "nothing persisted")
}

func TestCreatePackage_InvalidCategoryRejected(t *testing.T) {
	svc := newTestCatering(t, &mockPackageRepo{}, &mockDishRepo{})

	err := svc.CreatePackage(context.Background(), &model.Package{
		Name:         "Fiesta",
		Category:     "fiesta",
		PricePerHead: 500,
	})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestUpdatePackage_SwappingDishesRevalidates(t *testing.T) {
	packages := &mockPackageRepo{pkg: &model.Package{
		ID:           testPackageID,
		Name:         "Wedding Premier",
		Category:     "wedding",
		PricePerHead: 850,
		DishIDs:      []string{testDishID},
	}}
	dishes := &mockDishRepo{dishes: map[string]*model.Dish{testDishID: lechonKawali()}}
	svc := newTestCatering(t, packages, dishes)

	badIDs := []string{missingDishID}
	err := svc.UpdatePackage(context.Background(), testPackageID, &model.PackageUpdate{DishIDs: &badIDs})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestGetPackageDishes_ResolvesReferences(t *testing.T) {
	packages := &mockPackageRepo{pkg: &model.Package{
		ID:           testPackageID,
		Name:         "Wedding Premier",
		Category:     "wedding",
		PricePerHead: 850,
		DishIDs:      []string{testDishID},
	}}
	dishes := &mockDishRepo{dishes: map[string]*model.Dish{testDishID: lechonKawali()}}
	svc := newTestCatering(t, packages, dishes)

	resolved, err := svc.GetPackageDishes(context.Background(), testPackageID)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "Lechon Kawali", resolved[0].Name)
}

func TestCreateDish_NormalizesAndValidates(t *testing.T) {
	dishes := &mockDishRepo{}
	svc := newTestCatering(t, &mockPackageRepo{}, dishes)

	dish := &model.Dish{Name: "  Kare   Kare ", Category: "MAIN", Price: 520}
	err := svc.CreateDish(context.Background(), dish)
	require.NoError(t, err)

	assert.Equal(t, "Kare Kare", dish.Name)
	assert.Equal(t, "main", dish.Category)
}

func TestCreateDish_ZeroPriceRejected(t *testing.T) {
	svc := newTestCatering(t, &mockPackageRepo{}, &mockDishRepo{})

	err := svc.CreateDish(context.Background(), &model.Dish{Name: "Halo-Halo", Category: "dessert"})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}
