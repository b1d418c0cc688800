package service

import (
	"context"
	"errors"
	"sync"

	cateringerrors "bukid/internal/catering/errors"
	"bukid/internal/catering/repository"
	"bukid/internal/catering/validator"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/model"
	"bukid/pkg/sanitizer"
)

// CateringService manages the menu: catering packages priced per head and
// the dishes they are composed from. A package may only reference dishes
// that exist.
type CateringService interface {
	CreatePackage(ctx context.Context, pkg *model.Package) error
	GetPackage(ctx context.Context, id string) (*model.Package, error)
	GetAllPackages(ctx context.Context, limit int, offset int64) ([]*model.Package, int64, error)
	UpdatePackage(ctx context.Context, id string, updates *model.PackageUpdate) error
	DeletePackage(ctx context.Context, id string) error
	GetPackageDishes(ctx context.Context, id string) ([]*model.Dish, error)

	CreateDish(ctx context.Context, dish *model.Dish) error
	GetDish(ctx context.Context, id string) (*model.Dish, error)
	GetAllDishes(ctx context.Context, limit int, offset int64) ([]*model.Dish, int64, error)
	UpdateDish(ctx context.Context, id string, updates *model.DishUpdate) error
	DeleteDish(ctx context.Context, id string) error
}

type cateringService struct {
	packages  repository.PackageRepository
	dishes    repository.DishRepository
	validator *validator.CateringValidator
	cfg       *config.Config
}

func NewCateringService(
	packages repository.PackageRepository,
	dishes repository.DishRepository,
	validator *validator.CateringValidator,
	cfg *config.Config,
) CateringService {
	return &cateringService{
		packages:  packages,
		dishes:    dishes,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *cateringService) CreatePackage(ctx context.Context, pkg *model.Package) error {
	pkg.Name = sanitizer.NormalizeName(pkg.Name)
	pkg.Category = sanitizer.NormalizeCategory(pkg.Category)
	pkg.Inclusions = sanitizer.NormalizeStringSlice(pkg.Inclusions)

	if err := s.validator.ValidatePackage(pkg); err != nil {
		s.cfg.Log.Warn("Package validation failed", "error", err)
		return apperrors.Validation("Package validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.verifyDishes(ctx, pkg.DishIDs); err != nil {
		return err
	}

	if err := s.packages.Create(ctx, pkg); err != nil {
		s.cfg.Log.Error("Failed to create package", "error", err)
		return apperrors.Internal("Failed to create package", err)
	}

	s.cfg.Log.Info("Package created", "id", pkg.ID, "name", pkg.Name, "category", pkg.Category)
	return nil
}

func (s *cateringService) GetPackage(ctx context.Context, id string) (*model.Package, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Package ID cannot be empty")
	}

	pkg, err := s.packages.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapPackageError(err, id, "Failed to retrieve package")
	}
	return pkg, nil
}

func (s *cateringService) GetAllPackages(ctx context.Context, limit int, offset int64) ([]*model.Package, int64, error) {
	var count int64
	var packages []*model.Package
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.packages.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count packages", "error", errCount)
			errCount = apperrors.Internal("Failed to count packages", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		packages, errFind = s.packages.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list packages", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve packages", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return packages, count, nil
}

func (s *cateringService) UpdatePackage(ctx context.Context, id string, updates *model.PackageUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Package ID cannot be empty")
	}

	existing, err := s.packages.FindByID(ctx, id)
	if err != nil {
		return s.mapPackageError(err, id, "Failed to check package existence")
	}

	if err := s.validator.ValidatePackageUpdate(updates); err != nil {
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := *existing
	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Category != "" {
		merged.Category = sanitizer.NormalizeCategory(updates.Category)
	}
	if updates.PricePerHead != nil {
		merged.PricePerHead = *updates.PricePerHead
	}
	if updates.Inclusions != nil {
		merged.Inclusions = sanitizer.NormalizeStringSlice(*updates.Inclusions)
	}
	if updates.DishIDs != nil {
		merged.DishIDs = *updates.DishIDs
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	if err := s.validator.ValidatePackage(&merged); err != nil {
		return apperrors.Validation("Package validation failed", map[string]any{"error": err.Error()})
	}

	if updates.DishIDs != nil {
		if err := s.verifyDishes(ctx, merged.DishIDs); err != nil {
			return err
		}
	}

	if err := s.packages.Update(ctx, id, &merged); err != nil {
		return s.mapPackageError(err, id, "Failed to update package")
	}

	s.cfg.Log.Info("Package updated", "id", id)
	return nil
}

func (s *cateringService) DeletePackage(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Package ID cannot be empty")
	}

	if err := s.packages.Delete(ctx, id); err != nil {
		return s.mapPackageError(err, id, "Failed to delete package")
	}

	s.cfg.Log.Info("Package deleted", "id", id)
	return nil
}

// GetPackageDishes resolves a package's dish references to full dishes.
func (s *cateringService) GetPackageDishes(ctx context.Context, id string) ([]*model.Dish, error) {
	pkg, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(pkg.DishIDs) == 0 {
		return nil, nil
	}

	dishes, err := s.dishes.FindByIDs(ctx, pkg.DishIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to resolve package dishes", "package_id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve package dishes", err)
	}
	return dishes, nil
}

func (s *cateringService) CreateDish(ctx context.Context, dish *model.Dish) error {
	dish.Name = sanitizer.NormalizeName(dish.Name)
	dish.Category = sanitizer.NormalizeCategory(dish.Category)
	dish.Allergens = sanitizer.NormalizeStringSlice(dish.Allergens)

	if err := s.validator.ValidateDish(dish); err != nil {
		s.cfg.Log.Warn("Dish validation failed", "error", err)
		return apperrors.Validation("Dish validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.dishes.Create(ctx, dish); err != nil {
		s.cfg.Log.Error("Failed to create dish", "error", err)
		return apperrors.Internal("Failed to create dish", err)
	}

	s.cfg.Log.Info("Dish created", "id", dish.ID, "name", dish.Name, "category", dish.Category)
	return nil
}

func (s *cateringService) GetDish(ctx context.Context, id string) (*model.Dish, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Dish ID cannot be empty")
	}

	dish, err := s.dishes.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapDishError(err, id, "Failed to retrieve dish")
	}
	return dish, nil
}

func (s *cateringService) GetAllDishes(ctx context.Context, limit int, offset int64) ([]*model.Dish, int64, error) {
	var count int64
	var dishes []*model.Dish
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.dishes.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count dishes", "error", errCount)
			errCount = apperrors.Internal("Failed to count dishes", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		dishes, errFind = s.dishes.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list dishes", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve dishes", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return dishes, count, nil
}

func (s *cateringService) UpdateDish(ctx context.Context, id string, updates *model.DishUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Dish ID cannot be empty")
	}

	existing, err := s.dishes.FindByID(ctx, id)
	if err != nil {
		return s.mapDishError(err, id, "Failed to check dish existence")
	}

	if err := s.validator.ValidateDishUpdate(updates); err != nil {
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := *existing
	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Category != "" {
		merged.Category = sanitizer.NormalizeCategory(updates.Category)
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Allergens != nil {
		merged.Allergens = sanitizer.NormalizeStringSlice(*updates.Allergens)
	}

	if err := s.validator.ValidateDish(&merged); err != nil {
		return apperrors.Validation("Dish validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.dishes.Update(ctx, id, &merged); err != nil {
		return s.mapDishError(err, id, "Failed to update dish")
	}

	s.cfg.Log.Info("Dish updated", "id", id)
	return nil
}

func (s *cateringService) DeleteDish(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Dish ID cannot be empty")
	}

	if err := s.dishes.Delete(ctx, id); err != nil {
		return s.mapDishError(err, id, "Failed to delete dish")
	}

	s.cfg.Log.Info("Dish deleted", "id", id)
	return nil
}

// verifyDishes checks that every referenced dish id resolves.
func (s *cateringService) verifyDishes(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	dishes, err := s.dishes.FindByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, cateringerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid dish ID format")
		}
		s.cfg.Log.Error("Failed to verify package dishes", "error", err)
		return apperrors.Internal("Failed to verify dishes", err)
	}
	if len(dishes) != len(ids) {
		return apperrors.Validation("Package references unknown dishes",
			map[string]any{"requested": len(ids), "found": len(dishes)})
	}
	return nil
}

func (s *cateringService) mapPackageError(err error, id, internalMsg string) error {
	if errors.Is(err, cateringerrors.ErrPackageNotFound) {
		return apperrors.NotFoundWithID("Package", id)
	}
	if errors.Is(err, cateringerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid package ID format")
	}
	return apperrors.Internal(internalMsg, err)
}

func (s *cateringService) mapDishError(err error, id, internalMsg string) error {
	if errors.Is(err, cateringerrors.ErrDishNotFound) {
		return apperrors.NotFoundWithID("Dish", id)
	}
	if errors.Is(err, cateringerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid dish ID format")
	}
	return apperrors.Internal(internalMsg, err)
}
