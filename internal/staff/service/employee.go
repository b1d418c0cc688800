package service

import (
	"context"
	"errors"
	"sync"

	stafferrors "bukid/internal/staff/errors"
	"bukid/internal/staff/repository"
	"bukid/internal/staff/validator"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/model"
	"bukid/pkg/sanitizer"
)

type EmployeeService interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	GetAll(ctx context.Context, role string, limit int, offset int64) ([]*model.Employee, int64, error)
	Update(ctx context.Context, id string, updates *model.EmployeeUpdate) error
	Delete(ctx context.Context, id string) error
}

type employeeService struct {
	employees repository.EmployeeRepository
	validator *validator.EmployeeValidator
	cfg       *config.Config
}

func NewEmployeeService(
	employees repository.EmployeeRepository,
	validator *validator.EmployeeValidator,
	cfg *config.Config,
) EmployeeService {
	return &employeeService{
		employees: employees,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *employeeService) Create(ctx context.Context, employee *model.Employee) error {
	employee.Name = sanitizer.NormalizeName(employee.Name)
	employee.Phone = sanitizer.NormalizePhone(employee.Phone)
	employee.Email = sanitizer.TrimAndNormalize(employee.Email)

	if err := s.validator.Validate(employee); err != nil {
		s.cfg.Log.Warn("Employee validation failed", "error", err)
		return apperrors.Validation("Employee validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		s.cfg.Log.Error("Failed to create employee", "error", err)
		return apperrors.Internal("Failed to create employee", err)
	}

	s.cfg.Log.Info("Employee created", "id", employee.ID, "name", employee.Name, "role", employee.Role)
	return nil
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Employee ID cannot be empty")
	}

	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve employee")
	}
	return employee, nil
}

func (s *employeeService) GetAll(ctx context.Context, role string, limit int, offset int64) ([]*model.Employee, int64, error) {
	var count int64
	var employees []*model.Employee
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.employees.Count(ctx, role)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count employees", "error", errCount)
			errCount = apperrors.Internal("Failed to count employees", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		employees, errFind = s.employees.FindAll(ctx, role, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list employees", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve employees", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return employees, count, nil
}

func (s *employeeService) Update(ctx context.Context, id string, updates *model.EmployeeUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Employee ID cannot be empty")
	}

	existing, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id, "Failed to check employee existence")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := *existing
	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Role != "" {
		merged.Role = updates.Role
	}
	if updates.Phone != "" {
		merged.Phone = sanitizer.NormalizePhone(updates.Phone)
	}
	if updates.Email != "" {
		merged.Email = sanitizer.TrimAndNormalize(updates.Email)
	}
	if updates.DailyRate != nil {
		merged.DailyRate = *updates.DailyRate
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	if err := s.validator.Validate(&merged); err != nil {
		return apperrors.Validation("Employee validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.employees.Update(ctx, id, &merged); err != nil {
		return s.mapRepoError(err, id, "Failed to update employee")
	}

	s.cfg.Log.Info("Employee updated", "id", id)
	return nil
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Employee ID cannot be empty")
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete employee")
	}

	s.cfg.Log.Info("Employee deleted", "id", id)
	return nil
}

func (s *employeeService) mapRepoError(err error, id, internalMsg string) error {
	if errors.Is(err, stafferrors.ErrEmployeeNotFound) {
		return apperrors.NotFoundWithID("Employee", id)
	}
	if errors.Is(err, stafferrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid employee ID format")
	}
	return apperrors.Internal(internalMsg, err)
}
