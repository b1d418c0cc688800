package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stafferrors "bukid/internal/staff/errors"
	"bukid/internal/staff/validator"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

const testEmployeeID = "64f1b2a3c4d5e6f7a8b9c0b1"

type mockEmployeeRepo struct {
	employee *model.Employee
}

func (m *mockEmployeeRepo) Create(ctx context.Context, employee *model.Employee) error {
	employee.ID = testEmployeeID
	m.employee = employee
	return nil
}

func (m *mockEmployeeRepo) FindByID(ctx context.Context, id string) (*model.Employee, error) {
	if m.employee == nil {
		return nil, stafferrors.ErrEmployeeNotFound
	}
	return m.employee, nil
}

func (m *mockEmployeeRepo) FindAll(ctx context.Context, role string, limit int, offset int64) ([]*model.Employee, error) {
	if m.employee == nil || (role != "" && m.employee.Role != role) {
		return nil, nil
	}
	return []*model.Employee{m.employee}, nil
}

func (m *mockEmployeeRepo) Count(ctx context.Context, role string) (int64, error) {
	if m.employee == nil || (role != "" && m.employee.Role != role) {
		return 0, nil
	}
	return 1, nil
}

func (m *mockEmployeeRepo) Update(ctx context.Context, id string, employee *model.Employee) error {
	m.employee = employee
	return nil
}

func (m *mockEmployeeRepo) Delete(ctx context.Context, id string) error {
	if m.employee == nil {
		return stafferrors.ErrEmployeeNotFound
	}
	m.employee = nil
	return nil
}

func staffConfig(t *testing.T) *config.Config {
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

func newTestStaff(t *testing.T, repo *mockEmployeeRepo) EmployeeService {
	t.Helper()
	cfg := staffConfig(t)
	return NewEmployeeService(repo, validator.NewEmployeeValidator(cfg.Log), cfg)
}

func TestCreateEmployee_NormalizesPhone(t *testing.T) {
	repo := &mockEmployeeRepo{}
	svc := newTestStaff(t, repo)

	employee := &model.Employee{
		Name:      "Maria Santos",
		Role:      "cook",
		Phone:     "0917 123 4567",
		DailyRate: 800,
		Active:    true,
	}
	err := svc.Create(context.Background(), employee)
	require.NoError(t, err)

	assert.Equal(t, testEmployeeID, employee.ID)
	assert.Equal(t, "+639171234567", employee.Phone)
}

func TestCreateEmployee_UnknownRoleRejected(t *testing.T) {
	svc := newTestStaff(t, &mockEmployeeRepo{})

	err := svc.Create(context.Background(), &model.Employee{
		Name:      "Maria Santos",
		Role:      "astronaut",
		DailyRate: 800,
	})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestUpdateEmployee_MergesAndRevalidates(t *testing.T) {
	repo := &mockEmployeeRepo{employee: &model.Employee{
		ID:        testEmployeeID,
		Name:      "Maria Santos",
		Role:      "cook",
		DailyRate: 800,
		Active:    true,
	}}
	svc := newTestStaff(t, repo)

	newRate := 950.0
	inactive := false
	err := svc.Update(context.Background(), testEmployeeID, &model.EmployeeUpdate{
		Role:      "coordinator",
		DailyRate: &newRate,
		Active:    &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "coordinator", repo.employee.Role)
	assert.Equal(t, 950.0, repo.employee.DailyRate)
	assert.False(t, repo.employee.Active)
}

func TestGetEmployee_NotFound(t *testing.T) {
	svc := newTestStaff(t, &mockEmployeeRepo{})

	_, err := svc.GetByID(context.Background(), testEmployeeID)
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestGetAllEmployees_RoleFilter(t *testing.T) {
	repo := &mockEmployeeRepo{employee: &model.Employee{
		ID: testEmployeeID, Name: "Maria Santos", Role: "cook", DailyRate: 800,
	}}
	svc := newTestStaff(t, repo)

	cooks, total, err := svc.GetAll(context.Background(), "cook", 10, 0)
	require.NoError(t, err)
	assert.Len(t, cooks, 1)
	assert.Equal(t, int64(1), total)

	drivers, total, err := svc.GetAll(context.Background(), "driver", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, drivers)
	assert.Zero(t, total)
}
