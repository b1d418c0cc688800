package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	discounterrors "bukid/internal/discounts/errors"
	"bukid/internal/discounts/validator"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

const (
	testDiscountID = "64f1b2a3c4d5e6f7a8b9c0c1"
	testBookingID  = "64f1b2a3c4d5e6f7a8b9c0c2"
)

type mockDiscountRepo struct {
	discount *model.Discount
	reviewed []struct {
		to         model.DiscountStatus
		reviewedBy string
		amount     float64
	}
}

func (m *mockDiscountRepo) Create(ctx context.Context, discount *model.Discount) error {
	discount.ID = testDiscountID
	m.discount = discount
	return nil
}

func (m *mockDiscountRepo) FindByID(ctx context.Context, id string) (*model.Discount, error) {
	if m.discount == nil {
		return nil, discounterrors.ErrNotFound
	}
	return m.discount, nil
}

func (m *mockDiscountRepo) FindAll(ctx context.Context, status model.DiscountStatus, limit int, offset int64) ([]*model.Discount, error) {
	if m.discount == nil {
		return nil, nil
	}
	return []*model.Discount{m.discount}, nil
}

func (m *mockDiscountRepo) Count(ctx context.Context, status model.DiscountStatus) (int64, error) {
	return 1, nil
}

func (m *mockDiscountRepo) Review(ctx context.Context, id string, to model.DiscountStatus, reviewedBy string, amount float64) error {
	if m.discount == nil {
		return discounterrors.ErrNotFound
	}
	if m.discount.Status != model.DiscountPending {
		return discounterrors.ErrNotPending
	}
	m.discount.Status = to
	m.discount.ReviewedBy = reviewedBy
	m.discount.Amount = amount
	m.reviewed = append(m.reviewed, struct {
		to         model.DiscountStatus
		reviewedBy string
		amount     float64
	}{to, reviewedBy, amount})
	return nil
}

func (m *mockDiscountRepo) Delete(ctx context.Context, id string) error { return nil }

type mockBookingGateway struct {
	booking    *model.Booking
	applyErr   error
	applied    []float64
	appliedIDs []string
}

func (m *mockBookingGateway) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.booking == nil {
		return nil, errors.New("bookings service returned 404")
	}
	return m.booking, nil
}

func (m *mockBookingGateway) ApplyDiscount(ctx context.Context, id string, amount float64) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	m.applied = append(m.applied, amount)
	m.appliedIDs = append(m.appliedIDs, id)
	return nil
}

func discountConfig(t *testing.T) *config.Config {
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

func newTestDiscounts(t *testing.T, repo *mockDiscountRepo, gateway *mockBookingGateway) DiscountService {
	t.Helper()
	cfg := discountConfig(t)
	return NewDiscountService(repo, gateway, validator.NewDiscountValidator(cfg.Log), cfg)
}

func pendingRequest(amount float64) *model.Discount {
	return &model.Discount{
		ID:          testDiscountID,
		BookingID:   testBookingID,
		RequestedBy: "Ana Reyes",
		Amount:      amount,
		Reason:      "Repeat client, booked three events this year",
		Status:      model.DiscountPending,
	}
}

func unpaidBooking(balance float64) *model.Booking {
	return &model.Booking{
		ID:      testBookingID,
		Balance: balance,
	}
}

func TestCreateDiscount_ForcesPendingStatus(t *testing.T) {
	repo := &mockDiscountRepo{}
	gateway := &mockBookingGateway{booking: unpaidBooking(50000)}
	svc := newTestDiscounts(t, repo, gateway)

	discount := &model.Discount{
		BookingID:   testBookingID,
		RequestedBy: "Ana Reyes",
		Amount:      5000,
		Reason:      "Repeat client, booked three events this year",
		Status:      model.DiscountApproved, // client cannot pre-approve
		ReviewedBy:  "Ana Reyes",
	}
	err := svc.Create(context.Background(), discount)
	require.NoError(t, err)

	assert.Equal(t, model.DiscountPending, discount.Status)
	assert.Empty(t, discount.ReviewedBy)
	assert.Nil(t, discount.ReviewedAt)
}

func TestCreateDiscount_ExceedingBalanceRejected(t *testing.T) {
	repo := &mockDiscountRepo{}
	gateway := &mockBookingGateway{booking: unpaidBooking(3000)}
	svc := newTestDiscounts(t, repo, gateway)

	err := svc.Create(context.Background(), &model.Discount{
		BookingID:   testBookingID,
		RequestedBy: "Ana Reyes",
		Amount:      5000,
		Reason:      "Repeat client, booked three events this year",
	})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Nil(t, repo.discount)
}

func TestCreateDiscount_UnknownBookingRejected(t *testing.T) {
	svc := newTestDiscounts(t, &mockDiscountRepo{}, &mockBookingGateway{})

	err := svc.Create(context.Background(), &model.Discount{
		BookingID:   testBookingID,
		RequestedBy: "Ana Reyes",
		Amount:      5000,
		Reason:      "Repeat client, booked three events this year",
	})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestApprove_SettlesAgainstBooking(t *testing.T) {
	repo := &mockDiscountRepo{discount: pendingRequest(5000)}
	gateway := &mockBookingGateway{booking: unpaidBooking(50000)}
	svc := newTestDiscounts(t, repo, gateway)

	err := svc.Approve(context.Background(), testDiscountID, &model.DiscountReview{ReviewedBy: "Rufino Cruz"})
	require.NoError(t, err)

	assert.Equal(t, model.DiscountApproved, repo.discount.Status)
	assert.Equal(t, "Rufino Cruz", repo.discount.ReviewedBy)
	assert.Equal(t, []float64{5000}, gateway.applied)
	assert.Equal(t, []string{testBookingID}, gateway.appliedIDs)
}

func TestReject_DoesNotTouchBooking(t *testing.T) {
	repo := &mockDiscountRepo{discount: pendingRequest(5000)}
	gateway := &mockBookingGateway{booking: unpaidBooking(50000)}
	svc := newTestDiscounts(t, repo, gateway)

	err := svc.Reject(context.Background(), testDiscountID, &model.DiscountReview{ReviewedBy: "Rufino Cruz"})
	require.NoError(t, err)

	assert.Equal(t, model.DiscountRejected, repo.discount.Status)
	assert.Empty(t, gateway.applied)
}

func TestModify_SettlesReviewerAmount(t *testing.T) {
	repo := &mockDiscountRepo{discount: pendingRequest(5000)}
	gateway := &mockBookingGateway{booking: unpaidBooking(50000)}
	svc := newTestDiscounts(t, repo, gateway)

	err := svc.Modify(context.Background(), testDiscountID, &model.DiscountReview{
		ReviewedBy: "Rufino Cruz",
		Amount:     2500,
	})
	require.NoError(t, err)

	assert.Equal(t, model.DiscountModified, repo.discount.Status)
	assert.Equal(t, 2500.0, repo.discount.Amount)
	assert.Equal(t, []float64{2500}, gateway.applied)
}

func TestModify_RequiresAmount(t *testing.T) {
	repo := &mockDiscountRepo{discount: pendingRequest(5000)}
	svc := newTestDiscounts(t, repo, &mockBookingGateway{})

	err := svc.Modify(context.Background(), testDiscountID, &model.DiscountReview{ReviewedBy: "Rufino Cruz"})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
	assert.Equal(t, model.DiscountPending, repo.discount.Status)
}

func TestReview_OnlyPendingRequests(t *testing.T) {
	reviewed := pendingRequest(5000)
	reviewed.Status = model.DiscountRejected
	repo := &mockDiscountRepo{discount: reviewed}
	gateway := &mockBookingGateway{booking: unpaidBooking(50000)}
	svc := newTestDiscounts(t, repo, gateway)

	err := svc.Approve(context.Background(), testDiscountID, &model.DiscountReview{ReviewedBy: "Rufino Cruz"})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Empty(t, gateway.applied)
}

func TestApprove_SettlementFailureSurfaces(t *testing.T) {
	repo := &mockDiscountRepo{discount: pendingRequest(5000)}
	gateway := &mockBookingGateway{
		booking:  unpaidBooking(50000),
		applyErr: errors.New("bookings service unavailable"),
	}
	svc := newTestDiscounts(t, repo, gateway)

	err := svc.Approve(context.Background(), testDiscountID, &model.DiscountReview{ReviewedBy: "Rufino Cruz"})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeInternal, appErr.Code)
}
