package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "bukid/internal/bookings/errors"
	"bukid/internal/bookings/validator"
	"bukid/pkg/config"
	mongotx "bukid/pkg/db/mongo"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/kafka"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

const (
	testBookingID  = "64f1b2a3c4d5e6f7a8b9c0d1"
	testPavilionID = "64f1b2a3c4d5e6f7a8b9c0d2"
)

type mockBookingRepository struct {
	createFunc         func(ctx context.Context, booking *model.Booking) error
	findByIDFunc       func(ctx context.Context, id string) (*model.Booking, error)
	findAllFunc        func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	countFunc          func(ctx context.Context) (int64, error)
	updateFunc         func(ctx context.Context, id string, booking *model.Booking) (*mongo.UpdateResult, error)
	updateStatusFunc   func(ctx context.Context, id string, from, to model.BookingStatus) error
	applyPaymentFunc   func(ctx context.Context, id string, amount float64) (*model.Booking, error)
	applyDiscountFunc  func(ctx context.Context, id string, amount float64) (*model.Booking, error)
	deleteFunc         func(ctx context.Context, id string) error
	findByRangeFunc    func(ctx context.Context, pavilionID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, error)
	countByRangeFunc   func(ctx context.Context, pavilionID string, from, to *time.Time) (int64, error)
	findNonTerminal    func(ctx context.Context) ([]*model.Booking, error)
	findByStatusFunc   func(ctx context.Context, statuses []model.BookingStatus) ([]*model.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = testBookingID
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, id string, booking *model.Booking) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, booking)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, from, to)
	}
	return nil
}

func (m *mockBookingRepository) ApplyPayment(ctx context.Context, id string, amount float64) (*model.Booking, error) {
	if m.applyPaymentFunc != nil {
		return m.applyPaymentFunc(ctx, id, amount)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) ApplyDiscount(ctx context.Context, id string, amount float64) (*model.Booking, error) {
	if m.applyDiscountFunc != nil {
		return m.applyDiscountFunc(ctx, id, amount)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingRepository) FindByPavilionAndRange(ctx context.Context, pavilionID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, error) {
	if m.findByRangeFunc != nil {
		return m.findByRangeFunc(ctx, pavilionID, from, to, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountByPavilionAndRange(ctx context.Context, pavilionID string, from, to *time.Time) (int64, error) {
	if m.countByRangeFunc != nil {
		return m.countByRangeFunc(ctx, pavilionID, from, to)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindNonTerminal(ctx context.Context) ([]*model.Booking, error) {
	if m.findNonTerminal != nil {
		return m.findNonTerminal(ctx)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByStatusWithBalance(ctx context.Context, statuses []model.BookingStatus) ([]*model.Booking, error) {
	if m.findByStatusFunc != nil {
		return m.findByStatusFunc(ctx, statuses)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	// Unit tests run the transaction body directly against the mock.
	return fn(nil)
}

type mockLockRepository struct {
	createFunc func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	deleted    []string
}

func (m *mockLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

type mockPublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, msg)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		Location:       time.UTC,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		BookingLockTTL: 30 * time.Second,
	}
}

func newTestService(t *testing.T, repo *mockBookingRepository, locks *mockLockRepository, pub EventPublisher) *bookingService {
	t.Helper()
	cfg := testConfig(t)
	return &bookingService{
		repo:      repo,
		lockRepo:  locks,
		validator: validator.NewBookingValidator(cfg.Log),
		publisher: pub,
		cfg:       cfg,
	}
}

func futureBooking() *model.Booking {
	start := time.Now().AddDate(0, 1, 0)
	return &model.Booking{
		EventName:     "Reyes Wedding",
		Client:        model.Client{Name: "Maria Reyes", Phone: "+639171234567"},
		PavilionID:    testPavilionID,
		StartAt:       start,
		EndAt:         start.Add(8 * time.Hour),
		GuestCount:    150,
		OriginalPrice: 120000,
	}
}

func TestCreate_AppliesDefaultsAndPublishes(t *testing.T) {
	repo := &mockBookingRepository{}
	locks := &mockLockRepository{}
	pub := &mockPublisher{}
	svc := newTestService(t, repo, locks, pub)

	booking := futureBooking()
	err := svc.Create(context.Background(), booking)
	require.NoError(t, err)

	assert.Equal(t, testBookingID, booking.ID)
	assert.Equal(t, booking.OriginalPrice, booking.Balance, "omitted balance defaults to full price")
	assert.Equal(t, model.StatusPending, booking.Status)

	require.Len(t, pub.published, 1)
	assert.Equal(t, kafka.EventBookingCreated, pub.published[0].GetEventType())
	assert.Equal(t, testBookingID, pub.published[0].Key)

	require.Len(t, locks.deleted, 1, "slot lock released after create")
}

func TestCreate_PavilionOverlapConflicts(t *testing.T) {
	existing := futureBooking()
	existing.ID = "64f1b2a3c4d5e6f7a8b9c0ff"
	existing.EventName = "Santos Debut"

	repo := &mockBookingRepository{
		findByRangeFunc: func(ctx context.Context, pavilionID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, error) {
			return []*model.Booking{existing}, nil
		},
	}
	locks := &mockLockRepository{}
	pub := &mockPublisher{}
	svc := newTestService(t, repo, locks, pub)

	err := svc.Create(context.Background(), futureBooking())
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Empty(t, pub.published)
	assert.Len(t, locks.deleted, 1, "lock released even on conflict")
}

func TestCreate_LockHeldElsewhere(t *testing.T) {
	locks := &mockLockRepository{
		createFunc: func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		},
	}
	svc := newTestService(t, &mockBookingRepository{}, locks, nil)

	err := svc.Create(context.Background(), futureBooking())
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestRecordPayment_FullPaymentConfirms(t *testing.T) {
	paid := futureBooking()
	paid.ID = testBookingID
	paid.Status = model.StatusPending
	paid.Balance = 0

	var transition *model.StatusChange
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			pending := futureBooking()
			pending.ID = testBookingID
			pending.Status = model.StatusPending
			pending.Balance = pending.OriginalPrice
			return pending, nil
		},
		applyPaymentFunc: func(ctx context.Context, id string, amount float64) (*model.Booking, error) {
			return paid, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, from, to model.BookingStatus) error {
			transition = &model.StatusChange{BookingID: id, From: from, To: to}
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(t, repo, &mockLockRepository{}, pub)

	result, err := svc.RecordPayment(context.Background(), testBookingID, &model.Payment{Amount: 120000, Method: "gcash"})
	require.NoError(t, err)

	assert.Equal(t, model.StatusConfirmed, result.Status)
	require.NotNil(t, transition)
	assert.Equal(t, model.StatusPending, transition.From)
	assert.Equal(t, model.StatusConfirmed, transition.To)

	require.Len(t, pub.published, 1)
	assert.Equal(t, kafka.EventBookingStatusChanged, pub.published[0].GetEventType())
}

func TestRecordPayment_OverpaymentRejected(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := futureBooking()
			b.ID = testBookingID
			b.Status = model.StatusConfirmed
			b.Balance = 1000
			return b, nil
		},
		applyPaymentFunc: func(ctx context.Context, id string, amount float64) (*model.Booking, error) {
			return nil, bookingserrors.ErrOverpayment
		},
	}
	svc := newTestService(t, repo, &mockLockRepository{}, nil)

	_, err := svc.RecordPayment(context.Background(), testBookingID, &model.Payment{Amount: 5000})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestRecordPayment_TerminalBookingRejected(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := futureBooking()
			b.ID = testBookingID
			b.Status = model.StatusCancelled
			return b, nil
		},
	}
	svc := newTestService(t, repo, &mockLockRepository{}, nil)

	_, err := svc.RecordPayment(context.Background(), testBookingID, &model.Payment{Amount: 100})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsAppError(err).Code)
}

func TestCancel_TerminalRejected(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := futureBooking()
			b.ID = testBookingID
			b.Status = model.StatusArchived
			return b, nil
		},
	}
	svc := newTestService(t, repo, &mockLockRepository{}, nil)

	err := svc.Cancel(context.Background(), testBookingID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsAppError(err).Code)
}

func TestRefreshStatuses_PersistsOnlyChanges(t *testing.T) {
	now := time.Now()

	past := futureBooking()
	past.ID = "64f1b2a3c4d5e6f7a8b9c0a1"
	past.StartAt = now.AddDate(0, 0, -2)
	past.EndAt = now.AddDate(0, 0, -2).Add(6 * time.Hour)
	past.Status = model.StatusConfirmed
	past.Balance = 5000 // still owes money, should go Unpaid

	current := futureBooking()
	current.ID = "64f1b2a3c4d5e6f7a8b9c0a2"
	current.StartAt = now.Add(-time.Hour)
	current.EndAt = now.Add(5 * time.Hour)
	current.Status = model.StatusInProgress // already correct

	upcoming := futureBooking()
	upcoming.ID = "64f1b2a3c4d5e6f7a8b9c0a3"
	upcoming.Status = model.StatusPending
	upcoming.Balance = 20000 // partial payment, should go Confirmed

	var transitions []model.StatusChange
	repo := &mockBookingRepository{
		findNonTerminal: func(ctx context.Context) ([]*model.Booking, error) {
			return []*model.Booking{past, current, upcoming}, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, from, to model.BookingStatus) error {
			transitions = append(transitions, model.StatusChange{BookingID: id, From: from, To: to})
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(t, repo, &mockLockRepository{}, pub)

	changes, err := svc.RefreshStatuses(context.Background())
	require.NoError(t, err)

	require.Len(t, changes, 2)
	assert.Equal(t, transitions, []model.StatusChange{
		{BookingID: past.ID, From: model.StatusConfirmed, To: model.StatusUnpaid},
		{BookingID: upcoming.ID, From: model.StatusPending, To: model.StatusConfirmed},
	})
	assert.Len(t, pub.published, 2)
}

func TestRefreshStatuses_SkipsLostRaces(t *testing.T) {
	now := time.Now()
	b := futureBooking()
	b.ID = testBookingID
	b.StartAt = now.AddDate(0, 0, -1)
	b.EndAt = now.AddDate(0, 0, -1).Add(4 * time.Hour)
	b.Status = model.StatusConfirmed
	b.Balance = 0

	repo := &mockBookingRepository{
		findNonTerminal: func(ctx context.Context) ([]*model.Booking, error) {
			return []*model.Booking{b}, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, from, to model.BookingStatus) error {
			return bookingserrors.ErrInvalidTransition
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(t, repo, &mockLockRepository{}, pub)

	changes, err := svc.RefreshStatuses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Empty(t, pub.published)
}

func TestUpdate_TerminalBookingRejected(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := futureBooking()
			b.ID = testBookingID
			b.Status = model.StatusCancelled
			return b, nil
		},
	}
	svc := newTestService(t, repo, &mockLockRepository{}, nil)

	notes := "new notes"
	err := svc.Update(context.Background(), testBookingID, &model.BookingUpdate{Notes: &notes})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsAppError(err).Code)
}

func TestGetAll_ConcurrentCountAndFind(t *testing.T) {
	repo := &mockBookingRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			time.Sleep(5 * time.Millisecond)
			return 42, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
			time.Sleep(5 * time.Millisecond)
			return []*model.Booking{futureBooking()}, nil
		},
	}
	svc := newTestService(t, repo, &mockLockRepository{}, nil)

	for i := 0; i < 10; i++ {
		bookings, count, err := svc.GetAll(context.Background(), 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 42, count)
		assert.Len(t, bookings, 1)
	}
}
