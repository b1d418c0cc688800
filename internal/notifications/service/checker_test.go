package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notiferrors "bukid/internal/notifications/errors"
	"bukid/pkg/config"
	"bukid/pkg/kafka"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

type mockBookingSource struct {
	byStatus map[model.BookingStatus][]*model.Booking
}

func (m *mockBookingSource) FindByStatusWithBalance(ctx context.Context, statuses []model.BookingStatus) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, s := range statuses {
		out = append(out, m.byStatus[s]...)
	}
	return out, nil
}

type mockNotificationRepo struct {
	created   []*model.Notification
	createErr map[string]error // keyed by booking_id:type
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	if err, ok := m.createErr[n.BookingID+":"+string(n.Type)]; ok {
		return err
	}
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepo) FindAll(ctx context.Context, unreadOnly bool, limit int, offset int64) ([]*model.Notification, error) {
	return m.created, nil
}

func (m *mockNotificationRepo) Count(ctx context.Context, unreadOnly bool) (int64, error) {
	return int64(len(m.created)), nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id string) error { return nil }

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockNotificationRepo) Delete(ctx context.Context, id string) error { return nil }

type mockScheduleRepo struct {
	schedules map[string]*model.NotificationSchedule
	recorded  []model.NotificationEntry
}

func (m *mockScheduleRepo) Find(ctx context.Context, bookingID string) (*model.NotificationSchedule, error) {
	return m.schedules[bookingID], nil
}

func (m *mockScheduleRepo) RecordSent(ctx context.Context, bookingID string, entry model.NotificationEntry) error {
	m.recorded = append(m.recorded, entry)
	return nil
}

type mockGuard struct {
	denied   bool
	err      error
	keys     []string
	held     map[string]bool
	released []string
}

func (m *mockGuard) Acquire(ctx context.Context, key string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.denied || m.held[key] {
		return false, nil
	}
	if m.held == nil {
		m.held = map[string]bool{}
	}
	m.held[key] = true
	m.keys = append(m.keys, key)
	return true, nil
}

func (m *mockGuard) Release(ctx context.Context, key string) error {
	delete(m.held, key)
	m.released = append(m.released, key)
	return nil
}

func checkerConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		Location:            time.UTC,
		ReadTimeout:         5 * time.Second,
		WriteTimeout:        5 * time.Second,
		UnpaidReminderEvery: 72 * time.Hour,
	}
}

func upcomingBooking(id string, daysOut int, now time.Time) *model.Booking {
	start := now.AddDate(0, 0, daysOut)
	return &model.Booking{
		ID:            id,
		EventName:     "Garcia Birthday",
		StartAt:       start,
		EndAt:         start.Add(6 * time.Hour),
		Status:        model.StatusPending,
		OriginalPrice: 80000,
		Balance:       80000,
	}
}

func TestCheckPaymentAlerts_MostUrgentCrossedTierFires(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		daysOut  int
		wantType model.NotificationType
	}{
		{7, model.NotificationPayment1Week},
		{5, model.NotificationPayment1Week},
		{3, model.NotificationPayment3Days},
		{2, model.NotificationPayment3Days},
		{1, model.NotificationPayment1Day},
		{0, model.NotificationPayment1Day},
	}

	for _, tc := range cases {
		source := &mockBookingSource{byStatus: map[model.BookingStatus][]*model.Booking{
			model.StatusPending: {upcomingBooking("b1", tc.daysOut, now)},
		}}
		notifs := &mockNotificationRepo{}
		checker := NewChecker(source, notifs, &mockScheduleRepo{}, nil, checkerConfig(t))

		fired, err := checker.CheckPaymentAlerts(context.Background(), now)
		require.NoError(t, err)
		require.Equal(t, 1, fired, "days_out=%d", tc.daysOut)
		require.Len(t, notifs.created, 1)
		assert.Equal(t, tc.wantType, notifs.created[0].Type, "days_out=%d", tc.daysOut)
	}
}

func TestCheckPaymentAlerts_FarOutAndStartedBookingsSkipped(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	source := &mockBookingSource{byStatus: map[model.BookingStatus][]*model.Booking{
		model.StatusPending:   {upcomingBooking("far", 10, now)},
		model.StatusConfirmed: {upcomingBooking("started", -1, now)},
	}}
	notifs := &mockNotificationRepo{}
	checker := NewChecker(source, notifs, &mockScheduleRepo{}, nil, checkerConfig(t))

	fired, err := checker.CheckPaymentAlerts(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, fired)
	assert.Empty(t, notifs.created)
}

func TestCheckPaymentAlerts_UniqueIndexMakesRepeatScansNoOps(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	source := &mockBookingSource{byStatus: map[model.BookingStatus][]*model.Booking{
		model.StatusPending: {upcomingBooking("b1", 3, now)},
	}}
	notifs := &mockNotificationRepo{createErr: map[string]error{
		"b1:payment_3days": notiferrors.ErrAlreadyFired,
	}}
	checker := NewChecker(source, notifs, &mockScheduleRepo{}, nil, checkerConfig(t))

	fired, err := checker.CheckPaymentAlerts(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, fired)
	assert.Empty(t, notifs.created)
}

func TestCheckPaymentAlerts_GuardSuppressesConcurrentReplicas(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	source := &mockBookingSource{byStatus: map[model.BookingStatus][]*model.Booking{
		model.StatusPending: {upcomingBooking("b1", 1, now)},
	}}
	notifs := &mockNotificationRepo{}
	guard := &mockGuard{denied: true}
	checker := NewChecker(source, notifs, &mockScheduleRepo{}, guard, checkerConfig(t))

	fired, err := checker.CheckPaymentAlerts(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, fired)
	assert.Empty(t, notifs.created, "denied guard must prevent the insert")
}

func TestCheckPaymentAlerts_GuardOutageFallsBackToUniqueIndex(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	source := &mockBookingSource{byStatus: map[model.BookingStatus][]*model.Booking{
		model.StatusPending: {upcomingBooking("b1", 1, now)},
	}}
	notifs := &mockNotificationRepo{}
	guard := &mockGuard{err: errors.New("connection refused")}
	checker := NewChecker(source, notifs, &mockScheduleRepo{}, guard, checkerConfig(t))

	fired, err := checker.CheckPaymentAlerts(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, fired, "a guard outage must not stop notifications")
}

func TestCheckPaymentAlerts_InsertFailureReleasesGuardKey(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	source := &mockBookingSource{byStatus: map[model.BookingStatus][]*model.Booking{
		model.StatusPending: {upcomingBooking("b1", 1, now)},
	}}
	notifs := &mockNotificationRepo{createErr: map[string]error{
		"b1:payment_1day": errors.New("server selection timeout"),
	}}
	guard := &mockGuard{}
	checker := NewChecker(source, notifs, &mockScheduleRepo{}, guard, checkerConfig(t))

	fired, err := checker.CheckPaymentAlerts(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, fired)
	assert.Equal(t, []string{"notif:b1:payment_1day"}, guard.released,
		"a failed insert must give the guard key back")

	// Mongo recovers; the next scan must not be locked out until the TTL.
	delete(notifs.createErr, "b1:payment_1day")

	fired, err = checker.CheckPaymentAlerts(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, fired)
	require.Len(t, notifs.created, 1)
	assert.Equal(t, model.NotificationPayment1Day, notifs.created[0].Type)
}

func TestCheckUnpaidReminders_CadenceRespected(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	unpaid := func(id string) *model.Booking {
		b := upcomingBooking(id, -5, now)
		b.Status = model.StatusUnpaid
		b.Balance = 15000
		return b
	}

	source := &mockBookingSource{byStatus: map[model.BookingStatus][]*model.Booking{
		model.StatusUnpaid: {unpaid("never"), unpaid("recent"), unpaid("due")},
	}}
	schedules := &mockScheduleRepo{schedules: map[string]*model.NotificationSchedule{
		"recent": {BookingID: "recent", LastNotificationSent: now.Add(-24 * time.Hour)},
		"due":    {BookingID: "due", LastNotificationSent: now.Add(-80 * time.Hour)},
	}}
	notifs := &mockNotificationRepo{}
	checker := NewChecker(source, notifs, schedules, nil, checkerConfig(t))

	fired, err := checker.CheckUnpaidReminders(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, fired, "no-schedule and past-cadence bookings fire; recent one waits")
	require.Len(t, notifs.created, 2)
	assert.Equal(t, "never", notifs.created[0].BookingID)
	assert.Equal(t, "due", notifs.created[1].BookingID)
	assert.Len(t, schedules.recorded, 2, "cadence anchor advanced for each reminder")
	for _, entry := range schedules.recorded {
		assert.Equal(t, model.NotificationUnpaidReminder, entry.Type)
		assert.Equal(t, now, entry.SentAt)
	}
}

func TestHandleBookingCreated_DuplicateDeliveryIsIdempotent(t *testing.T) {
	notifs := &mockNotificationRepo{createErr: map[string]error{
		"b1:new_booking": notiferrors.ErrAlreadyFired,
	}}
	checker := NewChecker(&mockBookingSource{}, notifs, &mockScheduleRepo{}, nil, checkerConfig(t))

	err := checker.HandleBookingCreated(context.Background(), kafka.BookingCreatedEvent{
		BookingID:  "b1",
		EventName:  "Lim Corporate Night",
		ClientName: "Carlos Lim",
		StartAt:    time.Now().AddDate(0, 0, 14),
	})
	assert.NoError(t, err, "redelivered booking.created must be a no-op")
}

func TestHandleBookingCreated_CreatesBellEntry(t *testing.T) {
	notifs := &mockNotificationRepo{}
	checker := NewChecker(&mockBookingSource{}, notifs, &mockScheduleRepo{}, nil, checkerConfig(t))

	err := checker.HandleBookingCreated(context.Background(), kafka.BookingCreatedEvent{
		BookingID:  "b2",
		EventName:  "Tan Anniversary",
		ClientName: "Grace Tan",
		StartAt:    time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	require.Len(t, notifs.created, 1)
	assert.Equal(t, model.NotificationNewBooking, notifs.created[0].Type)
	assert.True(t, notifs.created[0].Triggered)
}
