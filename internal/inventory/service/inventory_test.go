package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inverrors "bukid/internal/inventory/errors"
	"bukid/internal/inventory/validator"
	"bukid/pkg/config"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

const (
	testItemID     = "64f1b2a3c4d5e6f7a8b9c0e1"
	testBookingID  = "64f1b2a3c4d5e6f7a8b9c0e2"
	testPavilionID = "64f1b2a3c4d5e6f7a8b9c0e3"
)

type mockItemRepo struct {
	item *model.InventoryItem
}

func (m *mockItemRepo) Create(ctx context.Context, item *model.InventoryItem) error {
	item.ID = testItemID
	return nil
}

func (m *mockItemRepo) FindByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	if m.item == nil {
		return nil, inverrors.ErrItemNotFound
	}
	return m.item, nil
}

func (m *mockItemRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.InventoryItem, error) {
	return []*model.InventoryItem{m.item}, nil
}

func (m *mockItemRepo) Count(ctx context.Context) (int64, error) { return 1, nil }

func (m *mockItemRepo) Update(ctx context.Context, id string, item *model.InventoryItem) error {
	m.item = item
	return nil
}

func (m *mockItemRepo) Delete(ctx context.Context, id string) error { return nil }

type mockReservationRepo struct {
	reservations []*model.InventoryReservation
	synced       map[string]model.BookingStatus
}

func (m *mockReservationRepo) Create(ctx context.Context, reservation *model.InventoryReservation) error {
	reservation.ID = "64f1b2a3c4d5e6f7a8b9c0ff"
	m.reservations = append(m.reservations, reservation)
	return nil
}

// FindOverlapping mirrors the Mongo filter: inclusive day overlap, terminal
// snapshots excluded.
func (m *mockReservationRepo) FindOverlapping(ctx context.Context, itemID string, from, to time.Time) ([]*model.InventoryReservation, error) {
	var out []*model.InventoryReservation
	for _, res := range m.reservations {
		if res.ItemID != itemID || res.BookingStatus.IsTerminal() {
			continue
		}
		if !res.StartAt.After(to) && !res.EndAt.Before(from) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (m *mockReservationRepo) FindByBooking(ctx context.Context, bookingID string) ([]*model.InventoryReservation, error) {
	return m.reservations, nil
}

func (m *mockReservationRepo) UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) (int64, error) {
	if m.synced == nil {
		m.synced = map[string]model.BookingStatus{}
	}
	m.synced[bookingID] = status
	var n int64
	for _, res := range m.reservations {
		if res.BookingID == bookingID {
			res.BookingStatus = status
			n++
		}
	}
	return n, nil
}

func (m *mockReservationRepo) Delete(ctx context.Context, id string) error { return nil }

func inventoryConfig(t *testing.T) *config.Config {
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

func newTestInventory(t *testing.T, items *mockItemRepo, reservations *mockReservationRepo) InventoryService {
	t.Helper()
	cfg := inventoryConfig(t)
	return NewInventoryService(items, reservations, validator.NewInventoryValidator(cfg.Log), cfg)
}

func chairPool(total, reservedOut, threshold int) *model.InventoryItem {
	return &model.InventoryItem{
		ID:                testItemID,
		Name:              "Tiffany Chairs",
		Category:          "furniture",
		TotalQuantity:     total,
		ReservedOut:       reservedOut,
		LowStockThreshold: threshold,
	}
}

func reservation(bookingID string, qty int, start, end time.Time, status model.BookingStatus) *model.InventoryReservation {
	return &model.InventoryReservation{
		ItemID:        testItemID,
		BookingID:     bookingID,
		PavilionID:    testPavilionID,
		EventName:     "Cruz Wedding",
		Quantity:      qty,
		StartAt:       start,
		EndAt:         end,
		BookingStatus: status,
	}
}

func TestCheckAvailability_NonOverlappingReservationsDoNotReduceStock(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	items := &mockItemRepo{item: chairPool(100, 0, 0)}
	reservations := &mockReservationRepo{reservations: []*model.InventoryReservation{
		reservation(testBookingID, 60, day(1), day(2), model.StatusConfirmed),
	}}
	svc := newTestInventory(t, items, reservations)

	report, err := svc.CheckAvailability(context.Background(), testItemID, 80, day(10), day(11))
	require.NoError(t, err)

	assert.Equal(t, 100, report.Available)
	assert.Zero(t, report.OverlappingQty)
	assert.Empty(t, report.Warnings)
}

func TestCheckAvailability_SharedDaySumsReservations(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	items := &mockItemRepo{item: chairPool(100, 0, 0)}
	reservations := &mockReservationRepo{reservations: []*model.InventoryReservation{
		reservation("b1", 40, day(1), day(3), model.StatusConfirmed),
		reservation("b2", 30, day(3), day(5), model.StatusPending),
	}}
	svc := newTestInventory(t, items, reservations)

	// Both reservations touch June 3.
	report, err := svc.CheckAvailability(context.Background(), testItemID, 50, day(3), day(3))
	require.NoError(t, err)

	assert.Equal(t, 70, report.OverlappingQty)
	assert.Equal(t, 30, report.Available)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "insufficient stock")
	assert.Len(t, report.Conflicts, 2, "each holder is named")
}

func TestCheckAvailability_TerminalSnapshotsFreeStock(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	items := &mockItemRepo{item: chairPool(100, 0, 0)}
	reservations := &mockReservationRepo{reservations: []*model.InventoryReservation{
		reservation("cancelled", 90, day(3), day(4), model.StatusCancelled),
		reservation("archived", 90, day(3), day(4), model.StatusArchived),
	}}
	svc := newTestInventory(t, items, reservations)

	report, err := svc.CheckAvailability(context.Background(), testItemID, 100, day(3), day(4))
	require.NoError(t, err)

	assert.Equal(t, 100, report.Available)
	assert.Empty(t, report.Warnings)
}

func TestCheckAvailability_ReservedOutAndLowStock(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	items := &mockItemRepo{item: chairPool(100, 20, 10)}
	svc := newTestInventory(t, items, &mockReservationRepo{})

	report, err := svc.CheckAvailability(context.Background(), testItemID, 75, day(1), day(1))
	require.NoError(t, err)

	assert.Equal(t, 80, report.Available, "signed-out units never count as available")
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "low stock")
	assert.Empty(t, report.Conflicts)
}

func TestReserve_ShortfallWarnsButNeverBlocks(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	items := &mockItemRepo{item: chairPool(50, 0, 0)}
	reservations := &mockReservationRepo{reservations: []*model.InventoryReservation{
		reservation("b1", 50, day(1), day(2), model.StatusConfirmed),
	}}
	svc := newTestInventory(t, items, reservations)

	res := reservation(testBookingID, 20, day(2), day(2), model.StatusPending)
	report, err := svc.Reserve(context.Background(), res)
	require.NoError(t, err, "a shortfall is advisory, the reservation still lands")

	assert.NotEmpty(t, res.ID)
	assert.NotEmpty(t, report.Warnings)
	assert.Len(t, reservations.reservations, 2)
}

func TestSyncBookingStatus_UpdatesSnapshots(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	items := &mockItemRepo{item: chairPool(100, 0, 0)}
	reservations := &mockReservationRepo{reservations: []*model.InventoryReservation{
		reservation(testBookingID, 60, day(1), day(2), model.StatusConfirmed),
	}}
	svc := newTestInventory(t, items, reservations)

	err := svc.SyncBookingStatus(context.Background(), testBookingID, model.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, reservations.reservations[0].BookingStatus)

	// The freed stock is visible to the next availability check.
	report, err := svc.CheckAvailability(context.Background(), testItemID, 100, day(1), day(2))
	require.NoError(t, err)
	assert.Equal(t, 100, report.Available)
}
