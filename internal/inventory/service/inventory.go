package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	inverrors "bukid/internal/inventory/errors"
	"bukid/internal/inventory/repository"
	"bukid/internal/inventory/validator"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/model"
	"bukid/pkg/sanitizer"
)

type InventoryService interface {
	CreateItem(ctx context.Context, item *model.InventoryItem) error
	GetItem(ctx context.Context, id string) (*model.InventoryItem, error)
	GetAllItems(ctx context.Context, limit int, offset int64) ([]*model.InventoryItem, int64, error)
	UpdateItem(ctx context.Context, id string, updates *model.InventoryItemUpdate) error
	DeleteItem(ctx context.Context, id string) error
	Reserve(ctx context.Context, reservation *model.InventoryReservation) (*model.AvailabilityReport, error)
	Release(ctx context.Context, reservationID string) error
	GetReservationsForBooking(ctx context.Context, bookingID string) ([]*model.InventoryReservation, error)
	CheckAvailability(ctx context.Context, itemID string, quantity int, from, to time.Time) (*model.AvailabilityReport, error)
	SyncBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) error
}

type inventoryService struct {
	items        repository.ItemRepository
	reservations repository.ReservationRepository
	validator    *validator.InventoryValidator
	cfg          *config.Config
}

func NewInventoryService(
	items repository.ItemRepository,
	reservations repository.ReservationRepository,
	validator *validator.InventoryValidator,
	cfg *config.Config,
) InventoryService {
	return &inventoryService{
		items:        items,
		reservations: reservations,
		validator:    validator,
		cfg:          cfg,
	}
}

func (s *inventoryService) CreateItem(ctx context.Context, item *model.InventoryItem) error {
	item.Name = sanitizer.NormalizeName(item.Name)
	item.Category = sanitizer.NormalizeCategory(item.Category)

	if err := s.validator.ValidateItem(item); err != nil {
		s.cfg.Log.Warn("Inventory item validation failed", "error", err)
		return apperrors.Validation("Inventory item validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.items.Create(ctx, item); err != nil {
		s.cfg.Log.Error("Failed to create inventory item", "error", err)
		return apperrors.Internal("Failed to create inventory item", err)
	}

	s.cfg.Log.Info("Inventory item created", "id", item.ID, "name", item.Name, "total", item.TotalQuantity)
	return nil
}

func (s *inventoryService) GetItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Item ID cannot be empty")
	}

	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapItemError(err, id, "Failed to retrieve inventory item")
	}
	return item, nil
}

func (s *inventoryService) GetAllItems(ctx context.Context, limit int, offset int64) ([]*model.InventoryItem, int64, error) {
	var count int64
	var items []*model.InventoryItem
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.items.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count inventory items", "error", errCount)
			errCount = apperrors.Internal("Failed to count inventory items", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		items, errFind = s.items.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list inventory items", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve inventory items", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return items, count, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id string, updates *model.InventoryItemUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Item ID cannot be empty")
	}

	existing, err := s.items.FindByID(ctx, id)
	if err != nil {
		return s.mapItemError(err, id, "Failed to check item existence")
	}

	if err := s.validator.ValidateItemUpdate(updates); err != nil {
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := *existing
	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Category != "" {
		merged.Category = sanitizer.NormalizeCategory(updates.Category)
	}
	if updates.TotalQuantity != nil {
		merged.TotalQuantity = *updates.TotalQuantity
	}
	if updates.ReservedOut != nil {
		merged.ReservedOut = *updates.ReservedOut
	}
	if updates.LowStockThreshold != nil {
		merged.LowStockThreshold = *updates.LowStockThreshold
	}

	if err := s.validator.ValidateItem(&merged); err != nil {
		return apperrors.Validation("Inventory item validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.items.Update(ctx, id, &merged); err != nil {
		return s.mapItemError(err, id, "Failed to update inventory item")
	}

	s.cfg.Log.Info("Inventory item updated", "id", id)
	return nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Item ID cannot be empty")
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return s.mapItemError(err, id, "Failed to delete inventory item")
	}

	s.cfg.Log.Info("Inventory item deleted", "id", id)
	return nil
}

// Reserve records the reservation and returns the availability report for
// the requested window. Shortfalls are warnings, not errors; the farm staff
// decide whether to double-book linens.
func (s *inventoryService) Reserve(ctx context.Context, reservation *model.InventoryReservation) (*model.AvailabilityReport, error) {
	reservation.EventName = sanitizer.NormalizeEventName(reservation.EventName)
	if reservation.BookingStatus == 0 {
		reservation.BookingStatus = model.StatusPending
	}

	if err := s.validator.ValidateReservation(reservation); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return nil, apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}

	report, err := s.CheckAvailability(ctx, reservation.ItemID, reservation.Quantity, reservation.StartAt, reservation.EndAt)
	if err != nil {
		return nil, err
	}

	if err := s.reservations.Create(ctx, reservation); err != nil {
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return nil, apperrors.Internal("Failed to create reservation", err)
	}

	if len(report.Warnings) > 0 {
		s.cfg.Log.Warn("Reservation created with warnings",
			"reservation_id", reservation.ID,
			"item_id", reservation.ItemID,
			"warnings", report.Warnings,
		)
	} else {
		s.cfg.Log.Info("Reservation created", "reservation_id", reservation.ID, "item_id", reservation.ItemID)
	}

	return report, nil
}

func (s *inventoryService) Release(ctx context.Context, reservationID string) error {
	if reservationID == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	if err := s.reservations.Delete(ctx, reservationID); err != nil {
		if errors.Is(err, inverrors.ErrReservationNotFound) {
			return apperrors.NotFoundWithID("Reservation", reservationID)
		}
		if errors.Is(err, inverrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid reservation ID format")
		}
		return apperrors.Internal("Failed to release reservation", err)
	}

	s.cfg.Log.Info("Reservation released", "id", reservationID)
	return nil
}

func (s *inventoryService) GetReservationsForBooking(ctx context.Context, bookingID string) ([]*model.InventoryReservation, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	reservations, err := s.reservations.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

// CheckAvailability computes how many units remain free over [from, to] at
// day granularity: two reservations sharing even one calendar day both count
// against the pool that day.
func (s *inventoryService) CheckAvailability(ctx context.Context, itemID string, quantity int, from, to time.Time) (*model.AvailabilityReport, error) {
	if quantity < 1 {
		return nil, apperrors.InvalidInput("Quantity must be at least 1")
	}
	if to.Before(from) {
		return nil, apperrors.InvalidInput("Range end must not be before range start")
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, s.mapItemError(err, itemID, "Failed to retrieve inventory item")
	}

	dayFrom, dayTo := s.dayBounds(from, to)
	overlapping, err := s.reservations.FindOverlapping(ctx, itemID, dayFrom, dayTo)
	if err != nil {
		return nil, apperrors.Internal("Failed to check reservations", err)
	}

	overlapQty := 0
	for _, res := range overlapping {
		overlapQty += res.Quantity
	}

	available := item.TotalQuantity - item.ReservedOut - overlapQty

	report := &model.AvailabilityReport{
		ItemID:         itemID,
		Requested:      quantity,
		Available:      available,
		TotalQuantity:  item.TotalQuantity,
		OverlappingQty: overlapQty,
	}

	remaining := available - quantity
	if remaining < 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"insufficient stock for %q: requested %d, only %d available", item.Name, quantity, available))
		for _, res := range overlapping {
			report.Conflicts = append(report.Conflicts, fmt.Sprintf(
				"%q at pavilion %s holds %d from %s to %s",
				res.EventName, res.PavilionID, res.Quantity,
				res.StartAt.In(s.cfg.Location).Format("2006-01-02"),
				res.EndAt.In(s.cfg.Location).Format("2006-01-02"),
			))
		}
	} else if item.LowStockThreshold > 0 && remaining <= item.LowStockThreshold {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"low stock for %q: %d unit(s) would remain", item.Name, remaining))
	}

	return report, nil
}

// SyncBookingStatus refreshes the status snapshot on all reservations held
// by a booking. Driven by the booking.status_changed consumer.
func (s *inventoryService) SyncBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) error {
	modified, err := s.reservations.UpdateBookingStatus(ctx, bookingID, status)
	if err != nil {
		return err
	}

	if modified > 0 {
		s.cfg.Log.Info("Reservation snapshots updated",
			"booking_id", bookingID,
			"status", status.String(),
			"count", modified,
		)
		if status.IsTerminal() {
			s.cfg.Log.Info("Stock freed for terminal booking", "booking_id", bookingID)
		}
	}
	return nil
}

// dayBounds widens [from, to] to whole business days so a reservation later
// the same day still counts as overlapping.
func (s *inventoryService) dayBounds(from, to time.Time) (time.Time, time.Time) {
	f := from.In(s.cfg.Location)
	t := to.In(s.cfg.Location)
	dayFrom := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, s.cfg.Location)
	dayTo := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, s.cfg.Location)
	return dayFrom, dayTo
}

func (s *inventoryService) mapItemError(err error, id, internalMsg string) error {
	if errors.Is(err, inverrors.ErrItemNotFound) {
		return apperrors.NotFoundWithID("Inventory item", id)
	}
	if errors.Is(err, inverrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid item ID format")
	}
	return apperrors.Internal(internalMsg, err)
}
