package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "bukid/internal/bookings/errors"
	"bukid/internal/bookings/repository"
	"bukid/internal/bookings/status"
	"bukid/internal/bookings/validator"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/kafka"
	"bukid/pkg/model"
	"bukid/pkg/sanitizer"
)

// EventPublisher is the slice of the Kafka producer the service needs.
// A nil publisher disables event emission.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) error
	Cancel(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	SearchByPavilion(ctx context.Context, pavilionID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error)
	RecordPayment(ctx context.Context, id string, payment *model.Payment) (*model.Booking, error)
	ApplyDiscount(ctx context.Context, id string, amount float64) (*model.Booking, error)
	RefreshStatuses(ctx context.Context) ([]model.StatusChange, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	publisher EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	// Advisory lock on (pavilion, event day) so two concurrent creates
	// cannot both pass the overlap check.
	lockID, err := s.acquireSlotLock(ctx, booking.PavilionID, booking.StartAt)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyPavilionFree(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.publishCreated(ctx, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"event_name", booking.EventName,
		"pavilion_id", booking.PavilionID,
		"start_at", booking.StartAt,
		"status", booking.Status.String(),
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve booking")
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id, "Failed to check booking existence")
	}
	if existing.Status.IsTerminal() {
		return apperrors.Conflict(fmt.Sprintf("Booking is %s and can no longer be edited", existing.Status))
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}
	merged := s.mergeBookingUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyPavilionFree(sessCtx, merged); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return err
	}
	s.cfg.Log.Info("Booking updated successfully", "id", id)
	return nil
}

// Cancel moves a booking to the Cancelled terminal state.
func (s *bookingService) Cancel(ctx context.Context, id string) error {
	return s.transitionTo(ctx, id, model.StatusCancelled, func(current model.BookingStatus) error {
		if current.IsTerminal() {
			return apperrors.Conflict(fmt.Sprintf("Booking is already %s", current))
		}
		return nil
	})
}

// Archive moves a booking to the Archived terminal state. Any status but
// Archived itself can be archived; the farm archives old cancelled and
// completed events alike.
func (s *bookingService) Archive(ctx context.Context, id string) error {
	return s.transitionTo(ctx, id, model.StatusArchived, func(current model.BookingStatus) error {
		if current == model.StatusArchived {
			return apperrors.Conflict("Booking is already archived")
		}
		return nil
	})
}

func (s *bookingService) transitionTo(ctx context.Context, id string, to model.BookingStatus, allowed func(model.BookingStatus) error) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id, "Failed to retrieve booking")
	}
	if err := allowed(booking.Status); err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, booking.Status, to); err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidTransition) {
			return apperrors.Conflict("Booking status changed concurrently, please retry")
		}
		return apperrors.Internal("Failed to update booking status", err)
	}

	s.publishStatusChange(ctx, model.StatusChange{
		BookingID: id,
		From:      booking.Status,
		To:        to,
		ChangedAt: time.Now(),
	}, booking.Balance)

	s.cfg.Log.Info("Booking status changed", "id", id, "from", booking.Status.String(), "to", to.String())
	return nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			return apperrors.Internal("Failed to delete booking", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

func (s *bookingService) SearchByPavilion(ctx context.Context, pavilionID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error) {
	if pavilionID == "" {
		return nil, 0, apperrors.InvalidInput("Pavilion ID is required")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByPavilionAndRange(ctx, pavilionID, from, to)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings by search", "pavilion_id", pavilionID, "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindByPavilionAndRange(ctx, pavilionID, from, to, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search bookings",
				"pavilion_id", pavilionID,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search bookings", err)
		}
	}()

	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) RecordPayment(ctx context.Context, id string, payment *model.Payment) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidatePayment(payment); err != nil {
		return nil, apperrors.Validation("Invalid payment", map[string]any{"error": err.Error()})
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve booking")
	}
	if existing.Status.IsTerminal() {
		return nil, apperrors.Conflict(fmt.Sprintf("Cannot record payment on a %s booking", existing.Status))
	}

	updated, err := s.repo.ApplyPayment(ctx, id, payment.Amount)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrOverpayment) {
			return nil, apperrors.Conflict(fmt.Sprintf(
				"Payment of %.2f exceeds remaining balance of %.2f", payment.Amount, existing.Balance,
			))
		}
		return nil, s.mapRepoError(err, id, "Failed to record payment")
	}

	s.cfg.Log.Info("Payment recorded",
		"id", id,
		"amount", payment.Amount,
		"method", payment.Method,
		"balance", updated.Balance,
	)

	return s.settleStatus(ctx, updated), nil
}

func (s *bookingService) ApplyDiscount(ctx context.Context, id string, amount float64) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if amount <= 0 {
		return nil, apperrors.InvalidInput("Discount amount must be positive")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve booking")
	}
	if existing.Status.IsTerminal() {
		return nil, apperrors.Conflict(fmt.Sprintf("Cannot discount a %s booking", existing.Status))
	}

	updated, err := s.repo.ApplyDiscount(ctx, id, amount)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrOverpayment) {
			return nil, apperrors.Conflict(fmt.Sprintf(
				"Discount of %.2f exceeds remaining balance of %.2f", amount, existing.Balance,
			))
		}
		return nil, s.mapRepoError(err, id, "Failed to apply discount")
	}

	s.cfg.Log.Info("Discount applied", "id", id, "amount", amount, "balance", updated.Balance)

	return s.settleStatus(ctx, updated), nil
}

// settleStatus recomputes the status after a balance change and persists the
// transition when it moved. Returned booking reflects the final state.
func (s *bookingService) settleStatus(ctx context.Context, booking *model.Booking) *model.Booking {
	next := status.Calculate(booking, time.Now())
	if next == booking.Status {
		return booking
	}

	if err := s.repo.UpdateStatus(ctx, booking.ID, booking.Status, next); err != nil {
		s.cfg.Log.Warn("Failed to settle booking status after balance change",
			"id", booking.ID, "from", booking.Status.String(), "to", next.String(), "error", err)
		return booking
	}

	s.publishStatusChange(ctx, model.StatusChange{
		BookingID: booking.ID,
		From:      booking.Status,
		To:        next,
		ChangedAt: time.Now(),
	}, booking.Balance)

	booking.Status = next
	return booking
}

// RefreshStatuses recomputes every non-terminal booking against the clock and
// persists the transitions, returning the diff. Individual failures are
// logged and skipped so one bad document does not stall the sweep.
func (s *bookingService) RefreshStatuses(ctx context.Context) ([]model.StatusChange, error) {
	bookings, err := s.repo.FindNonTerminal(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings for status refresh", err)
	}

	now := time.Now()
	changes := make([]model.StatusChange, 0)

	for _, b := range bookings {
		next := status.Calculate(b, now)
		if next == b.Status {
			continue
		}

		if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, next); err != nil {
			s.cfg.Log.Warn("Skipping status refresh for booking",
				"id", b.ID, "from", b.Status.String(), "to", next.String(), "error", err)
			continue
		}

		change := model.StatusChange{
			BookingID: b.ID,
			From:      b.Status,
			To:        next,
			ChangedAt: now,
		}
		changes = append(changes, change)
		s.publishStatusChange(ctx, change, b.Balance)
	}

	if len(changes) > 0 {
		s.cfg.Log.Info("Status refresh applied transitions", "count", len(changes))
	}
	return changes, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.EventName = sanitizer.NormalizeEventName(b.EventName)
	b.Client.Name = sanitizer.NormalizeName(b.Client.Name)
	b.Client.Phone = sanitizer.NormalizePhone(b.Client.Phone)
	b.Client.Email = sanitizer.TrimAndNormalize(b.Client.Email)
	b.Notes = sanitizer.TrimAndNormalize(b.Notes)
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	// An omitted balance means nothing has been paid yet.
	if b.Balance == 0 && b.Status == 0 {
		b.Balance = b.OriginalPrice
	}
	if b.Status == 0 {
		b.Status = status.Calculate(b, time.Now())
	}
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.EventName != "" {
		merged.EventName = updates.EventName
	}
	if updates.Client != nil {
		merged.Client = *updates.Client
	}
	if updates.PavilionID != "" {
		merged.PavilionID = updates.PavilionID
	}
	if updates.PackageID != "" {
		merged.PackageID = updates.PackageID
	}
	if updates.StartAt != nil {
		merged.StartAt = *updates.StartAt
	}
	if updates.EndAt != nil {
		merged.EndAt = *updates.EndAt
	}
	if updates.GuestCount != nil {
		merged.GuestCount = *updates.GuestCount
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}

	return &merged
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) mapRepoError(err error, id, internalMsg string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal(internalMsg, err)
}

func (s *bookingService) verifyPavilionFree(ctx context.Context, booking *model.Booking) error {
	// Checking up to 30 overlapping bookings is plenty for a single pavilion.
	const maxOverlapCheck = 30
	existing, err := s.repo.FindByPavilionAndRange(ctx, booking.PavilionID, &booking.StartAt, &booking.EndAt, maxOverlapCheck, 0)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if b.ID == booking.ID {
			continue
		}
		if overlaps(b.StartAt, b.EndAt, booking.StartAt, booking.EndAt) {
			return apperrors.Conflict(fmt.Sprintf(
				"Pavilion is already booked for %q (%s - %s)",
				b.EventName,
				b.StartAt.Format("2006-01-02"),
				b.EndAt.Format("2006-01-02"),
			))
		}
	}
	return nil
}

// overlaps treats ranges as inclusive at day granularity: two events sharing
// a single day conflict.
func overlaps(start1, end1, start2, end2 time.Time) bool {
	return !start1.After(end2) && !end1.Before(start2)
}

func (s *bookingService) acquireSlotLock(ctx context.Context, pavilionID string, startAt time.Time) (string, error) {
	day := startAt.In(s.cfg.Location).Format("2006-01-02")
	lockID := fmt.Sprintf("booking_lock_%s_%s", pavilionID, day)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This date is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func (s *bookingService) publishCreated(ctx context.Context, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewBookingCreatedMessage("bookings", kafka.BookingCreatedEvent{
		BookingID:     booking.ID,
		EventName:     booking.EventName,
		PavilionID:    booking.PavilionID,
		ClientName:    booking.Client.Name,
		StartAt:       booking.StartAt,
		EndAt:         booking.EndAt,
		OriginalPrice: booking.OriginalPrice,
		Balance:       booking.Balance,
		CreatedAt:     booking.CreatedAt,
	})
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish booking.created event", "id", booking.ID, "error", err)
	}
}

func (s *bookingService) publishStatusChange(ctx context.Context, change model.StatusChange, balance float64) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewBookingStatusChangedMessage("bookings", kafka.BookingStatusChangedEvent{
		BookingID: change.BookingID,
		From:      change.From,
		To:        change.To,
		Balance:   balance,
		ChangedAt: change.ChangedAt,
	})
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish booking.status_changed event", "id", change.BookingID, "error", err)
	}
}
