package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bukid/internal/bookings/status"
	notiferrors "bukid/internal/notifications/errors"
	"bukid/internal/notifications/repository"
	"bukid/pkg/config"
	"bukid/pkg/kafka"
	"bukid/pkg/model"
)

// BookingSource is the slice of the bookings repository the checker reads.
type BookingSource interface {
	FindByStatusWithBalance(ctx context.Context, statuses []model.BookingStatus) ([]*model.Booking, error)
}

// DedupGuard suppresses duplicate emission across replicas within a scan
// window. The durable guard is the unique index on (booking_id, type); this
// one just keeps replicas from racing each other to the insert.
type DedupGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Checker scans bookings and emits the bell notifications the front desk
// sees: payment alerts as the event date approaches and repeating reminders
// for unpaid past events.
type Checker struct {
	bookings  BookingSource
	notifs    repository.NotificationRepository
	schedules repository.ScheduleRepository
	guard     DedupGuard
	cfg       *config.Config
}

func NewChecker(
	bookings BookingSource,
	notifs repository.NotificationRepository,
	schedules repository.ScheduleRepository,
	guard DedupGuard,
	cfg *config.Config,
) *Checker {
	return &Checker{
		bookings:  bookings,
		notifs:    notifs,
		schedules: schedules,
		guard:     guard,
		cfg:       cfg,
	}
}

// Scan runs one full pass of both checks.
func (c *Checker) Scan(ctx context.Context) {
	now := time.Now()

	alerts, err := c.CheckPaymentAlerts(ctx, now)
	if err != nil {
		c.cfg.Log.Error("Payment alert scan failed", "error", err)
	}

	reminders, err := c.CheckUnpaidReminders(ctx, now)
	if err != nil {
		c.cfg.Log.Error("Unpaid reminder scan failed", "error", err)
	}

	if alerts > 0 || reminders > 0 {
		c.cfg.Log.Info("Notification scan fired", "payment_alerts", alerts, "unpaid_reminders", reminders)
	}
}

// CheckPaymentAlerts fires a payment alert for each upcoming booking that
// still owes money and whose days-until-start has crossed one of the
// configured marks. Only the most urgent crossed mark fires; a booking whose
// 3-day alert exists never receives a late 1-week alert. Each (booking, type)
// fires at most once ever.
func (c *Checker) CheckPaymentAlerts(ctx context.Context, now time.Time) (int, error) {
	bookings, err := c.bookings.FindByStatusWithBalance(ctx, []model.BookingStatus{
		model.StatusPending, model.StatusConfirmed,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to load bookings for payment alerts: %w", err)
	}

	fired := 0
	for _, b := range bookings {
		days := status.DaysUntil(now, b.StartAt, c.cfg.Location)
		if days < 0 {
			continue
		}

		tier, ok := crossedTier(days)
		if !ok {
			continue
		}

		notif := &model.Notification{
			BookingID: b.ID,
			Type:      tierType(tier),
			Message: fmt.Sprintf("Payment for %q is due: %d day(s) until the event, balance %.2f",
				b.EventName, days, b.Balance),
			Triggered: true,
		}

		if c.emit(ctx, notif) {
			fired++
		}
	}

	return fired, nil
}

// CheckUnpaidReminders fires a repeating reminder for bookings stuck in
// Unpaid, at most once per cadence interval per booking.
func (c *Checker) CheckUnpaidReminders(ctx context.Context, now time.Time) (int, error) {
	bookings, err := c.bookings.FindByStatusWithBalance(ctx, []model.BookingStatus{model.StatusUnpaid})
	if err != nil {
		return 0, fmt.Errorf("failed to load unpaid bookings: %w", err)
	}

	fired := 0
	for _, b := range bookings {
		schedule, err := c.schedules.Find(ctx, b.ID)
		if err != nil {
			c.cfg.Log.Error("Failed to load notification schedule", "booking_id", b.ID, "error", err)
			continue
		}

		if schedule != nil && now.Sub(schedule.LastNotificationSent) < c.cfg.UnpaidReminderEvery {
			continue
		}

		notif := &model.Notification{
			BookingID: b.ID,
			Type:      model.NotificationUnpaidReminder,
			Message: fmt.Sprintf("Event %q has ended with an unpaid balance of %.2f",
				b.EventName, b.Balance),
			Triggered: true,
		}

		if !c.emit(ctx, notif) {
			continue
		}
		fired++

		entry := model.NotificationEntry{Type: model.NotificationUnpaidReminder, SentAt: now}
		if err := c.schedules.RecordSent(ctx, b.ID, entry); err != nil {
			c.cfg.Log.Error("Failed to advance reminder cadence", "booking_id", b.ID, "error", err)
		}
	}

	return fired, nil
}

// HandleBookingCreated creates the one-shot bell entry for a new booking.
// Wired to the booking.created Kafka consumer.
func (c *Checker) HandleBookingCreated(ctx context.Context, event kafka.BookingCreatedEvent) error {
	notif := &model.Notification{
		BookingID: event.BookingID,
		Type:      model.NotificationNewBooking,
		Message: fmt.Sprintf("New booking: %q for %s on %s",
			event.EventName, event.ClientName, event.StartAt.In(c.cfg.Location).Format("Jan 2, 2006")),
		Triggered: true,
	}

	if err := c.notifs.Create(ctx, notif); err != nil {
		if errors.Is(err, notiferrors.ErrAlreadyFired) {
			return nil
		}
		return err
	}
	return nil
}

// emit inserts a notification, passing through both dedup guards. Returns
// true only when this call actually created the document.
func (c *Checker) emit(ctx context.Context, notif *model.Notification) bool {
	key := fmt.Sprintf("notif:%s:%s", notif.BookingID, notif.Type)
	holdingGuard := false
	if c.guard != nil {
		acquired, err := c.guard.Acquire(ctx, key)
		if err != nil {
			// Redis being down must not stop notifications; the unique
			// index still prevents duplicates for one-shot types.
			c.cfg.Log.Warn("Dedup guard unavailable, relying on unique index", "error", err)
		} else if !acquired {
			return false
		} else {
			holdingGuard = true
		}
	}

	if err := c.notifs.Create(ctx, notif); err != nil {
		if errors.Is(err, notiferrors.ErrAlreadyFired) {
			return false
		}
		// A transient insert failure must not leave the guard key holding
		// the slot until its TTL expires; release it so the next scan
		// retries right away.
		if holdingGuard {
			if releaseErr := c.guard.Release(ctx, key); releaseErr != nil {
				c.cfg.Log.Warn("Failed to release dedup guard key", "key", key, "error", releaseErr)
			}
		}
		c.cfg.Log.Error("Failed to create notification",
			"booking_id", notif.BookingID, "type", notif.Type, "error", err)
		return false
	}

	c.cfg.Log.Info("Notification fired", "booking_id", notif.BookingID, "type", notif.Type)
	return true
}

// crossedTier returns the most urgent alert mark the booking has crossed.
func crossedTier(days int) (int, bool) {
	tier := 0
	found := false
	for _, offset := range config.PaymentAlertOffsets {
		if days <= offset {
			tier = offset
			found = true
		}
	}
	return tier, found
}

func tierType(tier int) model.NotificationType {
	switch tier {
	case 7:
		return model.NotificationPayment1Week
	case 3:
		return model.NotificationPayment3Days
	default:
		return model.NotificationPayment1Day
	}
}
