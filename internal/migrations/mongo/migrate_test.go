package mongo

import (
	"testing"

	"bukid/pkg/model"
)

func TestOneShotNotificationTypesExcludeRepeating(t *testing.T) {
	types := oneShotNotificationTypes()

	if len(types) != len(model.AllNotificationTypes)-1 {
		t.Fatalf("expected %d one-shot types, got %d", len(model.AllNotificationTypes)-1, len(types))
	}

	for _, raw := range types {
		nt, ok := raw.(model.NotificationType)
		if !ok {
			t.Fatalf("expected a NotificationType, got %T", raw)
		}
		if nt == model.NotificationUnpaidReminder {
			t.Fatal("repeating unpaid_reminder must not be under the unique constraint")
		}
		if !nt.OneShot() {
			t.Fatalf("%s is in the unique constraint but is not one-shot", nt)
		}
	}
}
