//go:build integration

// These tests run against a live inventory service and MongoDB instance.
// Start both, then: go test -tags integration ./test/integration/inventory/
package inventory_test

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"bukid/pkg/client"
	"bukid/pkg/model"
	"bukid/test/integration/testutil"
)

const (
	testBookingID  = "64b7f8a2c9e77a00aaaaaaaa"
	testPavilionID = "64b7f8a2c9e77a0012345678"
)

func inventoryURL() string {
	if url := os.Getenv("TEST_INVENTORY_URL"); url != "" {
		return url
	}
	return "http://localhost:8083"
}

func setup(t *testing.T) (*testutil.MongoHelper, *client.InventoryClient) {
	t.Helper()

	env := testutil.NewTestEnv()
	mongo := testutil.NewMongoHelper(t, env.MongoURI, env.DatabaseName)
	mongo.CleanDatabase(t)

	inv := client.NewInventoryClient(inventoryURL(), 10*time.Second)
	if err := inv.WaitForHealthy(testutil.DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("inventory service not healthy: %v", err)
	}
	return mongo, inv
}

func createItem(t *testing.T, inv *client.InventoryClient, item *model.InventoryItem) string {
	t.Helper()

	resp, err := inv.CreateItem(context.Background(), item)
	if err != nil {
		t.Fatalf("create item request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.StatusCode, string(resp.Body))
	}

	var created struct {
		Data model.InventoryItem `json:"data"`
	}
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to decode created item: %v", err)
	}
	if created.Data.ID == "" {
		t.Fatal("created item has no id")
	}
	return created.Data.ID
}

func TestAvailabilityTracksReservations(t *testing.T) {
	mongo, inv := setup(t)
	defer mongo.Close(t)

	ctx := context.Background()
	itemID := createItem(t, inv, &model.InventoryItem{
		Name:          "Monoblock Chair",
		Category:      "furniture",
		TotalQuantity: 100,
	})

	eventStart := time.Now().AddDate(0, 1, 0).Truncate(time.Hour)
	eventEnd := eventStart.Add(6 * time.Hour)

	report, err := inv.CheckAvailability(ctx, itemID, 80, eventStart, eventEnd)
	if err != nil {
		t.Fatalf("availability check failed: %v", err)
	}
	if report.Available != 100 {
		t.Fatalf("expected 100 available before reservations, got %d", report.Available)
	}

	resp, err := inv.Reserve(ctx, &model.InventoryReservation{
		ItemID:     itemID,
		BookingID:  testBookingID,
		PavilionID: testPavilionID,
		EventName:  "Dela Cruz Wedding Reception",
		Quantity:   80,
		StartAt:    eventStart,
		EndAt:      eventEnd,
	})
	if err != nil {
		t.Fatalf("reserve request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.StatusCode, string(resp.Body))
	}

	report, err = inv.CheckAvailability(ctx, itemID, 50, eventStart, eventEnd)
	if err != nil {
		t.Fatalf("availability check failed: %v", err)
	}
	if report.Available != 20 {
		t.Fatalf("expected 20 available after reserving 80, got %d", report.Available)
	}
	if len(report.Warnings) == 0 {
		t.Fatal("expected a shortfall warning when requesting 50 of 20 available")
	}
	if len(report.Conflicts) == 0 {
		t.Fatal("expected the overlapping event to be named in conflicts")
	}
}

func TestShortfallReservationStillRecorded(t *testing.T) {
	mongo, inv := setup(t)
	defer mongo.Close(t)

	ctx := context.Background()
	itemID := createItem(t, inv, &model.InventoryItem{
		Name:          "Round Table",
		Category:      "furniture",
		TotalQuantity: 10,
	})

	eventStart := time.Now().AddDate(0, 2, 0).Truncate(time.Hour)
	eventEnd := eventStart.Add(8 * time.Hour)

	// Asking for more than exists warns but is never refused.
	resp, err := inv.Reserve(ctx, &model.InventoryReservation{
		ItemID:     itemID,
		BookingID:  testBookingID,
		PavilionID: testPavilionID,
		EventName:  "Santos Corporate Gala",
		Quantity:   25,
		StartAt:    eventStart,
		EndAt:      eventEnd,
	})
	if err != nil {
		t.Fatalf("reserve request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.StatusCode, string(resp.Body))
	}

	var reserved struct {
		Data struct {
			Availability model.AvailabilityReport `json:"availability"`
		} `json:"data"`
	}
	if err := resp.DecodeJSON(&reserved); err != nil {
		t.Fatalf("failed to decode reservation response: %v", err)
	}
	if len(reserved.Data.Availability.Warnings) == 0 {
		t.Fatal("expected a shortfall warning for a 25-of-10 reservation")
	}
}
