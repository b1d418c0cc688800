//go:build integration

// These tests run against a live bookings service and MongoDB instance.
// Start both, then: go test -tags integration ./test/integration/bookings/
package bookings_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"bukid/pkg/model"
	"bukid/test/integration/testutil"
)

func TestBookingLifecycle(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	booking := testutil.ValidBooking()

	resp := client.POST(t, "/api/v1/bookings", booking)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created struct {
		Data model.Booking `json:"data"`
	}
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to decode created booking: %v", err)
	}
	if created.Data.ID == "" {
		t.Fatal("created booking has no id")
	}
	if created.Data.Status != model.StatusPending {
		t.Fatalf("expected new booking to be pending, got %s", created.Data.Status)
	}
	if created.Data.Balance != created.Data.OriginalPrice {
		t.Fatalf("expected balance %v to equal original price %v", created.Data.Balance, created.Data.OriginalPrice)
	}

	resp = client.GET(t, "/api/v1/bookings/id/"+created.Data.ID)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var fetched struct {
		Data model.Booking `json:"data"`
	}
	if err := resp.DecodeJSON(&fetched); err != nil {
		t.Fatalf("failed to decode booking: %v", err)
	}
	if fetched.Data.EventName != booking.EventName {
		t.Fatalf("expected event name %q, got %q", booking.EventName, fetched.Data.EventName)
	}

	if got := mongo.CountDocuments(t, testutil.BookingsCollection); got != 1 {
		t.Fatalf("expected 1 booking document, found %d", got)
	}
}

func TestBookingValidationRejected(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.POST(t, "/api/v1/bookings", testutil.EmptyBooking())
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)

	resp = client.POST(t, "/api/v1/bookings", testutil.InvalidPhoneBooking())
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)

	resp = client.POST(t, "/api/v1/bookings", testutil.ZeroPriceBooking())
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)

	if got := mongo.CountDocuments(t, testutil.BookingsCollection); got != 0 {
		t.Fatalf("expected no booking documents, found %d", got)
	}
}

func TestDoubleBookingRejected(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	first := testutil.ValidBooking()
	resp := client.POST(t, "/api/v1/bookings", first)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	// Same pavilion, overlapping window.
	second := testutil.NewBookingBuilder().
		WithEventName("Reyes Debut").
		WithWindow(first.StartAt.Add(2*time.Hour), first.EndAt.Add(2*time.Hour)).
		Build()
	resp = client.POST(t, "/api/v1/bookings", second)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	// Same pavilion, disjoint window on another day.
	third := testutil.NewBookingBuilder().
		WithEventName("Reyes Debut").
		WithWindow(first.StartAt.AddDate(0, 0, 7), first.EndAt.AddDate(0, 0, 7)).
		Build()
	resp = client.POST(t, "/api/v1/bookings", third)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	if got := mongo.CountDocuments(t, testutil.BookingsCollection); got != 2 {
		t.Fatalf("expected 2 booking documents, found %d", got)
	}
}

func TestPaymentsReduceBalance(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	booking := testutil.NewBookingBuilder().WithPrice(100000).Build()
	resp := client.POST(t, "/api/v1/bookings", booking)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created struct {
		Data model.Booking `json:"data"`
	}
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to decode created booking: %v", err)
	}

	paymentsPath := fmt.Sprintf("/api/v1/bookings/id/%s/payments", created.Data.ID)

	resp = client.POST(t, paymentsPath, model.Payment{Amount: 40000, Method: "gcash"})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var paid struct {
		Data model.Booking `json:"data"`
	}
	if err := resp.DecodeJSON(&paid); err != nil {
		t.Fatalf("failed to decode booking: %v", err)
	}
	if paid.Data.Balance != 60000 {
		t.Fatalf("expected balance 60000, got %v", paid.Data.Balance)
	}

	// Overpayment is a conflict, not a negative balance.
	resp = client.POST(t, paymentsPath, model.Payment{Amount: 90000, Method: "cash"})
	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	resp = client.POST(t, paymentsPath, model.Payment{Amount: 60000, Method: "bank_transfer"})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	if err := resp.DecodeJSON(&paid); err != nil {
		t.Fatalf("failed to decode booking: %v", err)
	}
	if paid.Data.Balance != 0 {
		t.Fatalf("expected balance 0 after full payment, got %v", paid.Data.Balance)
	}
}

func TestCancelledBookingRefusesPayment(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.POST(t, "/api/v1/bookings", testutil.ValidBooking())
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created struct {
		Data model.Booking `json:"data"`
	}
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to decode created booking: %v", err)
	}

	resp = client.POST(t, "/api/v1/bookings/id/"+created.Data.ID+"/cancel", nil)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.POST(t, "/api/v1/bookings/id/"+created.Data.ID+"/payments", model.Payment{Amount: 1000, Method: "cash"})
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
	testutil.AssertContains(t, resp, "cancelled")
}
