package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bukid/pkg/model"
)

// BookingClient is the typed client for the bookings service. The back-office
// service uses it to settle approved discounts; the integration harness uses
// it to drive the API.
type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string, timeout time.Duration) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

func (c *BookingClient) Create(ctx context.Context, booking *model.Booking) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings", booking)
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/bookings/id/"+id)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bookings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var body struct {
		Data model.Booking `json:"data"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}
	return &body.Data, nil
}

func (c *BookingClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	return c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/bookings?limit=%d&offset=%d", limit, offset))
}

// ApplyDiscount reduces a booking's price and balance by the given amount.
func (c *BookingClient) ApplyDiscount(ctx context.Context, id string, amount float64) error {
	resp, err := c.httpClient.POST(ctx, "/api/v1/bookings/id/"+id+"/discount", map[string]any{
		"amount": amount,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("bookings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}
	return nil
}

func (c *BookingClient) RecordPayment(ctx context.Context, id string, payment *model.Payment) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings/id/"+id+"/payments", payment)
}

func (c *BookingClient) WaitForHealthy(maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(maxWait)
}
