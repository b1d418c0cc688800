package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bukid/pkg/model"
)

type InventoryClient struct {
	httpClient *HttpClient
}

func NewInventoryClient(baseURL string, timeout time.Duration) *InventoryClient {
	return &InventoryClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

func (c *InventoryClient) CreateItem(ctx context.Context, item *model.InventoryItem) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/inventory/items", item)
}

func (c *InventoryClient) Reserve(ctx context.Context, reservation *model.InventoryReservation) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/inventory/reservations", reservation)
}

// CheckAvailability returns the advisory availability report for an item over
// a date range.
func (c *InventoryClient) CheckAvailability(ctx context.Context, itemID string, quantity int, from, to time.Time) (*model.AvailabilityReport, error) {
	q := url.Values{}
	q.Set("quantity", fmt.Sprintf("%d", quantity))
	q.Set("from", from.Format(time.RFC3339))
	q.Set("to", to.Format(time.RFC3339))

	resp, err := c.httpClient.GET(ctx, "/api/v1/inventory/items/"+itemID+"/availability?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inventory service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var body struct {
		Data model.AvailabilityReport `json:"data"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("failed to decode availability report: %w", err)
	}
	return &body.Data, nil
}

func (c *InventoryClient) WaitForHealthy(maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(maxWait)
}
