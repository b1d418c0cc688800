package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

type mockReportRepo struct {
	revenueCalls int
	revenue      []*model.MonthlyRevenue
	pavilions    []*model.PavilionBookings
	statuses     []*model.StatusBreakdown
}

func (m *mockReportRepo) MonthlyRevenue(ctx context.Context, year int) ([]*model.MonthlyRevenue, error) {
	m.revenueCalls++
	return m.revenue, nil
}

func (m *mockReportRepo) BookingsPerPavilion(ctx context.Context, from, to time.Time) ([]*model.PavilionBookings, error) {
	return m.pavilions, nil
}

func (m *mockReportRepo) StatusBreakdown(ctx context.Context) ([]*model.StatusBreakdown, error) {
	return m.statuses, nil
}

type memoryCache struct {
	entries map[string][]byte
	getErr  error
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	value, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return value, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.entries == nil {
		c.entries = map[string][]byte{}
	}
	c.entries[key] = value
	return nil
}

func reportConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		Location:       time.UTC,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		ReportCacheTTL: time.Minute,
	}
}

func juneRevenue() []*model.MonthlyRevenue {
	return []*model.MonthlyRevenue{
		{Year: 2026, Month: 6, Bookings: 4, Revenue: 320000, Collected: 250000},
	}
}

func TestMonthlyRevenue_CachesSecondRead(t *testing.T) {
	repo := &mockReportRepo{revenue: juneRevenue()}
	cache := &memoryCache{}
	svc := NewReportService(repo, cache, reportConfig(t))

	first, err := svc.MonthlyRevenue(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.MonthlyRevenue(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, second, 1)

	assert.Equal(t, 1, repo.revenueCalls, "second read is served from cache")
	assert.Equal(t, first[0].Revenue, second[0].Revenue)
}

func TestMonthlyRevenue_CacheOutageFallsThrough(t *testing.T) {
	repo := &mockReportRepo{revenue: juneRevenue()}
	cache := &memoryCache{getErr: assert.AnError}
	svc := NewReportService(repo, cache, reportConfig(t))

	rows, err := svc.MonthlyRevenue(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = svc.MonthlyRevenue(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.revenueCalls, "every read hits Mongo while the cache is down")
}

func TestMonthlyRevenue_YearOutOfRange(t *testing.T) {
	svc := NewReportService(&mockReportRepo{}, &memoryCache{}, reportConfig(t))

	_, err := svc.MonthlyRevenue(context.Background(), 1987)
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
}

func TestExportMonthlyRevenueCSV(t *testing.T) {
	repo := &mockReportRepo{revenue: juneRevenue()}
	svc := NewReportService(repo, &memoryCache{}, reportConfig(t))

	data, err := svc.ExportMonthlyRevenueCSV(context.Background(), 2026)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "year,month,bookings,revenue,collected", lines[0])
	assert.Equal(t, "2026,6,4,320000.00,250000.00", lines[1])
}

func TestStatusBreakdown_CachedRoundTrip(t *testing.T) {
	repo := &mockReportRepo{statuses: []*model.StatusBreakdown{
		{Status: model.StatusPending, Bookings: 3},
		{Status: model.StatusUnpaid, Bookings: 1},
	}}
	cache := &memoryCache{}
	svc := NewReportService(repo, cache, reportConfig(t))

	rows, err := svc.StatusBreakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	cached, err := svc.StatusBreakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 2)
	assert.Equal(t, model.StatusPending, cached[0].Status)
}
