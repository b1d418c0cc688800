package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bukid/internal/reports/repository"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/model"
)

// ReportService produces the back-office summary reports. Results are cached
// in Redis for a short TTL since the underlying aggregations scan the whole
// bookings collection.
type ReportService interface {
	MonthlyRevenue(ctx context.Context, year int) ([]*model.MonthlyRevenue, error)
	BookingsPerPavilion(ctx context.Context, from, to time.Time) ([]*model.PavilionBookings, error)
	StatusBreakdown(ctx context.Context) ([]*model.StatusBreakdown, error)
	// ExportMonthlyRevenueCSV renders the yearly revenue report as CSV.
	ExportMonthlyRevenueCSV(ctx context.Context, year int) ([]byte, error)
}

type reportService struct {
	reports repository.ReportRepository
	cache   Cache
	cfg     *config.Config
}

func NewReportService(reports repository.ReportRepository, cache Cache, cfg *config.Config) ReportService {
	return &reportService{
		reports: reports,
		cache:   cache,
		cfg:     cfg,
	}
}

func (s *reportService) MonthlyRevenue(ctx context.Context, year int) ([]*model.MonthlyRevenue, error) {
	if year < 2000 || year > 2100 {
		return nil, apperrors.InvalidInput("Year out of range")
	}

	key := fmt.Sprintf("report:revenue:%d", year)
	var cached []*model.MonthlyRevenue
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.reports.MonthlyRevenue(ctx, year)
	if err != nil {
		s.cfg.Log.Error("Failed to build monthly revenue report", "year", year, "error", err)
		return nil, apperrors.Internal("Failed to build monthly revenue report", err)
	}

	s.toCache(ctx, key, rows)
	return rows, nil
}

func (s *reportService) BookingsPerPavilion(ctx context.Context, from, to time.Time) ([]*model.PavilionBookings, error) {
	key := fmt.Sprintf("report:pavilions:%d:%d", from.Unix(), to.Unix())
	var cached []*model.PavilionBookings
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.reports.BookingsPerPavilion(ctx, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to build pavilion bookings report", "error", err)
		return nil, apperrors.Internal("Failed to build pavilion bookings report", err)
	}

	s.toCache(ctx, key, rows)
	return rows, nil
}

func (s *reportService) StatusBreakdown(ctx context.Context) ([]*model.StatusBreakdown, error) {
	key := "report:status"
	var cached []*model.StatusBreakdown
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.reports.StatusBreakdown(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to build status breakdown report", "error", err)
		return nil, apperrors.Internal("Failed to build status breakdown report", err)
	}

	s.toCache(ctx, key, rows)
	return rows, nil
}

func (s *reportService) ExportMonthlyRevenueCSV(ctx context.Context, year int) ([]byte, error) {
	rows, err := s.MonthlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"year", "month", "bookings", "revenue", "collected"}}
	for _, row := range rows {
		records = append(records, []string{
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Month),
			strconv.FormatInt(row.Bookings, 10),
			strconv.FormatFloat(row.Revenue, 'f', 2, 64),
			strconv.FormatFloat(row.Collected, 'f', 2, 64),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, apperrors.Internal("Failed to render revenue CSV", err)
	}
	return buf.Bytes(), nil
}

// fromCache reports whether key was present and decoded into out.
func (s *reportService) fromCache(ctx context.Context, key string, out any) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.cfg.Log.Warn("Report cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.cfg.Log.Warn("Report cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (s *reportService) toCache(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cfg.ReportCacheTTL); err != nil {
		s.cfg.Log.Warn("Report cache write failed", "key", key, "error", err)
	}
}
