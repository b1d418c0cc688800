package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"bukid/internal/reports/service"
	apperrors "bukid/pkg/errors"
	httputil "bukid/pkg/http"
	"bukid/pkg/logger"
)

type ReportHandler struct {
	service service.ReportService
	log     *logger.Logger
}

func NewReportHandler(service service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
	}
}

func (h *ReportHandler) yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return time.Now().Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput("year must be a number")
	}
	return year, nil
}

func (h *ReportHandler) MonthlyRevenue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	year, err := h.yearParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rows, err := h.service.MonthlyRevenue(r.Context(), year)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, rows)
}

func (h *ReportHandler) BookingsPerPavilion(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	from, err := httputil.ExtractTimeParam(r, "from")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	to, err := httputil.ExtractTimeParam(r, "to")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var fromT, toT time.Time
	if from != nil {
		fromT = *from
	}
	if to != nil {
		toT = *to
	}

	rows, err := h.service.BookingsPerPavilion(r.Context(), fromT, toT)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, rows)
}

func (h *ReportHandler) StatusBreakdown(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rows, err := h.service.StatusBreakdown(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, rows)
}

func (h *ReportHandler) ExportMonthlyRevenue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	year, err := h.yearParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	data, err := h.service.ExportMonthlyRevenueCSV(r.Context(), year)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="revenue-%d.csv"`, year))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Error("Failed to write CSV response", "error", err)
	}
}

func (h *ReportHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/reports/revenue", h.MonthlyRevenue)
	router.GET("/api/v1/reports/revenue/export", h.ExportMonthlyRevenue)
	router.GET("/api/v1/reports/pavilions", h.BookingsPerPavilion)
	router.GET("/api/v1/reports/status", h.StatusBreakdown)
}
