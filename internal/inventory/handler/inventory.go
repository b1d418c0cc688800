package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"bukid/internal/inventory/service"
	apperrors "bukid/pkg/errors"
	httputil "bukid/pkg/http"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

type InventoryHandler struct {
	service service.InventoryService
	log     *logger.Logger
}

func NewInventoryHandler(service service.InventoryService, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		log:     log,
	}
}

func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var item model.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.CreateItem(r.Context(), &item); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, item)
}

func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	item, err := h.service.GetItem(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, item)
}

func (h *InventoryHandler) GetAllItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	items, total, err := h.service.GetAllItems(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, items, total, limit, offset)
}

func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.InventoryItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.UpdateItem(r.Context(), ps.ByName("id"), &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteItem(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *InventoryHandler) Reserve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var reservation model.InventoryReservation
	if err := json.NewDecoder(r.Body).Decode(&reservation); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	report, err := h.service.Reserve(r.Context(), &reservation)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, map[string]any{
		"reservation":  reservation,
		"availability": report,
	})
}

func (h *InventoryHandler) Release(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Release(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *InventoryHandler) GetReservationsForBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservations, err := h.service.GetReservationsForBooking(r.Context(), ps.ByName("booking_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, reservations)
}

func (h *InventoryHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()

	quantity, err := strconv.Atoi(query.Get("quantity"))
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid quantity parameter"))
		return
	}

	from, err := time.Parse(time.RFC3339, query.Get("from"))
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid from parameter, must be RFC3339"))
		return
	}
	to, err := time.Parse(time.RFC3339, query.Get("to"))
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid to parameter, must be RFC3339"))
		return
	}

	report, err := h.service.CheckAvailability(r.Context(), ps.ByName("id"), quantity, from, to)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, report)
}

func (h *InventoryHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/inventory/items", h.CreateItem)
	router.GET("/api/v1/inventory/items", h.GetAllItems)
	router.GET("/api/v1/inventory/items/:id", h.GetItem)
	router.PATCH("/api/v1/inventory/items/:id", h.UpdateItem)
	router.DELETE("/api/v1/inventory/items/:id", h.DeleteItem)
	router.GET("/api/v1/inventory/items/:id/availability", h.CheckAvailability)
	router.POST("/api/v1/inventory/reservations", h.Reserve)
	router.DELETE("/api/v1/inventory/reservations/:id", h.Release)
	router.GET("/api/v1/inventory/bookings/:booking_id/reservations", h.GetReservationsForBooking)
}
