package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bukid/internal/discounts/service"
	httputil "bukid/pkg/http"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

type DiscountHandler struct {
	service service.DiscountService
	log     *logger.Logger
}

func NewDiscountHandler(service service.DiscountService, log *logger.Logger) *DiscountHandler {
	return &DiscountHandler{
		service: service,
		log:     log,
	}
}

func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var discount model.Discount
	if err := json.NewDecoder(r.Body).Decode(&discount); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Create(r.Context(), &discount); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, discount)
}

func (h *DiscountHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	discount, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, discount)
}

func (h *DiscountHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	status := model.DiscountStatus(r.URL.Query().Get("status"))
	discounts, total, err := h.service.GetAll(r.Context(), status, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, discounts, total, limit, offset)
}

func (h *DiscountHandler) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var review model.DiscountReview
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Approve(r.Context(), ps.ByName("id"), &review); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *DiscountHandler) Reject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var review model.DiscountReview
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Reject(r.Context(), ps.ByName("id"), &review); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *DiscountHandler) Modify(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var review model.DiscountReview
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Modify(r.Context(), ps.ByName("id"), &review); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *DiscountHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *DiscountHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/discount-requests", h.Create)
	router.GET("/api/v1/discount-requests", h.GetAll)
	router.GET("/api/v1/discount-requests/:id", h.GetByID)
	router.DELETE("/api/v1/discount-requests/:id", h.Delete)
	router.POST("/api/v1/discount-requests/:id/approve", h.Approve)
	router.POST("/api/v1/discount-requests/:id/reject", h.Reject)
	router.POST("/api/v1/discount-requests/:id/modify", h.Modify)
}
