package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bukid/internal/pavilions/service"
	httputil "bukid/pkg/http"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

type VenueHandler struct {
	service service.VenueService
	log     *logger.Logger
}

func NewVenueHandler(service service.VenueService, log *logger.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log,
	}
}

func (h *VenueHandler) CreatePavilion(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var pavilion model.Pavilion
	if err := json.NewDecoder(r.Body).Decode(&pavilion); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.CreatePavilion(r.Context(), &pavilion); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, pavilion)
}

func (h *VenueHandler) GetPavilion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pavilion, err := h.service.GetPavilion(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, pavilion)
}

func (h *VenueHandler) GetAllPavilions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	pavilions, total, err := h.service.GetAllPavilions(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, pavilions, total, limit, offset)
}

func (h *VenueHandler) UpdatePavilion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.PavilionUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.UpdatePavilion(r.Context(), ps.ByName("id"), &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *VenueHandler) DeletePavilion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeletePavilion(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *VenueHandler) CreateRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var room model.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.CreateRoom(r.Context(), &room); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, room)
}

func (h *VenueHandler) GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetRoom(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, room)
}

func (h *VenueHandler) GetRoomsForPavilion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rooms, err := h.service.GetRoomsForPavilion(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, rooms)
}

func (h *VenueHandler) UpdateRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.RoomUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.UpdateRoom(r.Context(), ps.ByName("id"), &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *VenueHandler) DeleteRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteRoom(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *VenueHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/pavilions", h.CreatePavilion)
	router.GET("/api/v1/pavilions", h.GetAllPavilions)
	router.GET("/api/v1/pavilions/:id", h.GetPavilion)
	router.PATCH("/api/v1/pavilions/:id", h.UpdatePavilion)
	router.DELETE("/api/v1/pavilions/:id", h.DeletePavilion)
	router.GET("/api/v1/pavilions/:id/rooms", h.GetRoomsForPavilion)

	router.POST("/api/v1/rooms", h.CreateRoom)
	router.GET("/api/v1/rooms/:id", h.GetRoom)
	router.PATCH("/api/v1/rooms/:id", h.UpdateRoom)
	router.DELETE("/api/v1/rooms/:id", h.DeleteRoom)
}
