package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bukid/internal/notifications/service"
	httputil "bukid/pkg/http"
	"bukid/pkg/logger"
)

type NotificationHandler struct {
	service service.BellService
	log     *logger.Logger
}

func NewNotificationHandler(service service.BellService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

func (h *NotificationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, total, err := h.service.GetAll(r.Context(), unreadOnly, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, notifications, total, limit, offset)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.MarkRead(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	modified, err := h.service.MarkAllRead(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]int64{"marked_read": modified})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *NotificationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/notifications", h.GetAll)
	router.POST("/api/v1/notifications/id/:id/read", h.MarkRead)
	router.POST("/api/v1/notifications/read-all", h.MarkAllRead)
	router.DELETE("/api/v1/notifications/id/:id", h.Delete)
}
