package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bukid/internal/catering/service"
	httputil "bukid/pkg/http"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

type CateringHandler struct {
	service service.CateringService
	log     *logger.Logger
}

func NewCateringHandler(service service.CateringService, log *logger.Logger) *CateringHandler {
	return &CateringHandler{
		service: service,
		log:     log,
	}
}

func (h *CateringHandler) CreatePackage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var pkg model.Package
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.CreatePackage(r.Context(), &pkg); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, pkg)
}

func (h *CateringHandler) GetPackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pkg, err := h.service.GetPackage(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, pkg)
}

func (h *CateringHandler) GetAllPackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	packages, total, err := h.service.GetAllPackages(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, packages, total, limit, offset)
}

func (h *CateringHandler) UpdatePackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.PackageUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.UpdatePackage(r.Context(), ps.ByName("id"), &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CateringHandler) DeletePackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeletePackage(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CateringHandler) GetPackageDishes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dishes, err := h.service.GetPackageDishes(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, dishes)
}

func (h *CateringHandler) CreateDish(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var dish model.Dish
	if err := json.NewDecoder(r.Body).Decode(&dish); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.CreateDish(r.Context(), &dish); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, dish)
}

func (h *CateringHandler) GetDish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dish, err := h.service.GetDish(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, dish)
}

func (h *CateringHandler) GetAllDishes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	dishes, total, err := h.service.GetAllDishes(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, dishes, total, limit, offset)
}

func (h *CateringHandler) UpdateDish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.DishUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.UpdateDish(r.Context(), ps.ByName("id"), &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CateringHandler) DeleteDish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteDish(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CateringHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/packages", h.CreatePackage)
	router.GET("/api/v1/packages", h.GetAllPackages)
	router.GET("/api/v1/packages/:id", h.GetPackage)
	router.PATCH("/api/v1/packages/:id", h.UpdatePackage)
	router.DELETE("/api/v1/packages/:id", h.DeletePackage)
	router.GET("/api/v1/packages/:id/dishes", h.GetPackageDishes)

	router.POST("/api/v1/dishes", h.CreateDish)
	router.GET("/api/v1/dishes", h.GetAllDishes)
	router.GET("/api/v1/dishes/:id", h.GetDish)
	router.PATCH("/api/v1/dishes/:id", h.UpdateDish)
	router.DELETE("/api/v1/dishes/:id", h.DeleteDish)
}
