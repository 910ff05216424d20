package handler

import (
	"net/http"

	"github.com/foodmind/foodmind-backend/internal/middleware"
	"github.com/foodmind/foodmind-backend/internal/service"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, d)
}
