package handler

import (
	"net/http"

	"github.com/foodmind/foodmind-backend/internal/middleware"
	"github.com/foodmind/foodmind-backend/internal/service"
)

type RecommendationHandler struct {
	svc *service.RecommendationService
}

func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Recommend(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "build recommendations")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
