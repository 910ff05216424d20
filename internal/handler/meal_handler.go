package handler

import (
	"encoding/json"
	"net/http"

	"github.com/foodmind/foodmind-backend/internal/domain"
	"github.com/foodmind/foodmind-backend/internal/middleware"
	"github.com/foodmind/foodmind-backend/internal/service"
)

type MealHandler struct {
	svc *service.MealLogService
}

func NewMealHandler(svc *service.MealLogService) *MealHandler {
	return &MealHandler{svc: svc}
}

func (h *MealHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req domain.LogMealsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.svc.Log(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, err, "save meal log")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "meal log saved", "saved": saved})
}

func (h *MealHandler) History(w http.ResponseWriter, r *http.Request) {
	days, err := h.svc.History(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "list meal history")
		return
	}
	writeJSON(w, http.StatusOK, days)
}
