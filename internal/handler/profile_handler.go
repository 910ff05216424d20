package handler

import (
	"encoding/json"
	"net/http"

	"github.com/foodmind/foodmind-backend/internal/domain"
	"github.com/foodmind/foodmind-backend/internal/middleware"
	"github.com/foodmind/foodmind-backend/internal/service"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Get(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "get profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Update(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, err, "update profile")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ProfileHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.History(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "list metric history")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
