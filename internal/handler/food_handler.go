package handler

import (
	"log"
	"net/http"

	"github.com/foodmind/foodmind-backend/internal/domain"
	"github.com/foodmind/foodmind-backend/internal/service"
)

type FoodHandler struct {
	catalog service.CatalogStore
}

func NewFoodHandler(catalog service.CatalogStore) *FoodHandler {
	return &FoodHandler{catalog: catalog}
}

func (h *FoodHandler) List(w http.ResponseWriter, r *http.Request) {
	foods, err := h.catalog.ListAll(r.Context())
	if err != nil {
		log.Printf("[foods] failed to list catalog: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list foods")
		return
	}
	if foods == nil {
		foods = []domain.FoodItem{}
	}
	writeJSON(w, http.StatusOK, foods)
}
