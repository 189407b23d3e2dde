package transport

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
	"github.com/rachelSwimmer/StoreApi/pkg/domain/service"
)

type categoryHandlers struct {
	categories service.CategoryService
}

func (h *categoryHandlers) register(r *mux.Router) {
	r.HandleFunc("/categories", h.list).Methods(http.MethodGet)
	r.HandleFunc("/categories", h.create).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/categories/{id}", h.delete).Methods(http.MethodDelete)
}

type categoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newCategoryResponse(c *model.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *categoryHandlers) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	payload := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		payload = append(payload, newCategoryResponse(&categories[i]))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *categoryHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	category, err := h.categories.GetCategory(r.Context(), id)
	if err != nil {
		respondError(w, err, model.ErrCategoryNotFound)
		return
	}
	respondJSON(w, http.StatusOK, newCategoryResponse(category))
}

func (h *categoryHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.categories.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Location", "/api/categories/"+category.ID.String())
	respondJSON(w, http.StatusCreated, newCategoryResponse(category))
}

func (h *categoryHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.categories.UpdateCategory(r.Context(), id, model.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, err, model.ErrCategoryNotFound)
		return
	}
	respondJSON(w, http.StatusOK, newCategoryResponse(category))
}

func (h *categoryHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, err, model.ErrCategoryNotFound)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
