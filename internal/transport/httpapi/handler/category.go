package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kmazurek/saldo/internal/platform/category"
	"github.com/kmazurek/saldo/pkg/pagination"
)

// CategoryServiceInterface defines the interface for category operations
type CategoryServiceInterface interface {
	Create(ctx context.Context, title string) (*category.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
	List(ctx context.Context, limit, offset int) ([]*category.Category, int, error)
	Update(ctx context.Context, id uuid.UUID, title string) (*category.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CategoryRequest represents the category create/update request body
type CategoryRequest struct {
	Title string `json:"title"`
}

// CategoryResponse represents a category response
type CategoryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.categoryService.Create(r.Context(), req.Title)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, toCategoryResponse(created), http.StatusCreated)
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	page := pagination.ParseQuery(r.URL.Query())

	categories, total, err := h.categoryService.List(r.Context(), page.Limit(), page.Offset())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	items := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, toCategoryResponse(c))
	}

	respondJSON(w, ListResponse{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}, http.StatusOK)
}

// GetCategory handles GET /categories/{id}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	c, err := h.categoryService.GetByID(r.Context(), categoryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, toCategoryResponse(c), http.StatusOK)
}

// UpdateCategory handles PUT /categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.categoryService.Update(r.Context(), categoryID, req.Title)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, toCategoryResponse(updated), http.StatusOK)
}

// DeleteCategory handles DELETE /categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	if err := h.categoryService.Delete(r.Context(), categoryID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Title:     c.Title,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
