package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kmazurek/saldo/internal/platform/user"
	"github.com/kmazurek/saldo/pkg/pagination"
)

// AdminServiceInterface defines the interface for account administration
type AdminServiceInterface interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*user.User, int, error)
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*user.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, plainPassword string) error
}

// AdminHandler handles account management requests; the router guards
// these routes with the admin role check.
type AdminHandler struct {
	adminService AdminServiceInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminServiceInterface) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// UpdateEmailRequest represents the email change request body
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

// UpdatePasswordRequest represents the password change request body
type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

// AdminUserResponse represents a user in admin listings
type AdminUserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	CreatedAt   string  `json:"created_at"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
}

// GetUsers handles GET /admin/users
func (h *AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	page := pagination.ParseQuery(r.URL.Query())

	users, total, err := h.adminService.ListUsers(r.Context(), page.Limit(), page.Offset())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	items := make([]AdminUserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toAdminUserResponse(u))
	}

	respondJSON(w, ListResponse{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}, http.StatusOK)
}

// UpdateUserEmail handles PUT /admin/users/{id}/email
func (h *AdminHandler) UpdateUserEmail(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var req UpdateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.adminService.UpdateEmail(r.Context(), userID, req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, toAdminUserResponse(updated), http.StatusOK)
}

// UpdateUserPassword handles PUT /admin/users/{id}/password
func (h *AdminHandler) UpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.adminService.UpdatePassword(r.Context(), userID, req.Password); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toAdminUserResponse(u *user.User) AdminUserResponse {
	resp := AdminUserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.LastLoginAt != nil {
		lastLogin := u.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &lastLogin
	}
	return resp
}
