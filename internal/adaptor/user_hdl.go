package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"slot-booking/internal/dto/request"
	"slot-booking/internal/usecase"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// BindLine handles POST /api/user/line-binding (protected)
func (h *UserHandler) BindLine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.BindLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.BindLine(r.Context(), userID, &req); err != nil {
		h.handleServiceError(w, err, "bind line account")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GrantRole handles PUT /api/admin/users/{id}/role (admin only)
func (h *UserHandler) GrantRole(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	var req request.GrantRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.GrantRole(r.Context(), targetID, &req); err != nil {
		h.handleServiceError(w, err, "grant role")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError maps user management errors to responses
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case strings.Contains(err.Error(), "validation failed"):
		h.log.Warn(operation+" bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
