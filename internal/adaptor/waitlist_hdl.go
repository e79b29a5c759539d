package adaptor

import (
	"errors"
	"net/http"

	"slot-booking/internal/usecase"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WaitlistHandler struct {
	service     usecase.WaitlistService
	coordinator usecase.CoordinatorService
	log         *zap.Logger
}

func NewWaitlistHandler(service usecase.WaitlistService, coordinator usecase.CoordinatorService, log *zap.Logger) *WaitlistHandler {
	return &WaitlistHandler{
		service:     service,
		coordinator: coordinator,
		log:         log.With(zap.String("handler", "waitlist")),
	}
}

// Join handles POST /api/slots/{id}/waitlist (protected)
func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid slot ID", nil)
		return
	}

	result, err := h.service.Join(r.Context(), userID, slotID)
	if err != nil {
		h.handleServiceError(w, err, "join waitlist")
		return
	}

	if result.Created {
		utils.ResponseCreated(w, "success", result)
		return
	}
	utils.ResponseSuccess(w, "already queued", result)
}

// PeekNext handles GET /api/admin/slots/{id}/waitlist/next (admin only)
func (h *WaitlistHandler) PeekNext(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid slot ID", nil)
		return
	}

	entry, err := h.service.PeekEarliest(r.Context(), slotID)
	if err != nil {
		h.handleServiceError(w, err, "peek waitlist")
		return
	}

	utils.ResponseSuccess(w, "success", entry)
}

// handleServiceError maps waitlist errors to responses
func (h *WaitlistHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrSlotNotFound),
		errors.Is(err, usecase.ErrNoWaitlistEntry):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
