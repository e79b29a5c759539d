package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"slot-booking/internal/dto/request"
	"slot-booking/internal/usecase"
	"slot-booking/pkg/database"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotHandler struct {
	service     usecase.SlotService
	coordinator usecase.CoordinatorService
	schedule    usecase.ScheduleService
	log         *zap.Logger
}

func NewSlotHandler(service usecase.SlotService, coordinator usecase.CoordinatorService, schedule usecase.ScheduleService, log *zap.Logger) *SlotHandler {
	return &SlotHandler{
		service:     service,
		coordinator: coordinator,
		schedule:    schedule,
		log:         log.With(zap.String("handler", "slot")),
	}
}

// ListSlots handles GET /api/slots (public)
func (h *SlotHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := utils.ParseDate(query.Get("from"), time.Now().UTC())
	days := utils.ParseInt(query.Get("days"), 0) // 0 = configured window
	limit := utils.ParseInt(query.Get("limit"), 200)

	slots, err := h.service.ListUpcoming(r.Context(), from, days, limit)
	if err != nil {
		h.handleServiceError(w, err, "list slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetSlot handles GET /api/slots/{id} (public)
func (h *SlotHandler) GetSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid slot ID", nil)
		return
	}

	slot, err := h.service.GetSlot(r.Context(), slotID)
	if err != nil {
		h.handleServiceError(w, err, "get slot")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// ==================== ADMIN METHODS ====================

// AdjustCapacity handles POST /api/admin/slots/{id}/capacity (admin only)
func (h *SlotHandler) AdjustCapacity(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid slot ID", nil)
		return
	}

	var req request.AdjustCapacityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.coordinator.AdjustCapacity(r.Context(), slotID, req.Delta)
	if err != nil {
		h.handleServiceError(w, err, "adjust capacity")
		return
	}

	utils.ResponseSuccess(w, "success", state)
}

// ToggleStatus handles POST /api/admin/slots/{id}/toggle (admin only)
func (h *SlotHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid slot ID", nil)
		return
	}

	state, err := h.coordinator.ToggleStatus(r.Context(), slotID)
	if err != nil {
		h.handleServiceError(w, err, "toggle slot status")
		return
	}

	utils.ResponseSuccess(w, "success", state)
}

// Promote handles POST /api/admin/slots/{id}/promote (admin only)
func (h *SlotHandler) Promote(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid slot ID", nil)
		return
	}

	promoted, err := h.coordinator.PromoteFromWaitlist(r.Context(), slotID)
	if err != nil {
		h.handleServiceError(w, err, "promote from waitlist")
		return
	}

	utils.ResponseCreated(w, "success", promoted)
}

// GenerateSchedule handles POST /api/admin/schedule/generate (admin only)
func (h *SlotHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.schedule.Generate(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "generate schedule")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// handleServiceError maps coordinator and service errors to responses
func (h *SlotHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrSlotNotFound),
		errors.Is(err, usecase.ErrNoWaitlistEntry):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrSlotNotOpen),
		errors.Is(err, usecase.ErrSlotFull),
		errors.Is(err, usecase.ErrAlreadyBooked):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, database.ErrTxConflict):
		h.log.Warn(operation+" contention", zap.Error(err))
		utils.ResponseConflict(w, "Too much contention, please retry")

	case errors.Is(err, database.ErrTxTimeout):
		h.log.Error(operation+" timed out", zap.Error(err))
		utils.ResponseUnavailable(w, "Operation timed out, please retry")

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "not found"),
		strings.Contains(err.Error(), "is not before"),
		strings.Contains(err.Error(), "is before"):
		h.log.Warn(operation+" bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
