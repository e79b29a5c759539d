package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"slot-booking/internal/dto/request"
	"slot-booking/internal/usecase"
	"slot-booking/pkg/database"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service     usecase.BookingService
	coordinator usecase.CoordinatorService
	log         *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, coordinator usecase.CoordinatorService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:     service,
		coordinator: coordinator,
		log:         log.With(zap.String("handler", "booking")),
	}
}

// Reserve handles POST /api/slots/{id}/reserve (protected)
func (h *BookingHandler) Reserve(w http.ResponseWriter, r *http.Request) {
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

	booking, err := h.coordinator.Reserve(r.Context(), userID, slotID)
	if err != nil {
		h.handleServiceError(w, err, "reserve slot")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// CancelBooking handles POST /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	if err := h.coordinator.Cancel(r.Context(), userID, bookingID, false); err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetUserBookings handles GET /api/user/bookings (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID, req)
	if err != nil {
		h.handleServiceError(w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ==================== ADMIN METHODS ====================

// AdminCancelBooking handles PUT /api/admin/bookings/{id}/cancel (admin only)
func (h *BookingHandler) AdminCancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	if err := h.coordinator.Cancel(r.Context(), userID, bookingID, true); err != nil {
		h.handleServiceError(w, err, "admin cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// SetBookingStatus handles PUT /api/admin/bookings/{id}/status (admin only)
func (h *BookingHandler) SetBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.SetBookingStatus(r.Context(), bookingID, &req)
	if err != nil {
		h.handleServiceError(w, err, "set booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// handleServiceError maps coordinator and service errors to responses
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrSlotNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrSlotNotOpen),
		errors.Is(err, usecase.ErrSlotFull),
		errors.Is(err, usecase.ErrAlreadyBooked),
		errors.Is(err, usecase.ErrNotCancelable),
		errors.Is(err, usecase.ErrBookingFinal):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		h.log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, database.ErrTxConflict):
		h.log.Warn(operation+" contention", zap.Error(err))
		utils.ResponseConflict(w, "Too much contention, please retry")

	case errors.Is(err, database.ErrTxTimeout):
		h.log.Error(operation+" timed out", zap.Error(err))
		utils.ResponseUnavailable(w, "Operation timed out, please retry")

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		h.log.Warn(operation+" bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
