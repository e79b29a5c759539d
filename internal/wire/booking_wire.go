package wire

import (
	"slot-booking/internal/adaptor"
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/middleware"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(repo.UserRole, log))

		// POST /api/slots/{id}/reserve - Reserve a place on a slot
		r.Post("/api/slots/{id}/reserve", bookingHandler.Reserve)

		// POST /api/bookings/{id}/cancel - Cancel own booking
		r.Post("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.Identity(repo.UserRole, log))
		r.Use(middleware.Admin(log))

		// PUT /api/admin/bookings/{id}/cancel - Cancel any booking (admin)
		r.Put("/{id}/cancel", bookingHandler.AdminCancelBooking)

		// PUT /api/admin/bookings/{id}/status - Administrative status transition
		r.Put("/{id}/status", bookingHandler.SetBookingStatus)
	})
}
