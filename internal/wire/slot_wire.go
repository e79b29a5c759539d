package wire

import (
	"slot-booking/internal/adaptor"
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/middleware"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSlot(
	r chi.Router,
	slotHandler *adaptor.SlotHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/slots - List upcoming slots (public)
	r.Get("/api/slots", slotHandler.ListSlots)

	// GET /api/slots/{id} - Slot detail (public)
	r.Get("/api/slots/{id}", slotHandler.GetSlot)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/slots", func(r chi.Router) {
		r.Use(middleware.Identity(repo.UserRole, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/slots/{id}/capacity - Adjust remaining capacity
		r.Post("/{id}/capacity", slotHandler.AdjustCapacity)

		// POST /api/admin/slots/{id}/toggle - Open or close a slot
		r.Post("/{id}/toggle", slotHandler.ToggleStatus)

		// POST /api/admin/slots/{id}/promote - Promote earliest waitlist entry
		r.Post("/{id}/promote", slotHandler.Promote)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(repo.UserRole, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/schedule/generate - Expand a recurrence into slots
		r.Post("/api/admin/schedule/generate", slotHandler.GenerateSchedule)
	})
}
