package wire

import (
	"slot-booking/internal/adaptor"
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/middleware"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWaitlist(
	r chi.Router,
	waitlistHandler *adaptor.WaitlistHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(repo.UserRole, log))

		// POST /api/slots/{id}/waitlist - Join a slot's waitlist (idempotent)
		r.Post("/api/slots/{id}/waitlist", waitlistHandler.Join)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(repo.UserRole, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/slots/{id}/waitlist/next - Peek the earliest entry
		r.Get("/api/admin/slots/{id}/waitlist/next", waitlistHandler.PeekNext)
	})
}
